// Command village runs one seat of a Village Pillage table in the terminal.
//
// Seats share a room over an in-process bus (one human against bots) or over
// NATS (one process per human, same VILLAGE_ROOM).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/pterm/pterm"

	"github.com/Bokan96/VillagePillage/internal/app"
	"github.com/Bokan96/VillagePillage/internal/bot"
	"github.com/Bokan96/VillagePillage/internal/config"
	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/logging"
	"github.com/Bokan96/VillagePillage/internal/ports"
	"github.com/Bokan96/VillagePillage/internal/ports/httpstatus"
	"github.com/Bokan96/VillagePillage/internal/ports/localbus"
	"github.com/Bokan96/VillagePillage/internal/ports/natsbus"
	"github.com/Bokan96/VillagePillage/internal/storage/postgres"
	"github.com/Bokan96/VillagePillage/internal/storage/sqlite"
)

func main() {
	dotenv := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	pc, err := config.LoadProcessConfig(*dotenv)
	if err != nil {
		config.Exitf("config: %v", err)
	}
	logger, err := logging.NewProduction(pc.LogLevel)
	if err != nil {
		config.Exitf("logger: %v", err)
	}
	defer logger.Sync()

	if err := config.LoadGameConfig(pc.ConfigPath); err != nil {
		logger.Warn("using default game config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, pc, config.GetGameConfig(), logger); err != nil {
		config.Exitf("village: %v", err)
	}
}

func run(ctx context.Context, pc config.ProcessConfig, gc *config.GameConfig, logger runtime.Logger) error {
	bots, err := botSeats(pc, gc)
	if err != nil {
		return err
	}
	room := pc.Room
	if room == "" {
		if pc.Transport == config.TransportNATS {
			return errors.New("VILLAGE_ROOM is required with the nats transport")
		}
		room = uuid.NewString()
	}

	catalog := domain.DefaultCatalog()
	brain, err := bot.NewBrain(gc.BotStrategy)
	if err != nil {
		return err
	}
	engine, err := app.NewEngine(app.EngineConfig{
		Seat:     pc.Seat,
		Catalog:  catalog,
		Settings: app.SettingsFromConfig(gc),
		Brain:    brain,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	bus, closeBus, err := openBus(pc, room, logger)
	if err != nil {
		return err
	}
	defer closeBus()

	st, err := openStore(ctx, pc.HistoryDSN)
	if err != nil {
		return err
	}
	defer st.close()

	renderer, err := newRenderer(pc.Seat, catalog, gc.StarterHand)
	if err != nil {
		return err
	}
	runner := app.NewRunner(app.RunnerConfig{
		Engine:  engine,
		Bus:     bus,
		Sink:    renderer,
		History: st.history,
		Market:  st.market,
		Room:    room,
		Tick:    gc.TickInterval(),
		Logger:  logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if pc.StatusAddr != "" {
		router := httpstatus.Router(room, runner.Snapshot, st.history, st.grants, logger)
		go func() {
			if err := httpstatus.Serve(ctx, pc.StatusAddr, router, logger); err != nil {
				logger.Error("status server: %v", err)
			}
		}()
	}

	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	pterm.DefaultHeader.Println("Village Pillage")
	pterm.Info.Printfln("Room %s, seat %d, transport %s. Type \"help\" for commands.", room, pc.Seat, pc.Transport)

	go func() {
		readCommands(ctx, os.Stdin, runner, bots, logger)
		cancel()
	}()

	return <-done
}

// botSeats decides which seats the authority plays. On the local bus every
// other seat is a bot.
func botSeats(pc config.ProcessConfig, gc *config.GameConfig) ([domain.SeatCount]bool, error) {
	var bots [domain.SeatCount]bool
	if pc.Transport == config.TransportLocal {
		for i := range bots {
			bots[i] = i != pc.Seat
		}
		return bots, nil
	}
	if !gc.BotAutoFill {
		return bots, nil
	}
	bots = domain.BotsForCount(pc.Bots)
	if bots[pc.Seat] {
		return bots, fmt.Errorf("seat %d is taken by a bot with VILLAGE_BOTS=%d", pc.Seat, pc.Bots)
	}
	return bots, nil
}

func openBus(pc config.ProcessConfig, room string, logger runtime.Logger) (ports.Broadcaster, func(), error) {
	if pc.Transport == config.TransportLocal {
		b := localbus.New()
		return b, b.Close, nil
	}
	nc, err := natsbus.BrokerConnect(pc.NATSURL, "", logger)
	if err != nil {
		return nil, nil, err
	}
	b, err := natsbus.New(nc, room, logger)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	return b, func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("nats drain: %v", err)
		}
	}, nil
}

// stores are the persistence backends of one process. Unset fields are disabled.
type stores struct {
	history ports.HistoryPort
	market  ports.MarketPort
	grants  ports.GrantReader
	close   func()
}

// openStore picks the history backend from the DSN: postgres:// URLs go to
// Postgres, anything else is a SQLite path. An empty DSN disables history.
func openStore(ctx context.Context, dsn string) (stores, error) {
	switch {
	case dsn == "":
		return stores{close: func() {}}, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		s, err := postgres.Open(ctx, dsn)
		if err != nil {
			return stores{}, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return stores{}, fmt.Errorf("migrate postgres: %w", err)
		}
		return stores{history: s, market: s, grants: s, close: func() { s.Close() }}, nil
	default:
		s, err := sqlite.Open(ctx, dsn)
		if err != nil {
			return stores{}, err
		}
		return stores{history: s, market: s, grants: s, close: func() { s.Close() }}, nil
	}
}
