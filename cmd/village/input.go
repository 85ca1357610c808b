package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/pterm/pterm"

	"github.com/Bokan96/VillagePillage/internal/app"
	"github.com/Bokan96/VillagePillage/internal/domain"
)

type commandKind int

const (
	cmdSelect commandKind = iota
	cmdDeselect
	cmdTap
	cmdStart
	cmdState
	cmdHelp
	cmdQuit
)

type command struct {
	kind  commandKind
	side  domain.Side
	index int
}

var errEmptyLine = errors.New("empty line")

const helpText = `l <n>      play hand card n toward your left neighbor
r <n>      play hand card n toward your right neighbor
d l|r      take back the card on that side
t <n>      tap hand card n (returns it if it is played)
start      start a game
state      show the table
quit       leave`

func parseSide(s string) (domain.Side, error) {
	switch s {
	case "l", "left":
		return domain.SideLeft, nil
	case "r", "right":
		return domain.SideRight, nil
	}
	return domain.SideLeft, fmt.Errorf("unknown side %q", s)
}

func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, errEmptyLine
	}
	args := fields[1:]
	index := func() (int, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("%s needs a card number", fields[0])
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("bad card number %q", args[0])
		}
		return n, nil
	}

	switch fields[0] {
	case "l", "left", "r", "right":
		side, _ := parseSide(fields[0])
		n, err := index()
		return command{kind: cmdSelect, side: side, index: n}, err
	case "d", "deselect":
		if len(args) != 1 {
			return command{}, errors.New("deselect needs a side: l or r")
		}
		side, err := parseSide(args[0])
		return command{kind: cmdDeselect, side: side}, err
	case "t", "tap":
		n, err := index()
		return command{kind: cmdTap, index: n}, err
	case "start":
		return command{kind: cmdStart}, nil
	case "state", "s":
		return command{kind: cmdState}, nil
	case "help", "h", "?":
		return command{kind: cmdHelp}, nil
	case "quit", "q", "exit":
		return command{kind: cmdQuit}, nil
	}
	return command{}, fmt.Errorf("unknown command %q", fields[0])
}

// engineCommand maps a card command onto the engine call it stands for.
func engineCommand(c command) app.Command {
	switch c.kind {
	case cmdSelect:
		if c.side == domain.SideLeft {
			return func(e *app.Engine) []app.Event { return e.SelectLeft(c.index) }
		}
		return func(e *app.Engine) []app.Event { return e.SelectRight(c.index) }
	case cmdDeselect:
		return func(e *app.Engine) []app.Event { return e.Deselect(c.side) }
	case cmdTap:
		return func(e *app.Engine) []app.Event { return e.Tap(c.index) }
	}
	return nil
}

// readCommands drives the runner from typed lines until quit, EOF or ctx ends.
func readCommands(ctx context.Context, in io.Reader, runner *app.Runner, bots [domain.SeatCount]bool, logger runtime.Logger) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		c, err := parseCommand(scanner.Text())
		if errors.Is(err, errEmptyLine) {
			continue
		}
		if err != nil {
			pterm.Warning.Println(err)
			continue
		}

		switch c.kind {
		case cmdQuit:
			return
		case cmdHelp:
			pterm.Println(helpText)
		case cmdStart:
			if err := runner.RequestStart(ctx, bots); err != nil {
				pterm.Warning.Printfln("cannot start: %v", err)
			}
		case cmdState:
			snap, err := runner.Snapshot(ctx)
			if err != nil {
				return
			}
			printSnapshot(snap)
		default:
			if err := runner.Do(ctx, engineCommand(c)); err != nil {
				return
			}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("reading input: %v", err)
	}
}

func printSnapshot(s app.Snapshot) {
	pterm.DefaultSection.Printfln("Round %d: %s", s.Round, s.Phase)
	if s.Phase == domain.PhasePlanning {
		pterm.Info.Printfln("%ds left, locked=%v", s.RemainingSeconds, s.Locked)
	}
	items := []pterm.BulletListItem{}
	for i, c := range s.Hand {
		state := "free"
		if i < len(s.Highlights) {
			state = s.Highlights[i].String()
		}
		if c.Exhausted {
			state = "exhausted"
		}
		items = append(items, pterm.BulletListItem{Level: 0, Text: fmt.Sprintf("%d: card %d (%s) %s", i, c.DefinitionID, c.Type, state)})
	}
	for seat, r := range s.Resources {
		items = append(items, pterm.BulletListItem{Level: 0, Text: fmt.Sprintf("seat %d: %d turnips, bank %d/%d, %d relics, ready=%v", seat, r.Turnips, r.Bank, r.BankLimit, r.Relics, s.Submitted[seat])})
	}
	if err := pterm.DefaultBulletList.WithItems(items).Render(); err != nil {
		pterm.Error.Printfln("render state: %v", err)
	}
}
