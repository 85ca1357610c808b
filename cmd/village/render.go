package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/Bokan96/VillagePillage/internal/app"
	"github.com/Bokan96/VillagePillage/internal/domain"
)

// renderer prints engine events to the terminal. It runs on the runner's goroutine.
type renderer struct {
	seat       int
	catalog    *domain.Catalog
	starter    domain.Hand
	hand       domain.Hand
	highlights []domain.Highlight
	bots       [domain.SeatCount]bool
}

func newRenderer(seat int, catalog *domain.Catalog, starter []uint32) (*renderer, error) {
	hand, err := domain.NewHand(catalog, starter)
	if err != nil {
		return nil, fmt.Errorf("starter hand: %w", err)
	}
	return &renderer{seat: seat, catalog: catalog, starter: hand, hand: hand.Clone(), highlights: make([]domain.Highlight, len(hand))}, nil
}

func (r *renderer) cardName(id uint32) string {
	if def := r.catalog.Get(id); def != nil {
		return def.Name
	}
	return "#" + strconv.Itoa(int(id))
}

func (r *renderer) seatName(seat int) string {
	switch {
	case seat == r.seat:
		return pterm.LightCyan(fmt.Sprintf("Seat %d (you)", seat))
	case r.bots[seat]:
		return fmt.Sprintf("Seat %d (bot)", seat)
	}
	return fmt.Sprintf("Seat %d", seat)
}

func (r *renderer) Handle(ev app.Event) {
	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		r.bots = p.Bots
		r.hand = r.starter.Clone()
		r.highlights = make([]domain.Highlight, len(r.hand))
		pterm.Success.Printfln("Game started at round %d. Seat %d plays the bots.", ev.Round, p.Authority)
		r.printResources(p.Resources)
	case app.PhaseChangedPayload:
		r.printPhase(ev.Round, p)
	case app.HighlightChangedPayload:
		if p.Index >= 0 && p.Index < len(r.highlights) {
			r.highlights[p.Index] = p.State
		}
	case app.CountdownTickPayload:
		if s := p.RemainingSeconds; s > 0 && (s%10 == 0 || s <= 5) {
			pterm.Info.Printfln("%ds left", s)
		}
	case app.SubmitPayload:
		if p.Bot || p.Resend {
			return
		}
		s := p.Submission
		note := ""
		if p.Forced {
			note = pterm.LightYellow(" (time ran out)")
		}
		pterm.Success.Printfln("You play %s to the left and %s to the right%s.", r.cardName(s.LeftCardID), r.cardName(s.RightCardID), note)
	case app.SubmissionAcceptedPayload:
		pterm.Info.Printfln("%s is ready (%d/%d).", r.seatName(p.Seat), p.Count, domain.SeatCount)
	case app.RevealedPayload:
		r.printPlays(p.Plays)
	case app.RoundResolvedPayload:
		r.printDuels(p.Outcome)
		r.printResources(p.Outcome.After)
		for _, g := range p.Outcome.Grants {
			if g.Seat == r.seat {
				pterm.Info.Printfln("Market: you may take a %s (%s card).", g.Kind, g.Side)
			}
		}
	case app.HandRefreshedPayload:
		r.hand = p.Hand
		r.highlights = make([]domain.Highlight, len(p.Hand))
		if len(p.Restored) > 0 {
			pterm.Info.Printfln("%d card(s) back in your hand.", len(p.Restored))
		}
	case app.GameEndedPayload:
		r.printWinners(p.Winners)
	}
}

func (r *renderer) printPhase(round uint32, p app.PhaseChangedPayload) {
	switch p.Phase {
	case domain.PhasePlanning:
		pterm.DefaultSection.Printfln("Round %d: planning (%ds)", round, p.RemainingSeconds)
		r.printHand()
	case domain.PhaseWaiting:
		pterm.Info.Println("Waiting for the next game. Type \"start\" to begin.")
	default:
		pterm.Debug.Printfln("round %d: %s", round, p.Phase)
	}
}

func (r *renderer) handRows() [][]string {
	rows := [][]string{{"#", "Card", "Type", "State"}}
	for i, c := range r.hand {
		state := "free"
		if i < len(r.highlights) {
			state = r.highlights[i].String()
		}
		if c.Exhausted {
			state = fmt.Sprintf("exhausted until round %d", c.RestoreAfter+1)
		}
		rows = append(rows, []string{strconv.Itoa(i), r.cardName(c.DefinitionID), c.Type.String(), state})
	}
	return rows
}

func (r *renderer) printHand() {
	if err := pterm.DefaultTable.WithHasHeader().WithData(r.handRows()).Render(); err != nil {
		pterm.Error.Printfln("render hand: %v", err)
	}
}

func (r *renderer) printPlays(plays [domain.SeatCount]domain.RoundSubmission) {
	rows := [][]string{{"Seat", "Left", "Right"}}
	for seat, s := range plays {
		rows = append(rows, []string{r.seatName(seat), r.cardName(s.LeftCardID), r.cardName(s.RightCardID)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		pterm.Error.Printfln("render plays: %v", err)
	}
}

// duelLines describes what the local seat's two cards did this round.
func (r *renderer) duelLines(o domain.RoundOutcome) []string {
	var lines []string
	for _, d := range o.Duels {
		if d.Seat != r.seat {
			continue
		}
		effect := "no effect"
		if !d.Effect.IsZero() {
			effect = describeEffect(d.Effect)
		}
		line := fmt.Sprintf("%s (%s) meets %s: %s", r.cardName(d.CardID), d.Side, r.cardName(d.OpponentCardID), effect)
		if ex, ok := o.ExhaustionFor(r.seat, d.Side); ok {
			line += fmt.Sprintf(", rests until round %d", ex.RestoreAfter+1)
		}
		lines = append(lines, line)
	}
	return lines
}

func describeEffect(e domain.EffectSpec) string {
	var parts []string
	add := func(ok bool, format string, args ...any) {
		if ok {
			parts = append(parts, fmt.Sprintf(format, args...))
		}
	}
	add(e.Gain > 0, "+%d turnips", e.Gain)
	add(e.Steal > 0, "steals %d", e.Steal)
	add(e.Bank > 0, "banks %d", e.Bank)
	add(e.OpponentSteals > 0, "loses %d", e.OpponentSteals)
	add(e.OpponentGains, "opponent gains")
	add(e.BuyRelic, "may buy a relic")
	add(e.BuyCard, "may buy a card")
	add(e.FreeCard, "takes a free card")
	add(e.ExhaustOpp, "exhausts the opponent")
	return strings.Join(parts, ", ")
}

func (r *renderer) printDuels(o domain.RoundOutcome) {
	lines := r.duelLines(o)
	if len(lines) == 0 {
		return
	}
	items := make([]pterm.BulletListItem, len(lines))
	for i, l := range lines {
		items[i] = pterm.BulletListItem{Level: 0, Text: l}
	}
	if err := pterm.DefaultBulletList.WithItems(items).Render(); err != nil {
		pterm.Error.Printfln("render duels: %v", err)
	}
}

func (r *renderer) printResources(res [domain.SeatCount]domain.PlayerResources) {
	rows := [][]string{{"Seat", "Turnips", "Bank", "Relics"}}
	for seat, pr := range res {
		rows = append(rows, []string{
			r.seatName(seat),
			strconv.Itoa(pr.Turnips),
			fmt.Sprintf("%d/%d", pr.Bank, pr.BankLimit),
			strconv.Itoa(pr.Relics),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(rows).Render(); err != nil {
		pterm.Error.Printfln("render resources: %v", err)
	}
}

func (r *renderer) printWinners(winners []int) {
	text := ""
	for _, w := range winners {
		text += pterm.Sprintfln("%s wins", r.seatName(w))
	}
	pterm.DefaultBox.WithTitle(pterm.LightGreen("|GAME OVER|")).WithTitleTopCenter().WithHorizontalPadding(4).Println(text)
}
