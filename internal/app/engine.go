package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/Bokan96/VillagePillage/internal/bot"
	"github.com/Bokan96/VillagePillage/internal/config"
	"github.com/Bokan96/VillagePillage/internal/domain"
)

var (
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotStarted     = errors.New("game not started")
)

// Settings are the tuning values the engine runs with.
type Settings struct {
	TurnDuration      time.Duration
	BotActivation     time.Duration
	RevealDelay       time.Duration
	StartingResources domain.PlayerResources
	StarterHand       []uint32
	Rules             domain.Rules
	ForcedDistinct    bool
	// ResendInterval paces the recovery of lost submissions. Zero disables it.
	ResendInterval time.Duration
}

// SettingsFromConfig derives engine settings from the game config.
func SettingsFromConfig(c *config.GameConfig) Settings {
	return Settings{
		TurnDuration:      c.TurnDuration(),
		BotActivation:     c.BotActivation(),
		RevealDelay:       c.RevealDelay(),
		StartingResources: c.StartingResources(),
		StarterHand:       append([]uint32(nil), c.StarterHand...),
		Rules:             c.Rules(),
		ForcedDistinct:    c.Distinct(),
		ResendInterval:    c.ResendInterval(),
	}
}

// EngineConfig wires an Engine.
type EngineConfig struct {
	Seat     int
	Catalog  *domain.Catalog
	Settings Settings
	Brain    bot.Brain
	Rng      *rand.Rand
	Logger   runtime.Logger
}

// Engine is one client's view of the game: the round phase machine, the local
// player's selection, the planning countdown and the submission aggregator.
//
// Engine is not safe for concurrent use. Every call must come from the same
// timeline (see Runner). Calls return the events they caused, in order.
type Engine struct {
	seat     int
	catalog  *domain.Catalog
	settings Settings
	brain    bot.Brain
	rng      *rand.Rand
	logger   runtime.Logger

	phase      domain.Phase
	round      uint32
	table      *domain.Table
	sel        domain.Selection
	submitted  bool
	agents     map[int]*bot.Agent
	botSent    [domain.SeatCount]bool
	countdown  *Countdown
	agg        *Aggregator
	revealLeft time.Duration
	highlights []domain.Highlight
	winners    []int
	last       *domain.RoundOutcome

	clock      time.Duration
	resendLeft time.Duration
	sent       map[uint32][]domain.RoundSubmission
	played     map[uint32][domain.SeatCount]domain.RoundSubmission
	answered   map[uint32]time.Duration
}

// NewEngine builds an engine in the Waiting phase.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if !domain.ValidSeat(cfg.Seat) {
		return nil, fmt.Errorf("seat %d: %w", cfg.Seat, domain.ErrInvalidSeat)
	}
	if cfg.Catalog == nil {
		return nil, errors.New("engine needs a catalog")
	}
	if cfg.Logger == nil {
		return nil, errors.New("engine needs a logger")
	}
	if cfg.Settings.TurnDuration <= 0 {
		return nil, fmt.Errorf("turn duration must be positive, got %v", cfg.Settings.TurnDuration)
	}
	if _, err := domain.NewHand(cfg.Catalog, cfg.Settings.StarterHand); err != nil {
		return nil, fmt.Errorf("starter hand: %w", err)
	}
	if cfg.Brain == nil {
		cfg.Brain = &bot.HandBot{}
	}
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		seat:      cfg.Seat,
		catalog:   cfg.Catalog,
		settings:  cfg.Settings,
		brain:     cfg.Brain,
		rng:       cfg.Rng,
		logger:    cfg.Logger.WithField("seat", cfg.Seat),
		phase:     domain.PhaseWaiting,
		sel:       domain.NewSelection(),
		countdown: NewCountdown(cfg.Settings.TurnDuration),
		agg:       NewAggregator(),
		sent:      make(map[uint32][]domain.RoundSubmission),
		played:    make(map[uint32][domain.SeatCount]domain.RoundSubmission),
		answered:  make(map[uint32]time.Duration),
	}, nil
}

func (e *Engine) Phase() domain.Phase { return e.phase }
func (e *Engine) Round() uint32       { return e.round }
func (e *Engine) Seat() int           { return e.seat }

// IsAuthority reports whether this client drives the bot seats.
func (e *Engine) IsAuthority() bool {
	return e.table != nil && domain.AuthoritySeat(e.table.Bots) == e.seat
}

// NextStart builds the start signal for a new game with the given bot seats.
func (e *Engine) NextStart(bots [domain.SeatCount]bool) (domain.StartSignal, error) {
	if e.phase != domain.PhaseWaiting {
		return domain.StartSignal{}, ErrAlreadyStarted
	}
	if bots[e.seat] {
		return domain.StartSignal{}, fmt.Errorf("local seat %d cannot be a bot: %w", e.seat, domain.ErrInvalidSeat)
	}
	return domain.StartSignal{Round: e.round + 1, BotMask: domain.BotMask(bots), StartedBy: uint8(e.seat)}, nil
}

// Start leaves Waiting and enters Planning for the signalled round.
func (e *Engine) Start(signal domain.StartSignal) ([]Event, error) {
	if e.phase != domain.PhaseWaiting {
		return nil, ErrAlreadyStarted
	}
	if signal.Round <= e.round {
		return nil, fmt.Errorf("start for round %d at round %d: %w", signal.Round, e.round, domain.ErrStaleSubmission)
	}
	bots := signal.Bots()
	if bots[e.seat] {
		return nil, fmt.Errorf("local seat %d marked as bot: %w", e.seat, domain.ErrInvalidSeat)
	}

	table := domain.NewTable(e.settings.StartingResources, bots)
	hand, err := domain.NewHand(e.catalog, e.settings.StarterHand)
	if err != nil {
		return nil, err
	}
	table.Hands[e.seat] = hand
	e.table = table
	e.agents = make(map[int]*bot.Agent)
	e.winners = nil
	e.last = nil

	if e.IsAuthority() {
		for i, seat := range table.BotSeats() {
			botHand, _ := domain.NewHand(e.catalog, e.settings.StarterHand)
			table.Hands[seat] = botHand
			e.agents[seat] = &bot.Agent{Seat: seat, Name: bot.GetBotIdentity(i).DisplayName, Strategy: e.brain}
		}
	}

	e.round = signal.Round
	e.agg.Advance(e.round)
	e.logger.Info("game started at round %d, bots=%v, authority=%v", e.round, bots, e.IsAuthority())

	evs := []Event{{
		Kind:  EventGameStarted,
		Round: e.round,
		Payload: GameStartedPayload{
			Bots:      bots,
			Authority: domain.AuthoritySeat(bots),
			Resources: table.Resources,
		},
	}}
	return append(evs, e.enterPlanning()...), nil
}

func (e *Engine) hand() domain.Hand {
	if e.table == nil {
		return nil
	}
	return e.table.Hands[e.seat]
}

func (e *Engine) phaseEvent() Event {
	remaining := 0
	if e.phase == domain.PhasePlanning {
		remaining = e.countdown.Seconds()
	}
	return Event{Kind: EventPhaseChanged, Round: e.round, Payload: PhaseChangedPayload{Phase: e.phase, RemainingSeconds: remaining}}
}

// highlightEvents reports every hand card whose highlight differs from what was
// last reported.
func (e *Engine) highlightEvents() []Event {
	cur := domain.Highlights(e.hand(), e.sel)
	var evs []Event
	for i, h := range cur {
		if e.highlights != nil && i < len(e.highlights) && e.highlights[i] == h {
			continue
		}
		evs = append(evs, Event{Kind: EventHighlightChanged, Round: e.round, Payload: HighlightChangedPayload{Index: i, State: h}})
	}
	e.highlights = cur
	return evs
}

func (e *Engine) enterPlanning() []Event {
	e.phase = domain.PhasePlanning
	e.sel = domain.NewSelection()
	e.submitted = false
	e.botSent = [domain.SeatCount]bool{}
	e.highlights = nil
	e.revealLeft = 0
	e.resendLeft = e.settings.ResendInterval
	e.countdown.Stop()
	e.countdown.Start()

	evs := []Event{e.phaseEvent()}
	evs = append(evs, e.highlightEvents()...)
	if e.agg.Complete() {
		evs = append(evs, e.beginReveal()...)
	}
	return evs
}

func (e *Engine) checkEditable() error {
	if e.phase != domain.PhasePlanning {
		return domain.ErrNotPlanning
	}
	if e.submitted {
		return domain.ErrSelectionLocked
	}
	return nil
}

// SelectLeft assigns hand[index] to the left neighbor.
func (e *Engine) SelectLeft(index int) []Event {
	return e.selectSide(domain.SideLeft, index)
}

// SelectRight assigns hand[index] to the right neighbor.
func (e *Engine) SelectRight(index int) []Event {
	return e.selectSide(domain.SideRight, index)
}

func (e *Engine) selectSide(side domain.Side, index int) []Event {
	if err := e.checkEditable(); err != nil {
		e.logger.Debug("select %s %d ignored: %v", side, index, err)
		return nil
	}
	outcome, err := e.sel.Select(e.hand(), side, index)
	if err != nil {
		e.logger.Warn("select %s %d ignored: %v", side, index, err)
		return nil
	}
	e.logger.Debug("select %s %d: %s", side, index, outcome)

	evs := e.highlightEvents()
	if e.sel.IsComplete(e.hand()) {
		evs = append(evs, e.submitLocal(false)...)
	}
	return evs
}

// Deselect clears one slot.
func (e *Engine) Deselect(side domain.Side) []Event {
	if err := e.checkEditable(); err != nil {
		e.logger.Debug("deselect %s ignored: %v", side, err)
		return nil
	}
	if !e.sel.Deselect(side) {
		return nil
	}
	return e.highlightEvents()
}

// ReturnToHand clears whichever slot holds hand[index].
func (e *Engine) ReturnToHand(index int) []Event {
	if err := e.checkEditable(); err != nil {
		e.logger.Debug("return %d ignored: %v", index, err)
		return nil
	}
	if _, ok := e.sel.Return(index); !ok {
		e.logger.Debug("return %d ignored: card not assigned", index)
		return nil
	}
	return e.highlightEvents()
}

// Tap handles a tap on a hand card: an assigned card goes back to the hand,
// a free card is left alone.
func (e *Engine) Tap(index int) []Event {
	if index == domain.NoCard || (index != e.sel.Left && index != e.sel.Right) {
		e.logger.Debug("tap on free card %d ignored", index)
		return nil
	}
	return e.ReturnToHand(index)
}

func (e *Engine) submitLocal(forced bool) []Event {
	h := e.hand()
	sub := domain.RoundSubmission{
		Round:       e.round,
		Seat:        uint8(e.seat),
		LeftCardID:  h[e.sel.Left].DefinitionID,
		RightCardID: h[e.sel.Right].DefinitionID,
	}
	e.submitted = true
	e.sent[e.round] = append(e.sent[e.round], sub)
	e.logger.Info("submitting %s (forced=%v)", sub, forced)
	return []Event{{Kind: EventSubmit, Round: e.round, Payload: SubmitPayload{Submission: sub, Forced: forced}}}
}

// Deliver feeds a received submission, the local player's own included, into the
// aggregator. Invalid, duplicate and stale submissions are logged and dropped;
// submissions for later rounds are held until the engine gets there. A copy
// of a submission for a round this client has already completed means the
// sender is missing part of it, so the full set is sent again.
func (e *Engine) Deliver(sub domain.RoundSubmission) []Event {
	logger := e.logger.WithFields(map[string]interface{}{"round": sub.Round, "from": sub.Seat})
	if err := sub.Validate(e.catalog); err != nil {
		logger.Warn("discarding submission %s: %v", sub, err)
		return nil
	}
	status := e.agg.Offer(sub)
	switch status {
	case OfferAccepted:
	case OfferStale, OfferRepeated:
		logger.Debug("submission %s: %v", status, status.Err())
		return e.answer(sub)
	default:
		logger.Debug("submission %s: %v", status, status.Err())
		return nil
	}

	evs := []Event{{
		Kind:    EventSubmissionAccepted,
		Round:   sub.Round,
		Payload: SubmissionAcceptedPayload{Seat: int(sub.Seat), Count: e.agg.Count()},
	}}
	if e.phase == domain.PhasePlanning && e.agg.Complete() {
		evs = append(evs, e.beginReveal()...)
	}
	return evs
}

// answer sends every play of a completed round to a peer still collecting it,
// at most once per resend interval.
func (e *Engine) answer(sub domain.RoundSubmission) []Event {
	if e.settings.ResendInterval <= 0 || e.sendsFor(sub) {
		return nil
	}
	plays, ok := e.played[sub.Round]
	if !ok {
		if plays, ok = e.agg.Plays(); !ok || plays[0].Round != sub.Round {
			return nil
		}
	}
	if at, ok := e.answered[sub.Round]; ok && e.clock-at < e.settings.ResendInterval {
		return nil
	}
	e.answered[sub.Round] = e.clock
	e.logger.Debug("seat %d is behind on round %d, sending the full set", sub.Seat, sub.Round)
	evs := make([]Event, 0, len(plays))
	for _, p := range plays {
		evs = append(evs, e.resendEvent(p))
	}
	return evs
}

// sendsFor reports whether sub came from this client, directly or for one of its bots.
func (e *Engine) sendsFor(sub domain.RoundSubmission) bool {
	for _, s := range e.sent[sub.Round] {
		if s.Seat == sub.Seat {
			return true
		}
	}
	return false
}

func (e *Engine) resendEvent(sub domain.RoundSubmission) Event {
	isBot := e.table != nil && e.table.Bots[sub.Seat]
	return Event{Kind: EventSubmit, Round: sub.Round, Payload: SubmitPayload{Submission: sub, Bot: isBot, Resend: true}}
}

// resend repeats this client's submissions for the current round.
func (e *Engine) resend() []Event {
	sent := e.sent[e.round]
	e.logger.Debug("round %d still open with %d/%d submissions, resending %d", e.round, e.agg.Count(), domain.SeatCount, len(sent))
	evs := make([]Event, 0, len(sent))
	for _, s := range sent {
		evs = append(evs, e.resendEvent(s))
	}
	return evs
}

func (e *Engine) beginReveal() []Event {
	plays, _ := e.agg.Plays()
	e.countdown.Stop()
	e.phase = domain.PhaseRevealing
	evs := []Event{e.phaseEvent(), {Kind: EventRevealed, Round: e.round, Payload: RevealedPayload{Plays: plays}}}
	if e.settings.RevealDelay <= 0 {
		return append(evs, e.resolve()...)
	}
	e.revealLeft = e.settings.RevealDelay
	return evs
}

func (e *Engine) resolve() []Event {
	plays, ok := e.agg.Plays()
	if !ok {
		e.logger.Error("round %d: resolve without a full set of submissions", e.round)
		return nil
	}
	e.phase = domain.PhaseResolving
	evs := []Event{e.phaseEvent()}

	outcome, err := domain.ResolveRound(e.catalog, plays, e.table.Resources, e.settings.Rules)
	if err != nil {
		e.logger.Error("round %d failed to resolve, resources unchanged: %v", e.round, err)
		outcome = domain.RoundOutcome{Round: e.round, Plays: plays, Before: e.table.Resources, After: e.table.Resources}
	} else {
		e.table.ApplyOutcome(outcome)
	}
	e.last = &outcome
	e.played[e.round] = plays
	evs = append(evs, Event{Kind: EventRoundResolved, Round: e.round, Payload: RoundResolvedPayload{Outcome: outcome}})

	if len(outcome.Winners) > 0 {
		e.phase = domain.PhaseWaiting
		e.winners = outcome.Winners
		e.logger.Info("game over at round %d, winners %v", e.round, outcome.Winners)
		return append(evs,
			Event{Kind: EventGameEnded, Round: e.round, Payload: GameEndedPayload{Winners: outcome.Winners, Resources: e.table.Resources}},
			e.phaseEvent(),
		)
	}
	return append(evs, e.refresh()...)
}

func (e *Engine) refresh() []Event {
	e.phase = domain.PhaseRefresh
	evs := []Event{e.phaseEvent()}

	restored := e.table.Refresh(e.round)
	evs = append(evs, Event{
		Kind:    EventHandRefreshed,
		Round:   e.round,
		Payload: HandRefreshedPayload{Hand: e.hand().Clone(), Restored: restored[e.seat]},
	})

	e.round++
	e.forget()
	if n := e.agg.Advance(e.round); n > 0 {
		e.logger.Debug("replaying %d buffered submissions for round %d", n, e.round)
	}
	return append(evs, e.enterPlanning()...)
}

// forget drops recovery state for rounds no peer can still be collecting.
func (e *Engine) forget() {
	old := func(r uint32) bool { return r+MaxBufferedRounds < e.round }
	for r := range e.played {
		if old(r) {
			delete(e.played, r)
		}
	}
	for r := range e.sent {
		if old(r) {
			delete(e.sent, r)
		}
	}
	for r := range e.answered {
		if old(r) {
			delete(e.answered, r)
		}
	}
}

// Tick advances the engine's clocks by dt.
func (e *Engine) Tick(dt time.Duration) []Event {
	e.clock += dt
	switch e.phase {
	case domain.PhasePlanning:
		return e.tickPlanning(dt)
	case domain.PhaseRevealing:
		if e.revealLeft <= 0 {
			return nil
		}
		e.revealLeft -= dt
		if e.revealLeft <= 0 {
			return e.resolve()
		}
	}
	return nil
}

func (e *Engine) tickPlanning(dt time.Duration) []Event {
	before := e.countdown.Seconds()
	expired := e.countdown.Tick(dt)

	var evs []Event
	if s := e.countdown.Seconds(); s != before {
		evs = append(evs, Event{Kind: EventCountdownTick, Round: e.round, Payload: CountdownTickPayload{RemainingSeconds: s}})
	}
	if e.IsAuthority() && e.countdown.Remaining() <= e.settings.BotActivation {
		evs = append(evs, e.driveBots()...)
	}
	if expired && !e.submitted {
		evs = append(evs, e.forceSelection()...)
	}
	if e.settings.ResendInterval > 0 && len(e.sent[e.round]) > 0 && !e.agg.Complete() {
		e.resendLeft -= dt
		if e.resendLeft <= 0 {
			e.resendLeft = e.settings.ResendInterval
			evs = append(evs, e.resend()...)
		}
	}
	return evs
}

// driveBots submits once for every bot seat that has not played this round.
func (e *Engine) driveBots() []Event {
	var evs []Event
	for _, seat := range e.table.BotSeats() {
		if e.botSent[seat] || e.agg.Has(seat) {
			continue
		}
		agent := e.agents[seat]
		if agent == nil {
			continue
		}
		view := bot.View{
			Round:     e.round,
			Hand:      e.table.Hands[seat],
			Catalog:   e.catalog,
			Resources: e.table.Resources,
			Rules:     e.settings.Rules,
		}
		sub, err := agent.Play(view, e.rng)
		if err != nil {
			e.logger.Warn("bot at seat %d failed, playing from catalog: %v", seat, err)
			fallback := &bot.Agent{Seat: seat, Name: agent.Name, Strategy: &bot.CatalogRangeBot{}}
			if sub, err = fallback.Play(view, e.rng); err != nil {
				e.logger.Error("bot at seat %d cannot play: %v", seat, err)
				continue
			}
		}
		e.botSent[seat] = true
		e.sent[e.round] = append(e.sent[e.round], sub)
		e.logger.Debug("bot %s submitting %s", agent.Name, sub)
		evs = append(evs, Event{Kind: EventSubmit, Round: e.round, Payload: SubmitPayload{Submission: sub, Bot: true}})
	}
	return evs
}

// forceSelection fills empty slots with random selectable cards and submits.
func (e *Engine) forceSelection() []Event {
	h := e.hand()
	if len(h) == 0 {
		e.logger.Error("round %d: countdown expired with an empty hand", e.round)
		return nil
	}
	avail := h.Available()
	if len(avail) == 0 {
		e.logger.Error("round %d: no selectable card at timeout, using the whole hand", e.round)
		for i := range h {
			avail = append(avail, i)
		}
	}

	for _, side := range []domain.Side{domain.SideLeft, domain.SideRight} {
		if e.sel.Slot(side) != domain.NoCard {
			continue
		}
		candidates := avail
		if e.settings.ForcedDistinct {
			candidates = without(avail, e.sel.Slot(side.Other()))
			if len(candidates) == 0 {
				candidates = avail
			}
		}
		idx := candidates[e.rng.Intn(len(candidates))]
		if side == domain.SideLeft {
			e.sel.Left = idx
		} else {
			e.sel.Right = idx
		}
	}
	e.logger.Info("countdown expired, forced selection left=%d right=%d", e.sel.Left, e.sel.Right)

	evs := e.highlightEvents()
	return append(evs, e.submitLocal(true)...)
}

func without(indices []int, drop int) []int {
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i != drop {
			out = append(out, i)
		}
	}
	return out
}

// Snapshot is a copy of the engine state for rendering and status reporting.
type Snapshot struct {
	Seat             int                                      `json:"seat"`
	Phase            domain.Phase                             `json:"phase"`
	Round            uint32                                   `json:"round"`
	RemainingSeconds int                                      `json:"remaining_seconds"`
	Authority        bool                                     `json:"authority"`
	Bots             [domain.SeatCount]bool                   `json:"bots"`
	Resources        [domain.SeatCount]domain.PlayerResources `json:"resources"`
	Hand             domain.Hand                              `json:"hand"`
	Highlights       []domain.Highlight                       `json:"highlights"`
	Selection        domain.Selection                         `json:"selection"`
	Submitted        [domain.SeatCount]bool                   `json:"submitted"`
	Locked           bool                                     `json:"locked"`
	Winners          []int                                    `json:"winners,omitempty"`
	LastOutcome      *domain.RoundOutcome                     `json:"last_outcome,omitempty"`
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Seat:       e.seat,
		Phase:      e.phase,
		Round:      e.round,
		Authority:  e.IsAuthority(),
		Hand:       e.hand().Clone(),
		Highlights: domain.Highlights(e.hand(), e.sel),
		Selection:  e.sel,
		Locked:     e.submitted,
		Winners:    append([]int(nil), e.winners...),
	}
	if e.phase == domain.PhasePlanning {
		s.RemainingSeconds = e.countdown.Seconds()
	}
	if e.table != nil {
		s.Bots = e.table.Bots
		s.Resources = e.table.Resources
	}
	for seat := range s.Submitted {
		s.Submitted[seat] = e.agg.Has(seat)
	}
	if e.last != nil {
		o := *e.last
		s.LastOutcome = &o
	}
	return s
}
