package nakama

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/Bokan96/VillagePillage/internal/app"
	"github.com/Bokan96/VillagePillage/internal/bot"
	"github.com/Bokan96/VillagePillage/internal/config"
	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
	"github.com/Bokan96/VillagePillage/internal/wire"
	pb "github.com/Bokan96/VillagePillage/proto"
)

const (
	defaultBotAutoFillDelay = 5
	persistTimeout          = 5 * time.Second
)

// MatchState is the relay room's authoritative state. The server does not play:
// it seats players, hands out start signals, filters and relays submissions,
// and replays the resolution to keep a record of every round.
type MatchState struct {
	Seats     [domain.SeatCount]string    `json:"seats"`      // user ids, "" for an empty seat
	OwnerSeat int                         `json:"owner_seat"` // seat allowed to start a game
	Tick      int64                       `json:"tick"`
	Room      string                      `json:"room"`
	Presences map[string]runtime.Presence `json:"-"` // user id -> presence

	Playing   bool                                     `json:"playing"`
	Round     uint32                                   `json:"round"` // round being collected, or the last one played
	Bots      [domain.SeatCount]bool                   `json:"bots"`  // bot seats of the running game
	Resources [domain.SeatCount]domain.PlayerResources `json:"resources"`

	BotsEnabled        bool  `json:"bots_enabled"`
	BotAutoFillDelay   int   `json:"bot_auto_fill_delay"`
	LoneHumanSinceTick int64 `json:"lone_human_since_tick"`

	Aggregator *app.Aggregator                                     `json:"-"`
	Played     map[uint32][domain.SeatCount]domain.RoundSubmission `json:"-"` // recent resolved rounds
	Catalog    *domain.Catalog                                     `json:"-"`
	Config     *config.GameConfig                                  `json:"-"`
	History    ports.HistoryPort                                   `json:"-"`
	Market     ports.MarketPort                                    `json:"-"`
}

func newMatchState(room string, cfg *config.GameConfig) *MatchState {
	return &MatchState{
		OwnerSeat:        -1,
		Room:             room,
		Presences:        make(map[string]runtime.Presence),
		BotAutoFillDelay: defaultBotAutoFillDelay,
		Aggregator:       app.NewAggregator(),
		Played:           make(map[uint32][domain.SeatCount]domain.RoundSubmission),
		Catalog:          domain.DefaultCatalog(),
		Config:           cfg,
	}
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return domain.SeatCount - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// seatOf returns the seat held by userID, or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat != "" && seat == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	logger.Debug("MatchInit: initializing room %s.", matchID)

	state := newMatchState(matchID, config.GetGameConfig())
	state.Tick = time.Now().Unix()
	if nk != nil {
		store := NewNakamaStorageAdapter(nk)
		state.History = store
		state.Market = store
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	applyEnv(state, env)

	label, err := buildLabel(state)
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, label
}

func applyEnv(state *MatchState, env map[string]string) {
	if val, ok := env[envBotsEnabled]; ok {
		state.BotsEnabled = val == "true"
	} else {
		state.BotsEnabled = state.Config.BotAutoFill
	}
	if val, ok := env[envBotAutoFillDelay]; ok {
		if i, err := strconv.Atoi(val); err == nil && i >= 0 {
			state.BotAutoFillDelay = i
		}
	}
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}

	// A bot seat can be taken over while the room is in the lobby.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if !matchState.Playing {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		if matchState.seatOf(p.GetUserId()) >= 0 {
			continue
		}

		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && !matchState.Playing {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: user %s joined but no seat was available.", p.GetUserId())
		}
	}

	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastRoomState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave frees the seats of leaving players. A human leaving mid-game aborts
// it: nobody else can submit for that seat.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	seatFreed := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if i := matchState.seatOf(p.GetUserId()); i >= 0 {
			matchState.Seats[i] = ""
			seatFreed = true
			logger.Debug("MatchLeave: user %s left, seat %d freed.", p.GetUserId(), i)
		}
	}

	if newOwner := findFirstHumanSeat(matchState.Seats[:]); newOwner != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwner
		logger.Debug("MatchLeave: owner set to seat %d.", newOwner)
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: terminating room with no humans.")
		return nil
	}

	if seatFreed && matchState.Playing {
		mh.abortGame(matchState, dispatcher, logger, "player left")
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastRoomState(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpSubmitSelection:
			mh.handleSubmission(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	return matchState
}

// processBots fills the empty seats of a lobby with bots once a human has waited
// BotAutoFillDelay ticks. The bots themselves are played by the authority client.
func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Playing || state.GetHumanPlayerCount() == 0 || state.GetOpenSeatsCount() == 0 {
		state.LoneHumanSinceTick = 0
		return
	}
	if state.LoneHumanSinceTick == 0 {
		state.LoneHumanSinceTick = state.Tick
		logger.Debug("processBots: open seats detected, starting auto-fill timer.")
	}
	if state.Tick-state.LoneHumanSinceTick < int64(state.BotAutoFillDelay) {
		return
	}

	added := false
	for i, seat := range state.Seats {
		if seat != "" {
			continue
		}
		identity := bot.GetBotIdentity(i)
		if identity.UserID == "" || state.seatOf(identity.UserID) >= 0 {
			logger.Warn("processBots: no usable bot identity for seat %d", i)
			continue
		}
		state.Seats[i] = identity.UserID
		logger.Info("processBots: added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
		added = true
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastRoomState(state, dispatcher, logger)
	}
	state.LoneHumanSinceTick = 0
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)
	logger.Info("StartGame: request from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Playing {
		mh.sendError(state, dispatcher, logger, senderID, 409, app.ErrAlreadyStarted.Error())
		return
	}
	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: user %s is not the owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "only the room owner can start")
		return
	}
	if n := state.GetOccupiedSeatCount(); n < domain.SeatCount {
		logger.Warn("StartGame: cannot start with %d players, need %d.", n, domain.SeatCount)
		mh.sendError(state, dispatcher, logger, senderID, 400, "room is not full")
		return
	}

	var bots [domain.SeatCount]bool
	for i, userID := range state.Seats {
		bots[i] = isBotUserId(userID)
	}
	signal := domain.StartSignal{Round: state.Round + 1, BotMask: domain.BotMask(bots), StartedBy: uint8(senderSeat)}

	start := state.Config.StartingResources()
	for i := range state.Resources {
		state.Resources[i] = start
	}
	state.Bots = bots
	state.Round = signal.Round
	state.Playing = true
	state.Aggregator.Advance(signal.Round)

	mh.updateLabel(state, dispatcher, logger)
	if err := dispatcher.BroadcastMessage(OpGameStarted, wire.MarshalStart(signal), nil, nil, true); err != nil {
		logger.Error("StartGame: broadcast failed: %v", err)
	}
	logger.Info("StartGame: game started at round %d, bots=%v.", signal.Round, bots)
}

// canSubmitFor reports whether the player at senderSeat may submit for seat.
// Bot seats are submitted by the authority client.
func (ms *MatchState) canSubmitFor(senderSeat, seat int) bool {
	if senderSeat < 0 || !domain.ValidSeat(seat) {
		return false
	}
	if senderSeat == seat {
		return true
	}
	return ms.Bots[seat] && senderSeat == domain.AuthoritySeat(ms.Bots)
}

func (mh *matchHandler) handleSubmission(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	sub, err := wire.UnmarshalSubmission(msg.GetData())
	if err != nil {
		logger.Warn("handleSubmission: invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if !state.Playing {
		// A player who missed part of the final round is still collecting it.
		if _, ok := state.Played[sub.Round]; ok && state.seatOf(senderID) >= 0 {
			mh.replayRound(state, dispatcher, logger, senderID, sub.Round)
			return
		}
		mh.sendError(state, dispatcher, logger, senderID, 409, app.ErrNotStarted.Error())
		return
	}
	if err := sub.Validate(state.Catalog); err != nil {
		logger.Warn("handleSubmission: %s from %s rejected: %v", sub, senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	senderSeat := state.seatOf(senderID)
	if !state.canSubmitFor(senderSeat, int(sub.Seat)) {
		logger.Warn("handleSubmission: seat %d may not submit for seat %d", senderSeat, sub.Seat)
		mh.sendError(state, dispatcher, logger, senderID, 403, "not your seat")
		return
	}

	status := state.Aggregator.Offer(sub)
	switch status {
	case app.OfferAccepted, app.OfferBuffered:
	case app.OfferRepeated, app.OfferStale:
		// The sender is still collecting sub.Round.
		mh.replayRound(state, dispatcher, logger, senderID, sub.Round)
		return
	default:
		logger.Debug("handleSubmission: %s %s: %v", sub, status, status.Err())
		return
	}

	if err := dispatcher.BroadcastMessage(OpRoundSubmission, wire.MarshalSubmission(sub), nil, nil, true); err != nil {
		logger.Error("handleSubmission: relay failed: %v", err)
	}

	for state.Playing && state.Aggregator.Complete() {
		mh.resolveRound(ctx, state, dispatcher, logger)
	}
}

// replayRound sends the submissions the room holds for round to one player.
func (mh *matchHandler) replayRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, round uint32) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	held := state.Aggregator.Held(round)
	if plays, ok := state.Played[round]; ok {
		held = plays[:]
	}
	logger.Debug("replayRound: sending %d submissions for round %d to %s", len(held), round, userID)
	for _, s := range held {
		if err := dispatcher.BroadcastMessage(OpRoundSubmission, wire.MarshalSubmission(s), []runtime.Presence{presence}, nil, true); err != nil {
			logger.Error("replayRound: %v", err)
			return
		}
	}
}

// resolveRound replays the resolution every client runs, records it and moves
// collection to the next round.
func (mh *matchHandler) resolveRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	plays, _ := state.Aggregator.Plays()
	outcome, err := domain.ResolveRound(state.Catalog, plays, state.Resources, state.Config.Rules())
	if err != nil {
		logger.Error("resolveRound: round %d failed to resolve, resources unchanged: %v", state.Round, err)
		outcome = domain.RoundOutcome{Round: state.Round, Plays: plays, Before: state.Resources, After: state.Resources}
	}
	state.Resources = outcome.After
	state.Played[outcome.Round] = plays
	for r := range state.Played {
		if r+app.MaxBufferedRounds < outcome.Round {
			delete(state.Played, r)
		}
	}
	mh.persist(ctx, state, logger, outcome)
	mh.broadcastProto(dispatcher, logger, OpRoundResolved, outcomeMessage(outcome), nil)

	if len(outcome.Winners) > 0 {
		state.Playing = false
		logger.Info("resolveRound: game over at round %d, winners %v", state.Round, outcome.Winners)
		mh.broadcastProto(dispatcher, logger, OpGameEnded, &pb.GameEnded{
			RoundNumber: outcome.Round,
			Winners:     int32List(outcome.Winners),
		}, nil)
		mh.updateLabel(state, dispatcher, logger)
		return
	}
	state.Round++
	state.Aggregator.Advance(state.Round)
}

func (mh *matchHandler) persist(ctx context.Context, state *MatchState, logger runtime.Logger, outcome domain.RoundOutcome) {
	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()
	if state.History != nil {
		if err := state.History.AppendRound(ctx, state.Room, outcome); err != nil {
			logger.Error("persist: round %d: %v", outcome.Round, err)
		}
	}
	if state.Market != nil {
		for _, g := range outcome.Grants {
			if err := state.Market.GrantPurchase(ctx, state.Room, outcome.Round, g); err != nil {
				logger.Error("persist: grant %s for seat %d: %v", g.Kind, g.Seat, err)
			}
		}
	}
}

func (mh *matchHandler) abortGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, reason string) {
	state.Playing = false
	logger.Info("abortGame: round %d aborted: %s", state.Round, reason)
	mh.broadcastProto(dispatcher, logger, OpGameAborted, &pb.GameAborted{
		RoundNumber: state.Round,
		Reason:      reason,
	}, nil)
}

func outcomeMessage(o domain.RoundOutcome) *pb.RoundResolved {
	msg := &pb.RoundResolved{RoundNumber: o.Round, Winners: int32List(o.Winners)}
	for _, r := range o.After {
		msg.Turnips = append(msg.Turnips, int32(r.Turnips))
		msg.Bank = append(msg.Bank, int32(r.Bank))
		msg.Relics = append(msg.Relics, int32(r.Relics))
	}
	return msg
}

func int32List(xs []int) []int32 {
	out := make([]int32, len(xs))
	for i, x := range xs {
		out[i] = int32(x)
	}
	return out
}

func (mh *matchHandler) broadcastRoomState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	msg := &pb.RoomState{
		OwnerSeat:   int32(state.OwnerSeat),
		Playing:     state.Playing,
		RoundNumber: state.Round,
	}
	for _, userID := range state.Seats {
		isBot := userID != "" && isBotUserId(userID)
		name := ""
		switch {
		case userID == "":
		case isBot:
			name = bot.GetBotDisplayName(userID)
		default:
			name = userID
			if p, ok := state.Presences[userID]; ok {
				name = p.GetUsername()
			}
		}
		msg.Seats = append(msg.Seats, userID)
		msg.Names = append(msg.Names, name)
		msg.Bots = append(msg.Bots, isBot)
	}
	mh.broadcastProto(dispatcher, logger, OpRoomState, msg, nil)
}

// broadcastProto sends a wire message. A nil recipient list reaches everyone.
func (mh *matchHandler) broadcastProto(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, msg proto.Message, recipients []runtime.Presence) {
	bytes, err := proto.Marshal(msg)
	if err != nil {
		logger.Error("broadcast %d: failed to marshal: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("broadcast %d: %v", opCode, err)
	}
}

// sendError sends an error event to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: presence not found", userID)
		return
	}
	mh.broadcastProto(dispatcher, logger, OpError, &pb.ErrorEvent{
		Code:    int32(code),
		Message: message,
	}, []runtime.Presence{presence})
}

func buildLabel(state *MatchState) (string, error) {
	labelState := labelStateLobby
	if state.Playing {
		labelState = labelStatePlaying
	}
	labelBytes, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(&pb.MatchLabel{
		Game:  GameLabel,
		Open:  int32(state.GetOpenSeatsCount()),
		State: labelState,
	})
	if err != nil {
		return "", err
	}
	return string(labelBytes), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := buildLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: room terminated, grace %d seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
