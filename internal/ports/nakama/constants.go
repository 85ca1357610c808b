package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a room with an open seat.
	RpcQuickMatch = "quick_match"

	// MatchNameVillage is the authoritative match handler name registered with Nakama.
	MatchNameVillage = "village_match"

	// GameLabel identifies village rooms in match listings.
	GameLabel = "village"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame       int64 = 1
	OpSubmitSelection int64 = 2

	// Server -> Client events
	OpRoomState       int64 = 101
	OpGameStarted     int64 = 103
	OpRoundSubmission int64 = 105 // relayed to every presence, the sender included
	OpRoundResolved   int64 = 106
	OpGameEnded       int64 = 107
	OpGameAborted     int64 = 108
	OpError           int64 = 109
)

// Runtime environment keys read in MatchInit.
const (
	envBotsEnabled      = "village_bots_enabled"
	envBotAutoFillDelay = "village_bot_auto_fill_delay_sec"
)

const (
	labelStateLobby   = "lobby"
	labelStatePlaying = "playing"
)
