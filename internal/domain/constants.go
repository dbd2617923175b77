package domain

// Round limits
const (
	// MaxRolls is the number of rolls a round allows before it becomes cashout-only
	MaxRolls = 5

	// BoardSize is the edge length of the square board
	BoardSize = 6

	// PathLength is the number of cells on the board's outer ring
	PathLength = 4 * (BoardSize - 1)

	// DiceFaces is the number of faces on each die
	DiceFaces = 6
)

// Ledger units
const (
	// LedgerDecimals is the number of decimal places of the ledger's native coin
	LedgerDecimals = 8

	// BasisPointScale converts a multiplier into integer hundredths
	BasisPointScale = 100

	// DefaultPlayerLabel is sent with settlements when the player has no nickname
	DefaultPlayerLabel = "Player"

	// DefaultLeaderboardName is shown for leaderboard rows without a nickname
	DefaultLeaderboardName = "Anonymous"
)

// Settlement contract
const (
	// SettlementModule is the contract module invoked by every settlement
	SettlementModule = "snakes"

	// SettlementFunction is the contract function invoked by every settlement
	SettlementFunction = "play"

	// GameResultEventType is the ledger event emitted by the contract for every play
	GameResultEventType = "GameResult"
)

// Player profile limits
const (
	MaxNicknameLength = 20
)
