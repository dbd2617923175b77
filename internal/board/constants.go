package board

// DoubleBonus is the bonus value that stacks multiplicatively
const DoubleBonus = 2.0

// StartIndex is the path index every round starts on; it never holds a hazard or bonus
const StartIndex = 0

// Error context messages
const (
	ErrContextLoadDifficulties = "failed to load difficulty table"
	ErrContextInvalidTier      = "invalid difficulty tier"
	ErrContextDrawLayout       = "failed to draw board layout"
	ErrContextDrawBonus        = "failed to draw bonus value"
)

// Log messages
const (
	LogMsgDifficultiesLoaded = "Difficulty table loaded"
	LogMsgBoardGenerated     = "Board generated"
)
