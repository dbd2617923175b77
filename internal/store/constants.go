package store

// Key prefixes for persisted player state
const (
	KeyPrefixNickname   = "nickname_"
	KeyPrefixHistory    = "gameHistory_"
	KeyPrefixActiveGame = "activeGame_"
)

// Backend names accepted by configuration
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Error messages
const (
	ErrMsgDecodeFailed = "failed to decode stored value"
	ErrMsgEncodeFailed = "failed to encode value"
)

// NicknameKey returns the key holding a player's nickname
func NicknameKey(player string) string { return KeyPrefixNickname + player }

// HistoryKey returns the key holding a player's round history
func HistoryKey(player string) string { return KeyPrefixHistory + player }

// ActiveGameKey returns the key holding a player's active-round marker
func ActiveGameKey(player string) string { return KeyPrefixActiveGame + player }
