package player

// Error contexts
const (
	ErrContextGetNickname  = "failed to get nickname"
	ErrContextSetNickname  = "failed to set nickname"
	ErrContextActiveMarker = "failed to update active round marker"
)

// Log messages
const (
	LogMsgNicknameSet = "Nickname updated"
)
