package postgres

// Table and column names of the player state table
const (
	tablePlayerState = "player_state"
	colKey           = "key"
	colValue         = "value"
	colUpdatedAt     = "updated_at"
)

// Error Messages
const (
	ErrMsgFailedToBuildQuery = "failed to build query"
	ErrMsgFailedToGetState   = "failed to get player state"
	ErrMsgFailedToSetState   = "failed to set player state"
	ErrMsgFailedToDelete     = "failed to delete player state"
	ErrMsgFailedToUpdate     = "failed to update player state"
)
