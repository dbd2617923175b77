package ledger

import "time"

// Gateway routes
const (
	PathTransactions = "/v1/transactions"
	PathBalances     = "/v1/balances/"
	PathEvents       = "/v1/events"
)

// Gateway defaults
const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryDelay   = 500 * time.Millisecond
	DefaultRetryJitter  = 100 * time.Millisecond
	HeaderAPIKey        = "X-API-Key"
	ErrorCodeRejected   = "user_rejected"
	maxErrorBodyBytes   = 4096
	simulatedTxIDPrefix = "sim_"
)

// Error messages
const (
	ErrMsgMarshalFailed     = "failed to marshal request"
	ErrMsgCreateRequest     = "failed to create request"
	ErrMsgRequestFailed     = "ledger request failed"
	ErrMsgDecodeFailed      = "failed to decode ledger response"
	ErrMsgInvalidBalance    = "invalid balance value"
	ErrMsgInsufficientFunds = "insufficient balance for stake"
	ErrMsgMissingDigest     = "ledger returned no transaction digest"
	ErrMsgRetriesExhausted  = "max retries exceeded"
	ErrMsgUnexpectedStatus  = "unexpected status"
)

// Log messages
const (
	LogMsgRetrying          = "Retrying ledger request"
	LogMsgSubmitted         = "Transaction submitted"
	LogMsgSimulatedSettled  = "Simulated settlement recorded"
	LogMsgSimulatedRejected = "Simulated settlement rejected"
)
