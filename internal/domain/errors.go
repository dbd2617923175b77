package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Input errors
	ErrMsgInvalidStake      = "stake must be a positive amount"
	ErrMsgUnknownDifficulty = "unknown difficulty"
	ErrMsgMissingIdentity   = "player identity is required"
	ErrMsgNotConfigured     = "game package is not configured"
	ErrMsgInvalidNickname   = "nickname must be 1 to 20 characters"
	ErrMsgInvalidPage       = "page must be positive"

	// Round state errors
	ErrMsgRoundInProgress      = "a round is already in progress"
	ErrMsgNoActiveRound        = "no active round"
	ErrMsgRollInProgress       = "a roll is already in progress"
	ErrMsgRollLimitReached     = "no rolls left, cash out to finish the round"
	ErrMsgCashoutNoRolls       = "roll at least once before cashing out"
	ErrMsgSettlementInProgress = "a settlement is already in progress"
	ErrMsgRoundLost            = "round is lost"
	ErrMsgInvalidTransition    = "invalid round transition"
	ErrMsgInvalidDice          = "dice value out of range"

	// Settlement errors
	ErrMsgUserDeclined = "user rejected the request"

	// Storage errors
	ErrMsgNotFound = "not found"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidStake      = errors.New(ErrMsgInvalidStake)
	ErrUnknownDifficulty = errors.New(ErrMsgUnknownDifficulty)
	ErrMissingIdentity   = errors.New(ErrMsgMissingIdentity)
	ErrNotConfigured     = errors.New(ErrMsgNotConfigured)
	ErrInvalidNickname   = errors.New(ErrMsgInvalidNickname)
	ErrInvalidPage       = errors.New(ErrMsgInvalidPage)

	ErrRoundInProgress      = errors.New(ErrMsgRoundInProgress)
	ErrNoActiveRound        = errors.New(ErrMsgNoActiveRound)
	ErrRollInProgress       = errors.New(ErrMsgRollInProgress)
	ErrRollLimitReached     = errors.New(ErrMsgRollLimitReached)
	ErrCashoutNoRolls       = errors.New(ErrMsgCashoutNoRolls)
	ErrSettlementInProgress = errors.New(ErrMsgSettlementInProgress)
	ErrRoundLost            = errors.New(ErrMsgRoundLost)
	ErrInvalidTransition    = errors.New(ErrMsgInvalidTransition)
	ErrInvalidDice          = errors.New(ErrMsgInvalidDice)

	// ErrUserDeclined is returned by signers when the player aborts signing
	ErrUserDeclined = errors.New(ErrMsgUserDeclined)

	ErrNotFound = errors.New(ErrMsgNotFound)
)
