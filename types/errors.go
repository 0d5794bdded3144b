package types

import "fmt"

// EscrowError is the error type surfaced to callers. Code is stable across
// releases; Message is informational only.
type EscrowError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *EscrowError) Error() string {
	return e.Message
}

// Errorf builds an EscrowError with a formatted message.
func Errorf(code string, format string, args ...interface{}) *EscrowError {
	return &EscrowError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Common error codes
const (
	ErrInvalidInstruction = "INVALID_INSTRUCTION"
	ErrMissingSigner      = "MISSING_SIGNER"
	ErrMissingAccount     = "MISSING_ACCOUNT"
	ErrAddressMismatch    = "ADDRESS_MISMATCH"
	ErrInvalidAmount      = "INVALID_AMOUNT"
	ErrInvalidMint        = "INVALID_MINT"
	ErrInsufficientFunds  = "INSUFFICIENT_FUNDS"
	ErrAlreadyProcessed   = "ALREADY_PROCESSED"
	ErrAccountInUse       = "ACCOUNT_IN_USE"
	ErrRecordNotFound     = "RECORD_NOT_FOUND"
	ErrAccountFrozen      = "ACCOUNT_FROZEN"
	ErrConfigError        = "CONFIG_ERROR"
	ErrUnauthorized       = "UNAUTHORIZED"

	// Reserved codes kept for taxonomy parity; no current operation emits them.
	ErrInvalidRecipient = "INVALID_RECIPIENT"
	ErrPaymentExpired   = "PAYMENT_EXPIRED"
)

// CodeOf returns the escrow error code of err, or the empty string if err is
// not an EscrowError.
func CodeOf(err error) string {
	if e, ok := err.(*EscrowError); ok {
		return e.Code
	}
	return ""
}
