package custom_err

import "errors"

var (
	// Remittance errors
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidState      = errors.New("transition not allowed from current state")
	ErrInsufficientFloat = errors.New("insufficient agent float")
	ErrDuplicateRequest  = errors.New("duplicate request")
	ErrRiskBlocked       = errors.New("transaction blocked by risk engine")

	// Pricing errors
	ErrNotProfitable    = errors.New("quote would be issued at a loss")
	ErrNoActiveSchedule = errors.New("no active fee schedule for channel")

	// Ledger errors
	ErrLedgerConsistency = errors.New("ledger entries do not balance")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrTokenExpired = errors.New("token has expired")
	ErrCSRFMismatch = errors.New("csrf token mismatch")

	// Validation errors
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidChannel = errors.New("invalid channel")
	ErrInvalidAmount  = errors.New("invalid amount")

	// Rate limiting
	ErrRateLimited = errors.New("rate limit exceeded")
)
