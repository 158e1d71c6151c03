package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 40xx - Validation errors
	CodeInvalidInput          = 4001
	CodeInvalidAmount         = 4002
	CodeBelowMinimum          = 4003
	CodeAboveMaximum          = 4004
	CodeInvalidPayoutTarget   = 4005
	CodeMissingExternalRef    = 4006
	CodeInvalidMethod         = 4007
	CodeInvalidMobile         = 4008
	CodeWeakPassword          = 4009
	CodeInvalidFee            = 4010
	CodeUnsupportedCurrency   = 4011
	CodeInvalidMatch          = 4012
	CodeNegativeBalance       = 4013
	CodeAmountOverflow        = 4014
	CodeInvalidRequest        = 4015
	CodeInvalidCredentials    = 4101
	CodeUnauthorized          = 4102
	CodeForbidden             = 4103
	CodeAccountNotFound       = 4041
	CodeMatchNotFound         = 4042
	CodeTransactionNotFound   = 4043
	CodeInsufficientBalance   = 4091
	CodeSlotsFull             = 4092
	CodeAlreadyJoined         = 4093
	CodeDuplicateAccount      = 4094
	CodeTransactionNotPending = 4095

	// 5xxx - Server errors
	CodeInternalServer    = 5000
	CodeStoreUnavailable  = 5031
	CodeAdviceUnavailable = 5032
	CodeShuttingDown      = 5033
)

// Validation errors: malformed input, nothing is mutated
var (
	// ErrInvalidInput is returned when the game UID is not numeric or a join field is empty
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAmount is returned when an amount cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when an amount is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountOverflow is returned when an amount does not fit in minor units
	ErrAmountOverflow = errors.New("amount is too large")

	// ErrBelowMinimum is returned when a wallet request is under the allowed minimum
	ErrBelowMinimum = errors.New("amount is below the minimum")

	// ErrAboveMaximum is returned when a wallet request is over the allowed maximum
	ErrAboveMaximum = errors.New("amount is above the maximum")

	// ErrInvalidPayoutTarget is returned when a withdraw payout number is malformed
	ErrInvalidPayoutTarget = errors.New("invalid payout target")

	// ErrMissingExternalRef is returned when a deposit has no payment reference
	ErrMissingExternalRef = errors.New("external reference is required")

	// ErrInvalidMethod is returned for an unknown payment channel
	ErrInvalidMethod = errors.New("invalid payment method")

	// ErrInvalidMobile is returned when a mobile number is too short or not numeric
	ErrInvalidMobile = errors.New("invalid mobile number")

	// ErrWeakPassword is returned when a password is too short
	ErrWeakPassword = errors.New("password is too short")

	// ErrInvalidFee is returned when an entry fee descriptor cannot be understood
	ErrInvalidFee = errors.New("invalid entry fee")

	// ErrUnsupportedCurrency is returned when a fee is not in the wallet currency
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrInvalidMatch is returned when match fields break capacity rules
	ErrInvalidMatch = errors.New("invalid match")

	// ErrNegativeBalance is returned when a balance override would go below zero
	ErrNegativeBalance = errors.New("balance cannot be negative")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")
)

// Business rule violations
var (
	// ErrInsufficientBalance is returned when an account cannot cover a fee or withdrawal
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSlotsFull is returned when a match has no free slot
	ErrSlotsFull = errors.New("match slots are full")

	// ErrAlreadyJoined is returned when the account already has a registration for the match
	ErrAlreadyJoined = errors.New("account already joined this match")

	// ErrDuplicateAccount is returned when the mobile number is already registered
	ErrDuplicateAccount = errors.New("account already exists")
)

// Lookup, auth and stale state errors
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrKeyNotFound is returned by a store when nothing is saved under the key
	ErrKeyNotFound = errors.New("key not found")

	ErrInvalidCredentials = errors.New("invalid mobile number or password")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("not allowed for this role")

	// ErrTransactionNotPending is returned when a resolved transaction is approved or rejected again
	ErrTransactionNotPending = errors.New("transaction is not pending")
)

// Infrastructure errors
var (
	// ErrStoreUnavailable is returned when the backing store cannot be reached
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrAdviceUnavailable is returned when the advice service fails
	ErrAdviceUnavailable = errors.New("advice service unavailable")

	// ErrShuttingDown is returned when work is submitted after shutdown started
	ErrShuttingDown = errors.New("service is shutting down")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// Kind groups errors by how callers should react to them
type Kind string

const (
	KindValidation   Kind = "validation"
	KindBusinessRule Kind = "business_rule"
	KindNotFound     Kind = "not_found"
	KindAuth         Kind = "auth"
	KindStaleState   Kind = "stale_state"
	KindExternal     Kind = "external"
	KindInternal     Kind = "internal"
)

var kindTable = []struct {
	kind Kind
	errs []error
}{
	{KindValidation, []error{
		ErrInvalidInput, ErrInvalidAmount, ErrNegativeAmount, ErrAmountOverflow, ErrBelowMinimum,
		ErrAboveMaximum, ErrInvalidPayoutTarget, ErrMissingExternalRef, ErrInvalidMethod, ErrInvalidMobile,
		ErrWeakPassword, ErrInvalidFee, ErrUnsupportedCurrency, ErrInvalidMatch, ErrNegativeBalance, ErrInvalidRequest,
	}},
	{KindBusinessRule, []error{ErrInsufficientBalance, ErrSlotsFull, ErrAlreadyJoined, ErrDuplicateAccount}},
	{KindNotFound, []error{ErrAccountNotFound, ErrMatchNotFound, ErrTransactionNotFound, ErrKeyNotFound}},
	{KindAuth, []error{ErrInvalidCredentials, ErrUnauthorized, ErrForbidden}},
	{KindStaleState, []error{ErrTransactionNotPending}},
	{KindExternal, []error{ErrStoreUnavailable, ErrAdviceUnavailable, ErrShuttingDown}},
}

// KindOf classifies err; unknown errors are internal
func KindOf(err error) Kind {
	for _, entry := range kindTable {
		for _, target := range entry.errs {
			if errors.Is(err, target) {
				return entry.kind
			}
		}
	}
	return KindInternal
}

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrBelowMinimum):
		return CodeBelowMinimum
	case errors.Is(err, ErrAboveMaximum):
		return CodeAboveMaximum
	case errors.Is(err, ErrInvalidPayoutTarget):
		return CodeInvalidPayoutTarget
	case errors.Is(err, ErrMissingExternalRef):
		return CodeMissingExternalRef
	case errors.Is(err, ErrInvalidMethod):
		return CodeInvalidMethod
	case errors.Is(err, ErrInvalidMobile):
		return CodeInvalidMobile
	case errors.Is(err, ErrWeakPassword):
		return CodeWeakPassword
	case errors.Is(err, ErrInvalidFee):
		return CodeInvalidFee
	case errors.Is(err, ErrUnsupportedCurrency):
		return CodeUnsupportedCurrency
	case errors.Is(err, ErrInvalidMatch):
		return CodeInvalidMatch
	case errors.Is(err, ErrNegativeBalance):
		return CodeNegativeBalance
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrMatchNotFound):
		return CodeMatchNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrSlotsFull):
		return CodeSlotsFull
	case errors.Is(err, ErrAlreadyJoined):
		return CodeAlreadyJoined
	case errors.Is(err, ErrDuplicateAccount):
		return CodeDuplicateAccount
	case errors.Is(err, ErrTransactionNotPending):
		return CodeTransactionNotPending
	case errors.Is(err, ErrStoreUnavailable):
		return CodeStoreUnavailable
	case errors.Is(err, ErrAdviceUnavailable):
		return CodeAdviceUnavailable
	case errors.Is(err, ErrShuttingDown):
		return CodeShuttingDown
	default:
		return CodeInternalServer
	}
}

// ValidationError carries the offending field for a malformed input
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Field, e.Err, e.Reason)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"value":      e.Value,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, value, reason string, err error) error {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
		Err:    err,
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	AccountKey  string
	Required    string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for account %s: required %s, available %s",
		e.AccountKey, e.Required, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"account":         e.AccountKey,
		"required":        e.Required,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(accountKey, required, currentBalance string) error {
	return &InsufficientBalanceError{
		AccountKey:  accountKey,
		Required:    required,
		CurrBalance: currentBalance,
	}
}

// RegistrationError describes a rejected join attempt
type RegistrationError struct {
	AccountKey string
	MatchID    string
	Err        error
}

// Error implements the error interface
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("join rejected for account %s on match %s: %v", e.AccountKey, e.MatchID, e.Err)
}

// Unwrap returns the underlying error
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *RegistrationError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "registration_error",
		"account":    e.AccountKey,
		"match_id":   e.MatchID,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
	var balanceErr *InsufficientBalanceError
	if errors.As(e.Err, &balanceErr) {
		fields["required"] = balanceErr.Required
		fields["current_balance"] = balanceErr.CurrBalance
	}
	return fields
}

// NewRegistrationError wraps err with the account and match it concerns
func NewRegistrationError(accountKey, matchID string, err error) error {
	return &RegistrationError{
		AccountKey: accountKey,
		MatchID:    matchID,
		Err:        err,
	}
}

// StaleStateError reports an approve/reject call on an already resolved transaction
type StaleStateError struct {
	TransactionID string
	Status        string
}

// Error implements the error interface
func (e *StaleStateError) Error() string {
	return fmt.Sprintf("transaction %s is already %s", e.TransactionID, e.Status)
}

// Is checks if the target error is an ErrTransactionNotPending
func (e *StaleStateError) Is(target error) bool {
	return target == ErrTransactionNotPending
}

// LogFields returns a map of fields for structured logging
func (e *StaleStateError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "stale_state",
		"transaction_id": e.TransactionID,
		"status":         e.Status,
		"error_code":     CodeTransactionNotPending,
	}
}

// NewStaleStateError creates a stale state error for a resolved transaction
func NewStaleStateError(transactionID, status string) error {
	return &StaleStateError{
		TransactionID: transactionID,
		Status:        status,
	}
}

// LogFields extracts structured fields from err when it provides them
func LogFields(err error) map[string]any {
	var withFields interface{ LogFields() map[string]any }
	if errors.As(err, &withFields) {
		return withFields.LogFields()
	}
	return map[string]any{
		"error":      err.Error(),
		"error_code": ErrorCode(err),
	}
}

// IsValidationError checks if the error is caused by malformed input
func IsValidationError(err error) bool {
	return KindOf(err) == KindValidation
}

// IsBusinessRuleError checks if the error is a business rule violation
func IsBusinessRuleError(err error) bool {
	return KindOf(err) == KindBusinessRule
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsStaleStateError checks if the error is a repeated moderation call
func IsStaleStateError(err error) bool {
	return errors.Is(err, ErrTransactionNotPending)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return KindOf(err) == KindNotFound
}
