package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidInput", ErrInvalidInput, CodeInvalidInput},
		{"NegativeAmountSharesInvalidAmount", ErrNegativeAmount, CodeInvalidAmount},
		{"BelowMinimum", ErrBelowMinimum, CodeBelowMinimum},
		{"InsufficientBalance", ErrInsufficientBalance, CodeInsufficientBalance},
		{"SlotsFull", ErrSlotsFull, CodeSlotsFull},
		{"AlreadyJoined", ErrAlreadyJoined, CodeAlreadyJoined},
		{"MatchNotFound", ErrMatchNotFound, CodeMatchNotFound},
		{"NotPending", ErrTransactionNotPending, CodeTransactionNotPending},
		{"UnknownError", errors.New("unknown error"), CodeInternalServer},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrSlotsFull), CodeSlotsFull},
		{"ValidationError", NewValidationError("uid", "12a", "", ErrInvalidInput), CodeInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"Validation", ErrInvalidPayoutTarget, KindValidation},
		{"BusinessRule", ErrDuplicateAccount, KindBusinessRule},
		{"RichBusinessRule", NewInsufficientBalanceError("01700000000", "20 BDT", "10 BDT"), KindBusinessRule},
		{"NotFound", ErrAccountNotFound, KindNotFound},
		{"Auth", ErrForbidden, KindAuth},
		{"Stale", NewStaleStateError("tx-1", "approved"), KindStaleState},
		{"External", ErrAdviceUnavailable, KindExternal},
		{"Internal", errors.New("boom"), KindInternal},
		{"WrappedRegistration", NewRegistrationError("01700000000", "match-1", ErrSlotsFull), KindBusinessRule},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.expected {
				t.Errorf("KindOf(%v) = %s, want %s", tc.err, got, tc.expected)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("amount", "5", "minimum is 10 BDT", ErrBelowMinimum)

	expectedMsg := "amount: amount is below the minimum (minimum is 10 BDT)"
	if err.Error() != expectedMsg {
		t.Errorf("ValidationError.Error() = %s, want %s", err.Error(), expectedMsg)
	}
	if !errors.Is(err, ErrBelowMinimum) {
		t.Errorf("errors.Is(err, ErrBelowMinimum) = false, want true")
	}

	fields := LogFields(err)
	if fields["field"] != "amount" || fields["error_code"] != CodeBelowMinimum {
		t.Errorf("LogFields() = %v, want field=amount and code=%d", fields, CodeBelowMinimum)
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError("01711111111", "150.00", "100.00")

	expectedMsg := "insufficient balance for account 01711111111: required 150.00, available 100.00"
	if err.Error() != expectedMsg {
		t.Errorf("InsufficientBalanceError.Error() = %s, want %s", err.Error(), expectedMsg)
	}
	if !IsInsufficientBalanceError(err) {
		t.Errorf("IsInsufficientBalanceError(err) = false, want true")
	}
	if !IsBusinessRuleError(err) {
		t.Errorf("IsBusinessRuleError(err) = false, want true")
	}
}

func TestRegistrationErrorLogFields(t *testing.T) {
	inner := NewInsufficientBalanceError("01711111111", "20 BDT", "10 BDT")
	err := NewRegistrationError("01711111111", "match-42", inner)

	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("errors.Is(err, ErrInsufficientBalance) = false, want true")
	}

	fields := LogFields(err)
	if fields["match_id"] != "match-42" {
		t.Errorf("match_id = %v, want match-42", fields["match_id"])
	}
	if fields["required"] != "20 BDT" {
		t.Errorf("required = %v, want 20 BDT", fields["required"])
	}
}

func TestStaleStateError(t *testing.T) {
	err := NewStaleStateError("tx-9", "rejected")

	if !IsStaleStateError(err) {
		t.Errorf("IsStaleStateError(err) = false, want true")
	}
	if IsValidationError(err) {
		t.Errorf("IsValidationError(err) = true, want false")
	}
	if err.Error() != "transaction tx-9 is already rejected" {
		t.Errorf("StaleStateError.Error() = %s", err.Error())
	}
}

func TestLogFieldsFallback(t *testing.T) {
	fields := LogFields(ErrMatchNotFound)
	if fields["error"] != "match not found" {
		t.Errorf("error = %v, want match not found", fields["error"])
	}
	if !IsNotFoundError(ErrMatchNotFound) {
		t.Errorf("IsNotFoundError(ErrMatchNotFound) = false, want true")
	}
}
