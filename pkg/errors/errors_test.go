package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidLink, "test message: %s", "value")

	if err.Code != ErrCodeInvalidLink {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidLink)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeTransport, cause, "failed to fetch")

	if err.Code != ErrCodeTransport {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeTransport)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	want := "TRANSPORT_ERROR: failed to fetch: underlying error"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeArchiveFormat, "test"),
			code:     ErrCodeArchiveFormat,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeArchiveFormat, "test"),
			code:     ErrCodeTransport,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeMemberRead, New(ErrCodeArchiveFormat, "inner"), "outer"),
			code:     ErrCodeMemberRead,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidLink,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidLink,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeResumeTokenNotFound, "test"),
			expected: ErrCodeResumeTokenNotFound,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidLink, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNoEvidence(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeArchiveFormat, "bad zip"), true},
		{New(ErrCodeMemberRead, "short read"), true},
		{New(ErrCodeTransport, "refused"), true},
		{New(ErrCodeNotFound, "404"), true},
		{New(ErrCodeDecoding, "utf-8"), true},
		{New(ErrCodeResumeTokenNotFound, "missing"), false},
		{New(ErrCodeInternal, "bug"), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := NoEvidence(tt.err); got != tt.want {
			t.Errorf("NoEvidence(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
