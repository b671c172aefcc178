package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	err := Unavailable("get reservations", cause)

	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Unavailable() = %v, want it to match ErrStoreUnavailable", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Unavailable() = %v, want it to keep the cause", err)
	}
	if !strings.HasPrefix(err.Error(), "get reservations: ") {
		t.Errorf("Unavailable() = %q, want the operation as prefix", err.Error())
	}
	if Unavailable("noop", nil) != nil {
		t.Error("Unavailable(nil) should return nil")
	}
}

func TestIsTaxonomy(t *testing.T) {
	if !IsTaxonomy(fmt.Errorf("slot 3: %w", ErrSlotTaken)) {
		t.Error("wrapped ErrSlotTaken should be taxonomy")
	}
	if !IsTaxonomy(Unavailable("x", errors.New("eof"))) {
		t.Error("Unavailable() should be taxonomy")
	}
	if IsTaxonomy(errors.New("database is locked")) {
		t.Error("raw driver error should not be taxonomy")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"nil", nil, ""},
		{"unavailable", Unavailable("insert", errors.New("broken pipe")), "Unable to reach the booking database"},
		{"challenge", fmt.Errorf("connect LAB_01: %w", ErrChallengeFailed), "does not match"},
		{"not found", fmt.Errorf("machine %q: %w", "X", ErrNotFound), "could not be found"},
		{"invalid slot", ErrInvalidSlot, "between 0 and 23"},
		{"invalid identity", ErrInvalidIdentity, "exactly 8 digits"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserMessage(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("UserMessage(%v) = %q, want to contain %q", tt.err, got, tt.contains)
			}
		})
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}
