package errclass_test

import (
	"fmt"
	"testing"

	"github.com/wattpath/evroute/routing/errclass"
)

func TestClass_MatchesWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("loading graph: %w", errclass.IOError)
	class, ok := errclass.Class(wrapped)
	if !ok || class != errclass.IOError {
		t.Fatalf("Class(%v) = (%v, %v), want (IOError, true)", wrapped, class, ok)
	}
}

func TestClass_UnrecognizedErrorReturnsFalse(t *testing.T) {
	if _, ok := errclass.Class(fmt.Errorf("some other error")); ok {
		t.Fatalf("expected an unrelated error not to match any class")
	}
}
