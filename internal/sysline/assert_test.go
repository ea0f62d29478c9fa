package sysline

import "testing"

func TestAssertNoopWhenDisabled(t *testing.T) {
	SetDebugAssertions(false)
	defer SetDebugAssertions(false)

	assert(false, "this must never panic while debug assertions are off")
}

func TestAssertPanicsWhenEnabled(t *testing.T) {
	SetDebugAssertions(true)
	defer SetDebugAssertions(false)

	defer func() {
		if recover() == nil {
			t.Fatalf("assert(false, ...) did not panic with debug assertions enabled")
		}
	}()
	assert(false, "expected panic: %d", 42)
}

func TestAssertTruePanicsNever(t *testing.T) {
	SetDebugAssertions(true)
	defer SetDebugAssertions(false)

	assert(true, "a true condition must never panic")
}
