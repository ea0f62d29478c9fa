package sysline

import (
	"fmt"
	"os"
)

// debugAssertions gates the invariant checks below, mirroring the Rust
// original's #[cfg(debug_assertions)] debug_assert!/debug_assert_lt! macros
// (original_source/src/Readers/syslinereader.rs) with Go's idiom of a
// runtime flag instead of a compile-time cfg: release builds degrade
// instead of crashing (SPEC_FULL.md §10.2). Set by SetDebugAssertions, or
// by the LOGSEEK_DEBUG_ASSERT=1 environment variable at package init.
var debugAssertions = os.Getenv("LOGSEEK_DEBUG_ASSERT") == "1"

// SetDebugAssertions enables or disables the package's debug-assertion
// checks, overriding whatever LOGSEEK_DEBUG_ASSERT was set to. Called from
// cmd/root.go when --debug-assert or the config file's debug_assert turns
// the checks on.
func SetDebugAssertions(enabled bool) {
	debugAssertions = enabled
}

// assert panics with a formatted message if debugAssertions is enabled and
// cond is false; it is a no-op otherwise. Only ever used to check
// invariants that indicate a bug in this package, never to validate input.
func assert(cond bool, format string, args ...any) {
	if !debugAssertions || cond {
		return
	}
	panic(fmt.Sprintf("sysline: assertion failed: "+format, args...))
}
