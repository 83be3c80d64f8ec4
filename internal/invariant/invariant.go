// Package invariant guards programmer-defect conditions inside the collision core.
// Checks panic in normal builds and return immediately under the "release" build
// tag. Arguments are still evaluated, so callers wrap costly conditions in
// "if invariant.Enabled".
package invariant

import "fmt"

// Check panics with a formatted message when cond is false and checks are enabled.
func Check(cond bool, format string, args ...any) {
	if !Enabled || cond {
		return
	}
	panic("invariant violated: " + fmt.Sprintf(format, args...))
}
