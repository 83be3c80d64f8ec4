//go:build !release

package invariant

// Enabled reports whether invariant checks run in this build.
const Enabled = true
