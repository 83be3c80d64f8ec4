package invariant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPasses(t *testing.T) {
	assert.NotPanics(t, func() { Check(true, "never") })
}

func TestCheckPanicsWithMessage(t *testing.T) {
	if !Enabled {
		t.Skip("checks disabled in release builds")
	}
	assert.PanicsWithValue(t, "invariant violated: sector 4 out of range", func() {
		Check(false, "sector %d out of range", 4)
	})
}
