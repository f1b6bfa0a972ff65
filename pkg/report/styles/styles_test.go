package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedStylesParse(t *testing.T) {
	for _, name := range []string{"Title", "Done", "Skipped", "Failed", "Warning"} {
		assert.Contains(t, Names(), name)
	}
}

func TestGetUnknownStyleIsUsable(t *testing.T) {
	// must not panic, must render text unchanged
	s := Get("NoSuchStyle")
	assert.Equal(t, "plain", s.Render("plain"))
}
