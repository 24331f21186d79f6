package components

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"SSL", 12, "SSL"},
		{"exactly12chr", 12, "exactly12chr"},
		{"SSL, client certificate", 12, "SSL, client…"},
		{"証明書を使用する接続です", 5, "証明書を…"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateRunes(tt.in, tt.max))
	}
}

func TestHintLabel_SetText(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	h := NewHintLabel("plain")
	assert.Equal(t, "plain", h.label.Text)
	assert.False(t, h.needsTooltip())

	h.SetText("SSL, client certificate")
	assert.Equal(t, "SSL, client…", h.label.Text)
	assert.True(t, h.needsTooltip())
}
