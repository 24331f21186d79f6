package settings

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTimeoutPreference(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	assert.Zero(t, DefaultTimeoutPreference(app))

	app.Preferences().SetFloat(PrefDefaultTimeout, 2.5)
	assert.Equal(t, 2500*time.Millisecond, DefaultTimeoutPreference(app))

	app.Preferences().SetFloat(PrefDefaultTimeout, -1)
	assert.Zero(t, DefaultTimeoutPreference(app))
}
