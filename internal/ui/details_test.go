package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/shhac/cavern/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestConnectionDetails(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	d := NewConnectionDetails()
	assert.True(t, d.placeholder.Visible())
	assert.False(t, d.form.Visible())

	conn := domain.NewConnectionSettings()
	conn.Name = "prod"
	conn.Timeout = 15 * time.Second
	conn.SSL = &domain.SSLSettings{
		Enabled:               true,
		CAFile:                "/etc/ssl/ca.pem",
		AllowInvalidHostnames: true,
	}
	d.SetConnection(conn)

	assert.False(t, d.placeholder.Visible())
	assert.True(t, d.form.Visible())
	assert.Equal(t, "prod", d.values["Name"].Text)
	assert.Equal(t, "15s", d.values["Timeout"].Text)
	assert.Equal(t, "SSL", d.values["SSL"].Text)
	assert.Equal(t, "/etc/ssl/ca.pem", d.values[domain.LabelCAFile].Text)
	assert.Equal(t, "-", d.values[domain.LabelPEMFile].Text)
	assert.Equal(t, "Allowed", d.values["Invalid Hostnames"].Text)
	assert.Equal(t, "Rejected", d.values["Invalid Certificates"].Text)

	d.SetConnection(nil)
	assert.True(t, d.placeholder.Visible())
}
