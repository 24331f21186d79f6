package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shhac/cavern/internal/app"
	"github.com/shhac/cavern/internal/logging"
	"github.com/shhac/cavern/internal/storage"
)

func newTestWindow(t *testing.T) (*MainWindow, *app.App) {
	t.Helper()
	fyneApp := test.NewApp()
	t.Cleanup(fyneApp.Quit)

	a := app.NewWithDeps(fyneApp, app.DefaultConfig(), logging.NewNopLogger(), storage.NewMemoryRepository())
	mw := NewMainWindow(fyneApp, a)
	t.Cleanup(mw.Window().Close)
	return mw, a
}

func TestMainWindow_SelectShowsDetails(t *testing.T) {
	mw, a := newTestWindow(t)

	conn := a.NewConnection()
	conn.Name = "staging"
	require.NoError(t, a.SaveConnection(conn))

	mw.connectionList.Select(conn.ID)

	assert.Equal(t, conn.ID, a.State().SelectedConnection().ID)
	assert.True(t, mw.details.form.Visible())
	assert.Equal(t, "staging", mw.details.values["Name"].Text)
}

func TestMainWindow_EditWithoutSelection(t *testing.T) {
	mw, _ := newTestWindow(t)

	// Nothing selected: no dialog, no panic
	mw.handleEdit()
	mw.handleDelete()
	mw.handleConnect()
	assert.Nil(t, mw.app.ConnManager().Conn())
}

func TestMainWindow_MainMenu(t *testing.T) {
	mw, _ := newTestWindow(t)

	menu := mw.Window().MainMenu()
	require.NotNil(t, menu)
	require.Len(t, menu.Items, 2)
	assert.Equal(t, "File", menu.Items[0].Label)
	assert.Equal(t, "Help", menu.Items[1].Label)
}
