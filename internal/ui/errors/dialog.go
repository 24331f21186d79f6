package errors

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	apperrors "github.com/shhac/cavern/internal/errors"
)

// ShowError displays a simple error dialog with the error message.
func ShowError(err error, window fyne.Window) {
	if err == nil {
		return
	}

	dialog.ShowError(err, window)
}

// ErrorHandlers are the optional follow-up actions offered by ShowConnectionError.
type ErrorHandlers struct {
	OnRetry func()
	OnEdit  func() // opens the connection dialog
}

// ShowConnectionError displays a rich dialog for a failed connect or
// connection test, with recovery suggestions and technical details. Buttons
// are offered for the actions the error suggests and handlers provides.
func ShowConnectionError(err error, window fyne.Window, handlers ErrorHandlers) {
	if err == nil {
		return
	}

	uiErr := apperrors.ClassifyGRPCError(err)
	if uiErr == nil {
		dialog.ShowError(err, window)
		return
	}

	content := errorContent(uiErr)

	var d dialog.Dialog
	buttons := container.NewHBox()
	addAction := func(label string, fn func()) {
		if fn == nil || !hasAction(uiErr, label) {
			return
		}
		buttons.Add(widget.NewButton(label, func() {
			d.Hide()
			fn()
		}))
	}
	addAction("Retry", handlers.OnRetry)
	addAction("Edit Connection", handlers.OnEdit)

	closeBtn := widget.NewButton("Close", func() { d.Hide() })
	closeBtn.Importance = widget.HighImportance
	buttons.Add(closeBtn)

	// Explicit size keeps long details from resizing the window
	d = dialog.NewCustomWithoutButtons(uiErr.Title,
		container.NewBorder(nil, container.NewCenter(buttons), nil, nil, content), window)
	d.Resize(fyne.NewSize(500, 400))
	d.Show()
}

// errorContent lays out the message, recovery suggestions and collapsed
// technical details of uiErr. Labels wrap so long text cannot widen the dialog.
func errorContent(uiErr *apperrors.UIError) *fyne.Container {
	msgLabel := widget.NewLabel(uiErr.Message)
	msgLabel.Wrapping = fyne.TextWrapWord
	content := container.NewVBox(msgLabel)

	if len(uiErr.Recovery) > 0 {
		content.Add(widget.NewSeparator())
		content.Add(widget.NewLabel("You can:"))
		for _, suggestion := range uiErr.Recovery {
			lbl := widget.NewLabel("• " + suggestion)
			lbl.Wrapping = fyne.TextWrapWord
			content.Add(lbl)
		}
	}

	if uiErr.Details != "" {
		detailsLabel := widget.NewLabel(uiErr.Details)
		detailsLabel.Wrapping = fyne.TextWrapWord
		content.Add(widget.NewAccordion(
			widget.NewAccordionItem("Technical Details", detailsLabel),
		))
	}

	return content
}

func hasAction(uiErr *apperrors.UIError, label string) bool {
	for _, action := range uiErr.Actions {
		if action.Label == label {
			return true
		}
	}
	return false
}
