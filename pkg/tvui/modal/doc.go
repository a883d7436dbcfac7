// Package modal renders the detail and alert dialogs of the tvui screens.
//
// A modal's button row is an ordinary Strip region driven by the same focus
// controller as the screens, so Left/Right move between buttons, Select
// returns the focused button's action and Back closes the dialog.
//
//	m := modal.New("Golden Hour", modal.WithMarkdown(video.Description)).
//	    AddButton("Play", "play").
//	    AddButton("Close", "close")
//
//	// In Update():
//	if action, closed := m.Handle(ev); closed {
//	    ...
//	}
//
//	// In View():
//	content := m.Render()
package modal
