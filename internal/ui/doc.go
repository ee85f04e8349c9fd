package ui

// Package ui contains the Fyne user interface of the Deck client: sign-in,
// the board list with its app menu, board details with stack tabs and
// drag-and-drop card moves, card details and creation. Screens read from the
// global store, call the board service off the UI goroutine and apply results
// with fyne.Do. All UI strings are localized via Localization.
