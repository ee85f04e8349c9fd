package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/deck-mobile/internal/model"
)

// NewCardScreen creates a card in a stack and returns to the board
type NewCardScreen struct {
	*shared

	boardID, stackID int

	titleEntry       *widget.Entry
	descriptionEntry *widget.Entry
	createBtn        *widget.Button
	content          fyne.CanvasObject
}

// NewNewCardScreen creates the card creation screen
func NewNewCardScreen(s *shared, boardID, stackID int) *NewCardScreen {
	sc := &NewCardScreen{shared: s, boardID: boardID, stackID: stackID}

	sc.titleEntry = sc.mobile.CreateMobileEntry(sc.loc.GetText(KeyCardTitle))
	sc.titleEntry.OnSubmitted = func(string) { sc.Submit() }
	sc.descriptionEntry = widget.NewMultiLineEntry()
	sc.descriptionEntry.SetPlaceHolder(sc.loc.GetText(KeyCardDescription))
	sc.descriptionEntry.Wrapping = fyne.TextWrapWord
	sc.descriptionEntry.SetMinRowsVisible(6)

	sc.createBtn = widget.NewButton(sc.loc.GetText(KeyCreate), sc.Submit)
	sc.createBtn.Importance = widget.HighImportance

	sc.content = sc.mobile.Padded(container.NewVBox(sc.titleEntry, sc.descriptionEntry, sc.createBtn))
	return sc
}

// Title implements Screen
func (sc *NewCardScreen) Title() string {
	return sc.loc.GetText(KeyCreateCard)
}

// Content implements Screen
func (sc *NewCardScreen) Content() fyne.CanvasObject {
	return sc.content
}

// Submit creates the card
func (sc *NewCardScreen) Submit() {
	title, description := sc.titleEntry.Text, sc.descriptionEntry.Text
	sc.createBtn.Disable()

	runAsync(sc.shared, func(ctx context.Context) (*model.Card, error) {
		return sc.boards.CreateCard(ctx, sc.boardID, sc.stackID, title, description)
	}, func(_ *model.Card, err error) {
		sc.createBtn.Enable()
		if err != nil {
			sc.showError(err)
			return
		}
		if sc.nav.Current() == Screen(sc) {
			sc.nav.Pop()
		}
	})
}
