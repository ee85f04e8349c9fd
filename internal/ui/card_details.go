package ui

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/deck-mobile/internal/model"
)

// CardDetailsScreen shows a card read-only
type CardDetailsScreen struct {
	*shared

	boardID, stackID, cardID int

	title       *widget.Label
	due         *widget.Label
	labels      *fyne.Container
	description *widget.RichText
	content     fyne.CanvasObject

	unsubscribe func()
	now         func() time.Time
}

// NewCardDetailsScreen creates the detail screen of a card
func NewCardDetailsScreen(s *shared, boardID, stackID, cardID int) *CardDetailsScreen {
	sc := &CardDetailsScreen{
		shared:  s,
		boardID: boardID,
		stackID: stackID,
		cardID:  cardID,
		now:     time.Now,
	}

	sc.title = widget.NewLabel("")
	sc.title.TextStyle = fyne.TextStyle{Bold: true}
	sc.title.SizeName = theme.SizeNameSubHeadingText
	sc.title.Wrapping = fyne.TextWrapWord
	sc.due = widget.NewLabel("")
	sc.labels = container.NewHBox()
	sc.description = widget.NewRichTextFromMarkdown("")
	sc.description.Wrapping = fyne.TextWrapWord

	descriptionHeader := widget.NewLabel(sc.loc.GetText(KeyDescription))
	descriptionHeader.TextStyle = fyne.TextStyle{Bold: true}

	sc.content = container.NewVScroll(sc.mobile.Padded(container.NewVBox(
		sc.title,
		sc.due,
		sc.labels,
		widget.NewSeparator(),
		descriptionHeader,
		sc.description,
	)))
	return sc
}

// Title implements Screen
func (sc *CardDetailsScreen) Title() string {
	if card, ok := sc.card(); ok {
		return card.GetDisplayTitle()
	}
	return model.DashPlaceholder
}

// Content implements Screen
func (sc *CardDetailsScreen) Content() fyne.CanvasObject {
	return sc.content
}

// Shown starts observing the store
func (sc *CardDetailsScreen) Shown() {
	sc.unsubscribe = sc.observe(sc.render)
	sc.render()
}

// Hidden stops observing the store
func (sc *CardDetailsScreen) Hidden() {
	if sc.unsubscribe != nil {
		sc.unsubscribe()
		sc.unsubscribe = nil
	}
}

func (sc *CardDetailsScreen) card() (model.Card, bool) {
	board, ok := sc.store.Board(sc.boardID)
	if !ok {
		return model.Card{}, false
	}
	stack, ok := board.Stack(sc.stackID)
	if !ok {
		return model.Card{}, false
	}
	card, _ := stack.Card(sc.cardID)
	if card == nil {
		return model.Card{}, false
	}
	return *card, true
}

func (sc *CardDetailsScreen) render() {
	card, ok := sc.card()
	if !ok {
		// Moved to another stack or deleted meanwhile
		return
	}

	sc.title.SetText(card.GetDisplayTitle())

	due := sc.loc.GetText(KeyDueDate) + ": " + card.GetDueString()
	sc.due.Importance = widget.MediumImportance
	if card.IsOverdue(sc.now()) {
		due += MiddleDotSeparator + sc.loc.GetText(KeyOverdue)
		sc.due.Importance = widget.DangerImportance
	}
	sc.due.SetText(due)

	sc.labels.Objects = nil
	for _, label := range card.Labels {
		sc.labels.Objects = append(sc.labels.Objects, labelChip(label))
	}
	sc.labels.Refresh()

	description := strings.TrimSpace(card.Description)
	if description == "" {
		description = "*" + sc.loc.GetText(KeyNoDescription) + "*"
	}
	sc.description.ParseMarkdown(description)
}

// labelChip renders a Deck label with its color
func labelChip(label model.Label) fyne.CanvasObject {
	bg := canvas.NewRectangle(ParseHexColor(label.Color))
	bg.CornerRadius = 4
	text := canvas.NewText(label.Title, labelTextColor)
	text.TextSize = 11
	return container.NewStack(bg, container.NewPadded(text))
}
