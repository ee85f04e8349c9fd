package ui

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/deck-mobile/internal/model"
)

// BoardDetailsScreen shows the stacks of one board as tabs and the cards of
// the selected stack. Cards are moved by dragging them onto another tab.
type BoardDetailsScreen struct {
	*shared

	boardID         int
	selectedStackID int
	board           model.Board
	loading         bool
	closed          bool

	tabs     []*StackTab
	tabBar   *fyne.Container
	cards    *fyne.Container
	noCards  *widget.Label
	activity *widget.Activity
	main     *fyne.Container
	empty    *fyne.Container
	body     *fyne.Container
	content  fyne.CanvasObject

	stackEntry *widget.Entry

	unsubscribe func()

	// positionOf returns the absolute position of a tab; replaced in tests
	positionOf func(fyne.CanvasObject) fyne.Position
	now        func() time.Time
}

// NewBoardDetailsScreen creates the detail screen of a board. stackID selects
// the initial stack; 0 selects the first one.
func NewBoardDetailsScreen(s *shared, boardID, stackID int) *BoardDetailsScreen {
	sc := &BoardDetailsScreen{
		shared:          s,
		boardID:         boardID,
		selectedStackID: stackID,
		positionOf: func(o fyne.CanvasObject) fyne.Position {
			return fyne.CurrentApp().Driver().AbsolutePositionForObject(o)
		},
		now: time.Now,
	}
	sc.createUI()
	return sc
}

// Title implements Screen
func (sc *BoardDetailsScreen) Title() string {
	if board, ok := sc.store.Board(sc.boardID); ok {
		return board.GetDisplayTitle()
	}
	return model.DashPlaceholder
}

// Content implements Screen
func (sc *BoardDetailsScreen) Content() fyne.CanvasObject {
	return sc.content
}

// Actions returns the header buttons
func (sc *BoardDetailsScreen) Actions() []fyne.CanvasObject {
	refreshBtn := widget.NewButton(IconRefresh, sc.load)
	refreshBtn.Importance = widget.LowImportance
	addStackBtn := widget.NewButton(IconAdd, sc.showNewStackForm)
	addStackBtn.Importance = widget.LowImportance
	return []fyne.CanvasObject{addStackBtn, refreshBtn}
}

// Shown starts observing the store and refreshes the board
func (sc *BoardDetailsScreen) Shown() {
	sc.unsubscribe = sc.observe(sc.render)
	sc.render()
	sc.load()
}

// Hidden stops observing the store
func (sc *BoardDetailsScreen) Hidden() {
	if sc.unsubscribe != nil {
		sc.unsubscribe()
		sc.unsubscribe = nil
	}
}

// Closed forgets the board as last viewed once the user navigates back
func (sc *BoardDetailsScreen) Closed() {
	sc.closed = true
	sc.settings.ClearLastViewed()
}

// SelectedStackID returns the visible stack
func (sc *BoardDetailsScreen) SelectedStackID() int {
	return sc.selectedStackID
}

func (sc *BoardDetailsScreen) createUI() {
	sc.tabBar = container.NewHBox()
	sc.cards = container.NewVBox()
	sc.noCards = widget.NewLabel(sc.loc.GetText(KeyNoCards))
	sc.noCards.Alignment = fyne.TextAlignCenter
	sc.activity = widget.NewActivity()
	sc.activity.Hide()

	createCardBtn := widget.NewButton(sc.loc.GetText(KeyCreateCard), sc.openNewCard)
	createCardBtn.Importance = widget.HighImportance

	sc.main = container.NewBorder(
		container.NewHScroll(sc.tabBar),
		sc.mobile.Padded(createCardBtn),
		nil, nil,
		container.NewVScroll(container.NewVBox(sc.noCards, sc.cards)),
	)

	// Shown when the board has no stack
	warning := widget.NewLabel(IconWarning + " " + sc.loc.GetText(KeyNoStacks))
	warning.Wrapping = fyne.TextWrapWord
	warning.Importance = widget.WarningImportance
	sc.stackEntry = sc.mobile.CreateMobileEntry(sc.loc.GetText(KeyStackTitle))
	sc.stackEntry.OnSubmitted = func(string) { sc.createStack(sc.stackEntry.Text) }
	createStackBtn := widget.NewButton(sc.loc.GetText(KeyCreateStack), func() {
		sc.createStack(sc.stackEntry.Text)
	})
	createStackBtn.Importance = widget.HighImportance
	sc.empty = container.NewVBox(warning, sc.stackEntry, createStackBtn)

	sc.body = container.NewStack(sc.main)
	sc.content = container.NewBorder(sc.activity, nil, nil, nil, sc.body)
}

// render rebuilds tabs and cards from the store
func (sc *BoardDetailsScreen) render() {
	board, ok := sc.store.Board(sc.boardID)
	if !ok {
		return
	}
	sc.board = board

	if sc.loading {
		sc.activity.Show()
		sc.activity.Start()
	} else {
		sc.activity.Stop()
		sc.activity.Hide()
	}

	if len(board.Stacks) == 0 {
		if sc.loading {
			sc.body.Objects = nil
		} else {
			sc.body.Objects = []fyne.CanvasObject{sc.mobile.Padded(sc.empty)}
		}
		sc.body.Refresh()
		sc.refreshHeader()
		return
	}

	if _, found := board.Stack(sc.selectedStackID); !found {
		sc.selectedStackID = board.DefaultStackID()
	}

	sc.tabs = sc.tabs[:0]
	sc.tabBar.Objects = nil
	for _, stack := range board.Stacks {
		tab := NewStackTab(stack, sc.selectStack)
		tab.SetSelected(stack.ID == sc.selectedStackID)
		sc.tabs = append(sc.tabs, tab)
		sc.tabBar.Objects = append(sc.tabBar.Objects, tab)
	}
	sc.tabBar.Refresh()

	sc.cards.Objects = nil
	if stack, found := board.Stack(sc.selectedStackID); found {
		now := sc.now()
		for _, card := range stack.Cards {
			card.StackID = stack.ID
			cw := NewCardWidget(card, now)
			cw.OnTapped = sc.openCard
			cw.OnDragged = sc.dragOver
			cw.OnDropped = sc.drop
			sc.cards.Objects = append(sc.cards.Objects, cw)
		}
	}
	if len(sc.cards.Objects) == 0 {
		sc.noCards.Show()
	} else {
		sc.noCards.Hide()
	}
	sc.cards.Refresh()

	sc.body.Objects = []fyne.CanvasObject{sc.main}
	sc.body.Refresh()
	sc.refreshHeader()
}

// refreshHeader updates the title while this screen is on top
func (sc *BoardDetailsScreen) refreshHeader() {
	if sc.nav.Current() == Screen(sc) {
		sc.nav.RefreshHeader()
	}
}

// load fetches the stacks of the board
func (sc *BoardDetailsScreen) load() {
	sc.loading = true
	sc.render()

	runAsync(sc.shared, func(ctx context.Context) (int, error) {
		return sc.boards.LoadBoard(ctx, sc.boardID)
	}, func(defaultStackID int, err error) {
		sc.loading = false
		if sc.closed {
			return
		}
		if err != nil {
			sc.showError(err)
		} else if sc.selectedStackID == 0 {
			sc.selectedStackID = defaultStackID
		}
		sc.render()
		sc.rememberView()
	})
}

func (sc *BoardDetailsScreen) selectStack(stackID int) {
	if stackID == sc.selectedStackID {
		return
	}
	sc.selectedStackID = stackID
	sc.render()
	sc.rememberView()
}

func (sc *BoardDetailsScreen) rememberView() {
	if !sc.closed && sc.selectedStackID != 0 {
		sc.settings.SetLastViewed(sc.boardID, sc.selectedStackID)
	}
}

// tabAt returns the tab under the absolute position pos, or nil
func (sc *BoardDetailsScreen) tabAt(pos fyne.Position) *StackTab {
	for _, tab := range sc.tabs {
		if tab.Contains(sc.positionOf(tab), pos) {
			return tab
		}
	}
	return nil
}

func (sc *BoardDetailsScreen) dragOver(_ model.Card, pos fyne.Position) {
	target := sc.tabAt(pos)
	for _, tab := range sc.tabs {
		tab.SetHovered(tab == target)
	}
}

func (sc *BoardDetailsScreen) drop(card model.Card, pos fyne.Position) {
	target := sc.tabAt(pos)
	for _, tab := range sc.tabs {
		tab.SetHovered(false)
	}
	if target == nil || target.StackID == card.StackID {
		return
	}
	sc.moveCard(card, target.StackID)
}

// moveCard moves a card to the top of another stack. The store is updated
// at once by the service; a rejected move is reverted there and reported here.
func (sc *BoardDetailsScreen) moveCard(card model.Card, toStackID int) {
	fromStackID := card.StackID
	runAsync(sc.shared, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, sc.boards.MoveCard(ctx, sc.boardID, fromStackID, toStackID, card.ID)
	}, func(_ struct{}, err error) {
		if err != nil {
			sc.logger.Debug("card move failed", zap.Int("card_id", card.ID), zap.Error(err))
			if sc.closed {
				return
			}
			sc.showError(err)
		}
	})
}

func (sc *BoardDetailsScreen) openCard(card model.Card) {
	sc.nav.Push(NewCardDetailsScreen(sc.shared, sc.boardID, card.StackID, card.ID))
}

func (sc *BoardDetailsScreen) openNewCard() {
	if sc.selectedStackID == 0 {
		return
	}
	sc.nav.Push(NewNewCardScreen(sc.shared, sc.boardID, sc.selectedStackID))
}

func (sc *BoardDetailsScreen) showNewStackForm() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(sc.loc.GetText(KeyStackTitle))
	dialog.ShowForm(sc.loc.GetText(KeyCreateStack), sc.loc.GetText(KeyCreate), sc.loc.GetText(KeyCancel),
		[]*widget.FormItem{widget.NewFormItem("", entry)},
		func(confirmed bool) {
			if confirmed {
				sc.createStack(entry.Text)
			}
		}, sc.window)
}

func (sc *BoardDetailsScreen) createStack(title string) {
	runAsync(sc.shared, func(ctx context.Context) (*model.Stack, error) {
		return sc.boards.CreateStack(ctx, sc.boardID, title)
	}, func(stack *model.Stack, err error) {
		if sc.closed {
			return
		}
		if err != nil {
			sc.showError(err)
			return
		}
		sc.stackEntry.SetText("")
		sc.selectStack(stack.ID)
	})
}
