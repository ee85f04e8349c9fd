package ui

import (
	"context"
	"fmt"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/deck-mobile/internal/board"
	"github.com/ytget/deck-mobile/internal/model"
)

// AllBoardsScreen lists the boards of the signed-in user
type AllBoardsScreen struct {
	*shared

	items []model.Board
	menu  *AppMenu

	list      *widget.List
	status    *widget.Label
	updated   *widget.Label
	activity  *widget.Activity
	ptr       *PullToRefresh
	createBtn *widget.Button
	createRow *fyne.Container
	entry     *widget.Entry
	footer    *fyne.Container
	content   fyne.CanvasObject

	unsubscribe func()
	loadedOnce  bool
}

// NewAllBoardsScreen creates the board list screen
func NewAllBoardsScreen(s *shared) *AllBoardsScreen {
	sc := &AllBoardsScreen{shared: s}
	sc.menu = NewAppMenu(s)
	sc.createUI()
	return sc
}

// Title implements Screen
func (sc *AllBoardsScreen) Title() string {
	return sc.loc.GetText(KeyAllBoards)
}

// Content implements Screen
func (sc *AllBoardsScreen) Content() fyne.CanvasObject {
	return sc.content
}

// Actions returns the header buttons
func (sc *AllBoardsScreen) Actions() []fyne.CanvasObject {
	refreshBtn := widget.NewButton(IconRefresh, func() { sc.ptr.Trigger() })
	refreshBtn.Importance = widget.LowImportance
	return []fyne.CanvasObject{refreshBtn, sc.menu.Button()}
}

// Shown starts observing the store and the load state, and loads boards the first time
func (sc *AllBoardsScreen) Shown() {
	sc.unsubscribe = sc.observe(sc.refresh)
	sc.boards.SetStateCallback(func(model.LoadState) {
		sc.onMain(sc.refresh)
	})
	sc.refresh()
	if !sc.loadedOnce {
		sc.ptr.Trigger()
	}
}

// Hidden stops observing the store and the load state
func (sc *AllBoardsScreen) Hidden() {
	sc.boards.SetStateCallback(nil)
	if sc.unsubscribe != nil {
		sc.unsubscribe()
		sc.unsubscribe = nil
	}
}

func (sc *AllBoardsScreen) createUI() {
	sc.list = widget.NewList(
		func() int { return len(sc.items) },
		sc.createBoardRow,
		sc.updateBoardRow,
	)
	sc.list.OnSelected = func(id widget.ListItemID) {
		sc.list.UnselectAll()
		if id >= 0 && id < len(sc.items) {
			sc.openBoard(sc.items[id].ID, 0)
		}
	}

	sc.status = widget.NewLabel("")
	sc.status.Alignment = fyne.TextAlignCenter
	sc.status.Hide()
	sc.activity = widget.NewActivity()
	sc.activity.Hide()
	sc.updated = widget.NewLabel("")
	sc.updated.Alignment = fyne.TextAlignCenter
	sc.updated.Importance = widget.LowImportance
	sc.updated.Hide()

	sc.ptr = NewPullToRefresh(sc.list, sc.load)

	sc.createBtn = widget.NewButton(sc.loc.GetText(KeyCreateBoard), sc.showCreateEntry)
	sc.createBtn.Importance = widget.HighImportance

	sc.entry = sc.mobile.CreateMobileEntry(sc.loc.GetText(KeyBoardTitle))
	sc.entry.OnChanged = func(text string) {
		if utf8.RuneCountInString(text) > board.MaxTitleLength {
			sc.entry.SetText(string([]rune(text)[:board.MaxTitleLength]))
		}
	}
	sc.entry.OnSubmitted = func(string) { sc.submitBoard() }

	okBtn := widget.NewButton(sc.loc.GetText(KeyCreate), sc.submitBoard)
	okBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton(sc.loc.GetText(KeyCancel), sc.hideCreateEntry)
	sc.createRow = container.NewBorder(nil, nil, nil, container.NewHBox(cancelBtn, okBtn), sc.entry)
	sc.createRow.Hide()

	sc.footer = container.NewVBox(sc.updated, sc.createBtn, sc.createRow)
	top := container.NewVBox(sc.activity, sc.status)
	sc.content = container.NewBorder(top, sc.mobile.Padded(sc.footer), nil, nil, sc.ptr)
}

func (sc *AllBoardsScreen) createBoardRow() fyne.CanvasObject {
	swatch := canvas.NewRectangle(fallbackBoard)
	swatch.SetMinSize(fyne.NewSize(BoardSwatchSize, BoardSwatchSize))
	swatch.CornerRadius = BoardSwatchSize / 2

	title := widget.NewLabel("")
	title.Truncation = fyne.TextTruncateEllipsis
	count := widget.NewLabel("")

	return container.NewBorder(nil, nil, container.NewCenter(swatch), count, title)
}

func (sc *AllBoardsScreen) updateBoardRow(id widget.ListItemID, item fyne.CanvasObject) {
	if id < 0 || id >= len(sc.items) {
		return
	}
	b := sc.items[id]

	row := item.(*fyne.Container)
	title := row.Objects[0].(*widget.Label)
	swatch := row.Objects[1].(*fyne.Container).Objects[0].(*canvas.Rectangle)
	count := row.Objects[2].(*widget.Label)

	title.SetText(b.GetDisplayTitle())
	swatch.FillColor = ParseHexColor(b.Color)
	swatch.Refresh()
	if len(b.Stacks) > 0 {
		count.SetText(fmt.Sprintf(CardCountFormat, b.CardCount()))
	} else {
		count.SetText("")
	}
}

// refresh re-reads the boards from the store and the load state from the service
func (sc *AllBoardsScreen) refresh() {
	sc.items = sc.store.Boards()
	sc.list.Refresh()

	loading := sc.boards.BoardsState().IsActive()
	if loading {
		sc.activity.Show()
		sc.activity.Start()
	} else {
		sc.activity.Stop()
		sc.activity.Hide()
	}

	if refreshed := sc.boards.LastRefresh(); !refreshed.IsZero() {
		sc.updated.SetText(fmt.Sprintf(sc.loc.GetText(KeyUpdatedAtFmt), refreshed.Format(UpdatedTimeFormat)))
		sc.updated.Show()
	} else {
		sc.updated.Hide()
	}

	switch {
	case loading && len(sc.items) == 0:
		sc.status.SetText(sc.loc.GetText(KeyLoading))
		sc.status.Show()
	case len(sc.items) == 0 && sc.loadedOnce:
		sc.status.SetText(sc.loc.GetText(KeyNoBoards))
		sc.status.Show()
	default:
		sc.status.Hide()
	}
}

// load fetches the boards; it runs through the pull-to-refresh guard
func (sc *AllBoardsScreen) load() {
	runAsync(sc.shared, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, sc.boards.LoadBoards(ctx)
	}, func(_ struct{}, err error) {
		first := !sc.loadedOnce
		sc.ptr.EndRefresh()

		if err != nil {
			sc.showError(err)
			sc.refresh()
			return
		}
		sc.loadedOnce = true
		sc.refresh()
		sc.prefetch()

		if first {
			sc.restoreLastViewed()
		}
	})
}

// prefetch loads the stacks of all boards so card counts show up in the list
func (sc *AllBoardsScreen) prefetch() {
	runAsync(sc.shared, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, sc.boards.PrefetchStacks(ctx)
	}, func(_ struct{}, err error) {
		if err != nil {
			sc.logger.Warn("prefetching stacks failed", zap.Error(err))
		}
	})
}

// restoreLastViewed reopens the board that was shown when the app was last used
func (sc *AllBoardsScreen) restoreLastViewed() {
	boardID, stackID := sc.settings.GetLastViewed()
	if boardID == 0 {
		return
	}
	if _, ok := sc.store.Board(boardID); !ok {
		sc.settings.ClearLastViewed()
		return
	}
	sc.logger.Debug("restoring last viewed board", zap.Int("board_id", boardID), zap.Int("stack_id", stackID))
	sc.openBoard(boardID, stackID)
}

func (sc *AllBoardsScreen) openBoard(boardID, stackID int) {
	sc.nav.Push(NewBoardDetailsScreen(sc.shared, boardID, stackID))
}

func (sc *AllBoardsScreen) showCreateEntry() {
	sc.createBtn.Hide()
	sc.entry.SetText("")
	sc.createRow.Show()
	sc.window.Canvas().Focus(sc.entry)
}

func (sc *AllBoardsScreen) hideCreateEntry() {
	sc.createRow.Hide()
	sc.entry.SetText("")
	sc.createBtn.Show()
}

func (sc *AllBoardsScreen) submitBoard() {
	title := sc.entry.Text

	runAsync(sc.shared, func(ctx context.Context) (*model.Board, error) {
		return sc.boards.CreateBoard(ctx, title)
	}, func(_ *model.Board, err error) {
		if err != nil {
			sc.showError(err)
			return
		}
		sc.hideCreateEntry()
	})
}
