package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/deck-mobile/internal/board"
	"github.com/ytget/deck-mobile/internal/config"
	"github.com/ytget/deck-mobile/internal/model"
	"github.com/ytget/deck-mobile/internal/store"
)

var errOffline = errors.New("offline")

type moveCall struct {
	boardID, from, to, cardID int
}

// fakeManager implements board.Manager directly on the store
type fakeManager struct {
	mu    sync.Mutex
	store *store.Store

	remoteBoards []model.Board
	remoteStacks map[int][]model.Stack
	nextID       int

	loadErr, loadBoardErr, createErr, moveErr, loginErr, logoutErr error

	loads      int
	prefetches int
	moves      []moveCall
	logouts    int

	state       model.LoadState
	lastRefresh time.Time
	refreshedAt time.Time
	onState     func(model.LoadState)
	// duringLoad runs while LoadBoards is in flight
	duringLoad func()
}

var _ board.Manager = (*fakeManager)(nil)

func newFakeManager(st *store.Store) *fakeManager {
	return &fakeManager{
		store:        st,
		remoteStacks: make(map[int][]model.Stack),
		nextID:       500,
		state:        model.LoadStateIdle,
		refreshedAt:  time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC),
	}
}

func (f *fakeManager) SetStateCallback(callback func(model.LoadState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onState = callback
}

func (f *fakeManager) BoardsState() model.LoadState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeManager) LastRefresh() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastRefresh
}

func (f *fakeManager) setState(state model.LoadState) {
	f.mu.Lock()
	f.state = state
	if state == model.LoadStateLoaded {
		f.lastRefresh = f.refreshedAt
	}
	callback := f.onState
	f.mu.Unlock()

	if callback != nil {
		callback(state)
	}
}

func (f *fakeManager) LoadBoards(ctx context.Context) error {
	f.mu.Lock()
	f.loads++
	err := f.loadErr
	boards := append([]model.Board(nil), f.remoteBoards...)
	duringLoad := f.duringLoad
	f.mu.Unlock()

	f.setState(model.LoadStateLoading)
	if duringLoad != nil {
		duringLoad()
	}
	if err != nil {
		f.setState(model.LoadStateFailed)
		return err
	}
	f.store.ReplaceBoards(boards)
	f.setState(model.LoadStateLoaded)
	return nil
}

func (f *fakeManager) CreateBoard(ctx context.Context, title string) (*model.Board, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, board.ErrEmptyTitle
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	created := model.Board{ID: f.nextID, Title: title, Color: "0082c9"}
	f.store.AddBoard(created)
	return &created, nil
}

func (f *fakeManager) LoadBoard(ctx context.Context, boardID int) (int, error) {
	if f.loadBoardErr != nil {
		return 0, f.loadBoardErr
	}
	if stacks, ok := f.remoteStacks[boardID]; ok {
		if err := f.store.ReplaceStacks(boardID, stacks); err != nil {
			return 0, err
		}
	}
	b, ok := f.store.Board(boardID)
	if !ok {
		return 0, store.ErrBoardNotFound
	}
	return b.DefaultStackID(), nil
}

func (f *fakeManager) CreateStack(ctx context.Context, boardID int, title string) (*model.Stack, error) {
	if strings.TrimSpace(title) == "" {
		return nil, board.ErrEmptyTitle
	}
	b, _ := f.store.Board(boardID)
	f.nextID++
	created := model.Stack{ID: f.nextID, BoardID: boardID, Title: title, Order: b.MaxStackOrder() + 1}
	if err := f.store.AddStack(boardID, created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (f *fakeManager) CreateCard(ctx context.Context, boardID, stackID int, title, description string) (*model.Card, error) {
	if strings.TrimSpace(title) == "" {
		return nil, board.ErrEmptyTitle
	}
	f.nextID++
	created := model.Card{ID: f.nextID, StackID: stackID, Title: title, Description: description}
	if err := f.store.AddCard(boardID, stackID, created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (f *fakeManager) MoveCard(ctx context.Context, boardID, fromStackID, toStackID, cardID int) error {
	if fromStackID == toStackID {
		return nil
	}
	f.moves = append(f.moves, moveCall{boardID, fromStackID, toStackID, cardID})

	prev, err := f.store.MoveCard(boardID, fromStackID, toStackID, cardID, 0)
	if err != nil {
		return err
	}
	if f.moveErr != nil {
		_, _ = f.store.MoveCard(boardID, toStackID, fromStackID, cardID, prev)
		return fmt.Errorf("%w: %w", board.ErrMoveReverted, f.moveErr)
	}
	return nil
}

func (f *fakeManager) PrefetchStacks(ctx context.Context) error {
	f.prefetches++
	for boardID, stacks := range f.remoteStacks {
		if _, ok := f.store.Board(boardID); ok {
			_ = f.store.ReplaceStacks(boardID, stacks)
		}
	}
	return nil
}

func (f *fakeManager) Login(ctx context.Context, server, user, password string) error {
	if server == "" || user == "" || password == "" {
		return board.ErrMissingLogin
	}
	if f.loginErr != nil {
		return f.loginErr
	}
	f.store.SetSession(server, "Basic token")
	return nil
}

func (f *fakeManager) Logout(ctx context.Context) error {
	f.logouts++
	f.store.DeleteAllBoards()
	f.store.ClearSession()
	f.mu.Lock()
	f.state = model.LoadStateIdle
	f.lastRefresh = time.Time{}
	f.mu.Unlock()
	return f.logoutErr
}

// newTestShared builds screen dependencies running everything synchronously
func newTestShared(t *testing.T) (*shared, *fakeManager) {
	t.Helper()

	app := test.NewTempApp(t)
	window := test.NewWindow(nil)
	window.Resize(fyne.NewSize(480, 800))
	t.Cleanup(window.Close)

	st := store.New()
	mgr := newFakeManager(st)

	s := &shared{
		ctx:      context.Background(),
		window:   window,
		nav:      NewNavigator(),
		loc:      NewLocalization(),
		store:    st,
		boards:   mgr,
		settings: config.NewSettings(app),
		mobile:   NewMobileUI(app),
		logger:   zap.NewNop(),
		async:    func(f func()) { f() },
		onMain:   func(f func()) { f() },
	}
	window.SetContent(s.nav.Container())
	return s, mgr
}

// seedTeamBoard stores board 1 with stacks ToDo(10: cards 100, 101) and Done(20: card 200)
func seedTeamBoard(t *testing.T, st *store.Store) {
	t.Helper()

	st.AddBoard(model.Board{ID: 1, Title: "Team", Color: "0082c9"})
	if err := st.ReplaceStacks(1, teamStacks()); err != nil {
		t.Fatal(err)
	}
}

func teamStacks() []model.Stack {
	return []model.Stack{
		{ID: 10, BoardID: 1, Title: "ToDo", Order: 0, Cards: []model.Card{
			{ID: 100, StackID: 10, Title: "Write docs"},
			{ID: 101, StackID: 10, Title: "Fix login"},
		}},
		{ID: 20, BoardID: 1, Title: "Done", Order: 1, Cards: []model.Card{
			{ID: 200, StackID: 20, Title: "Ship"},
		}},
	}
}

// toastText returns the message of the top overlay, or "" without one
func toastText(window fyne.Window) string {
	top := window.Canvas().Overlays().Top()
	if top == nil {
		return ""
	}
	var texts []string
	collectLabels(top, &texts)
	return strings.Join(texts, " ")
}

func collectLabels(obj fyne.CanvasObject, texts *[]string) {
	switch o := obj.(type) {
	case *widget.Label:
		*texts = append(*texts, o.Text)
	case *widget.PopUp:
		collectLabels(o.Content, texts)
	case *fyne.Container:
		for _, child := range o.Objects {
			collectLabels(child, texts)
		}
	}
}
