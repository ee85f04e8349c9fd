package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ytget/deck-mobile/internal/deck"
	"github.com/ytget/deck-mobile/internal/model"
)

var errServer = errors.New("server unavailable")

type reorderCall struct {
	boardID, stackID, cardID, order, targetStackID int
}

// fakeAPI is an in-memory deck.API and deck.Authenticator
type fakeAPI struct {
	mu sync.Mutex

	boards    []model.Board
	stacks    map[int][]model.Stack
	nextID    int
	failures  map[string]error
	reorders  []reorderCall
	created   []deck.NewCard
	colors    []string
	revoked   int
	logins    int
	token     string
	inFlight  int
	maxFlight int

	// block, when set, is received from before ListStacks returns
	block chan struct{}
	// duringList, when set, runs before ListBoards returns
	duringList func()
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		stacks:   make(map[int][]model.Stack),
		nextID:   1000,
		failures: make(map[string]error),
		token:    "Basic token",
	}
}

func (f *fakeAPI) fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = err
}

func (f *fakeAPI) failure(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failures[op]
}

func (f *fakeAPI) ListBoards(ctx context.Context) ([]model.Board, error) {
	if err := f.failure("ListBoards"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	boards := append([]model.Board(nil), f.boards...)
	duringList := f.duringList
	f.mu.Unlock()

	if duringList != nil {
		duringList()
	}
	return boards, nil
}

func (f *fakeAPI) CreateBoard(ctx context.Context, title, color string) (*model.Board, error) {
	if err := f.failure("CreateBoard"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.colors = append(f.colors, color)
	return &model.Board{ID: f.nextID, Title: title, Color: color}, nil
}

func (f *fakeAPI) ListStacks(ctx context.Context, boardID int) ([]model.Stack, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxFlight {
		f.maxFlight = f.inFlight
	}
	block := f.block
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if block != nil {
		<-block
	}
	if err := f.failure("ListStacks"); err != nil {
		return nil, err
	}
	if err := f.failure(stacksKey(boardID)); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Stack(nil), f.stacks[boardID]...), nil
}

func (f *fakeAPI) CreateStack(ctx context.Context, boardID int, title string, order int) (*model.Stack, error) {
	if err := f.failure("CreateStack"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return &model.Stack{ID: f.nextID, Title: title, Order: order}, nil
}

func (f *fakeAPI) CreateCard(ctx context.Context, boardID, stackID int, card deck.NewCard) (*model.Card, error) {
	if err := f.failure("CreateCard"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.created = append(f.created, card)
	return &model.Card{ID: f.nextID, StackID: stackID, Title: card.Title, Description: card.Description, Type: card.Type, Order: card.Order}, nil
}

func (f *fakeAPI) ReorderCard(ctx context.Context, boardID, stackID, cardID, order, targetStackID int) error {
	f.mu.Lock()
	f.reorders = append(f.reorders, reorderCall{boardID, stackID, cardID, order, targetStackID})
	f.mu.Unlock()
	return f.failure("ReorderCard")
}

func (f *fakeAPI) DeleteAppPassword(ctx context.Context) error {
	f.mu.Lock()
	f.revoked++
	f.mu.Unlock()
	return f.failure("DeleteAppPassword")
}

func (f *fakeAPI) Login(ctx context.Context, server, user, password string) (string, error) {
	if err := f.failure("Login"); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	return f.token, nil
}

func stacksKey(boardID int) string {
	return fmt.Sprintf("ListStacks/%d", boardID)
}

type fakePersister struct {
	server, token string
	cleared       int
}

func (p *fakePersister) SaveSession(server, token string) {
	p.server, p.token = server, token
}

func (p *fakePersister) ClearSession() {
	p.server, p.token = "", ""
	p.cleared++
}
