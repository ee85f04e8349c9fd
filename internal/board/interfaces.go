package board

import (
	"context"
	"time"

	"github.com/ytget/deck-mobile/internal/model"
)

// Manager defines the interface for the board service.
type Manager interface {
	SetStateCallback(func(model.LoadState))
	BoardsState() model.LoadState
	LastRefresh() time.Time

	LoadBoards(ctx context.Context) error
	CreateBoard(ctx context.Context, title string) (*model.Board, error)

	// LoadBoard refreshes the stacks of a board and returns its default stack ID
	LoadBoard(ctx context.Context, boardID int) (int, error)
	CreateStack(ctx context.Context, boardID int, title string) (*model.Stack, error)
	CreateCard(ctx context.Context, boardID, stackID int, title, description string) (*model.Card, error)

	// MoveCard moves a card to the top of another stack of the same board
	MoveCard(ctx context.Context, boardID, fromStackID, toStackID, cardID int) error

	PrefetchStacks(ctx context.Context) error

	Login(ctx context.Context, server, user, password string) error
	Logout(ctx context.Context) error
}

// SessionPersister keeps the session across application restarts.
type SessionPersister interface {
	SaveSession(server, token string)
	ClearSession()
}
