package deck

import (
	"context"

	"github.com/ytget/deck-mobile/internal/model"
)

// API defines the Deck server operations used by the client.
type API interface {
	ListBoards(ctx context.Context) ([]model.Board, error)
	CreateBoard(ctx context.Context, title, color string) (*model.Board, error)
	ListStacks(ctx context.Context, boardID int) ([]model.Stack, error)
	CreateStack(ctx context.Context, boardID int, title string, order int) (*model.Stack, error)
	CreateCard(ctx context.Context, boardID, stackID int, card NewCard) (*model.Card, error)

	// ReorderCard moves a card to position order in targetStackID.
	// stackID is the stack the card currently belongs to.
	ReorderCard(ctx context.Context, boardID, stackID, cardID, order, targetStackID int) error

	// DeleteAppPassword revokes the app-password the session token was built from
	DeleteAppPassword(ctx context.Context) error
}

// Authenticator turns user credentials into a session token.
type Authenticator interface {
	Login(ctx context.Context, server, user, password string) (string, error)
}
