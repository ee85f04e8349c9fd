package board

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/deck-mobile/internal/deck"
	"github.com/ytget/deck-mobile/internal/logger"
	"github.com/ytget/deck-mobile/internal/model"
	"github.com/ytget/deck-mobile/internal/store"
)

// DefaultPrefetchConcurrency bounds concurrent stack requests in PrefetchStacks
const DefaultPrefetchConcurrency = 4

var _ Manager = (*Service)(nil)

// Service handles board operations
type Service struct {
	api       deck.API
	auth      deck.Authenticator
	store     *store.Store
	persister SessionPersister
	logger    *zap.Logger

	randColor     func() uint32
	now           func() time.Time
	prefetchLimit int

	stateMu       sync.Mutex
	boardsState   model.LoadState
	lastRefresh   time.Time
	onStateChange func(model.LoadState) // callback for UI updates
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger.OrNop(l).Named("board")
	}
}

// WithPrefetchConcurrency bounds concurrent requests in PrefetchStacks
func WithPrefetchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.prefetchLimit = n
		}
	}
}

// WithColorSource replaces the random source of new board colors
func WithColorSource(next func() uint32) Option {
	return func(s *Service) {
		s.randColor = next
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new board service. persister may be nil.
func NewService(api deck.API, auth deck.Authenticator, st *store.Store, persister SessionPersister, opts ...Option) *Service {
	s := &Service{
		api:           api,
		auth:          auth,
		store:         st,
		persister:     persister,
		logger:        zap.NewNop(),
		randColor:     func() uint32 { return rand.Uint32() },
		now:           time.Now,
		prefetchLimit: DefaultPrefetchConcurrency,
		boardsState:   model.LoadStateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetStateCallback sets the callback invoked when the board list load state changes
func (s *Service) SetStateCallback(callback func(model.LoadState)) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.onStateChange = callback
}

// BoardsState returns the load state of the board list
func (s *Service) BoardsState() model.LoadState {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.boardsState
}

// LastRefresh returns when the board list was last loaded successfully
func (s *Service) LastRefresh() time.Time {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.lastRefresh
}

func (s *Service) setBoardsState(state model.LoadState) {
	s.stateMu.Lock()
	s.boardsState = state
	if state == model.LoadStateLoaded {
		s.lastRefresh = s.now()
	}
	callback := s.onStateChange
	s.stateMu.Unlock()

	if callback != nil {
		callback(state)
	}
}

// LoadBoards fetches all boards and replaces the stored ones with the visible ones.
// On failure the store is left untouched. A result arriving after the session
// changed, for example by a logout, is discarded.
func (s *Service) LoadBoards(ctx context.Context) error {
	s.setBoardsState(model.LoadStateLoading)
	session := s.store.Session()

	boards, err := s.api.ListBoards(ctx)
	if err != nil {
		s.setBoardsState(model.LoadStateFailed)
		s.logger.Warn("loading boards failed", zap.Error(err))
		return fmt.Errorf("load boards: %w", err)
	}

	visible := make([]model.Board, 0, len(boards))
	for _, b := range boards {
		if b.IsVisible() {
			visible = append(visible, b)
		}
	}
	if !s.store.ReplaceBoardsFor(session, visible) {
		s.logger.Debug("session changed while loading boards, result discarded")
		s.setBoardsState(model.LoadStateIdle)
		return nil
	}

	s.logger.Debug("boards loaded", zap.Int("total", len(boards)), zap.Int("visible", len(visible)))
	s.setBoardsState(model.LoadStateLoaded)
	return nil
}

// CreateBoard creates a board with a random color and adds it to the store
func (s *Service) CreateBoard(ctx context.Context, title string) (*model.Board, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	color := fmt.Sprintf("%06x", s.randColor()&0xffffff)
	created, err := s.api.CreateBoard(ctx, title, color)
	if err != nil {
		s.logger.Warn("creating board failed", zap.String("title", title), zap.Error(err))
		return nil, fmt.Errorf("create board: %w", err)
	}

	s.store.AddBoard(*created)
	s.logger.Info("board created", zap.Int("board_id", created.ID), zap.String("color", color))
	return created, nil
}

// LoadBoard fetches the stacks of a board, replaces them in the store and
// returns the ID of the first stack by order, or 0 when the board has none.
func (s *Service) LoadBoard(ctx context.Context, boardID int) (int, error) {
	stacks, err := s.api.ListStacks(ctx, boardID)
	if err != nil {
		s.logger.Warn("loading stacks failed", zap.Int("board_id", boardID), zap.Error(err))
		return 0, fmt.Errorf("load board %d: %w", boardID, err)
	}

	if err := s.store.ReplaceStacks(boardID, stacks); err != nil {
		return 0, fmt.Errorf("load board %d: %w", boardID, err)
	}

	board, ok := s.store.Board(boardID)
	if !ok {
		return 0, fmt.Errorf("load board %d: %w", boardID, store.ErrBoardNotFound)
	}
	return board.DefaultStackID(), nil
}

// CreateStack appends a stack after the existing ones
func (s *Service) CreateStack(ctx context.Context, boardID int, title string) (*model.Stack, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	board, ok := s.store.Board(boardID)
	if !ok {
		return nil, fmt.Errorf("create stack: %w", store.ErrBoardNotFound)
	}

	created, err := s.api.CreateStack(ctx, boardID, title, board.MaxStackOrder()+1)
	if err != nil {
		s.logger.Warn("creating stack failed", zap.Int("board_id", boardID), zap.Error(err))
		return nil, fmt.Errorf("create stack: %w", err)
	}
	if created.BoardID == 0 {
		created.BoardID = boardID
	}

	if err := s.store.AddStack(boardID, *created); err != nil {
		return nil, fmt.Errorf("create stack: %w", err)
	}
	return created, nil
}

// CreateCard adds a card at the end of a stack
func (s *Service) CreateCard(ctx context.Context, boardID, stackID int, title, description string) (*model.Card, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	board, ok := s.store.Board(boardID)
	if !ok {
		return nil, fmt.Errorf("create card: %w", store.ErrBoardNotFound)
	}
	stack, ok := board.Stack(stackID)
	if !ok {
		return nil, fmt.Errorf("create card: %w", store.ErrStackNotFound)
	}

	created, err := s.api.CreateCard(ctx, boardID, stackID, deck.NewCard{
		Title:       title,
		Type:        model.CardTypePlain,
		Order:       len(stack.Cards),
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		s.logger.Warn("creating card failed", zap.Int("stack_id", stackID), zap.Error(err))
		return nil, fmt.Errorf("create card: %w", err)
	}

	if err := s.store.AddCard(boardID, stackID, *created); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}
	return created, nil
}

// MoveCard moves a card to the top of another stack. The store is updated
// first; if the server rejects the move the card goes back to its previous
// position and ErrMoveReverted is returned. Dropping a card on its own stack
// does nothing.
func (s *Service) MoveCard(ctx context.Context, boardID, fromStackID, toStackID, cardID int) error {
	if fromStackID == toStackID {
		return nil
	}

	log := s.logger.With(
		zap.String("op", uuid.NewString()),
		zap.Int("board_id", boardID),
		zap.Int("card_id", cardID),
		zap.Int("from_stack", fromStackID),
		zap.Int("to_stack", toStackID),
	)

	prevIndex, err := s.store.MoveCard(boardID, fromStackID, toStackID, cardID, 0)
	if err != nil {
		return fmt.Errorf("move card %d: %w", cardID, err)
	}
	log.Debug("card moved locally", zap.Int("prev_index", prevIndex))

	if err := s.api.ReorderCard(ctx, boardID, fromStackID, cardID, 0, toStackID); err != nil {
		if _, revertErr := s.store.MoveCard(boardID, toStackID, fromStackID, cardID, prevIndex); revertErr != nil {
			log.Error("reverting card move failed", zap.Error(revertErr))
		}
		log.Warn("card move rejected, reverted", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrMoveReverted, err)
	}

	log.Info("card moved")
	return nil
}

// PrefetchStacks loads the stacks of every stored board concurrently.
// A failing board does not stop the others; all failures are returned joined.
func (s *Service) PrefetchStacks(ctx context.Context) error {
	boards := s.store.Boards()

	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(s.prefetchLimit)

	for _, b := range boards {
		boardID := b.ID
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if _, err := s.LoadBoard(ctx, boardID); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Debug("stacks prefetched", zap.Int("boards", len(boards)), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

// Login obtains a session token and stores the session
func (s *Service) Login(ctx context.Context, server, user, password string) error {
	if strings.TrimSpace(server) == "" || strings.TrimSpace(user) == "" || password == "" {
		return ErrMissingLogin
	}

	server, err := deck.NormalizeServerURL(server)
	if err != nil {
		return err
	}

	token, err := s.auth.Login(ctx, server, strings.TrimSpace(user), password)
	if err != nil {
		s.logger.Warn("login failed", zap.String("server", server), zap.Error(err))
		return err
	}

	if s.persister != nil {
		s.persister.SaveSession(server, token)
	}
	s.store.SetSession(server, token)
	s.logger.Info("logged in", zap.String("server", server))
	return nil
}

// Logout revokes the app-password on the server and clears the local
// session. The local session is cleared even when the server call fails;
// the returned error is informational.
func (s *Service) Logout(ctx context.Context) error {
	remoteErr := s.api.DeleteAppPassword(ctx)
	if remoteErr != nil {
		s.logger.Warn("revoking app-password failed", zap.Error(remoteErr))
		remoteErr = fmt.Errorf("logout: %w", remoteErr)
	}

	if s.persister != nil {
		s.persister.ClearSession()
	}
	// Clearing the session first makes in-flight board loads discard their result
	s.store.ClearSession()
	s.store.DeleteAllBoards()

	s.stateMu.Lock()
	s.boardsState = model.LoadStateIdle
	s.lastRefresh = time.Time{}
	s.stateMu.Unlock()

	s.logger.Info("logged out")
	return remoteErr
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
