package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/ytget/deck-mobile/internal/model"
)

// Event identifies which slice of state changed
type Event int

const (
	// EventBoards is emitted when boards, stacks or cards change
	EventBoards Event = iota
	// EventSession is emitted when the server or token change
	EventSession
)

// String returns the event name
func (e Event) String() string {
	switch e {
	case EventBoards:
		return "boards"
	case EventSession:
		return "session"
	default:
		return "unknown"
	}
}

// Listener is called after each mutation, outside the store lock
type Listener func(Event)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrStackNotFound = errors.New("stack not found")
	ErrCardNotFound  = errors.New("card not found")
)

// Store is the global client state. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	boards  map[int]*model.Board
	session Session

	listenersMu sync.Mutex
	listeners   map[uint64]Listener
	nextID      uint64
}

// New creates an empty store
func New() *Store {
	return &Store{
		boards:    make(map[int]*model.Board),
		listeners: make(map[uint64]Listener),
	}
}

// Subscribe registers a listener and returns a function removing it
func (s *Store) Subscribe(listener Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = listener

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

// notify calls every listener with the event
func (s *Store) notify(event Event) {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l(event)
	}
}

// Boards returns copies of all boards ordered by ID
func (s *Store) Boards() []model.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	boards := make([]model.Board, 0, len(s.boards))
	for _, board := range s.boards {
		boards = append(boards, cloneBoard(board))
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].ID < boards[j].ID })
	return boards
}

// Board returns a copy of the board with the given ID
func (s *Store) Board(id int) (model.Board, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, exists := s.boards[id]
	if !exists {
		return model.Board{}, false
	}
	return cloneBoard(board), true
}

// AddBoard inserts or replaces a board. Stacks already loaded for the board
// are kept when the incoming value carries none.
func (s *Store) AddBoard(board model.Board) {
	s.mu.Lock()
	stored := cloneBoard(&board)
	if existing, exists := s.boards[board.ID]; exists && len(stored.Stacks) == 0 {
		stored.Stacks = cloneStacks(existing.Stacks)
	}
	model.SortStacks(stored.Stacks)
	s.boards[board.ID] = &stored
	s.mu.Unlock()

	s.notify(EventBoards)
}

// DeleteAllBoards removes every board
func (s *Store) DeleteAllBoards() {
	s.mu.Lock()
	s.boards = make(map[int]*model.Board)
	s.mu.Unlock()

	s.notify(EventBoards)
}

// ReplaceBoards is DeleteAllBoards followed by AddBoard for each board,
// published as a single change. Loaded stacks of surviving boards are kept
// like AddBoard does.
func (s *Store) ReplaceBoards(boards []model.Board) {
	s.mu.Lock()
	s.replaceBoardsLocked(boards)
	s.mu.Unlock()

	s.notify(EventBoards)
}

// ReplaceBoardsFor is ReplaceBoards applied only while session is still the
// current session. It reports whether the boards were replaced.
func (s *Store) ReplaceBoardsFor(session Session, boards []model.Board) bool {
	s.mu.Lock()
	if s.session != session {
		s.mu.Unlock()
		return false
	}
	s.replaceBoardsLocked(boards)
	s.mu.Unlock()

	s.notify(EventBoards)
	return true
}

// replaceBoardsLocked swaps the board map; the caller holds s.mu
func (s *Store) replaceBoardsLocked(boards []model.Board) {
	previous := s.boards
	s.boards = make(map[int]*model.Board, len(boards))
	for i := range boards {
		stored := cloneBoard(&boards[i])
		if existing, exists := previous[stored.ID]; exists && len(stored.Stacks) == 0 {
			stored.Stacks = cloneStacks(existing.Stacks)
		}
		model.SortStacks(stored.Stacks)
		s.boards[stored.ID] = &stored
	}
}

// ReplaceStacks sets the complete list of stacks of a board
func (s *Store) ReplaceStacks(boardID int, stacks []model.Stack) error {
	s.mu.Lock()
	board, exists := s.boards[boardID]
	if !exists {
		s.mu.Unlock()
		return ErrBoardNotFound
	}
	board.Stacks = cloneStacks(stacks)
	model.SortStacks(board.Stacks)
	s.mu.Unlock()

	s.notify(EventBoards)
	return nil
}

// AddStack inserts or replaces a single stack of a board
func (s *Store) AddStack(boardID int, stack model.Stack) error {
	s.mu.Lock()
	board, exists := s.boards[boardID]
	if !exists {
		s.mu.Unlock()
		return ErrBoardNotFound
	}

	stored := cloneStacks([]model.Stack{stack})[0]
	if existing, found := board.Stack(stack.ID); found {
		*existing = stored
	} else {
		board.Stacks = append(board.Stacks, stored)
	}
	model.SortStacks(board.Stacks)
	s.mu.Unlock()

	s.notify(EventBoards)
	return nil
}

// AddCard appends a card to a stack, replacing any card with the same ID
func (s *Store) AddCard(boardID, stackID int, card model.Card) error {
	s.mu.Lock()
	stack, err := s.stackLocked(boardID, stackID)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	card = cloneCard(card)
	card.StackID = stackID
	if existing, _ := stack.Card(card.ID); existing != nil {
		*existing = card
	} else {
		stack.Cards = append(stack.Cards, card)
	}
	s.mu.Unlock()

	s.notify(EventBoards)
	return nil
}

// MoveCard relocates a card from one stack to another, inserting it at index
// (clamped to the target's bounds). It returns the index the card occupied in
// the source stack so the move can be reverted.
func (s *Store) MoveCard(boardID, fromStackID, toStackID, cardID, index int) (int, error) {
	s.mu.Lock()
	from, err := s.stackLocked(boardID, fromStackID)
	if err != nil {
		s.mu.Unlock()
		return -1, err
	}
	to, err := s.stackLocked(boardID, toStackID)
	if err != nil {
		s.mu.Unlock()
		return -1, err
	}

	card, prevIndex := from.Card(cardID)
	if card == nil {
		s.mu.Unlock()
		return -1, ErrCardNotFound
	}
	moved := *card
	moved.StackID = toStackID

	from.Cards = append(from.Cards[:prevIndex], from.Cards[prevIndex+1:]...)

	if index < 0 {
		index = 0
	}
	if index > len(to.Cards) {
		index = len(to.Cards)
	}
	to.Cards = append(to.Cards, model.Card{})
	copy(to.Cards[index+1:], to.Cards[index:])
	to.Cards[index] = moved
	s.mu.Unlock()

	s.notify(EventBoards)
	return prevIndex, nil
}

// stackLocked finds a stack; the caller holds s.mu
func (s *Store) stackLocked(boardID, stackID int) (*model.Stack, error) {
	board, exists := s.boards[boardID]
	if !exists {
		return nil, ErrBoardNotFound
	}
	stack, found := board.Stack(stackID)
	if !found {
		return nil, ErrStackNotFound
	}
	return stack, nil
}

func cloneBoard(board *model.Board) model.Board {
	clone := *board
	clone.Labels = cloneLabels(board.Labels)
	clone.Stacks = cloneStacks(board.Stacks)
	return clone
}

func cloneStacks(stacks []model.Stack) []model.Stack {
	if stacks == nil {
		return nil
	}
	clone := make([]model.Stack, len(stacks))
	for i, stack := range stacks {
		clone[i] = stack
		if stack.Cards != nil {
			clone[i].Cards = make([]model.Card, len(stack.Cards))
			for j, card := range stack.Cards {
				clone[i].Cards[j] = cloneCard(card)
			}
		}
	}
	return clone
}

func cloneCard(card model.Card) model.Card {
	card.Labels = cloneLabels(card.Labels)
	if card.DueDate != nil {
		due := *card.DueDate
		card.DueDate = &due
	}
	return card
}

func cloneLabels(labels []model.Label) []model.Label {
	if labels == nil {
		return nil
	}
	clone := make([]model.Label, len(labels))
	copy(clone, labels)
	return clone
}
