package store

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/deck-mobile/internal/model"
)

func seededStore(t *testing.T) *Store {
	t.Helper()

	s := New()
	s.AddBoard(model.Board{ID: 1, Title: "Team"})
	require.NoError(t, s.ReplaceStacks(1, []model.Stack{
		{ID: 20, BoardID: 1, Title: "Done", Order: 2},
		{ID: 10, BoardID: 1, Title: "ToDo", Order: 1, Cards: []model.Card{
			{ID: 100, StackID: 10, Title: "a"},
			{ID: 101, StackID: 10, Title: "b"},
			{ID: 102, StackID: 10, Title: "c"},
		}},
	}))
	return s
}

func cardIDs(t *testing.T, s *Store, boardID, stackID int) []int {
	t.Helper()

	board, ok := s.Board(boardID)
	require.True(t, ok)
	stack, ok := board.Stack(stackID)
	require.True(t, ok)

	ids := make([]int, 0, len(stack.Cards))
	for _, card := range stack.Cards {
		ids = append(ids, card.ID)
	}
	return ids
}

func TestStore_AddBoardAndDeleteAll(t *testing.T) {
	s := New()
	s.AddBoard(model.Board{ID: 3, Title: "c"})
	s.AddBoard(model.Board{ID: 1, Title: "a"})
	s.AddBoard(model.Board{ID: 2, Title: "b"})

	boards := s.Boards()
	require.Len(t, boards, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{boards[0].ID, boards[1].ID, boards[2].ID})

	s.DeleteAllBoards()
	assert.Empty(t, s.Boards())
}

func TestStore_AddBoardKeepsLoadedStacks(t *testing.T) {
	s := seededStore(t)

	s.AddBoard(model.Board{ID: 1, Title: "Renamed"})

	board, ok := s.Board(1)
	require.True(t, ok)
	assert.Equal(t, "Renamed", board.Title)
	assert.Len(t, board.Stacks, 2)

	s.AddBoard(model.Board{ID: 1, Title: "Renamed", Stacks: []model.Stack{{ID: 30, Title: "Only"}}})
	board, _ = s.Board(1)
	require.Len(t, board.Stacks, 1)
	assert.Equal(t, 30, board.Stacks[0].ID)
}

func TestStore_ReplaceBoards(t *testing.T) {
	s := seededStore(t)
	s.AddBoard(model.Board{ID: 2, Title: "Gone"})

	var events int
	s.Subscribe(func(Event) { events++ })

	s.ReplaceBoards([]model.Board{{ID: 1, Title: "Team"}, {ID: 5, Title: "New"}})

	assert.Equal(t, 1, events)
	boards := s.Boards()
	require.Len(t, boards, 2)
	assert.Equal(t, 1, boards[0].ID)
	assert.Len(t, boards[0].Stacks, 2, "stacks of a surviving board are kept")
	assert.Equal(t, 5, boards[1].ID)

	_, ok := s.Board(2)
	assert.False(t, ok)
}

func TestStore_ReplaceBoardsFor(t *testing.T) {
	s := New()
	s.SetSession("https://cloud.example.com", "Basic abc")
	session := s.Session()

	assert.True(t, s.ReplaceBoardsFor(session, []model.Board{{ID: 1, Title: "Team"}}))
	assert.Len(t, s.Boards(), 1)

	s.ClearSession()
	var events int
	s.Subscribe(func(Event) { events++ })

	assert.False(t, s.ReplaceBoardsFor(session, []model.Board{{ID: 2, Title: "Late"}}))
	assert.Zero(t, events)
	_, ok := s.Board(2)
	assert.False(t, ok)
}

func TestStore_ReadersGetCopies(t *testing.T) {
	s := seededStore(t)

	board, _ := s.Board(1)
	board.Title = "mutated"
	board.Stacks[0].Cards[0].Title = "mutated"

	fresh, _ := s.Board(1)
	assert.Equal(t, "Team", fresh.Title)
	assert.Equal(t, "a", fresh.Stacks[0].Cards[0].Title)
}

func TestStore_DueDatesAreNotShared(t *testing.T) {
	s := New()
	s.AddBoard(model.Board{ID: 1, Title: "Team"})

	due := time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC)
	stacks := []model.Stack{{ID: 10, BoardID: 1, Title: "ToDo", Cards: []model.Card{
		{ID: 100, StackID: 10, Title: "a", DueDate: &due},
	}}}
	require.NoError(t, s.ReplaceStacks(1, stacks))

	card := model.Card{ID: 101, Title: "b", DueDate: &due}
	require.NoError(t, s.AddCard(1, 10, card))

	// Neither the caller's value nor a reader's copy reaches the store
	due = due.AddDate(1, 0, 0)
	board, _ := s.Board(1)
	*board.Stacks[0].Cards[0].DueDate = time.Time{}

	fresh, _ := s.Board(1)
	want := time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC)
	require.Len(t, fresh.Stacks[0].Cards, 2)
	for _, c := range fresh.Stacks[0].Cards {
		require.NotNil(t, c.DueDate)
		assert.True(t, c.DueDate.Equal(want), "card %d due %v", c.ID, c.DueDate)
	}
	assert.NotSame(t, board.Stacks[0].Cards[0].DueDate, fresh.Stacks[0].Cards[0].DueDate)
}

func TestStore_ReplaceStacksSortsByOrder(t *testing.T) {
	s := seededStore(t)

	board, _ := s.Board(1)
	require.Len(t, board.Stacks, 2)
	assert.Equal(t, 10, board.Stacks[0].ID)
	assert.Equal(t, 20, board.Stacks[1].ID)

	assert.ErrorIs(t, s.ReplaceStacks(99, nil), ErrBoardNotFound)
}

func TestStore_AddStack(t *testing.T) {
	s := seededStore(t)

	require.NoError(t, s.AddStack(1, model.Stack{ID: 30, Title: "Review", Order: 0}))
	board, _ := s.Board(1)
	require.Len(t, board.Stacks, 3)
	assert.Equal(t, 30, board.Stacks[0].ID)

	require.NoError(t, s.AddStack(1, model.Stack{ID: 30, Title: "Review!", Order: 3}))
	board, _ = s.Board(1)
	require.Len(t, board.Stacks, 3)
	assert.Equal(t, "Review!", board.Stacks[2].Title)

	assert.ErrorIs(t, s.AddStack(2, model.Stack{ID: 1}), ErrBoardNotFound)
}

func TestStore_AddCard(t *testing.T) {
	s := seededStore(t)

	require.NoError(t, s.AddCard(1, 20, model.Card{ID: 200, Title: "new"}))
	assert.Equal(t, []int{200}, cardIDs(t, s, 1, 20))

	board, _ := s.Board(1)
	stack, _ := board.Stack(20)
	assert.Equal(t, 20, stack.Cards[0].StackID)

	assert.ErrorIs(t, s.AddCard(1, 99, model.Card{ID: 1}), ErrStackNotFound)
	assert.ErrorIs(t, s.AddCard(9, 20, model.Card{ID: 1}), ErrBoardNotFound)
}

func TestStore_MoveCardAndRevert(t *testing.T) {
	s := seededStore(t)

	prev, err := s.MoveCard(1, 10, 20, 101, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, prev)
	assert.Equal(t, []int{100, 102}, cardIDs(t, s, 1, 10))
	assert.Equal(t, []int{101}, cardIDs(t, s, 1, 20))

	board, _ := s.Board(1)
	stack, _ := board.Stack(20)
	assert.Equal(t, 20, stack.Cards[0].StackID)

	// Revert puts the card back where it was
	_, err = s.MoveCard(1, 20, 10, 101, prev)
	require.NoError(t, err)
	if diff := cmp.Diff([]int{100, 101, 102}, cardIDs(t, s, 1, 10)); diff != "" {
		t.Errorf("card order after revert mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, cardIDs(t, s, 1, 20))
}

func TestStore_MoveCardClampsIndex(t *testing.T) {
	s := seededStore(t)

	_, err := s.MoveCard(1, 10, 10, 100, 99)
	require.NoError(t, err)
	assert.Equal(t, []int{101, 102, 100}, cardIDs(t, s, 1, 10))

	_, err = s.MoveCard(1, 10, 10, 100, -5)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 101, 102}, cardIDs(t, s, 1, 10))
}

func TestStore_MoveCardErrors(t *testing.T) {
	s := seededStore(t)

	_, err := s.MoveCard(2, 10, 20, 100, 0)
	assert.ErrorIs(t, err, ErrBoardNotFound)

	_, err = s.MoveCard(1, 99, 20, 100, 0)
	assert.ErrorIs(t, err, ErrStackNotFound)

	_, err = s.MoveCard(1, 10, 99, 100, 0)
	assert.ErrorIs(t, err, ErrStackNotFound)

	_, err = s.MoveCard(1, 20, 10, 100, 0)
	assert.ErrorIs(t, err, ErrCardNotFound)

	// Failed moves leave state untouched
	assert.Equal(t, []int{100, 101, 102}, cardIDs(t, s, 1, 10))
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	s := New()

	var events []Event
	unsubscribe := s.Subscribe(func(e Event) { events = append(events, e) })

	s.AddBoard(model.Board{ID: 1})
	s.SetSession("https://cloud.example.com", "Basic abc")
	s.ClearSession()
	unsubscribe()
	s.DeleteAllBoards()

	assert.Equal(t, []Event{EventBoards, EventSession, EventSession}, events)
}

func TestStore_ListenerMayReadStore(t *testing.T) {
	s := New()

	var seen int
	s.Subscribe(func(e Event) {
		seen = len(s.Boards())
	})

	s.AddBoard(model.Board{ID: 1})
	assert.Equal(t, 1, seen)
}

func TestStore_Session(t *testing.T) {
	s := New()
	assert.False(t, s.Session().IsAuthenticated())

	s.SetSession("https://cloud.example.com", "Basic abc")
	session := s.Session()
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "https://cloud.example.com", session.Server)

	s.ClearSession()
	assert.Equal(t, Session{}, s.Session())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := seededStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			_ = s.AddCard(1, 20, model.Card{ID: 1000 + id})
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Boards()
		}()
	}
	wg.Wait()

	assert.Len(t, cardIDs(t, s, 1, 20), 20)
}

func TestEvent_String(t *testing.T) {
	assert.Equal(t, "boards", EventBoards.String())
	assert.Equal(t, "session", EventSession.String())
	assert.Equal(t, "unknown", Event(42).String())
}
