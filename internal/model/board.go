package model

import (
	"sort"
	"strings"
)

// User is a Nextcloud account as embedded in board payloads
type User struct {
	PrimaryKey  string `json:"primaryKey"`
	UID         string `json:"uid"`
	DisplayName string `json:"displayname"`
}

// Label is a colored tag defined on a board and attached to cards
type Label struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Color   string `json:"color"`
	BoardID int    `json:"boardId"`
	CardID  int    `json:"cardId,omitempty"`
}

// Board represents a Deck board with its stacks
type Board struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Color        string  `json:"color"` // 6 hex digits, no leading '#'
	Archived     bool    `json:"archived"`
	DeletedAt    int64   `json:"deletedAt"` // unix seconds, 0 if live
	LastModified int64   `json:"lastModified"`
	Owner        User    `json:"owner"`
	Labels       []Label `json:"labels,omitempty"`
	Stacks       []Stack `json:"stacks,omitempty"`
}

// Stack represents a column of cards inside a board
type Stack struct {
	ID           int    `json:"id"`
	BoardID      int    `json:"boardId"`
	Title        string `json:"title"`
	Order        int    `json:"order"`
	DeletedAt    int64  `json:"deletedAt"`
	LastModified int64  `json:"lastModified"`
	Cards        []Card `json:"cards,omitempty"`
}

// IsVisible reports whether the board should be listed (not archived, not deleted)
func (b *Board) IsVisible() bool {
	return !b.Archived && b.DeletedAt == 0
}

// Stack returns the stack with the given ID
func (b *Board) Stack(id int) (*Stack, bool) {
	for i := range b.Stacks {
		if b.Stacks[i].ID == id {
			return &b.Stacks[i], true
		}
	}
	return nil, false
}

// CardCount returns the number of cards over all stacks
func (b *Board) CardCount() int {
	count := 0
	for _, stack := range b.Stacks {
		count += len(stack.Cards)
	}
	return count
}

// DefaultStackID returns the ID of the first stack by order, or 0 if the board has none
func (b *Board) DefaultStackID() int {
	if len(b.Stacks) == 0 {
		return 0
	}
	stacks := make([]Stack, len(b.Stacks))
	copy(stacks, b.Stacks)
	SortStacks(stacks)
	return stacks[0].ID
}

// MaxStackOrder returns the highest stack order on the board, -1 when empty
func (b *Board) MaxStackOrder() int {
	max := -1
	for _, stack := range b.Stacks {
		if stack.Order > max {
			max = stack.Order
		}
	}
	return max
}

// GetDisplayTitle returns the title with whitespace that breaks row layout removed
func (b *Board) GetDisplayTitle() string {
	title := strings.Join(strings.Fields(b.Title), " ")
	if title == "" {
		return DashPlaceholder
	}
	return title
}

// Card returns the card with the given ID and its index in the stack, or -1
func (s *Stack) Card(id int) (*Card, int) {
	for i := range s.Cards {
		if s.Cards[i].ID == id {
			return &s.Cards[i], i
		}
	}
	return nil, -1
}

// SortStacks orders stacks by Order, then ID
func SortStacks(stacks []Stack) {
	sort.SliceStable(stacks, func(i, j int) bool {
		if stacks[i].Order != stacks[j].Order {
			return stacks[i].Order < stacks[j].Order
		}
		return stacks[i].ID < stacks[j].ID
	})
}

// DashPlaceholder is shown instead of empty titles
const DashPlaceholder = "—"
