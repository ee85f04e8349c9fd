package model

import (
	"strings"
	"time"
)

// CardTypePlain is the only card type the mobile client creates
const CardTypePlain = "plain"

// Card represents a single task on a stack
type Card struct {
	ID             int        `json:"id"`
	StackID        int        `json:"stackId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	Order          int        `json:"order"`
	Archived       bool       `json:"archived"`
	DueDate        *time.Time `json:"duedate"`
	Labels         []Label    `json:"labels"`
	CommentsUnread int        `json:"commentsUnread"`
	DeletedAt      int64      `json:"deletedAt"`
	LastModified   int64      `json:"lastModified"`
}

// IsOverdue returns true if the card has a due date before now
func (c *Card) IsOverdue(now time.Time) bool {
	return c.DueDate != nil && c.DueDate.Before(now)
}

// GetDueString returns the due date formatted for display, or "—" if none
func (c *Card) GetDueString() string {
	if c.DueDate == nil {
		return DashPlaceholder
	}
	return c.DueDate.Local().Format("2006-01-02 15:04")
}

// GetDisplayTitle returns the title on a single line
func (c *Card) GetDisplayTitle() string {
	title := strings.Join(strings.Fields(c.Title), " ")
	if title == "" {
		return DashPlaceholder
	}
	return title
}
