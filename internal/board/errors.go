package board

import "errors"

// MaxTitleLength is the longest board title accepted
const MaxTitleLength = 100

var (
	ErrEmptyTitle   = errors.New("title is empty")
	ErrTitleTooLong = errors.New("title is too long")
	ErrMoveReverted = errors.New("card move reverted")
	ErrMissingLogin = errors.New("server, user and password are required")
)
