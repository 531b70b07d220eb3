package news

import "errors"

var (
	ErrInvalidLimit = errors.New("limit must be a positive integer")
	ErrInvalidFeed  = errors.New("invalid news feed")
)
