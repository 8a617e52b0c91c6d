package exception

import "errors"

// Frame decode errors. All of them mean the buffer never reaches the book.
var (
	ErrFrameTooShort   = errors.New("codec: frame too short")
	ErrInvalidSideTag  = errors.New("codec: invalid side tag")
	ErrInvalidVenueTag = errors.New("codec: invalid venue tag")
)
