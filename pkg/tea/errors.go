package tea

import "errors"

var (
	ErrInvalidKeyLength   = errors.New("tea: key material must be exactly 16 bytes")
	ErrInvalidKeyShape    = errors.New("tea: key must have exactly 4 words")
	ErrInvalidKeyElement  = errors.New("tea: key word is not a valid 32-bit integer")
	ErrInvalidRounds      = errors.New("tea: rounds must be a positive integer")
	ErrInvalidBlockLength = errors.New("tea: block must be exactly 8 bytes")
	ErrMalformedBlock     = errors.New("tea: block must have exactly 2 words")
	ErrMalformedKey       = errors.New("tea: key schedule must have exactly 4 words")
)
