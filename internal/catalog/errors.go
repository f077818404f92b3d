package catalog

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateKey      = errors.New("a book with this ISBN already exists")
	ErrInvalidConstraint = errors.New("invalid filter constraint")
	ErrInvalidValue      = errors.New("invalid rating value. Must be an integer between 1 and 5")
	ErrInvalidField      = errors.New("invalid field value")
)
