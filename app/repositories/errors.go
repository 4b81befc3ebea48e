package repositories

import "errors"

// ErrNotFound is returned when a referenced record does not exist.
// HTTP boundaries map it to a 404 response.
var ErrNotFound = errors.New("record not found")
