package linkcheck

import (
	"errors"
	"fmt"
)

var (
	// ErrRootNotFound means the site root is missing or is not a directory.
	ErrRootNotFound = errors.New("site root not found")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// DocumentError is a per-document failure. The document is skipped and the
// run continues.
type DocumentError struct {
	Path string
	Op   string // "read", "parse" or "walk"
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err must abort the whole run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrRootNotFound) || errors.Is(err, ErrInvalidConfig)
}
