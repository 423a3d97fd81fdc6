package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched when an expected file is missing.
	ErrNotFound = errors.New("not found")
	// ErrSecurity is matched when an archive tries to escape its destination.
	ErrSecurity = errors.New("security violation")
)

// NotFoundError names the file that could not be located.
type NotFoundError struct {
	Name string
	Root string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found under %s", e.Name, e.Root)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PathTraversalError reports an archive entry resolving outside the
// extraction directory.
type PathTraversalError struct {
	Entry string
	Dest  string
}

func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("blocked path traversal in archive: entry %q escapes %s", e.Entry, e.Dest)
}

func (e *PathTraversalError) Is(target error) bool { return target == ErrSecurity }
