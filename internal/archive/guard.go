package archive

import "fmt"

// Guard scopes one open archive handle. Close is idempotent, so callers can
// defer it and still call it explicitly to observe the close result.
type Guard struct {
	archive  Archive
	closed   bool
	closeErr error
}

// Acquire opens path and wraps the handle in a Guard.
func Acquire(opener Opener, path string) (*Guard, error) {
	a, err := opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	return &Guard{archive: a}, nil
}

// Archive returns the guarded handle.
func (g *Guard) Archive() Archive {
	return g.archive
}

// Close closes the handle on first call and returns the same result on
// every later call.
func (g *Guard) Close() error {
	if g.closed {
		return g.closeErr
	}
	g.closed = true
	g.closeErr = g.archive.Close()
	return g.closeErr
}
