package cli

import (
	"apptrack/internal/tracker"
)

func errNotFound(kind, id string) error {
	return tracker.NotFoundError{Kind: kind, ID: id}
}
