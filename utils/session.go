package utils

import (
	"context"

	"tirthyatra/globals"
)

// SessionID returns the id set by middleware.Session, or "" outside it.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(globals.SessionKey).(string)
	return id
}
