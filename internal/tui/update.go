package tui

import (
	"context"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/update"
)

// checkUpdate wraps the release check, returning "" when there is
// nothing newer.
func checkUpdate(ctx context.Context, version string) string {
	latest, ok := update.Check(ctx, version)
	if !ok {
		return ""
	}
	return latest
}
