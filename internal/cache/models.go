package cache

import (
	"time"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

// Snapshot is the single cached value: the full post list plus the
// timestamp of the generation run that produced it.
type Snapshot struct {
	Posts       []post.Post `json:"posts"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

// Stale reports whether the snapshot is past ttl. A snapshot aged
// exactly ttl is still fresh.
func (s Snapshot) Stale(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.GeneratedAt) > ttl
}
