package member

import (
	"context"

	"github.com/ganot/typeset-board/internal/domain/activity"
)

// Repository provides persistence for members.
type Repository interface {
	Create(ctx context.Context, m *Member) error
	Get(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id string) error
}

// SearchRepository provides full-text search over members.
type SearchRepository interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// ActivityRepository records member events.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
