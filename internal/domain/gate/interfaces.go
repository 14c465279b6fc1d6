package gate

import (
	"context"

	"github.com/ganot/typeset-board/internal/domain/activity"
)

// SettingsRepository stores the unlock flag.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ActivityRepository records lock and unlock events.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
