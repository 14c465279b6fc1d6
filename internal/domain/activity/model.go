package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeMemberAdded   ActivityType = "member_added"
	TypeMemberRenamed ActivityType = "member_renamed"
	TypeLogUpdated    ActivityType = "log_updated"
	TypeMemberRemoved ActivityType = "member_removed"
	TypeToolsUnlocked ActivityType = "tools_unlocked"
	TypeToolsLocked   ActivityType = "tools_locked"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	MemberID     *string      `json:"member_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
