package member

import (
	"time"

	"github.com/ganot/typeset-board/internal/worklog"
)

// Member is one team member and the work log they pasted.
type Member struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	RawInput      string            `json:"raw_input"`
	Projects      []worklog.Project `json:"projects"`
	TotalChapters int               `json:"total_chapters"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// SearchResult is a member whose name or work log matched a search.
type SearchResult struct {
	MemberID string  `json:"member_id"`
	Name     string  `json:"name"`
	Rank     float64 `json:"rank"`
	Snippet  string  `json:"snippet"`
}

// SearchOptions provides paging for search.
type SearchOptions struct {
	Limit  int
	Offset int
}
