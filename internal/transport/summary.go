package transport

import (
	"net/http"

	"github.com/ganot/typeset-board/internal/domain/activity"
)

type activityResponse struct {
	Entries []activity.ActivityEntry `json:"entries"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.services.Summary.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := paging(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := activity.ListActivityOptions{Limit: limit, Offset: offset}
	if memberID := r.URL.Query().Get("member_id"); memberID != "" {
		opts.MemberID = &memberID
	}

	entries, err := s.services.Activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, activityResponse{Entries: entries})
}
