package transport

import (
	"net/http"

	"github.com/ganot/typeset-board/internal/worklog"
)

type parseRequest struct {
	Text string `json:"text"`
	// RangeExpansion overrides the server default when set.
	RangeExpansion *bool `json:"range_expansion"`
}

type parseResponse struct {
	Projects      []worklog.Project `json:"projects"`
	TotalChapters int               `json:"total_chapters"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.parseOpts
	if req.RangeExpansion != nil {
		opts = append(opts[:len(opts):len(opts)], worklog.WithRangeExpansion(*req.RangeExpansion))
	}

	projects := worklog.Parse(req.Text, opts...)
	writeJSON(w, http.StatusOK, parseResponse{Projects: projects, TotalChapters: worklog.Total(projects)})
}
