package transport

import (
	"net/http"
	"strconv"

	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/go-chi/chi/v5"
)

type createMemberRequest struct {
	Name     string `json:"name"`
	RawInput string `json:"raw_input"`
}

// updateMemberRequest applies whichever fields are present.
type updateMemberRequest struct {
	Name     *string `json:"name"`
	RawInput *string `json:"raw_input"`
}

type listMembersResponse struct {
	Members []member.Member `json:"members"`
}

type searchMembersResponse struct {
	Results []member.SearchResult `json:"results"`
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := s.services.Members.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listMembersResponse{Members: members})
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.services.Members.Create(r.Context(), member.CreateRequest{Name: req.Name, RawInput: req.RawInput})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.services.Members.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var req updateMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Name == nil && req.RawInput == nil {
		s.writeError(w, r, member.ErrInvalidInput)
		return
	}

	id := chi.URLParam(r, "id")
	var (
		m   *member.Member
		err error
	)
	if req.Name != nil {
		if m, err = s.services.Members.Rename(r.Context(), id, *req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if req.RawInput != nil {
		if m, err = s.services.Members.UpdateInput(r.Context(), id, *req.RawInput); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Members.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearchMembers(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := paging(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	results, err := s.services.Members.Search(r.Context(), r.URL.Query().Get("q"), member.SearchOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if results == nil {
		results = []member.SearchResult{}
	}
	writeJSON(w, http.StatusOK, searchMembersResponse{Results: results})
}

// paging reads the optional limit and offset query parameters.
func paging(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		return 0, 0, err
	}
	offset, err := intParam(q.Get("offset"))
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, member.ErrInvalidInput
	}
	return n, nil
}
