package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/domain/gate"
	"github.com/ganot/typeset-board/internal/domain/member"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := mapError(err)
	if status == http.StatusInternalServerError && s.logger != nil {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, body)
}

func mapError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, member.ErrMemberNotFound):
		return http.StatusNotFound, ErrorResponse{Code: "MEMBER_NOT_FOUND", Message: "member not found"}
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, ErrorResponse{Code: "INVALID_BODY", Message: err.Error()}
	case errors.Is(err, member.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{Code: "INVALID_INPUT", Message: "invalid input"}
	case errors.Is(err, gate.ErrLocked):
		return http.StatusUnauthorized, ErrorResponse{Code: "LOCKED", Message: "tools are locked"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Code: "INTERNAL", Message: "internal error"}
	}
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Join(errInvalidBody, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
