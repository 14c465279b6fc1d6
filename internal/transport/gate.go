package transport

import (
	"context"
	"net/http"

	"github.com/ganot/typeset-board/internal/domain/gate"
)

// GateChecker reports whether the tools surface is unlocked.
type GateChecker interface {
	IsUnlocked(ctx context.Context) (bool, error)
}

// GateMiddleware rejects requests while the gate is locked.
func GateMiddleware(checker GateChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if checker == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			unlocked, err := checker.IsUnlocked(r.Context())
			if err == nil && !unlocked {
				err = gate.ErrLocked
			}
			if err != nil {
				status, body := mapError(err)
				writeJSON(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type gateStatusResponse struct {
	Enabled  bool `json:"enabled"`
	Unlocked bool `json:"unlocked"`
}

type loginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleGateStatus(w http.ResponseWriter, r *http.Request) {
	unlocked, err := s.services.Gate.IsUnlocked(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, gateStatusResponse{Enabled: s.services.Gate.Enabled(), Unlocked: unlocked})
}

func (s *Server) handleGateLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	ok, err := s.services.Gate.Login(r.Context(), req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Code: "INVALID_PASSWORD", Message: "incorrect password"})
		return
	}
	writeJSON(w, http.StatusOK, gateStatusResponse{Enabled: s.services.Gate.Enabled(), Unlocked: true})
}

func (s *Server) handleGateLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Gate.Logout(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	enabled := s.services.Gate.Enabled()
	writeJSON(w, http.StatusOK, gateStatusResponse{Enabled: enabled, Unlocked: !enabled})
}
