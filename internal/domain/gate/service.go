// Package gate guards the tools surface behind a shared team password.
package gate

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/repository"
)

// FlagKey is the settings key holding the unlock state.
const FlagKey = "tools_authenticated"

// Service checks the team password and tracks the unlock flag.
type Service struct {
	settings   SettingsRepository
	activities ActivityRepository
	digest     [sha256.Size]byte
	enabled    bool
	logger     *slog.Logger
}

// NewService creates a gate. An empty password disables the gate, leaving
// it permanently unlocked.
func NewService(settings SettingsRepository, activities ActivityRepository, password string, logger *slog.Logger) *Service {
	return &Service{
		settings:   settings,
		activities: activities,
		digest:     sha256.Sum256([]byte(password)),
		enabled:    password != "",
		logger:     logger,
	}
}

// Enabled reports whether a password is required.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Login unlocks the tools when password matches.
func (s *Service) Login(ctx context.Context, password string) (bool, error) {
	if !s.enabled {
		return true, nil
	}

	given := sha256.Sum256([]byte(password))
	if subtle.ConstantTimeCompare(given[:], s.digest[:]) != 1 {
		if s.logger != nil {
			s.logger.Info("gate login rejected")
		}
		return false, nil
	}

	if err := s.settings.Set(ctx, FlagKey, "true"); err != nil {
		return false, fmt.Errorf("storing gate flag: %w", err)
	}
	s.logActivity(ctx, activity.TypeToolsUnlocked, "tools unlocked")
	return true, nil
}

// Logout locks the tools again.
func (s *Service) Logout(ctx context.Context) error {
	if !s.enabled {
		return nil
	}
	if err := s.settings.Set(ctx, FlagKey, "false"); err != nil {
		return fmt.Errorf("storing gate flag: %w", err)
	}
	s.logActivity(ctx, activity.TypeToolsLocked, "tools locked")
	return nil
}

// IsUnlocked reports the stored flag. A missing flag means locked.
func (s *Service) IsUnlocked(ctx context.Context) (bool, error) {
	if !s.enabled {
		return true, nil
	}
	value, err := s.settings.Get(ctx, FlagKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("reading gate flag: %w", err)
	}
	return value == "true", nil
}

func (s *Service) logActivity(ctx context.Context, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, &activity.ActivityEntry{ActivityType: typ, Summary: summary}); err != nil && s.logger != nil {
		s.logger.Warn("failed to log activity", "type", typ, "error", err)
	}
}
