package summary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/typeset-board/internal/domain/member"
)

// MemberLister provides the members to summarise.
type MemberLister interface {
	List(ctx context.Context) ([]member.Member, error)
}

// Service builds the team summary from the current members.
type Service struct {
	members MemberLister
	logger  *slog.Logger
}

// NewService creates a new summary service.
func NewService(members MemberLister, logger *slog.Logger) *Service {
	return &Service{members: members, logger: logger}
}

// Get returns the current team summary.
func (s *Service) Get(ctx context.Context) (Summary, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("listing members: %w", err)
	}
	return Aggregate(members), nil
}
