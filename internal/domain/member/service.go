package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/repository"
	"github.com/ganot/typeset-board/internal/worklog"
	"github.com/google/uuid"
)

// UnnamedMember replaces a blank name on rename.
const UnnamedMember = "Unnamed"

// Service handles member operations.
type Service struct {
	repo       Repository
	search     SearchRepository
	activities ActivityRepository
	parseOpts  []worklog.Option
	logger     *slog.Logger
}

// NewService creates a new member service. search and activities may be nil.
func NewService(repo Repository, search SearchRepository, activities ActivityRepository, logger *slog.Logger, parseOpts ...worklog.Option) *Service {
	return &Service{
		repo:       repo,
		search:     search,
		activities: activities,
		parseOpts:  parseOpts,
		logger:     logger,
	}
}

// CreateRequest defines member creation inputs.
type CreateRequest struct {
	Name     string
	RawInput string
}

// Create adds a member. A blank name becomes "Member N" for the next slot.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Member, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		count, err := s.repo.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting members: %w", err)
		}
		name = fmt.Sprintf("Member %d", count+1)
	}

	now := time.Now()
	m := &Member{
		ID:        uuid.NewString(),
		Name:      name,
		RawInput:  req.RawInput,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}
	s.logActivity(ctx, m.ID, activity.TypeMemberAdded, fmt.Sprintf("added %s", m.Name))

	return s.derive(m), nil
}

// Get fetches a member by ID.
func (s *Service) Get(ctx context.Context, id string) (*Member, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.derive(m), nil
}

// List returns all members in creation order.
func (s *Service) List(ctx context.Context) ([]Member, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	out := make([]Member, 0, len(members))
	for i := range members {
		out = append(out, *s.derive(&members[i]))
	}
	return out, nil
}

// Rename changes a member's display name.
func (s *Service) Rename(ctx context.Context, id, name string) (*Member, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = UnnamedMember
	}
	if name == m.Name {
		return s.derive(m), nil
	}

	previous := m.Name
	m.Name = name
	m.UpdatedAt = time.Now()
	if err := s.save(ctx, m); err != nil {
		return nil, err
	}
	s.logActivity(ctx, m.ID, activity.TypeMemberRenamed, fmt.Sprintf("renamed %s to %s", previous, m.Name))

	return s.derive(m), nil
}

// UpdateInput replaces a member's pasted work log.
func (s *Service) UpdateInput(ctx context.Context, id, rawInput string) (*Member, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if rawInput == m.RawInput {
		return s.derive(m), nil
	}

	m.RawInput = rawInput
	m.UpdatedAt = time.Now()
	if err := s.save(ctx, m); err != nil {
		return nil, err
	}

	derived := s.derive(m)
	s.logActivity(ctx, m.ID, activity.TypeLogUpdated,
		fmt.Sprintf("%s logged %d chapters across %d projects", m.Name, derived.TotalChapters, len(derived.Projects)))

	return derived, nil
}

// Delete removes a member.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("deleting member: %w", err)
	}
	s.logActivity(ctx, id, activity.TypeMemberRemoved, fmt.Sprintf("removed member %s", id))
	return nil
}

// Search finds members whose name or work log mentions query.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" || s.search == nil {
		return nil, ErrInvalidInput
	}
	results, err := s.search.Search(ctx, query, opts)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidInput) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("searching members: %w", err)
	}
	return results, nil
}

func (s *Service) load(ctx context.Context, id string) (*Member, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting member: %w", err)
	}
	return m, nil
}

func (s *Service) save(ctx context.Context, m *Member) error {
	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("updating member: %w", err)
	}
	return nil
}

// derive recomputes the parsed projects from the raw input.
func (s *Service) derive(m *Member) *Member {
	out := *m
	out.Projects = worklog.Parse(m.RawInput, s.parseOpts...)
	out.TotalChapters = worklog.Total(out.Projects)
	return &out
}

func (s *Service) logActivity(ctx context.Context, memberID string, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	id := memberID
	err := s.activities.Log(ctx, &activity.ActivityEntry{
		MemberID:     &id,
		ActivityType: typ,
		Summary:      summary,
		CreatedAt:    time.Now(),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("failed to log activity", "type", typ, "member_id", memberID, "error", err)
	}
}
