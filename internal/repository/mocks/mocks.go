package mocks

import (
	"context"

	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/stretchr/testify/mock"
)

// MemberRepository is a mock for member.Repository.
type MemberRepository struct {
	mock.Mock
}

func (m *MemberRepository) Create(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MemberRepository) Get(ctx context.Context, id string) (*member.Member, error) {
	args := m.Called(ctx, id)
	if mem, ok := args.Get(0).(*member.Member); ok {
		return mem, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MemberRepository) List(ctx context.Context) ([]member.Member, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]member.Member); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MemberRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MemberRepository) Update(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MemberRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity and member event logging.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SettingsRepository is a mock for gate.SettingsRepository.
type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *SettingsRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// SearchRepository is a mock for member.SearchRepository.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Search(ctx context.Context, query string, opts member.SearchOptions) ([]member.SearchResult, error) {
	args := m.Called(ctx, query, opts)
	if list, ok := args.Get(0).([]member.SearchResult); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
