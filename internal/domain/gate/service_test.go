package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/typeset-board/internal/domain/gate"
	"github.com/ganot/typeset-board/internal/repository"
	"github.com/ganot/typeset-board/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGate_LoginSetsFlag(t *testing.T) {
	ctx := context.Background()

	settings := &mocks.SettingsRepository{}
	settings.On("Set", ctx, gate.FlagKey, "true").Return(nil)
	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.Anything).Return(nil)

	svc := gate.NewService(settings, activities, "s3cret", nil)
	ok, err := svc.Login(ctx, "s3cret")
	require.NoError(t, err)
	require.True(t, ok)
	settings.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestGate_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()

	settings := &mocks.SettingsRepository{}
	svc := gate.NewService(settings, nil, "s3cret", nil)
	ok, err := svc.Login(ctx, "guess")
	require.NoError(t, err)
	require.False(t, ok)
	settings.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestGate_IsUnlocked(t *testing.T) {
	ctx := context.Background()

	settings := &mocks.SettingsRepository{}
	settings.On("Get", ctx, gate.FlagKey).Return("", repository.ErrNotFound).Once()
	settings.On("Get", ctx, gate.FlagKey).Return("true", nil).Once()
	settings.On("Get", ctx, gate.FlagKey).Return("", errors.New("db closed")).Once()

	svc := gate.NewService(settings, nil, "s3cret", nil)

	unlocked, err := svc.IsUnlocked(ctx)
	require.NoError(t, err)
	require.False(t, unlocked)

	unlocked, err = svc.IsUnlocked(ctx)
	require.NoError(t, err)
	require.True(t, unlocked)

	_, err = svc.IsUnlocked(ctx)
	require.Error(t, err)
}

func TestGate_Logout(t *testing.T) {
	ctx := context.Background()

	settings := &mocks.SettingsRepository{}
	settings.On("Set", ctx, gate.FlagKey, "false").Return(nil)

	svc := gate.NewService(settings, nil, "s3cret", nil)
	require.NoError(t, svc.Logout(ctx))
	settings.AssertExpectations(t)
}

func TestGate_DisabledIsAlwaysUnlocked(t *testing.T) {
	ctx := context.Background()

	svc := gate.NewService(&mocks.SettingsRepository{}, nil, "", nil)
	require.False(t, svc.Enabled())

	unlocked, err := svc.IsUnlocked(ctx)
	require.NoError(t, err)
	require.True(t, unlocked)

	ok, err := svc.Login(ctx, "anything")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, svc.Logout(ctx))
}
