package player

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/store"
)

func TestNormalizeNickname(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"neo", "neo", false},
		{"  trinity  ", "trinity", false},
		{strings.Repeat("a", 20), strings.Repeat("a", 20), false},
		{strings.Repeat("é", 20), strings.Repeat("é", 20), false},
		{strings.Repeat("a", 21), "", true},
		{"   ", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeNickname(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidNickname)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNickname_RoundTripAndLabel(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	name, err := svc.Nickname(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, domain.DefaultPlayerLabel, svc.Label(ctx, "p1"))

	saved, err := svc.SetNickname(ctx, "p1", " morpheus ")
	require.NoError(t, err)
	assert.Equal(t, "morpheus", saved)

	name, err = svc.Nickname(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "morpheus", name)
	assert.Equal(t, "morpheus", svc.Label(ctx, "p1"))
}

func TestSetNickname_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory())

	_, err := svc.SetNickname(ctx, "", "neo")
	assert.ErrorIs(t, err, domain.ErrMissingIdentity)

	_, err = svc.SetNickname(ctx, "p1", strings.Repeat("x", 30))
	assert.ErrorIs(t, err, domain.ErrInvalidNickname)
}

func TestActiveMarker(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := NewService(mem)

	active, err := svc.IsActive(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, active)

	require.NoError(t, svc.SetActive(ctx, "p1", true))
	active, _ = svc.IsActive(ctx, "p1")
	assert.True(t, active)

	require.NoError(t, svc.SetActive(ctx, "p1", false))
	active, _ = svc.IsActive(ctx, "p1")
	assert.False(t, active)
	assert.Equal(t, 0, mem.Len())
}
