package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
)

func sampleClinics() []entities.Clinic {
	return []entities.Clinic{
		{
			Name:       "Badger Animal Hospital",
			Address:    "1 Regent St",
			City:       "Madison",
			Phone:      "(608) 555-0100",
			Categories: []string{"General Practice"},
		},
		{
			Name:       "Isthmus Emergency Vet",
			Address:    "22 Willy St",
			City:       "Madison",
			Phone:      "(608) 555-0111",
			Categories: []string{"Emergency", "Urgent Care"},
		},
	}
}

func TestClinicCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cc := NewClinicCache(NewMemoryAdapter(), 24*time.Hour)
	now := time.Now()

	cc.Write(ctx, sampleClinics(), now)

	entry, ok := cc.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, sampleClinics(), entry.Payload)
	assert.Equal(t, now.UnixMilli(), entry.FetchedAtMs)
	assert.True(t, cc.Fresh(entry, now))
}

func TestClinicCache_FreshnessBoundary(t *testing.T) {
	ctx := context.Background()
	cc := NewClinicCache(NewMemoryAdapter(), 24*time.Hour)
	now := time.Now()

	cc.Write(ctx, sampleClinics(), now)
	entry, ok := cc.Read(ctx)
	require.True(t, ok)

	assert.True(t, cc.Fresh(entry, now.Add(23*time.Hour)))
	assert.False(t, cc.Fresh(entry, now.Add(24*time.Hour)))
	assert.False(t, cc.Fresh(entry, now.Add(48*time.Hour)))
}

func TestClinicCache_StaleEntryStaysReadable(t *testing.T) {
	ctx := context.Background()
	cc := NewClinicCache(NewMemoryAdapter(), 24*time.Hour)
	now := time.Now().Add(-48 * time.Hour)

	cc.Write(ctx, sampleClinics(), now)

	// Past TTL, but still present for stale-fallback reads.
	entry, ok := cc.Read(ctx)
	require.True(t, ok)
	assert.False(t, cc.Fresh(entry, time.Now()))
	assert.Equal(t, sampleClinics(), entry.Payload)
}

func TestClinicCache_ReadAbsent(t *testing.T) {
	cc := NewClinicCache(NewMemoryAdapter(), 24*time.Hour)

	_, ok := cc.Read(context.Background())
	assert.False(t, ok)
}

func TestClinicCache_MalformedEntryTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryAdapter()
	require.NoError(t, backend.Set(ctx, clinicCacheKey, []byte("not json"), 0))

	cc := NewClinicCache(backend, 24*time.Hour)
	_, ok := cc.Read(ctx)
	assert.False(t, ok)
}

type failingProvider struct{}

func (failingProvider) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}

func (failingProvider) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend down")
}

func (failingProvider) Delete(context.Context, string) error {
	return errors.New("backend down")
}

func TestClinicCache_BackendFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	cc := NewClinicCache(failingProvider{}, 24*time.Hour)

	// Neither call may panic or surface the backend error.
	cc.Write(ctx, sampleClinics(), time.Now())
	_, ok := cc.Read(ctx)
	assert.False(t, ok)
}
