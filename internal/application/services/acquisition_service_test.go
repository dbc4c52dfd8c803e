package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vetlyst2025/Vetlyst102525/internal/adapters/cache"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
)

type fakeAcquirer struct {
	mu sync.Mutex

	clinics      []entities.Clinic
	generateErr  error
	generateHits int

	websites    map[string]string
	websiteErr  error
	websiteHits int
}

func (f *fakeAcquirer) GenerateClinics(ctx context.Context) ([]entities.Clinic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generateHits++
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return append([]entities.Clinic(nil), f.clinics...), nil
}

func (f *fakeAcquirer) FindWebsite(ctx context.Context, name, address string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.websiteHits++
	if f.websiteErr != nil {
		return "", f.websiteErr
	}
	return f.websites[name], nil
}

func newTestCache(t *testing.T) *cache.ClinicCache {
	t.Helper()
	return cache.NewClinicCache(cache.NewMemoryAdapter(), 24*time.Hour)
}

func TestAcquisitionService_LiveFetchPopulatesCache(t *testing.T) {
	ctx := context.Background()
	acquirer := &fakeAcquirer{clinics: []entities.Clinic{
		{Name: "Zeta Vet", Address: "2 Oak St", Categories: []string{"General Practice"}, WebsiteURL: "https://zetavet.example"},
		{Name: "Alpha Vet", Address: "1 Elm St", Categories: []string{"General Practice"}, WebsiteURL: "https://alphavet.example"},
	}}
	clinicCache := newTestCache(t)
	svc := NewAcquisitionService(acquirer, clinicCache, nil, 2)

	set, err := svc.Resolve(ctx)
	require.NoError(t, err)

	assert.Equal(t, entities.SourcePrimary, set.Source)
	require.Len(t, set.Clinics, 2)
	assert.Equal(t, "Alpha Vet", set.Clinics[0].Name)

	entry, ok := clinicCache.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, set.Clinics, entry.Payload)
}

func TestAcquisitionService_FreshCacheShortCircuits(t *testing.T) {
	ctx := context.Background()
	acquirer := &fakeAcquirer{clinics: []entities.Clinic{
		{Name: "Live Vet", Address: "1 Elm St", Categories: []string{"General Practice"}, WebsiteURL: "https://livevet.example"},
	}}
	clinicCache := newTestCache(t)
	svc := NewAcquisitionService(acquirer, clinicCache, nil, 2)

	_, err := svc.Resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, acquirer.generateHits)

	set, err := svc.Resolve(ctx)
	require.NoError(t, err)

	assert.Equal(t, entities.SourceCache, set.Source)
	assert.Equal(t, 1, acquirer.generateHits, "fresh cache must not trigger a live fetch")
}

func TestAcquisitionService_StaleCacheServedOnLiveFailure(t *testing.T) {
	ctx := context.Background()
	clinicCache := newTestCache(t)

	stale := []entities.Clinic{{Name: "Old Vet", Address: "1 Past Ln", Categories: []string{"General Practice"}}}
	clinicCache.Write(ctx, stale, time.Now().Add(-48*time.Hour))

	acquirer := &fakeAcquirer{generateErr: errors.New("api quota exceeded")}
	svc := NewAcquisitionService(acquirer, clinicCache, nil, 2)

	set, err := svc.Resolve(ctx)
	require.NoError(t, err)

	assert.Equal(t, entities.SourceCache, set.Source)
	assert.Equal(t, stale, set.Clinics)
}

func TestAcquisitionService_FailurePropagatesWithoutCache(t *testing.T) {
	acquirer := &fakeAcquirer{generateErr: errors.New("api quota exceeded")}
	svc := NewAcquisitionService(acquirer, newTestCache(t), nil, 2)

	_, err := svc.Resolve(context.Background())
	assert.Error(t, err)
}

func TestAcquisitionService_EnrichesMissingWebsites(t *testing.T) {
	ctx := context.Background()
	acquirer := &fakeAcquirer{
		clinics: []entities.Clinic{
			{Name: "Has Site", Address: "1 A St", Categories: []string{"General Practice"}, WebsiteURL: "https://hassite.example"},
			{Name: "No Site", Address: "2 B St", Categories: []string{"General Practice"}},
			{Name: "Bad Site", Address: "3 C St", Categories: []string{"General Practice"}, WebsiteURL: "not-a-url"},
		},
		websites: map[string]string{
			"No Site":  "https://nosite.example",
			"Bad Site": "https://badsite.example",
		},
	}
	svc := NewAcquisitionService(acquirer, newTestCache(t), nil, 2)

	set, err := svc.Resolve(ctx)
	require.NoError(t, err)

	byName := make(map[string]entities.Clinic)
	for _, c := range set.Clinics {
		byName[c.Name] = c
	}
	assert.Equal(t, "https://hassite.example", byName["Has Site"].WebsiteURL)
	assert.Equal(t, "https://nosite.example", byName["No Site"].WebsiteURL)
	assert.Equal(t, "https://badsite.example", byName["Bad Site"].WebsiteURL)
	assert.Equal(t, 2, acquirer.websiteHits, "clinics with valid sites are not enriched")
}

func TestAcquisitionService_EnrichmentFailuresAreIsolated(t *testing.T) {
	ctx := context.Background()
	acquirer := &fakeAcquirer{
		clinics: []entities.Clinic{
			{Name: "A Vet", Address: "1 A St", Categories: []string{"General Practice"}},
			{Name: "B Vet", Address: "2 B St", Categories: []string{"General Practice"}},
		},
		websiteErr: errors.New("lookup timeout"),
	}
	svc := NewAcquisitionService(acquirer, newTestCache(t), nil, 2)

	set, err := svc.Resolve(ctx)
	require.NoError(t, err, "enrichment failures must never fail the batch")
	require.Len(t, set.Clinics, 2)
	assert.Empty(t, set.Clinics[0].WebsiteURL)
}

func TestAcquisitionService_DeduplicatesAndCurates(t *testing.T) {
	ctx := context.Background()
	acquirer := &fakeAcquirer{clinics: []entities.Clinic{
		{Name: "Twin Vet", Address: "5 Same St", Phone: "first", Categories: []string{"General Practice"}, WebsiteURL: "https://twin.example"},
		{Name: "twin vet", Address: "5 same st", Phone: "second", Categories: []string{"General Practice"}, WebsiteURL: "https://twin.example"},
	}}
	curation := &fakeCuration{overrides: []entities.CurationOverride{
		{Key: entities.DedupKey("Twin Vet", "5 Same St"), Phone: "(608) 555-0042"},
	}}
	svc := NewAcquisitionService(acquirer, newTestCache(t), curation, 2)

	set, err := svc.Resolve(ctx)
	require.NoError(t, err)

	require.Len(t, set.Clinics, 1)
	assert.Equal(t, "(608) 555-0042", set.Clinics[0].Phone)
}
