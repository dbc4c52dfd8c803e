package repositories

import (
	"context"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
)

// RawRecord is one untyped clinic row as delivered by a source. Key naming
// is not guaranteed; several historical conventions coexist in the data and
// the normalizer probes candidate keys in order.
type RawRecord = map[string]interface{}

// ClinicSource fetches raw clinic records from the primary data store.
type ClinicSource interface {
	// FetchAll returns every row of the clinic table. A transport or query
	// failure returns an error; an empty table returns an empty slice.
	FetchAll(ctx context.Context) ([]RawRecord, error)
}

// SnapshotSource fetches the pre-serialized canonical clinic list used as
// the fallback when the primary source yields nothing usable.
type SnapshotSource interface {
	FetchAll(ctx context.Context) ([]entities.Clinic, error)
}

// CurationRepository supplies the manual correction set applied to resolved
// clinic lists.
type CurationRepository interface {
	Overrides(ctx context.Context) ([]entities.CurationOverride, error)
}
