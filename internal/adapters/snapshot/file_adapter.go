// Package snapshot fetches the pre-serialized clinic list used as the
// fallback data source. The snapshot is produced by the acquisition
// pipeline and shipped with the application.
package snapshot

import (
	"context"
	"encoding/json"
	"os"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/repositories"
	apperrors "github.com/Vetlyst2025/Vetlyst102525/pkg/errors"
	"github.com/Vetlyst2025/Vetlyst102525/pkg/normalize"
)

// FileAdapter implements SnapshotSource over a local JSON file.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a snapshot source reading from the given path.
func NewFileAdapter(path string) repositories.SnapshotSource {
	return &FileAdapter{path: path}
}

// FetchAll reads and decodes the snapshot. Records are re-normalized
// defensively: the file is canonical in shape but not trusted to satisfy
// the entity invariants, and records without a usable name are dropped.
func (a *FileAdapter) FetchAll(ctx context.Context) ([]entities.Clinic, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to read clinic snapshot", err)
	}

	var raw []entities.Clinic
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.NewExternalError("failed to parse clinic snapshot", err)
	}

	clinics := make([]entities.Clinic, 0, len(raw))
	for _, record := range raw {
		if clinic, ok := normalize.Clinic(record); ok {
			clinics = append(clinics, clinic)
		}
	}
	return clinics, nil
}
