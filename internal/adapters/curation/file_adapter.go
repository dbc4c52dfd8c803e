// Package curation loads the manual correction set for known clinics.
// Corrections live in a data file rather than in the resolution code so
// volatile business facts stay out of the algorithm.
package curation

import (
	"context"
	"encoding/json"
	"os"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/entities"
	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/repositories"
	apperrors "github.com/Vetlyst2025/Vetlyst102525/pkg/errors"
)

// FileAdapter implements CurationRepository over a local JSON file.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a curation repository reading from the given path.
func NewFileAdapter(path string) repositories.CurationRepository {
	return &FileAdapter{path: path}
}

// Overrides reads the correction set. A missing file means no overrides.
func (a *FileAdapter) Overrides(ctx context.Context) ([]entities.CurationOverride, error) {
	data, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read curation overrides", err)
	}

	var overrides []entities.CurationOverride
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, apperrors.NewInternalError("failed to parse curation overrides", err)
	}
	return overrides, nil
}
