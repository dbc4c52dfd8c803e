package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/Vetlyst2025/Vetlyst102525/internal/domain/repositories"
	"github.com/Vetlyst2025/Vetlyst102525/internal/infrastructure/clients/postgres"
	apperrors "github.com/Vetlyst2025/Vetlyst102525/pkg/errors"
)

// ClinicAdapter implements the ClinicSource interface against the primary
// clinic table. The table schema is not trusted: columns are read
// dynamically and returned as raw records for the normalizer to probe.
type ClinicAdapter struct {
	client *postgres.Client
	db     *goqu.Database
	table  string
}

// NewClinicAdapter creates a new clinic adapter for the named table.
func NewClinicAdapter(client *postgres.Client, table string) repositories.ClinicSource {
	return &ClinicAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
		table:  table,
	}
}

// FetchAll retrieves every row of the clinic table as raw records.
func (a *ClinicAdapter) FetchAll(ctx context.Context) ([]repositories.RawRecord, error) {
	query, args, err := a.db.From(a.table).Select(goqu.Star()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build clinic query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to query clinic table", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read clinic columns", err)
	}

	var records []repositories.RawRecord
	for rows.Next() {
		values := make([]interface{}, len(columns))
		scanTargets := make([]interface{}, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}

		if err := rows.Scan(scanTargets...); err != nil {
			return nil, apperrors.NewInternalError("failed to scan clinic row", err)
		}

		record := make(repositories.RawRecord, len(columns))
		for i, column := range columns {
			record[column] = values[i]
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("failed to iterate clinic rows", err)
	}

	return records, nil
}
