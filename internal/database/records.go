package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"agritrack/backend/internal/records"
)

// Domain queries. Every production record is joined to the farmer registry
// so it reaches the engine already enriched with farmer_id, farmer_name and
// barangay; the engine never performs this join itself.
const (
	farmersQuery = `
		SELECT id AS farmer_id, full_name AS farmer_name, barangay, contact_number, created_at
		FROM farmers
		ORDER BY id`

	riceQuery = `
		SELECT r.*, f.full_name AS farmer_name, f.barangay
		FROM rice_records r
		JOIN farmers f ON f.id = r.farmer_id
		ORDER BY r.id`

	cropsQuery = `
		SELECT c.*, f.full_name AS farmer_name, f.barangay
		FROM crop_records c
		JOIN farmers f ON f.id = c.farmer_id
		ORDER BY c.id`

	highValueQuery = `
		SELECT h.*, f.full_name AS farmer_name, f.barangay
		FROM high_value_crop_records h
		JOIN farmers f ON f.id = h.farmer_id
		ORDER BY h.id`

	livestockQuery = `
		SELECT l.*, f.full_name AS farmer_name, f.barangay
		FROM livestock_records l
		JOIN farmers f ON f.id = l.farmer_id
		ORDER BY l.id`

	operatorsQuery = `
		SELECT o.*, f.full_name AS operator_name, f.barangay
		FROM operator_records o
		JOIN farmers f ON f.id = o.farmer_id
		ORDER BY o.id`
)

// FetchDataset reads one snapshot of all six domains. Rows come back as
// loosely-typed maps so the resolver can apply its candidate-key fallback
// over whatever columns a record actually carries.
func FetchDataset(ctx context.Context, pool *pgxpool.Pool) (records.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	var data records.Dataset
	var err error

	if data.Farmers, err = fetchRecords(ctx, pool, farmersQuery); err != nil {
		return data, fmt.Errorf("fetch farmers: %w", err)
	}
	if data.Rice, err = fetchRecords(ctx, pool, riceQuery); err != nil {
		return data, fmt.Errorf("fetch rice records: %w", err)
	}
	if data.Crops, err = fetchRecords(ctx, pool, cropsQuery); err != nil {
		return data, fmt.Errorf("fetch crop records: %w", err)
	}
	if data.HighValueCrops, err = fetchRecords(ctx, pool, highValueQuery); err != nil {
		return data, fmt.Errorf("fetch high value crop records: %w", err)
	}
	if data.Livestock, err = fetchRecords(ctx, pool, livestockQuery); err != nil {
		return data, fmt.Errorf("fetch livestock records: %w", err)
	}
	if data.Operators, err = fetchRecords(ctx, pool, operatorsQuery); err != nil {
		return data, fmt.Errorf("fetch operator records: %w", err)
	}
	return data, nil
}

// fetchRecords runs one query and maps every row into a RawRecord keyed by
// column name.
func fetchRecords(ctx context.Context, pool *pgxpool.Pool, query string) ([]records.RawRecord, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.RawRecord, 0)
	fields := rows.FieldDescriptions()
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := make(records.RawRecord, len(fields))
		for i, fd := range fields {
			rec[string(fd.Name)] = values[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
