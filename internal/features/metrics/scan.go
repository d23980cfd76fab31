package metrics

import (
	"context"
	"database/sql"
	"fmt"

	"wellness-analytics/internal/features/series"
)

// queryRows runs an aggregation query and wraps every cell as a series.Value,
// using the column's database type to read driver bytes.
func queryRows(ctx context.Context, db *sql.DB, query string, args ...any) ([]series.Row, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	result := []series.Row{}
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(series.Row, len(columns))
		for i, col := range columns {
			v, err := series.FromDriver(raw[i], col.DatabaseTypeName())
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col.Name(), err)
			}
			row[i] = v
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return result, nil
}
