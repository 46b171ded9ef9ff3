package seeder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"job-portal/internal/database"

	"github.com/samber/lo"
)

// RequireSchema fails when any of the listed table columns is absent, which
// means migrations have not been applied yet.
func RequireSchema(ctx context.Context, db database.DB, want map[string][]string) error {
	if db == nil {
		return database.ErrNilDB
	}
	if len(want) == 0 {
		return nil
	}

	rows, err := db.Query(ctx,
		`SELECT table_name, column_name FROM information_schema.columns
		 WHERE table_schema = 'public' AND table_name = ANY($1::text[])`,
		lo.Keys(want),
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	have := map[string]bool{}
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return err
		}
		have[table+"."+column] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return missingColumns(want, have)
}

func missingColumns(want map[string][]string, have map[string]bool) error {
	var missing []string
	for table, columns := range want {
		for _, col := range columns {
			if key := table + "." + col; !have[key] {
				missing = append(missing, key)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("schema mismatch, run migrations first: missing %s", strings.Join(missing, ", "))
}
