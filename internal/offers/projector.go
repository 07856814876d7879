package offers

import (
	"fmt"
	"strings"

	"github.com/guttosm/b3ofer/internal/domain/models"
)

// DropColumns returns a new table without the named columns. Surviving
// columns keep their relative order.
//
// It is strict: if any name in drop is not a column of the table, nothing is
// dropped and the error lists every missing name.
func DropColumns(table *models.QuoteTable, drop []string) (*models.QuoteTable, error) {
	dropSet := make(map[string]struct{}, len(drop))
	var missing []string
	for _, name := range drop {
		if table.ColumnIndex(name) < 0 {
			missing = append(missing, name)
			continue
		}
		dropSet[name] = struct{}{}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("drop columns not found: %s", strings.Join(missing, ", "))
	}

	keep := make([]int, 0, len(table.Columns))
	out := &models.QuoteTable{}
	for i, c := range table.Columns {
		if _, ok := dropSet[c]; ok {
			continue
		}
		keep = append(keep, i)
		out.Columns = append(out.Columns, c)
	}

	out.Records = make([]models.QuoteRecord, 0, len(table.Records))
	for _, rec := range table.Records {
		projected := make(models.QuoteRecord, len(keep))
		for j, i := range keep {
			projected[j] = rec[i]
		}
		out.Records = append(out.Records, projected)
	}
	return out, nil
}
