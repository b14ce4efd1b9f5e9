package period

import (
	"fmt"
	"time"
)

// Grid dimensions shared by the resolver and every renderer. Month grids pad
// to a multiple of MonthGridColumns; year grids always hold exactly
// YearGridCells cells (20 columns x 19 rows covers 366 days with room for
// padding), so a renderer can rely on the shape without recomputing it.
const (
	MonthGridColumns = 10

	YearGridColumns = 20
	YearGridRows    = 19
	YearGridCells   = YearGridColumns * YearGridRows
)

// GridCell is one cell of a padded bucket grid. Empty cells carry no date;
// they exist only to square off the layout.
type GridCell struct {
	Date  time.Time
	Empty bool
}

// PaddedGrid returns the bucket's days as grid cells, padded with trailing
// empty cells to the granularity's fixed shape: day and week buckets are
// returned as-is, month buckets pad to a multiple of MonthGridColumns, and
// year buckets pad to exactly YearGridCells.
func (r Resolver) PaddedGrid(g Granularity, anchor time.Time) ([]GridCell, error) {
	dates, err := r.DatesIn(g, anchor)
	if err != nil {
		return nil, err
	}

	cells := make([]GridCell, 0, len(dates))
	for _, d := range dates {
		cells = append(cells, GridCell{Date: d})
	}

	switch g {
	case Month:
		for len(cells)%MonthGridColumns != 0 {
			cells = append(cells, GridCell{Empty: true})
		}
	case Year:
		if len(cells) > YearGridCells {
			return nil, fmt.Errorf("%w: year bucket has %d days, grid holds %d", ErrInvalidDate, len(cells), YearGridCells)
		}
		for len(cells) < YearGridCells {
			cells = append(cells, GridCell{Empty: true})
		}
	}
	return cells, nil
}
