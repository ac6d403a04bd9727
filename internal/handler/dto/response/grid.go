package response

import (
	"court-grid/internal/usecase/queries"
)

type CourtResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"categoryId,omitempty"`
}

type RowResponse struct {
	Court CourtResponse      `json:"court"`
	Cells []SnapshotResponse `json:"cells"`
}

type GridResponse struct {
	FacilityID int64         `json:"facilityId"`
	Date       string        `json:"date"`
	Intervals  []string      `json:"intervals"`
	Rows       []RowResponse `json:"rows"`
}

func FromGrid(g *queries.Grid) (GridResponse, error) {
	resp := GridResponse{
		FacilityID: g.FacilityID,
		Date:       g.Date.String(),
		Intervals:  g.Intervals,
		Rows:       make([]RowResponse, len(g.Rows)),
	}
	if resp.Intervals == nil {
		resp.Intervals = []string{}
	}
	for i, row := range g.Rows {
		cells := make([]SnapshotResponse, len(row.Cells))
		for j, cell := range row.Cells {
			snap, err := FromSnapshot(cell.Key, cell.Snapshot)
			if err != nil {
				return GridResponse{}, err
			}
			cells[j] = snap
		}
		resp.Rows[i] = RowResponse{
			Court: CourtResponse{ID: row.Court.ID, Name: row.Court.Name, CategoryID: row.Court.CategoryID},
			Cells: cells,
		}
	}
	return resp, nil
}
