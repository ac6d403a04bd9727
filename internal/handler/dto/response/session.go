package response

import (
	"court-grid/internal/usecase/shared"
)

type FacilityResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromFacilities(facilities []shared.Facility) []FacilityResponse {
	resp := make([]FacilityResponse, len(facilities))
	for i, f := range facilities {
		resp[i] = FacilityResponse{ID: f.ID, Name: f.Name}
	}
	return resp
}

type SelectionResponse struct {
	FacilityID int64  `json:"facilityId"`
	Date       string `json:"date"`
	Generation uint64 `json:"generation"`
}

func FromSelection(sel shared.Selection) SelectionResponse {
	return SelectionResponse{
		FacilityID: sel.FacilityID,
		Date:       sel.Date.String(),
		Generation: sel.Generation,
	}
}

type LoadingResponse struct {
	Active []string `json:"active"`
	Busy   bool     `json:"busy"`
}

func FromLoading(active []string) LoadingResponse {
	if active == nil {
		active = []string{}
	}
	return LoadingResponse{Active: active, Busy: len(active) > 0}
}
