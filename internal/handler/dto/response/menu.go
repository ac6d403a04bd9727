package response

import (
	"court-grid/internal/usecase/commands"
)

type MenuItemResponse struct {
	Action  string `json:"action"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

type MenuTargetResponse struct {
	ResourceID int64  `json:"resourceId"`
	Interval   string `json:"interval"`
}

type MenuResponse struct {
	State  string              `json:"state"`
	Target *MenuTargetResponse `json:"target,omitempty"`
	Items  []MenuItemResponse  `json:"items"`
}

func FromMenuView(v commands.MenuView) MenuResponse {
	resp := MenuResponse{
		State: string(v.State),
		Items: make([]MenuItemResponse, len(v.Items)),
	}
	if v.Target != nil {
		resp.Target = &MenuTargetResponse{ResourceID: v.Target.ResourceID, Interval: v.Target.Interval}
	}
	for i, it := range v.Items {
		resp.Items[i] = MenuItemResponse{Action: string(it.Action), Label: it.Label, Enabled: it.Enabled}
	}
	return resp
}

type ChooseResponse struct {
	Action   string           `json:"action"`
	Snapshot SnapshotResponse `json:"snapshot"`
}

func FromChooseResult(r *commands.ChooseResult) (ChooseResponse, error) {
	snap, err := FromSnapshot(r.Key, r.Snapshot)
	if err != nil {
		return ChooseResponse{}, err
	}
	return ChooseResponse{Action: string(r.Action), Snapshot: snap}, nil
}
