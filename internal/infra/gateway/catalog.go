package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"court-grid/internal/domain/slot"
	"court-grid/internal/usecase/shared"
)

func (c *Client) ListFacilities(ctx context.Context, page int) ([]shared.Facility, shared.PageInfo, error) {
	var env listEnvelope[facilityDTO]
	err := c.do(ctx, request{
		op:     "list_facilities",
		method: http.MethodGet,
		path:   "/facilities",
		query:  url.Values{"page": {strconv.Itoa(page)}},
	}, &env)
	if err != nil {
		return nil, shared.PageInfo{}, err
	}

	out := make([]shared.Facility, 0, len(env.Data))
	for _, f := range env.Data {
		out = append(out, shared.Facility{ID: f.ID, Name: f.Name})
	}
	return out, shared.PageInfo{Page: env.Page, TotalPages: env.TotalPages}, nil
}

func (c *Client) ListCourts(ctx context.Context, facilityID int64) ([]shared.Court, error) {
	var env listEnvelope[courtDTO]
	err := c.do(ctx, request{
		op:     "list_courts",
		method: http.MethodGet,
		path:   fmt.Sprintf("/facilities/%d/courts", facilityID),
	}, &env)
	if err != nil {
		return nil, err
	}

	out := make([]shared.Court, 0, len(env.Data))
	for _, ct := range env.Data {
		out = append(out, shared.Court{ID: ct.ID, FacilityID: ct.FacilityID, Name: ct.Name, CategoryID: ct.CategoryID})
	}
	return out, nil
}

func (c *Client) ListIntervals(ctx context.Context) ([]slot.IntervalDef, error) {
	var env listEnvelope[intervalDTO]
	err := c.do(ctx, request{
		op:     "list_intervals",
		method: http.MethodGet,
		path:   "/intervals",
	}, &env)
	if err != nil {
		return nil, err
	}

	out := make([]slot.IntervalDef, 0, len(env.Data))
	for _, iv := range env.Data {
		out = append(out, slot.IntervalDef{ID: iv.ID, Start: iv.Start, End: iv.End})
	}
	return out, nil
}
