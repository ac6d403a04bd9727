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

func (c *Client) ListBookings(ctx context.Context, facilityID int64, date slot.Date, page int) (*shared.BookingPage, error) {
	var env listEnvelope[bookingDTO]
	err := c.do(ctx, request{
		op:     "list_bookings",
		method: http.MethodGet,
		path:   fmt.Sprintf("/facilities/%d/bookings", facilityID),
		query: url.Values{
			"date": {date.String()},
			"page": {strconv.Itoa(page)},
			"size": {strconv.Itoa(c.pageSize)},
		},
	}, &env)
	if err != nil {
		return nil, err
	}

	out := &shared.BookingPage{
		Records:  make([]shared.BookingRecord, 0, len(env.Data)),
		PageInfo: shared.PageInfo{Page: env.Page, TotalPages: env.TotalPages},
	}
	for _, b := range env.Data {
		out.Records = append(out.Records, toRecord(b))
	}
	return out, nil
}

func (c *Client) MarkSlot(ctx context.Context, req shared.MarkSlotRequest) (*shared.MarkSlotResult, error) {
	var env itemEnvelope[bookingDTO]
	err := c.do(ctx, request{
		op:     "mark_slot",
		method: http.MethodPost,
		path:   "/bookings/mark",
		body: markSlotBody{
			FacilityID: req.FacilityID,
			CourtID:    req.ResourceID,
			Date:       req.Date.String(),
			Interval:   req.Interval,
			CategoryID: req.CategoryID,
		},
	}, &env)
	if err != nil {
		return nil, err
	}

	return &shared.MarkSlotResult{
		BookingID:  env.Data.ID,
		ResourceID: req.ResourceID,
		Interval:   req.Interval,
		Price:      priceOrZero(env.Data.Price),
		Status:     env.Data.Status,
	}, nil
}

func (c *Client) CreateBooking(ctx context.Context, req shared.CreateBookingRequest) (*shared.CreateBookingResult, error) {
	body := createBookingBody{
		FacilityID: req.FacilityID,
		Date:       req.Date.String(),
		CategoryID: req.CategoryID,
		Slots:      make([]sliceDTO, 0, len(req.Slots)),
	}
	for _, sl := range req.Slots {
		body.Slots = append(body.Slots, sliceDTO{CourtID: sl.ResourceID, Interval: sl.Interval})
	}

	var env itemEnvelope[bookingDTO]
	err := c.do(ctx, request{
		op:     "create_booking",
		method: http.MethodPost,
		path:   "/bookings",
		body:   body,
	}, &env)
	if err != nil {
		return nil, err
	}

	rec := toRecord(env.Data)
	return &shared.CreateBookingResult{
		BookingID:  rec.ID,
		Price:      rec.Price,
		Status:     rec.Status,
		Slices:     rec.Slices,
		Consistent: env.Consistent,
	}, nil
}

func (c *Client) CompleteBooking(ctx context.Context, bookingID int64) (*shared.CompleteBookingResult, error) {
	var env itemEnvelope[bookingDTO]
	err := c.do(ctx, request{
		op:     "complete_booking",
		method: http.MethodPost,
		path:   fmt.Sprintf("/bookings/%d/complete", bookingID),
	}, &env)
	if err != nil {
		return nil, err
	}
	return &shared.CompleteBookingResult{BookingID: bookingID, Status: env.Data.Status}, nil
}

func toRecord(b bookingDTO) shared.BookingRecord {
	rec := shared.BookingRecord{
		ID:         b.ID,
		FacilityID: b.FacilityID,
		Date:       b.Date,
		Status:     b.Status,
		CustomerID: b.CustomerID,
		Price:      priceOrZero(b.Price),
		Slices:     make([]shared.BookingSlice, 0, len(b.Slots)),
	}
	if b.Customer != nil {
		rec.CustomerName = b.Customer.Name
		rec.CustomerPhone = b.Customer.Phone
		rec.CustomerEmail = b.Customer.Email
	}
	for _, sl := range b.Slots {
		rec.Slices = append(rec.Slices, shared.BookingSlice{
			ResourceID: sl.CourtID,
			Interval:   sl.Interval,
			Price:      priceOrZero(sl.Price),
		})
	}
	return rec
}
