//go:build e2e

package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FakeBackend serves the subset of the booking REST API the gateway client
// calls, backed by an in-memory booking list.
type FakeBackend struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*BackendBooking
	server   *httptest.Server
}

type BackendSlot struct {
	CourtID  int64  `json:"courtId"`
	Interval string `json:"interval"`
}

type BackendBooking struct {
	ID         int64           `json:"id"`
	FacilityID int64           `json:"facilityId"`
	Date       string          `json:"date"`
	Status     string          `json:"status"`
	CustomerID *int64          `json:"customerId"`
	Price      decimal.Decimal `json:"price"`
	Slots      []BackendSlot   `json:"slots"`
}

var (
	backendIntervals = []gin.H{
		{"id": 1, "start": "08:00", "end": "09:00"},
		{"id": 2, "start": "09:00", "end": "10:00"},
		{"id": 3, "start": "10:00", "end": "11:00"},
	}
	slotPrice = decimal.NewFromInt(30)
)

func NewFakeBackend() *FakeBackend {
	b := &FakeBackend{nextID: 100}

	r := gin.New()
	r.GET("/facilities", b.listFacilities)
	r.GET("/intervals", b.listIntervals)
	r.GET("/facilities/:id/courts", b.listCourts)
	r.GET("/facilities/:id/bookings", b.listBookings)
	r.POST("/bookings/mark", b.markSlot)
	r.POST("/bookings", b.createBooking)
	r.POST("/bookings/:id/complete", b.completeBooking)
	r.GET("/customers/:id", b.customer)

	b.server = httptest.NewServer(r)
	return b
}

func (b *FakeBackend) URL() string { return b.server.URL }

func (b *FakeBackend) Close() { b.server.Close() }

// Seed adds a booking as if another client had created it.
func (b *FakeBackend) Seed(bk BackendBooking) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bookings = append(b.bookings, &bk)
}

func (b *FakeBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bookings = nil
}

func (b *FakeBackend) Booking(id int64) (BackendBooking, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, bk := range b.bookings {
		if bk.ID == id {
			return *bk, true
		}
	}
	return BackendBooking{}, false
}

func (b *FakeBackend) listFacilities(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pages := [][]gin.H{
		{{"id": 1, "name": "Riverside"}},
		{{"id": 2, "name": "Hilltop"}},
	}
	if page < 1 || page > len(pages) {
		c.JSON(http.StatusOK, gin.H{"data": []gin.H{}, "page": page, "totalPages": len(pages)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": pages[page-1], "page": page, "totalPages": len(pages)})
}

func (b *FakeBackend) listIntervals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": backendIntervals, "page": 1, "totalPages": 1})
}

func (b *FakeBackend) listCourts(c *gin.Context) {
	facilityID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad facility"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": []gin.H{
			{"id": 5, "facilityId": facilityID, "name": "Court A", "categoryId": 2},
			{"id": 6, "facilityId": facilityID, "name": "Court B", "categoryId": 2},
		},
		"page":       1,
		"totalPages": 1,
	})
}

func (b *FakeBackend) listBookings(c *gin.Context) {
	facilityID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	date := c.Query("date")

	b.mu.Lock()
	defer b.mu.Unlock()
	data := make([]BackendBooking, 0, len(b.bookings))
	for _, bk := range b.bookings {
		if bk.FacilityID == facilityID && bk.Date == date {
			data = append(data, *bk)
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "page": 1, "totalPages": 1})
}

func (b *FakeBackend) markSlot(c *gin.Context) {
	var req struct {
		FacilityID int64  `json:"facilityId"`
		CourtID    int64  `json:"courtId"`
		Date       string `json:"date"`
		Interval   string `json:"interval"`
		CategoryID int64  `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	bk, ok := b.book(req.FacilityID, req.Date, []BackendSlot{{CourtID: req.CourtID, Interval: req.Interval}})
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"message": "slot taken"}})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": bk, "consistent": true})
}

func (b *FakeBackend) createBooking(c *gin.Context) {
	var req struct {
		FacilityID int64         `json:"facilityId"`
		Date       string        `json:"date"`
		CategoryID int64         `json:"categoryId"`
		Slots      []BackendSlot `json:"slots"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	bk, ok := b.book(req.FacilityID, req.Date, req.Slots)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{"message": "slot taken"}})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": bk, "consistent": true})
}

func (b *FakeBackend) completeBooking(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, bk := range b.bookings {
		if bk.ID == id {
			bk.Status = "completed"
			c.JSON(http.StatusOK, gin.H{"data": bk})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("booking %d not found", id)})
}

func (b *FakeBackend) customer(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"id":    id,
		"name":  fmt.Sprintf("Customer %d", id),
		"phone": "555-0100",
	}})
}

func (b *FakeBackend) book(facilityID int64, date string, slots []BackendSlot) (BackendBooking, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, bk := range b.bookings {
		if bk.FacilityID != facilityID || bk.Date != date || bk.Status == "cancelled" {
			continue
		}
		for _, have := range bk.Slots {
			for _, want := range slots {
				if have == want {
					return BackendBooking{}, false
				}
			}
		}
	}
	b.nextID++
	bk := &BackendBooking{
		ID:         b.nextID,
		FacilityID: facilityID,
		Date:       date,
		Status:     "active",
		Price:      slotPrice.Mul(decimal.NewFromInt(int64(len(slots)))),
		Slots:      slots,
	}
	b.bookings = append(b.bookings, bk)
	return *bk, true
}
