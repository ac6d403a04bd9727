package slot

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate     = errors.New("invalid booking date")
	ErrInvalidInterval = errors.New("invalid interval label")
	ErrInvalidResource = errors.New("invalid resource id")
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	time.RFC3339,
	time.RFC3339Nano,
}

// Date is a calendar day without a location.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// ParseDate normalizes the date formats seen on the wire. Timestamps keep the
// calendar day of their own offset.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

func MustParseDate(raw string) Date {
	d, err := ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool { return d.year == 0 }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Key identifies one bookable cell of the grid. It is comparable and used
// directly as a map key.
type Key struct {
	ResourceID int64
	Date       Date
	Interval   string
}

func NewKey(resourceID int64, date Date, interval string) (Key, error) {
	if resourceID <= 0 {
		return Key{}, ErrInvalidResource
	}
	if date.IsZero() {
		return Key{}, ErrInvalidDate
	}
	label, err := NormalizeInterval(interval)
	if err != nil {
		return Key{}, err
	}
	return Key{ResourceID: resourceID, Date: date, Interval: label}, nil
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s/%s", k.ResourceID, k.Date, k.Interval)
}
