package slot

import "strings"

type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusDeposited Status = "deposited"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusDeposited, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status can no longer be reverted by
// created/updated notifications.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsBookable reports whether a new booking may be placed on a cell in this
// status. A cancelled booking frees its cell.
func (s Status) IsBookable() bool {
	return s == StatusAvailable || s == StatusCancelled
}

// Rank orders statuses along the booking lifecycle.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 1
	case StatusDeposited:
		return 2
	case StatusCompleted, StatusCancelled:
		return 3
	default:
		return 0
	}
}

// MapStatus converts the server's raw status label into a canonical status.
// It is total: unknown labels map to pending.
func MapStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid":
		return StatusDeposited
	case "completed":
		return StatusCompleted
	case "cancelled", "canceled":
		return StatusCancelled
	case "active":
		return StatusPending
	default:
		return StatusPending
	}
}

// RawLabel is the server vocabulary label that maps back onto the status.
func (s Status) RawLabel() string {
	switch s {
	case StatusDeposited:
		return "paid"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusPending:
		return "active"
	default:
		return "available"
	}
}
