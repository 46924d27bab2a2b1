package licenses

import (
	"time"

	"github.com/arkawidia/lisensia-backend/pkg/enums"
)

// ClassifyStatus returns the lifecycle status of a license given its end date
// and a reference "today". A license whose end date equals today is still
// active; expiry begins the day after the end date.
func ClassifyStatus(endDate, today time.Time) enums.LicenseStatus {
	if DateOnly(today).After(DateOnly(endDate)) {
		return enums.LicenseStatusExpired
	}
	return enums.LicenseStatusActive
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
