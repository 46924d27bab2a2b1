package reminder

import (
	"fmt"
	"time"

	"github.com/arkawidia/lisensia-backend/internal/licenses"
	"github.com/arkawidia/lisensia-backend/pkg/phone"
)

const missingPhonePlaceholder = "Tidak tersedia"

// FormatMessage renders the reminder text sent to the responsible user. The
// customer's phone is included in canonical form so the user can follow up
// directly.
func FormatMessage(candidate licenses.ReminderCandidate) string {
	customerPhone := phone.Normalize(candidate.CustomerPhone)
	if customerPhone == "" {
		customerPhone = missingPhonePlaceholder
	}
	return fmt.Sprintf(
		"Halo %s,\n\nLisensi aplikasi %q untuk pelanggan %q akan habis pada %s.\nKontak pelanggan: %s\nSilakan ikuti upaya perpanjangan.\n\nTerima kasih.",
		candidate.UserName,
		candidate.AppName,
		candidate.CustomerName,
		candidate.EndDate.Format(time.DateOnly),
		customerPhone,
	)
}
