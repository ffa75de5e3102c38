// Package identifier issues the externally visible identifiers: booking ids,
// confirmation numbers, transaction ids and refund ids. They are distinct from
// storage primary keys and are never reassigned once shown to a user.
package identifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func BookingID() string {
	return "BK" + stamp() + suffix(6)
}

func ConfirmationNumber() string {
	return "CONF" + stamp() + suffix(6)
}

func TransactionID() string {
	return "TXN" + stamp() + suffix(8)
}

func RefundID() string {
	return "REF" + stamp() + suffix(6)
}

func stamp() string {
	return fmt.Sprintf("%d", time.Now().UnixMilli())
}

// suffix returns n uppercase hex characters of uuid entropy to keep ids unique
// within a single millisecond.
func suffix(n int) string {
	s := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
