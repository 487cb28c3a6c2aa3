package json2docx

import (
	"time"

	"github.com/alnah/go-json2docx/internal/dateutil"
)

// ResolveDate handles "auto" and "auto:FORMAT" syntax for date values.
//   - "auto" gives the current date as YYYY-MM-DD
//   - "auto:FORMAT" uses a custom format such as "auto:DD/MM/YYYY"
//   - "auto:preset" uses a named preset (iso, european, us, long, full)
//   - any other value is returned unchanged
//
// t is the reference time, injectable for testing.
func ResolveDate(value string, t time.Time) (string, error) {
	return dateutil.ResolveDate(value, t)
}
