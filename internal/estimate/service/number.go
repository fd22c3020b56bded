package service

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// newEstimateNumber generates a display label like EST-20260301-04217. The
// suffix is random, not sequential; the number identifies the document in
// emails and the PDF but is never used as a storage key.
func newEstimateNumber(now time.Time) string {
	return fmt.Sprintf("EST-%s-%05d", now.Format("20060102"), rand.IntN(100_000))
}
