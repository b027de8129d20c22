package exchange

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewCorrelationID generates a per-exchange correlation identifier.
// Format: "<base36 unix-millis>-<8 hex chars>". The time prefix keeps ids
// roughly sortable by arrival; the random suffix disambiguates exchanges
// that start within the same millisecond.
//
// Example output: "mf3k2h8a-9f1c03b2"
func NewCorrelationID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return ts + "-" + suffix
}
