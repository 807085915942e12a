package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateTransactionRef produces a customer-facing transaction
// reference, e.g. TXN-20250114-9F3C21AB. The date makes references
// scannable in support tooling; the uuid fragment makes collisions
// implausible.
func GenerateTransactionRef() string {
	id := uuid.New().String()
	return fmt.Sprintf("TXN-%s-%s", time.Now().Format("20060102"), strings.ToUpper(id[:8]))
}
