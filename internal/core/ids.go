package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Id prefixes per entity.
const (
	PrefixCategory       = "cat"
	PrefixPlannedExpense = "uexp"
	PrefixExpense        = "exp"
	PrefixIncome         = "inc"
)

// NewID builds prefix_<unix millis>_<random suffix>. Collisions are unlikely,
// not impossible.
func NewID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), suffix)
}
