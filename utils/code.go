// utils/code.go
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// RedemptionCodePrefix marks codes issued by this service.
const RedemptionCodePrefix = "ROS-"

// NewRedemptionCode returns a single-use code for a successful run. It is
// derived from a random UUID so codes cannot be guessed from one another.
func NewRedemptionCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return RedemptionCodePrefix + strings.ToUpper(raw)
}
