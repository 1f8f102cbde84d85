// Package validate checks external request representations before they are
// handed to the service layer.
package validate

import (
	"fmt"
	"math"
)

// Duration validates the external duration value. The field is decoded as a
// JSON number pointer so missing and null are distinguishable from zero.
func Duration(v *float64) error {
	if v == nil {
		return fmt.Errorf("duration is required")
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fmt.Errorf("duration must be a finite number")
	}
	if *v <= 0 {
		return fmt.Errorf("duration must be a positive number")
	}
	return nil
}
