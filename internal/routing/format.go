package routing

import (
	"fmt"
	"math"
)

// FormatDistance renders a distance in meters when under 1000, otherwise
// in kilometers to one decimal place.
func FormatDistance(meters float64) string {
	// Branch on the rounded value so 999.5 m renders as "1.0 km"
	// rather than "1000 m".
	rounded := math.Round(meters)
	if rounded < 1000 {
		return fmt.Sprintf("%d m", int(rounded))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatDuration renders a duration in seconds when under a minute, in
// whole minutes when under an hour, otherwise as hours and minutes.
func FormatDuration(seconds float64) string {
	s := int(math.Round(seconds))
	if s < 60 {
		return fmt.Sprintf("%d sec", s)
	}
	if s < 3600 {
		return fmt.Sprintf("%d min", s/60)
	}
	return fmt.Sprintf("%d h %d min", s/3600, (s%3600)/60)
}
