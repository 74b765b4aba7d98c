package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{42, "42 m"},
		{999, "999 m"},
		{999.4, "999 m"},
		{999.5, "1.0 km"},
		{1000, "1.0 km"},
		{1500, "1.5 km"},
		{2000, "2.0 km"},
		{12345, "12.3 km"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDistance(tt.meters))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0 sec"},
		{59, "59 sec"},
		{60, "1 min"},
		{240, "4 min"},
		{3599, "59 min"},
		{3600, "1 h 0 min"},
		{5400, "1 h 30 min"},
		{7260, "2 h 1 min"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds))
	}
}
