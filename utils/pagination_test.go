package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    Page
		wantErr bool
	}{
		{"defaults", "/vendors/", Page{Offset: 0, Limit: 20}, false},
		{"explicit window", "/vendors/?offset=40&limit=10", Page{Offset: 40, Limit: 10}, false},
		{"limit capped", "/vendors/?limit=5000", Page{Offset: 0, Limit: 100}, false},
		{"negative offset", "/vendors/?offset=-1", Page{}, true},
		{"zero limit", "/vendors/?limit=0", Page{}, true},
		{"non-numeric offset", "/vendors/?offset=abc", Page{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ParsePage(httptest.NewRequest("GET", tt.target, nil))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, page)
		})
	}
}
