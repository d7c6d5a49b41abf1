// AngelaMos | 2026
// dto_test.go

package post

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantPage int
		wantSize int
	}{
		{"defaults", "/posts", 0, 10},
		{"explicit", "/posts?page=2&size=25", 2, 25},
		{"negative page ignored", "/posts?page=-1", 0, 10},
		{"zero size ignored", "/posts?size=0", 0, 10},
		{"size capped", "/posts?size=5000", 0, 100},
		{"garbage ignored", "/posts?page=abc&size=xyz", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			params := ParsePageParams(r)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantSize, params.Size)
		})
	}
}

func TestPageParamsOffset(t *testing.T) {
	assert.Equal(t, 0, PageParams{Page: 0, Size: 10}.Offset())
	assert.Equal(t, 20, PageParams{Page: 2, Size: 10}.Offset())
	assert.Equal(t, 75, PageParams{Page: 3, Size: 25}.Offset())
}
