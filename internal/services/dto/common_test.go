package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{"first page", 1, 20, 0},
		{"third page", 3, 20, 40},
		{"zero page", 0, 20, 0},
		{"zero size", 5, 0, 0},
		{"huge page saturates", 1 << 62, 20, math.MaxInt},
		{"max page", math.MaxInt, 100, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Offset(tt.page, tt.pageSize))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Equal(t, []int{1, 2}, Paginate(items, 1, 2))
	assert.Equal(t, []int{3}, Paginate(items, 2, 2))
	assert.Empty(t, Paginate(items, 3, 2))
	assert.Empty(t, Paginate(items, 1<<62, 20))
}
