package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeForWeight(t *testing.T) {
	cases := []struct {
		weight float64
		want   string
	}{
		{0.5, SizeSmall},
		{7.9, SizeSmall},
		{8, SizeSmall},
		{8.1, SizeMedium},
		{15, SizeMedium},
		{15.1, SizeLarge},
		{40, SizeLarge},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SizeForWeight(tc.weight), "weight %.1f", tc.weight)
	}
}
