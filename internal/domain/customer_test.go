package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	thresholds := DefaultSegmentThresholds()
	tests := []struct {
		spent float64
		want  CustomerSegment
	}{
		{1500, SegmentVIP},
		{1000, SegmentVIP},
		{999.99, SegmentHighValue},
		{500, SegmentHighValue},
		{250, SegmentRegular},
		{100, SegmentRegular},
		{99.99, SegmentNew},
		{0, SegmentNew},
	}
	for _, tt := range tests {
		c := CanonicalCustomer{TotalSpent: tt.spent}
		assert.Equal(t, tt.want, c.Segment(thresholds), "spent=%v", tt.spent)
	}
}

func TestAverageOrderValue(t *testing.T) {
	c := CanonicalCustomer{TotalSpent: 300, OrdersCount: 4}
	assert.InDelta(t, 75, c.AverageOrderValue(), 0.0001)

	c.OrdersCount = 0
	assert.Zero(t, c.AverageOrderValue())
}
