package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		number  bool
		float   float64
		display string
	}{
		{name: "integer", in: "49900", number: true, float: 49900, display: "49900"},
		{name: "decimal", in: " 4.5 ", number: true, float: 4.5, display: "4.5"},
		{name: "empty", in: "", number: false, float: 0, display: ""},
		{name: "text", in: "4 GB", number: false, display: "4 GB"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := ParseValue(tc.in)
			assert.Equal(t, tc.number, v.IsNumber())
			assert.Equal(t, tc.display, v.String())
			if tc.name == "text" {
				assert.True(t, math.IsNaN(v.Float()))
				return
			}
			assert.Equal(t, tc.float, v.Float())
		})
	}
}

func TestPendingText(t *testing.T) {
	p := Pending{Target: 75, Prefix: "₹", Suffix: "K"}
	assert.Equal(t, "₹75K", p.Text(p.Target))
	assert.Equal(t, "₹0K", p.Text(0))
}
