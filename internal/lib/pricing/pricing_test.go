package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVIPPrice(t *testing.T) {
	tests := []struct {
		name      string
		basePrice int
		discount  float64
		want      Split
	}{
		{
			name:      "скидка 50 процентов",
			basePrice: 200,
			discount:  0.5,
			want:      Split{Normal: 200, VIP: 100, Savings: 100},
		},
		{
			name:      "округление до ближайшей рупии",
			basePrice: 299,
			discount:  0.5,
			want:      Split{Normal: 299, VIP: 150, Savings: 149},
		},
		{
			name:      "нулевая скидка",
			basePrice: 150,
			discount:  0,
			want:      Split{Normal: 150, VIP: 150, Savings: 0},
		},
		{
			name:      "скидка больше единицы ограничивается",
			basePrice: 100,
			discount:  1.5,
			want:      Split{Normal: 100, VIP: 0, Savings: 100},
		},
		{
			name:      "отрицательная скидка игнорируется",
			basePrice: 100,
			discount:  -0.2,
			want:      Split{Normal: 100, VIP: 100, Savings: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VIPPrice(tt.basePrice, tt.discount))
		})
	}
}
