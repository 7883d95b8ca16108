package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToCentavos(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado Centavos
	}{
		{"45.50", 4550},
		{"0.01", 1},
		{"100", 10000},
		{"38.00", 3800},
		{"19.999", 2000}, // rounds half up to two decimals
		{"-12.00", -1200},
	}
	for _, c := range casos {
		d, err := decimal.NewFromString(c.entrada)
		assert.NoError(t, err)
		assert.Equal(t, c.esperado, ToCentavos(d), "entrada %s", c.entrada)
	}
}

func TestFromCentavos(t *testing.T) {
	assert.Equal(t, "45.50", FromCentavos(4550).StringFixed(2))
	assert.Equal(t, "0.01", FromCentavos(1).StringFixed(2))
	assert.Equal(t, "-3.20", FromCentavos(-320).StringFixed(2))
}

func TestStringRedondoDeIdaYVuelta(t *testing.T) {
	// converting to decimal and back never loses a céntimo
	for _, c := range []Centavos{0, 1, 99, 100, 4550, 999999} {
		assert.Equal(t, c, ToCentavos(FromCentavos(c)))
	}
}

func TestSumaEntera(t *testing.T) {
	// 0.10 + 0.20 == 0.30 exactly, the reason amounts are integers
	assert.Equal(t, Centavos(30), Centavos(10)+Centavos(20))
	assert.Equal(t, "0.30", (Centavos(10) + Centavos(20)).String())
}
