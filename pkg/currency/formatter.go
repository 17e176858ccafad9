package currency

import (
	"fmt"
	"strconv"
)

// FormatEUR renders an amount in cents as "€1,152.00".
func FormatEUR(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := addThousandsSeparator(strconv.FormatInt(cents/100, 10), ",")
	result := fmt.Sprintf("€%s.%02d", whole, cents%100)
	if negative {
		result = "-" + result
	}
	return result
}

// ToMajor converts cents to euros for display-only fields.
func ToMajor(cents int64) float64 {
	return float64(cents) / 100
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
