package exchange

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errFractionalAmount = errors.New("amount has a fractional part")

var amountReplacer = strings.NewReplacer(
	"¥", "", "￥", "", "円", "", ",", "", "，", "", " ", "", "　", "",
)

// parseYen parses a yen amount such as "1,200", "¥3,000", "500円" or the
// accounting forms "▲800" / "△800" for negative values.
func parseYen(s string) (int64, error) {
	clean := amountReplacer.Replace(strings.TrimSpace(s))

	negative := false

	for _, mark := range []string{"▲", "△", "-", "−"} {
		if rest, ok := strings.CutPrefix(clean, mark); ok {
			negative = true
			clean = rest

			break
		}
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	if !d.IsInteger() {
		return 0, errFractionalAmount
	}

	v := d.IntPart()
	if negative {
		v = -v
	}

	return v, nil
}
