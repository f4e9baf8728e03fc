package view

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dbTimeout = 5 * time.Second

var errNotInteger = errors.New("enter a whole number of yen")

// FormatYen renders an amount of yen with thousands separators, e.g. ¥1,200.
func FormatYen(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	digits := strconv.FormatInt(v, 10)

	var b strings.Builder

	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}

		b.WriteRune(r)
	}

	return sign + "¥" + b.String()
}

// ParseYen reads user input such as "1200", "1,200" or "¥1,200".
func ParseYen(s string) (int64, error) {
	clean := strings.NewReplacer(",", "", "¥", "", "円", "", " ", "").Replace(strings.TrimSpace(s))

	d, err := decimal.NewFromString(clean)
	if err != nil || !d.IsInteger() {
		return 0, errNotInteger
	}

	return d.IntPart(), nil
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
