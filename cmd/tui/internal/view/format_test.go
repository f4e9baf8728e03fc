package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatYen(t *testing.T) {
	cases := map[int64]string{
		0:        "¥0",
		999:      "¥999",
		1000:     "¥1,000",
		1234567:  "¥1,234,567",
		-250000:  "-¥250,000",
		-1000000: "-¥1,000,000",
	}

	for in, want := range cases {
		assert.Equal(t, want, FormatYen(in))
	}
}

func TestParseYen(t *testing.T) {
	type testCase struct {
		in      string
		want    int64
		wantErr bool
	}

	cases := []testCase{
		{in: "1200", want: 1200},
		{in: " 1,200 ", want: 1200},
		{in: "¥3,000", want: 3000},
		{in: "500円", want: 500},
		{in: "-10", want: -10},
		{in: "12.5", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseYen(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
