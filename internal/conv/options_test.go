package conv

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseByteSize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input    string
		expected int
	}{
		{"500kb", 500 * 1024},
		{"10mb", 10 * 1024 * 1024},
		{"1gb", 1024 * 1024 * 1024},
		{"1000000b", 1000000},
		{"500", 500 * 1024}, // bare numbers are kilobytes
		{"1.5mb", 1572864},
		{" 2MB ", 2 * 1024 * 1024},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseByteSize(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseByteSize_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "abc", "12qb", "-5mb", "0"} {
		_, err := ParseByteSize(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParsePercent(t *testing.T) {
	t.Parallel()

	p, err := ParsePercent("5")
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.NewFromInt(5)))

	p, err = ParsePercent("2.5")
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.NewFromFloat(2.5)))

	p, err = ParsePercent("100")
	require.NoError(t, err)
	assert.True(t, p.Equal(decimal.NewFromInt(100)))

	for _, input := range []string{"0", "-1", "100.1", "many"} {
		_, err := ParsePercent(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestPercentOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50, PercentOf(1000, decimal.NewFromInt(5)))
	assert.Equal(t, 25, PercentOf(1000, decimal.NewFromFloat(2.5)))
	assert.Equal(t, 1000, PercentOf(1000, decimal.NewFromInt(100)))
	// never below one point
	assert.Equal(t, 1, PercentOf(10, decimal.NewFromFloat(0.5)))
}

func TestFormatFileSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512.00 B", FormatFileSize(512))
	assert.Equal(t, "1.00 KB", FormatFileSize(1024))
	assert.Equal(t, "1.50 MB", FormatFileSize(1572864))
	assert.Equal(t, "2.00 GB", FormatFileSize(2*1024*1024*1024))
}

func TestFormatPointCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", FormatPointCount(0))
	assert.Equal(t, "999", FormatPointCount(999))
	assert.Equal(t, "1 000", FormatPointCount(1000))
	assert.Equal(t, "1 234 567", FormatPointCount(1234567))
}

func TestOptionsHasTarget(t *testing.T) {
	t.Parallel()

	assert.False(t, (&Options{}).HasTarget())
	assert.True(t, (&Options{Points: 10}).HasTarget())
	assert.True(t, (&Options{Size: "1mb"}).HasTarget())
	assert.True(t, (&Options{Percent: decimal.NewFromInt(5)}).HasTarget())
}
