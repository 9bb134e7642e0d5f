package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Score
	}{
		{"integer", "4", Decimal(4)},
		{"dot decimal", "4.33", Decimal(4.33)},
		{"comma decimal", "4,33", Decimal(4.33)},
		{"padded", "  3,5 ", Decimal(3.5)},
		{"nsa upper", "NSA", NotApplicable()},
		{"nsa lower", "nsa", NotApplicable()},
		{"nsa dotted", "N.S.A.", NotApplicable()},
		{"nsa spelled out", "Não se aplica", NotApplicable()},
		{"nsa unaccented", "NAO SE APLICA", NotApplicable()},
		{"empty", "", Score{}},
		{"garbage", "quatro", Score{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScore(tt.raw))
		})
	}
}

func TestScoreInRange(t *testing.T) {
	assert.True(t, Decimal(1).InRange(1, 5))
	assert.True(t, Decimal(5).InRange(1, 5))
	assert.False(t, Decimal(0.5).InRange(1, 5))
	assert.False(t, Decimal(5.01).InRange(1, 5))

	// sentinel and absent scores never fail a range check
	assert.True(t, NotApplicable().InRange(1, 5))
	assert.True(t, Score{}.InRange(1, 5))
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "", Score{}.String())
	assert.Equal(t, "NSA", NotApplicable().String())
	assert.Equal(t, "4", Decimal(4).String())
	assert.Equal(t, "4.33", Decimal(4.33).String())
}

func TestScoreCell(t *testing.T) {
	assert.Nil(t, Score{}.Cell())
	assert.Equal(t, "NSA", NotApplicable().Cell())
	assert.Equal(t, 3.67, Decimal(3.67).Cell())
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"1234567", 1234567, true},
		{"2019", 2019, true},
		{"2019,0", 2019, true},
		{" 42 ", 42, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseInt(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw %q", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got, "raw %q", tt.raw)
		}
	}
}
