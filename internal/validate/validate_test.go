package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	got, ok := Name("  Caderno 96 fls ")
	assert.True(t, ok)
	assert.Equal(t, "Caderno 96 fls", got)

	_, ok = Name("   ")
	assert.False(t, ok)
	_, ok = Name(strings.Repeat("x", maxName+1))
	assert.False(t, ok)
	_, ok = Name(strings.Repeat("ç", maxName))
	assert.True(t, ok)
}

func TestCountAndCode(t *testing.T) {
	tests := []struct {
		in      string
		count   int
		countOK bool
		codeOK  bool
	}{
		{"5", 5, true, true},
		{" 12 ", 12, true, true},
		{"0", 0, true, false},
		{"-3", 0, false, false},
		{"+3", 0, false, false},
		{"3.5", 0, false, false},
		{"abc", 0, false, false},
		{"", 0, false, false},
		{"1234567890", 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, ok := Count(tt.in)
			assert.Equal(t, tt.countOK, ok)
			if ok {
				assert.Equal(t, tt.count, n)
			}
			_, ok = Code(tt.in)
			assert.Equal(t, tt.codeOK, ok)
		})
	}
}

func TestAmount(t *testing.T) {
	m, ok := Amount("19,9")
	assert.True(t, ok)
	assert.Equal(t, "19.90", m.Text())

	_, ok = Amount("dez")
	assert.False(t, ok)
}

func TestCommand(t *testing.T) {
	c, ok := Command(" LVH ")
	assert.True(t, ok)
	assert.Equal(t, "lvh", c)

	_, ok = Command("")
	assert.False(t, ok)
	_, ok = Command("a p")
	assert.False(t, ok)
}
