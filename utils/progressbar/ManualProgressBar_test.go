package progressbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManualProgressBar(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := NewManualProgressBar(&buf, 10, 4)

	p.Increment()
	assert.Equal(t, 0.25, p.Fraction())
	assert.True(t, strings.HasPrefix(p.String(), "|██        | [1/4 25.00%"))

	for i := 0; i < 10; i++ {
		p.Increment()
	}
	assert.Equal(t, 1.0, p.Fraction())

	p.Set(-3)
	assert.Zero(t, p.Fraction())

	p.Set(2)
	p.Done()
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "[2/4 50.00%")

	assert.Panics(t, func() { NewManualProgressBar(&buf, 0, 4) })
}
