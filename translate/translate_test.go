package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("opcode 3 at 12", From("opcode %d at %d", 3, 12))
	assert.Equal("plain", From("plain"))
}

func TestNewPrinter(t *testing.T) {
	assert := assert.New(t)

	p := NewPrinter()
	assert.NotNil(p)
	assert.Equal("r1", p.Sprintf("r%d", 1))
}
