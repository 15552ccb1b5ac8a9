package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandToBitsProducesBigEndianConcatenation(t *testing.T) {
	bits := ExpandToBits([]uint16{0b101, 0b010}, 3)
	assert.Equal(t, []uint8{1, 0, 1, 0, 1, 0}, bits)
}

func TestExpandToBitsEmptyInput(t *testing.T) {
	assert.Nil(t, ExpandToBits(nil, 3))
}

func TestBitsPerSymbolMatchesCeilLog2(t *testing.T) {
	assert.Equal(t, 1, BitsPerSymbol(1))
	assert.Equal(t, 1, BitsPerSymbol(2))
	assert.Equal(t, 2, BitsPerSymbol(3))
	assert.Equal(t, 2, BitsPerSymbol(4))
	assert.Equal(t, 8, BitsPerSymbol(256))
}
