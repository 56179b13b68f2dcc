// C:\Users\wasab\OneDrive\デスクトップ\REGI\barcode\barcode_test.go
package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Jan13(t *testing.T) {
	code, err := Normalize(" 4901234567894 ")

	require.NoError(t, err)
	assert.Equal(t, "4901234567894", code)
}

func TestNormalize_Jan8(t *testing.T) {
	code, err := Normalize("49123456")

	require.NoError(t, err)
	assert.Equal(t, "49123456", code)
}

func TestNormalize_UpcAGetsLeadingZero(t *testing.T) {
	code, err := Normalize("036000291452")

	require.NoError(t, err)
	assert.Equal(t, "0036000291452", code)
}

func TestNormalize_FullwidthDigits(t *testing.T) {
	code, err := Normalize("４９０１２３４５６７８９４")

	require.NoError(t, err)
	assert.Equal(t, "4901234567894", code)
}

func TestNormalize_BadCheckDigit(t *testing.T) {
	_, err := Normalize("4901234567895")

	assert.Error(t, err)
}

func TestNormalize_RejectsNonDigits(t *testing.T) {
	_, err := Normalize("ABC-123")

	assert.Error(t, err)
}

func TestNormalize_RejectsUnsupportedLength(t *testing.T) {
	_, err := Normalize("12345")

	assert.Error(t, err)
}

func TestNormalize_Empty(t *testing.T) {
	_, err := Normalize("")

	assert.Error(t, err)
}
