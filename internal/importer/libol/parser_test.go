package libol_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamdn/circura/internal/importer/libol"
)

func TestParser_HoldingsProfile(t *testing.T) {
	input := strings.Join([]string{
		"edition_code;copy_number;price",
		"TN-2019-01;1;120000",
		"TN-2019-01;2;120000",
		"VH-2021-03;1;85000",
		"",
	}, "\n")

	params, err := libol.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, "TN-2019-01", params[0].EditionCode)
	assert.Equal(t, 1, params[0].CopyNumber)
	assert.Equal(t, int64(120000), params[0].Price)
	assert.Equal(t, "VH-2021-03", params[2].EditionCode)
}

func TestParser_KhoProfile(t *testing.T) {
	input := strings.Join([]string{
		"Danh mục kho;;",
		"Mã ấn bản;Số bản sao;Giá bìa",
		"TN-2019-01;3;120.000",
		"VH-2021-03;1;85.000",
		"Tổng cộng;;205.000",
	}, "\n")

	params, err := libol.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	// The footer row has no numeric copy number and is skipped.
	require.Len(t, params, 2)

	assert.Equal(t, "TN-2019-01", params[0].EditionCode)
	assert.Equal(t, 3, params[0].CopyNumber)
	assert.Equal(t, int64(120000), params[0].Price)
	assert.Equal(t, int64(85000), params[1].Price)
}

func TestParser_LegacyEncoding(t *testing.T) {
	// "Mã ấn bản;Số bản sao;Giá bìa" in windows-1258, which stores
	// Vietnamese tone marks as combining bytes after the base letter.
	var buf bytes.Buffer
	buf.WriteString("M")
	buf.Write([]byte{'a', 0xDE}) // a + combining tilde -> ã
	buf.WriteString(" ")
	buf.Write([]byte{0xE2, 0xEC}) // â + combining acute -> ấ
	buf.WriteString("n b")
	buf.Write([]byte{'a', 0xD2}) // a + combining hook -> ả
	buf.WriteString("n;S")
	buf.Write([]byte{0xF4, 0xEC}) // ô + combining acute -> ố
	buf.WriteString(" b")
	buf.Write([]byte{'a', 0xD2})
	buf.WriteString("n sao;Gi")
	buf.Write([]byte{0xE1}) // á
	buf.WriteString(" b")
	buf.Write([]byte{'i', 0xCC}) // i + combining grave -> ì
	buf.WriteString("a\n")
	buf.WriteString("TN-2019-01;2;120.000\n")

	params, err := libol.NewParser().Parse(&buf)
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, "TN-2019-01", params[0].EditionCode)
	assert.Equal(t, 2, params[0].CopyNumber)
	assert.Equal(t, int64(120000), params[0].Price)
}

func TestParser_NoMatchingFormat(t *testing.T) {
	input := "isbn,title,author\n123,Some Book,Someone\n"

	params, err := libol.NewParser().Parse(strings.NewReader(input))
	assert.Error(t, err)
	assert.Nil(t, params)
}

func TestParser_MissingEditionCode(t *testing.T) {
	input := strings.Join([]string{
		"edition_code;copy_number;price",
		";4;120000",
	}, "\n")

	params, err := libol.NewParser().Parse(strings.NewReader(input))
	assert.Error(t, err)
	assert.Nil(t, params)
}

func TestParser_PriceFallsBackToZero(t *testing.T) {
	input := strings.Join([]string{
		"edition_code;copy_number;price",
		"TN-2019-01;1;n/a",
		"TN-2019-01;2;",
	}, "\n")

	params, err := libol.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Zero(t, params[0].Price)
	assert.Zero(t, params[1].Price)
}
