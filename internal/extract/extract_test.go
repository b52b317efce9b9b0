package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	out, err := Extract("essay.txt", []byte("hello world"))
	require.NoError(t, err)
	require.Equal(t, "hello world", out)
}

func TestExtractTextExtensionCaseInsensitive(t *testing.T) {
	out, err := Extract("Main.PY", []byte("print('x')"))
	require.NoError(t, err)
	require.Equal(t, "print('x')", out)
}

func TestExtractUnknownExtensionNeverErrors(t *testing.T) {
	blobs := [][]byte{
		nil,
		{},
		{0xff, 0xfe, 0x00, 0x80},
		[]byte("plain ascii"),
		{0xc3, 0x28}, // invalid utf-8 pair
	}
	for _, b := range blobs {
		out, err := Extract("mystery.bin", b)
		require.NoError(t, err)
		require.True(t, utf8.ValidString(out))
	}
}

func TestDecodeTextLatin1Fallback(t *testing.T) {
	// 0xe9 is "é" in Latin-1 but invalid as a lone UTF-8 byte.
	out := decodeText([]byte{'c', 'a', 'f', 0xe9})
	require.Equal(t, "café", out)
}

func TestExtractCSVAligned(t *testing.T) {
	csv := "name,score\nalice,10\nbo,7\n"
	out, err := Extract("grades.csv", []byte(csv))
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "name   score", lines[0])
	require.Equal(t, "alice  10", lines[1])
	require.Equal(t, "bo     7", lines[2])
}

func TestExtractCSVRaggedRows(t *testing.T) {
	out, err := Extract("data.csv", []byte("a,b,c\nd,e\n"))
	require.NoError(t, err)
	require.Contains(t, out, "a  b  c")
}

func TestExtractCSVMalformed(t *testing.T) {
	_, err := Extract("broken.csv", []byte("a,\"b\nnever-closed"))
	require.Error(t, err)
}

func TestExtractPDFCorruptContainer(t *testing.T) {
	_, err := Extract("paper.pdf", []byte("not a pdf at all"))
	require.Error(t, err)
}

func TestExtractDocxCorruptContainer(t *testing.T) {
	_, err := Extract("essay.docx", []byte("not a zip archive"))
	require.Error(t, err)
}

func TestExtractXLSXCorruptContainer(t *testing.T) {
	_, err := Extract("sheet.xlsx", []byte("not a workbook"))
	require.Error(t, err)
}

func TestRenderTableEmpty(t *testing.T) {
	require.Equal(t, "", renderTable(nil))
}
