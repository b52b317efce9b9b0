package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"gradeflow/internal/util"
)

// Extensions handled as plain text. Everything not listed anywhere in the
// dispatch below is also decoded as text, best effort.
var textExtensions = map[string]struct{}{
	".txt": {}, ".py": {}, ".java": {}, ".cpp": {}, ".c": {}, ".md": {}, ".html": {}, ".json": {},
}

// Extract converts an uploaded file into plain text, dispatching on the
// lowercased filename extension rather than content sniffing. Text-like and
// unrecognized extensions never fail; structured containers (csv, xlsx,
// docx, pdf) return an error only when the container itself is unreadable.
func Extract(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := textExtensions[ext]; ok {
		return decodeText(content), nil
	}
	switch ext {
	case ".csv":
		return csvToText(content)
	case ".xlsx":
		return xlsxToText(content)
	case ".docx":
		return docxToText(content)
	case ".pdf":
		return pdfToText(content)
	default:
		return decodeText(content), nil
	}
}

// decodeText decodes as UTF-8 when possible and falls back to Latin-1, a
// single-byte encoding in which every byte sequence is valid.
func decodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(decoded)
}

func csvToText(b []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	return renderTable(rows), nil
}

func xlsxToText(b []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read xlsx rows: %w", err)
	}
	return renderTable(rows), nil
}

func docxToText(b []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	lines := make([]string, 0, len(doc.Document.Body.Items))
	for _, it := range doc.Document.Body.Items {
		if p, ok := it.(*docx.Paragraph); ok {
			lines = append(lines, p.String())
		}
	}
	return strings.Join(lines, "\n"), nil
}

func pdfToText(b []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		pages = append(pages, pdfPageText(r, i))
	}
	return util.SanitizeText(strings.Join(pages, "\n")), nil
}

// pdfPageText extracts one page. Any failure, including library panics on
// malformed content streams, yields an empty page instead of aborting the
// whole document.
func pdfPageText(r *pdf.Reader, n int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	p := r.Page(n)
	if p.V.IsNull() {
		return ""
	}
	s, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return s
}

// renderTable pads every column to its widest cell, pandas to_string style:
// left-aligned cells, two-space gutters, no truncation.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	var b strings.Builder
	for ri, row := range rows {
		if ri > 0 {
			b.WriteByte('\n')
		}
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(row)-1 {
				for p := utf8.RuneCountInString(cell); p < widths[i]; p++ {
					b.WriteByte(' ')
				}
			}
		}
	}
	return b.String()
}
