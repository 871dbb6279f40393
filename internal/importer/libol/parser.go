package libol

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/lamdn/circura/internal/catalog"
	enc "github.com/lamdn/circura/internal/encoding"
)

// Parser reads LIBOL holdings CSV exports and produces copy params.
// It auto-detects which export format is being used by matching column
// headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]catalog.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching LIBOL format found: expected holdings or kho columns")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			// Legacy code pages decode diacritics as combining marks, so
			// headers are composed before matching.
			name := strings.TrimSpace(norm.NFC.String(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts copy params from data rows using the matched profile.
// headerRowNum is the 0-based index of the header in the original file (for error messages).
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]catalog.CreateParams, error) {
	editionIdx := cols[p.EditionCol]
	numberIdx := cols[p.NumberCol]
	priceIdx := cols[p.PriceCol]

	var params []catalog.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		number, ok := parseCopyNumber(row, numberIdx)
		if !ok {
			// Footer or summary rows carry no copy number.
			continue
		}

		code := cellValue(row, editionIdx)
		if code == "" {
			return nil, fmt.Errorf("row %d: missing edition code", rowNum)
		}

		params = append(params, catalog.CreateParams{
			EditionCode: code,
			CopyNumber:  number,
			Price:       parsePrice(row, priceIdx),
		})
	}

	return params, nil
}

// parseCopyNumber returns false for empty cells or unparseable values
// (footer rows, etc).
func parseCopyNumber(row []string, idx int) (int, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

// parsePrice reads an amount in đồng. Legacy exports group thousands with
// dots ("120.000"); missing or unparseable prices default to 0.
func parsePrice(row []string, idx int) int64 {
	s := cellValue(row, idx)
	if s == "" {
		return 0
	}

	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.TrimSuffix(clean, " ₫")

	v, err := strconv.ParseInt(clean, 10, 64)
	if err != nil || v < 0 {
		return 0
	}

	return v
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
