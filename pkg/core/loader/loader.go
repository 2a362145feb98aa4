package loader

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"finanalyst/pkg/models"
)

// DataFormatError reports an upload that could not be turned into a
// statement: unreadable file, empty sheet, or fewer than 3 columns.
// It is recoverable per upload attempt and never aborts the session.
type DataFormatError struct {
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid statement file: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid statement file: %s", e.Reason)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// ParseUpload reads uploaded statement bytes into line items. Exports
// from accounting packages are frequently HTML tables saved with an
// .xls extension, so the content is sniffed before excelize gets it.
func ParseUpload(r io.Reader) ([]models.LineItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DataFormatError{Reason: "unreadable upload", Err: err}
	}
	if looksLikeHTML(data) {
		return ParseHTMLTable(bytes.NewReader(data))
	}
	return ParseWorkbook(bytes.NewReader(data))
}

// ParseWorkbook reads the first sheet of a spreadsheet into line items.
func ParseWorkbook(r io.Reader) ([]models.LineItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &DataFormatError{Reason: "unreadable spreadsheet", Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &DataFormatError{Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &DataFormatError{Reason: "failed to read rows", Err: err}
	}
	return buildItems(rows)
}

// buildItems applies the 3-positional-column contract: the first row is
// a header and is discarded, only the first three columns are read, and
// their source names are ignored.
func buildItems(rows [][]string) ([]models.LineItem, error) {
	if len(rows) == 0 {
		return nil, &DataFormatError{Reason: "sheet is empty"}
	}
	if len(rows[0]) < 3 {
		return nil, &DataFormatError{Reason: fmt.Sprintf("need at least 3 columns (label, prior, current), got %d", len(rows[0]))}
	}

	items := make([]models.LineItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		items = append(items, models.LineItem{
			Label:   strings.TrimSpace(cell(row, 0)),
			Prior:   coerceNumeric(cell(row, 1)),
			Current: coerceNumeric(cell(row, 2)),
		})
	}
	return items, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// coerceNumeric parses a period value. Blank or unparseable cells
// become 0 so a single bad cell cannot abort the analysis.
func coerceNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// Display formats leak thousands separators into cell text.
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func looksLikeHTML(data []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(data))
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(head, []byte("<")) &&
		(bytes.Contains(head, []byte("<html")) || bytes.Contains(head, []byte("<table")) || bytes.Contains(head, []byte("<!doctype")))
}
