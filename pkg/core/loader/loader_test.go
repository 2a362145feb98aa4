package loader

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseWorkbook(t *testing.T) {
	buf := workbookBytes(t,
		[]interface{}{"Chỉ tiêu", "Năm trước", "Năm sau"},
		[]interface{}{"TỔNG CỘNG TÀI SẢN", 1000, 2000},
		[]interface{}{"TÀI SẢN NGẮN HẠN", 400, 1000},
	)

	items, err := ParseUpload(buf)
	require.NoError(t, err)
	require.Len(t, items, 2, "header row must be discarded")

	assert.Equal(t, "TỔNG CỘNG TÀI SẢN", items[0].Label)
	assert.Equal(t, 1000.0, items[0].Prior)
	assert.Equal(t, 2000.0, items[0].Current)
	assert.Equal(t, 400.0, items[1].Prior)
}

func TestParseWorkbookCoercesBadValuesToZero(t *testing.T) {
	buf := workbookBytes(t,
		[]interface{}{"label", "prior", "current"},
		[]interface{}{"Inventory", "n/a", ""},
		[]interface{}{"Receivables", "1,234", 10},
	)

	items, err := ParseUpload(buf)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 0.0, items[0].Prior)
	assert.Equal(t, 0.0, items[0].Current)
	assert.Equal(t, 1234.0, items[1].Prior, "thousands separators must not break coercion")
}

func TestParseWorkbookTooFewColumns(t *testing.T) {
	buf := workbookBytes(t,
		[]interface{}{"label", "prior"},
		[]interface{}{"Cash", 5},
	)

	_, err := ParseUpload(buf)
	require.Error(t, err)
	var formatErr *DataFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestParseUploadRejectsGarbage(t *testing.T) {
	_, err := ParseUpload(strings.NewReader("definitely not a spreadsheet"))
	require.Error(t, err)
	var formatErr *DataFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestParseUploadSniffsHTML(t *testing.T) {
	html := `<html><body><table>
		<tr><th>Chỉ tiêu</th><th>Năm trước</th><th>Năm sau</th></tr>
		<tr><td>TOTAL ASSETS</td><td>1,000</td><td>2000</td></tr>
		<tr><td>CURRENT ASSETS</td><td>400</td><td>xxx</td></tr>
	</table></body></html>`

	items, err := ParseUpload(strings.NewReader(html))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "TOTAL ASSETS", items[0].Label)
	assert.Equal(t, 1000.0, items[0].Prior)
	assert.Equal(t, 0.0, items[1].Current, "non-numeric HTML cell becomes 0")
}

func TestParseHTMLTableWithoutTable(t *testing.T) {
	_, err := ParseHTMLTable(strings.NewReader("<html><body><p>hi</p></body></html>"))
	require.Error(t, err)
	var formatErr *DataFormatError
	assert.True(t, errors.As(err, &formatErr))
}
