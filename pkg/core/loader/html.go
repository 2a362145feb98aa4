package loader

import (
	"io"

	"github.com/PuerkitoBio/goquery"

	"finanalyst/pkg/models"
)

// ParseHTMLTable reads the first <table> of an HTML document into line
// items under the same 3-column contract as ParseWorkbook.
func ParseHTMLTable(r io.Reader) ([]models.LineItem, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &DataFormatError{Reason: "unreadable HTML document", Err: err}
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, &DataFormatError{Reason: "no table found in HTML document"}
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cell.Text())
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	return buildItems(rows)
}
