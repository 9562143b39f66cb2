package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

type column struct {
	title string
	width float64
}

var tableColumns = []column{
	{"Word", 35},
	{"Pinyin", 50},
	{"Translation", 80},
	{"Star", 15},
}

// TableRenderer draws the set as an A4 table with fpdf.
type TableRenderer struct {
	font []byte
}

// NewTableRenderer takes the bytes of a TrueType font (see LoadFont).
func NewTableRenderer(font []byte) *TableRenderer {
	return &TableRenderer{font: font}
}

func (t *TableRenderer) RenderSet(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Set.Title, true)
	pdf.SetAuthor(doc.Owner, true)
	pdf.AliasNbPages("")

	if len(t.font) == 0 {
		return nil, renderError("fpdf", ErrFontRequired)
	}
	pdf.AddUTF8FontFromBytes(utf8FontFamily, "", t.font)
	family := utf8FontFamily

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() == 1 {
			pdf.SetFont(family, "", 16)
			pdf.CellFormat(0, 10, doc.Set.Title, "", 1, "L", false, 0, "")
			pdf.SetFont(family, "", 9)
			pdf.CellFormat(0, 6, fmt.Sprintf("%s / %s", doc.Owner, doc.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
			pdf.Ln(2)
		}
		pdf.SetFont(family, "", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range tableColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(family, "", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(family, "", 10)
	if len(doc.Entries) == 0 {
		pdf.CellFormat(0, 8, "No entries.", "", 1, "L", false, 0, "")
	}
	for _, e := range doc.Entries {
		cells := []string{e.Word, e.Phonetic, e.Translation, starMark(e.Starred)}
		for i, col := range tableColumns {
			pdf.CellFormat(col.width, 7, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, renderError("fpdf", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, renderError("fpdf output", err)
	}
	return buf.Bytes(), nil
}
