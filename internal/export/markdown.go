package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// MarkdownRenderer writes the set as a markdown table and converts it with mdtopdf.
type MarkdownRenderer struct {
	font []byte
}

// NewMarkdownRenderer takes the bytes of a TrueType font (see LoadFont).
func NewMarkdownRenderer(font []byte) *MarkdownRenderer {
	return &MarkdownRenderer{font: font}
}

func (m *MarkdownRenderer) RenderSet(doc Document) ([]byte, error) {
	if len(m.font) == 0 {
		return nil, renderError("mdtopdf", ErrFontRequired)
	}
	tmp, err := os.CreateTemp("", "vocabkeep-*.pdf")
	if err != nil {
		return nil, renderError("os.CreateTemp", err)
	}
	pdfPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(pdfPath)

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	m.useFont(renderer)
	if err := renderer.Process([]byte(Markdown(doc))); err != nil {
		return nil, renderError("renderer.Process", err)
	}

	body, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, renderError("os.ReadFile", err)
	}
	return body, nil
}

// useFont registers the font for every style mdtopdf asks for and points all
// stylers at it.
func (m *MarkdownRenderer) useFont(r *mdtopdf.PdfRenderer) {
	for _, style := range []string{"", "B", "I", "BI"} {
		r.Pdf.AddUTF8FontFromBytes(utf8FontFamily, style, m.font)
	}
	stylers := []*mdtopdf.Styler{
		&r.Normal, &r.Link, &r.Backtick, &r.Blockquote, &r.Code,
		&r.H1, &r.H2, &r.H3, &r.H4, &r.H5, &r.H6,
		&r.THeader, &r.TBody,
	}
	for _, s := range stylers {
		s.Font = utf8FontFamily
	}
	// the first paragraph state was captured before the font change
	r.UpdateParagraphStyler(r.Normal)
	r.Pdf.SetFont(utf8FontFamily, r.Normal.Style, r.Normal.Size)
}

// Markdown returns the markdown source of doc.
func Markdown(doc Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", mdEscape(doc.Set.Title))
	fmt.Fprintf(&b, "%s / %s\n\n", mdEscape(doc.Owner), doc.GeneratedAt.Format("2006-01-02 15:04"))
	if len(doc.Entries) == 0 {
		b.WriteString("No entries.\n")
		return b.String()
	}
	b.WriteString("| Word | Pinyin | Translation | Star |\n")
	b.WriteString("|------|--------|-------------|------|\n")
	for _, e := range doc.Entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			mdEscape(e.Word), mdEscape(e.Phonetic), mdEscape(e.Translation), starMark(e.Starred))
	}
	return b.String()
}

var mdReplacer = strings.NewReplacer("|", `\|`, "\n", " ", "*", `\*`, "_", `\_`, "#", `\#`)

func mdEscape(s string) string {
	return mdReplacer.Replace(s)
}
