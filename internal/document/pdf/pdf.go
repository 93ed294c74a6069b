// Package pdf renders assembled document content to a paginated PDF using
// go-pdf/fpdf. It implements document.Renderer.
package pdf

import (
	"bytes"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"

	"github.com/jimpav61/ai-human-cost-comparator-sub001/internal/document"
)

// Renderer emits US Letter portrait PDFs.
type Renderer struct{}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{}
}

const (
	marginMM    = 18.0
	pageWidthMM = 216.0 // US Letter
	bodyWidth   = pageWidthMM - 2*marginMM
	labelWidth  = bodyWidth * 0.55
	valueWidth  = bodyWidth - labelWidth
)

// Render writes the content as a PDF and returns the bytes.
func (r *Renderer) Render(c document.Content) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(marginMM, marginMM, marginMM)
	doc.SetAutoPageBreak(true, marginMM)
	doc.AddPage()

	br, bg, bb := c.BrandColor[0], c.BrandColor[1], c.BrandColor[2]

	// Title block.
	doc.SetTextColor(br, bg, bb)
	doc.SetFont("Helvetica", "B", 20)
	doc.MultiCell(bodyWidth, 9, c.Title, "", "L", false)
	doc.SetTextColor(90, 90, 90)
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(bodyWidth, 6, c.Subtitle, "", "L", false)
	doc.Ln(4)

	for _, sec := range c.Sections {
		r.section(doc, sec, br, bg, bb)
	}

	r.footer(doc, c)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, eris.Wrap(err, "pdf: output")
	}
	return buf.Bytes(), nil
}

func (r *Renderer) section(doc *fpdf.Fpdf, sec document.Section, br, bg, bb int) {
	doc.SetTextColor(br, bg, bb)
	doc.SetFont("Helvetica", "B", 14)
	doc.MultiCell(bodyWidth, 7, sec.Title, "", "L", false)
	doc.Ln(1)

	doc.SetTextColor(30, 30, 30)
	doc.SetFont("Helvetica", "", 10.5)
	for _, p := range sec.Paragraphs {
		doc.MultiCell(bodyWidth, 5.5, p, "", "L", false)
		doc.Ln(2)
	}

	for _, tbl := range sec.Tables {
		r.table(doc, tbl, br, bg, bb)
	}
	doc.Ln(4)
}

func (r *Renderer) table(doc *fpdf.Fpdf, tbl document.Table, br, bg, bb int) {
	if tbl.Title != "" {
		doc.SetFont("Helvetica", "B", 11)
		doc.SetTextColor(br, bg, bb)
		doc.MultiCell(bodyWidth, 6, tbl.Title, "", "L", false)
	}

	doc.SetTextColor(30, 30, 30)
	for i, row := range tbl.Rows {
		if i%2 == 0 {
			doc.SetFillColor(243, 244, 246)
		} else {
			doc.SetFillColor(255, 255, 255)
		}
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(labelWidth, 7, row.Label, "", 0, "L", true, 0, "")
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(valueWidth, 7, row.Value, "", 1, "R", true, 0, "")
	}
	doc.Ln(2)
}

func (r *Renderer) footer(doc *fpdf.Fpdf, c document.Content) {
	doc.Ln(4)
	doc.SetDrawColor(200, 200, 200)
	x := doc.GetX()
	y := doc.GetY()
	doc.Line(marginMM, y, pageWidthMM-marginMM, y)
	doc.SetXY(x, y+2)

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(90, 90, 90)
	contact := c.ContactName
	if c.Email != "" {
		contact += " · " + c.Email
	}
	if c.PhoneNumber != "" {
		contact += " · " + c.PhoneNumber
	}
	doc.MultiCell(bodyWidth, 5, contact, "", "L", false)
}
