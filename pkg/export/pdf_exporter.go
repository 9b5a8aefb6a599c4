package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// FieldLine is one projected field of a document.
type FieldLine struct {
	Name    string
	Content string
	RelID   int64
}

// DocumentSheet carries everything needed to render a document export.
type DocumentSheet struct {
	Name      string
	TypeName  string
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    []FieldLine
}

// PDFExporter renders a document sheet into a printable PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF with the document header and one line per field.
func (e *PDFExporter) Render(sheet DocumentSheet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, sheet.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Type %s", sheet.TypeName), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Created at %s", sheet.CreatedAt.Format(time.RFC1123)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Last update at %s", sheet.UpdatedAt.Format(time.RFC1123)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, field := range sheet.Fields {
		pdf.SetFont("Arial", "B", 10)
		label := fmt.Sprintf("%s: ", field.Name)
		pdf.CellFormat(pdf.GetStringWidth(label)+2, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, field.Content, "", "L", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
