package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders roster tables and printable pass cards.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a landscape document with an optional title and table body.
func (e *PDFExporter) Render(data Table, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(strings.ToUpper(title)), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 277.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for i := range data.Headers {
			pdf.CellFormat(colWidth, 7, tr(data.cell(row, i)), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

// PassCard is the content of a printable student transport pass.
type PassCard struct {
	Title              string
	Name               string
	RegistrationNumber string
	School             string
	BirthDate          string
	BloodType          string
	Status             string
	Parents            string
	EmergencyPhone     string
	SpecialNeeds       bool
	VerifyURL          string
	// Photo is optional JPEG or PNG data; PhotoType is "JPG" or "PNG".
	Photo     []byte
	PhotoType string
}

// RenderPassCard draws a credit-card sized pass on an A6 page.
func (e *PDFExporter) RenderPassCard(card PassCard) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A6", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFillColor(30, 64, 175)
	pdf.Rect(0, 0, 148, 18, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 13)
	title := card.Title
	if title == "" {
		title = "School Pass"
	}
	pdf.SetXY(8, 5)
	pdf.CellFormat(0, 8, tr(title), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	textX := 8.0
	if len(card.Photo) > 0 && (card.PhotoType == "JPG" || card.PhotoType == "PNG") {
		opts := gofpdf.ImageOptions{ImageType: card.PhotoType, ReadDpi: true}
		pdf.RegisterImageOptionsReader("photo", opts, bytes.NewReader(card.Photo))
		if pdf.Ok() {
			pdf.ImageOptions("photo", 8, 24, 32, 40, false, opts, 0, "")
			textX = 46
		} else {
			// an unreadable photo must not block printing the pass
			pdf.ClearError()
		}
	}

	pdf.SetXY(textX, 24)
	pdf.SetFont("Arial", "B", 12)
	pdf.MultiCell(0, 6, tr(card.Name), "", "L", false)

	fields := [][2]string{
		{"Matrícula", card.RegistrationNumber},
		{"Escola", card.School},
		{"Nascimento", card.BirthDate},
		{"Tipo sanguíneo", card.BloodType},
		{"Responsáveis", card.Parents},
		{"Emergência", card.EmergencyPhone},
		{"Situação", card.Status},
	}
	if card.SpecialNeeds {
		fields = append(fields, [2]string{"Atenção", "Necessidades especiais"})
	}

	pdf.SetFont("Arial", "", 9)
	for _, field := range fields {
		if field[1] == "" {
			continue
		}
		pdf.SetX(textX)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(28, 5, tr(field[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, tr(field[1]), "", 1, "L", false, 0, "")
	}

	if card.VerifyURL != "" {
		pdf.SetXY(8, 96)
		pdf.SetFont("Arial", "I", 7)
		pdf.CellFormat(0, 4, tr(card.VerifyURL), "", 0, "L", false, 0, card.VerifyURL)
	}

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
