// Package fixtures generates the deterministic test artifacts the E2E suite
// uploads: sample PDFs, signature images, contact import sheets and XML
// automation batches.
package fixtures

import (
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/xuri/excelize/v2"
)

// Contact is one row of a contact import sheet.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// BatchDocument is one entry of an XML automation batch.
type BatchDocument struct {
	Title     string `xml:"title"`
	Recipient string `xml:"recipient"`
	Template  string `xml:"template"`
}

type batchRoot struct {
	XMLName   xml.Name        `xml:"documents"`
	Documents []BatchDocument `xml:"document"`
}

// UniqueName returns name with a short uuid suffix so repeated runs against
// the same deployment never collide.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// SamplePDF writes a pages-long PDF with a title line and filler paragraphs.
func SamplePDF(path, title string, pages int) error {
	if pages < 1 {
		pages = 1
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s - page %d", title, i+1), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for line := 0; line < 12; line++ {
			pdf.CellFormat(0, 8, "This agreement is made for end-to-end testing purposes only.", "", 1, "L", false, 0, "")
		}
		// Signature anchor so field placement lands on something visible
		pdf.Ln(10)
		pdf.CellFormat(0, 8, "Signature: ______________________", "", 1, "L", false, 0, "")
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing sample pdf %s: %w", path, err)
	}
	return nil
}

// PageCount returns the page count of a PDF on disk.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// ValidatePDF checks structural validity of a PDF on disk.
func ValidatePDF(path string) error {
	if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("pdf %s failed validation: %w", path, err)
	}
	return nil
}

// SignatureImagePNG writes a small PNG with a dark squiggle on a transparent
// background, usable as an uploaded signature.
func SignatureImagePNG(path string) error {
	const w, h = 240, 80
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	ink := color.NRGBA{R: 20, G: 20, B: 80, A: 255}
	// A thick sine-ish stroke across the canvas
	for x := 10; x < w-10; x++ {
		y := h/2 + int(float64(h)*0.25*wave(float64(x)/float64(w)))
		for dy := -2; dy <= 2; dy++ {
			if y+dy >= 0 && y+dy < h {
				img.SetNRGBA(x, y+dy, ink)
			}
		}
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating signature image %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding signature image: %w", err)
	}
	return nil
}

func wave(t float64) float64 {
	// Piecewise zigzag, avoids pulling in math for a test scribble
	seg := int(t * 8)
	frac := t*8 - float64(seg)
	if seg%2 == 0 {
		return frac*2 - 1
	}
	return 1 - frac*2
}

// ContactsXLSX writes an import sheet with the header row WeSign expects.
func ContactsXLSX(path string, contacts []Contact) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Name", "Email", "Phone"}
	for i, hname := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, hname); err != nil {
			return fmt.Errorf("writing header %s: %w", hname, err)
		}
	}
	for r, c := range contacts {
		values := []string{c.Name, c.Email, c.Phone}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing contact row %d: %w", r+1, err)
			}
		}
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving contacts sheet %s: %w", path, err)
	}
	return nil
}

// BatchXML writes an XML automation batch describing documents to generate.
func BatchXML(path string, docs []BatchDocument) error {
	root := batchRoot{Documents: docs}
	out, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling batch xml: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	data := append([]byte(xml.Header), out...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing batch xml %s: %w", path, err)
	}
	return nil
}

// MalformedXML writes a deliberately broken batch file for rejection tests.
func MalformedXML(path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	broken := []byte(xml.Header + "<documents><document><title>unterminated")
	return os.WriteFile(path, broken, 0644)
}

// ParseBatchXML reads a batch file back; used to cross-check generation.
func ParseBatchXML(path string) ([]BatchDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch xml %s: %w", path, err)
	}
	var root batchRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing batch xml %s: %w", path, err)
	}
	return root.Documents, nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating fixture dir: %w", err)
	}
	return nil
}
