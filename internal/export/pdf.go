// internal/export/pdf.go
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

type GroceryExport struct {
	UserName string
	Servings int
	Date     time.Time
	Items    []string
}

// FileName returns the download name for a list generated on date.
func FileName(date time.Time) string {
	return fmt.Sprintf("MealMate_List_%s.pdf", date.Format("2006-01-02"))
}

const (
	lineHeight = 10.0
	pageBottom = 270.0
)

// WriteGroceryPDF renders the list as a printable A4 checklist.
func WriteGroceryPDF(w io.Writer, list GroceryExport) error {
	pdf := renderGroceryList(list)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render grocery pdf: %w", err)
	}
	return nil
}

func renderGroceryList(list GroceryExport) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("MealMate Grocery Shopping List", true)
	pdf.SetCreationDate(list.Date)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(x, y float64, s string) {
		pdf.Text(x, y, tr(CleanText(s)))
	}

	pdf.AddPage()

	// Header
	pdf.SetFillColor(250, 250, 250)
	pdf.Rect(0, 0, 210, 40, "F")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(139, 92, 246)
	text(20, 20, "MealMate")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(50, 50, 50)
	text(20, 30, "Grocery Shopping List")

	pdf.SetFontSize(10)
	pdf.SetTextColor(100, 100, 100)
	text(150, 20, "User: "+list.UserName)
	text(150, 25, fmt.Sprintf("Servings: %d", list.Servings))
	text(150, 30, "Date: "+list.Date.Format("2006-01-02"))

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, 42, 190, 42)

	// Items
	y := 55.0
	pdf.SetFontSize(12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(100, 100, 100)
	for _, item := range list.Items {
		if y > pageBottom {
			pdf.AddPage()
			y = 20
		}
		pdf.Rect(20, y-4, 4, 4, "D")
		text(30, y, item)
		y += lineHeight
	}

	return pdf
}
