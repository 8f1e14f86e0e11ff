package shiftreport

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// RenderPDF writes a one-page shift summary covering every entry in entries
// (typically a Recorder's Snapshot): a mode timeline plus the fault/repair
// log implied by each entry's Faults.
func RenderPDF(w io.Writer, entries []Entry) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Boiler Shift Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(entries) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 7, "No cycles recorded.", "", 1, "L", false, 0, "")
		return pdf.Output(w)
	}

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Cycles: %d    Final mode: %s", len(entries), entries[len(entries)-1].Mode), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(20, 7, "Tick", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Mode", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Water", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Steam", "1", 0, "R", true, 0, "")
	pdf.CellFormat(0, 7, "Faults", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, e := range entries {
		faults := "-"
		if len(e.Faults) > 0 {
			faults = fmt.Sprint(e.Faults)
		}
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", e.Tick), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, e.Mode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.1f", e.Water), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.1f", e.Steam), "1", 0, "R", false, 0, "")
		pdf.CellFormat(0, 6, faults, "1", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
