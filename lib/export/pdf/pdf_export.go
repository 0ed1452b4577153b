package pdfexport

import (
	"bytes"
	"fmt"
	"strings"

	dbmodels "bim-collab-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// RenderContract lays the approved contract text out as an A4 document:
// header with the parties, the article body, and a closing signature block.
func RenderContract(rec dbmodels.Contract) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("RenderContract panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	// core fonts cover the latin-1 range, enough for Italian contract prose
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 10, "CONTRATTO DI COLLABORAZIONE PROFESSIONALE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	data := rec.ContractData
	header := fmt.Sprintf("%s (P.IVA %s) / %s (P.IVA %s)",
		data.Company.Name, data.Company.VATNumber,
		data.Professional.FullName, data.Professional.VATNumber)
	pdf.MultiCell(0, 5, tr(header), "", "C", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	_, lineHt := pdf.GetFontSize()
	for _, paragraph := range strings.Split(rec.GeneratedText, "\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			pdf.Ln(lineHt)
			continue
		}
		pdf.MultiCell(0, 5, tr(paragraph), "", "J", false)
	}

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(95, 8, "Il Committente", "T", 0, "C", false, 0, "")
	pdf.CellFormat(95, 8, "Il Professionista", "T", 1, "C", false, 0, "")

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
