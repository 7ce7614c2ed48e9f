package documents

import (
	"bytes"
	"fmt"
	"time"

	"konfeksiyon-backend/internal/fabric"
	"konfeksiyon-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// FabricOrder: tedarikçiye verilen kumaş sipariş formu. Miktarlar grubun
// tamamı üzerinden, kesim fazlası dahil hesaplanır.
func FabricOrder(group []models.Order, companyName string) ([]byte, error) {
	if len(group) == 0 {
		return nil, fmt.Errorf("kumaş siparişi için grup boş")
	}
	first := group[0]
	reqs := fabric.GroupRequirements(group)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1254")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(120, 10, tr(companyName), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(66, 10, tr("KUMAŞ SİPARİŞ FORMU"), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(120, 6, tr("Satın Alma"), "", 0, "L", false, 0, "")
	pdf.CellFormat(66, 6, tr(fmt.Sprintf("Sipariş: %s  •  %s", first.OrderNo, time.Now().Format("02.01.2006"))), "", 1, "R", false, 0, "")
	pdf.SetTextColor(15, 23, 42)

	pdf.SetLineWidth(0.8)
	pdf.Line(12, pdf.GetY()+2, 198, pdf.GetY()+2)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(186, 6, tr(fmt.Sprintf("Müşteri: %s", first.Customer)), "", 1, "L", false, 0, "")
	if first.Model != "" {
		pdf.CellFormat(186, 6, tr(fmt.Sprintf("Model: %s", first.Model)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(203, 213, 225)
	pdf.SetLineWidth(0.2)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(24, 7, tr("Tip"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(86, 7, tr("Kumaş Cinsi / İçerik"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, tr("Renk"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(36, 7, tr("Miktar *"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range reqs {
		kind := r.Kind
		if r.IsMain {
			kind = "[ANA] " + kind
		}
		if r.Content != "" {
			kind += " - " + r.Content
		}
		color := r.Color
		if color == "" {
			color = first.Color
		}
		pdf.CellFormat(24, 7, tr(r.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(86, 7, tr(kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, tr(color), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(36, 7, tr(fmt.Sprintf("%.2f %s", r.TotalAmount, r.Unit)), "1", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(186, 5, tr("* Bu miktar kesim fazlalığı eklenerek hesaplanmıştır."), "", 1, "L", false, 0, "")
	pdf.SetTextColor(15, 23, 42)

	pdf.SetY(-50)
	pdf.SetDrawColor(15, 23, 42)
	pdf.SetLineWidth(0.5)
	pdf.Line(130, pdf.GetY(), 198, pdf.GetY())
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(186, 6, tr(companyName+" Onayı"), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("kumaş sipariş formu PDF oluşturulamadı: %w", err)
	}
	return buf.Bytes(), nil
}
