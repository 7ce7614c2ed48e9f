package documents

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"konfeksiyon-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// CuttingOrder: kesimhaneye verilen A4 kesim emri. Başlık, bilgi ızgarası,
// hammadde tablosu, beden dağılımı (sipariş / planlanan / gerçek kesim)
// ve imza bloğu. Veri değiştirmez, sadece okur.
func CuttingOrder(o models.Order, companyName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1254")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	// Başlık
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(120, 10, tr(companyName), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(66, 10, tr("KESİM EMRİ"), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(120, 6, tr("Üretim Planlama"), "", 0, "L", false, 0, "")
	pdf.CellFormat(66, 6, tr(fmt.Sprintf("Sipariş: %s  •  %s", o.OrderNo, time.Now().Format("02.01.2006"))), "", 1, "R", false, 0, "")
	pdf.SetTextColor(15, 23, 42)

	pdf.SetLineWidth(0.8)
	pdf.Line(12, pdf.GetY()+2, 198, pdf.GetY()+2)
	pdf.Ln(8)

	// Bilgi ızgarası
	infoCell := func(label, value string) {
		x, y := pdf.GetXY()
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(148, 163, 184)
		pdf.CellFormat(62, 4, tr(label), "", 2, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(15, 23, 42)
		if value == "" {
			value = "---"
		}
		pdf.CellFormat(62, 6, tr(value), "", 0, "L", false, 0, "")
		pdf.SetXY(x+62, y)
	}

	due := ""
	if o.Due != nil {
		due = o.Due.Format("02.01.2006")
	}
	cuttingDate := ""
	if o.CuttingDate != nil {
		cuttingDate = o.CuttingDate.Format("02.01.2006")
	}
	markerWidth := ""
	if o.MarkerWidth != "" {
		markerWidth = o.MarkerWidth + " CM"
	}

	infoCell("MÜŞTERİ", o.Customer)
	infoCell("ARTİKEL", o.Article)
	infoCell("MODEL", o.Model)
	pdf.Ln(12)
	infoCell("RENK", o.Color)
	infoCell("TERMİN", due)
	infoCell("KESİM TARİHİ", cuttingDate)
	pdf.Ln(12)
	infoCell("ÇİZİM (PASTAL) ENİ", markerWidth)
	pdf.Ln(14)

	// Hammadde tablosu
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(186, 5, tr("HAMMADDE DETAYLARI"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(15, 23, 42)

	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(203, 213, 225)
	pdf.SetLineWidth(0.2)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(70, 6, tr("Kumaş Cinsi"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(80, 6, tr("Renk / İçerik"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(36, 6, tr("Birim Gider"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, slot := range o.Fabrics.Slots() {
		f := slot.Fabric
		if f.Empty() {
			continue
		}
		kind := f.Kind
		if slot.IsMain {
			kind = "[ANA] " + kind
		}
		colorContent := f.Color
		if colorContent == "" {
			colorContent = o.Color
		}
		if f.Content != "" {
			colorContent += " - " + f.Content
		}
		pdf.CellFormat(70, 6, tr(kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(80, 6, tr(colorContent), "1", 0, "L", false, 0, "")
		pdf.CellFormat(36, 6, tr(fmt.Sprintf("%.3f %s", f.PerPiece, f.UnitOrDefault())), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	// Beden dağılımı
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(71, 85, 105)
	pdf.CellFormat(186, 5, tr("BEDEN DAĞILIMI"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(15, 23, 42)

	sizes := sortedSizes(o.QtyBySize)
	labelW := 34.0
	totalW := 26.0
	sizeW := (186.0 - labelW - totalW) / float64(max(len(sizes), 1))
	extraFactor := 1 + o.ExtraPercent/100

	pdf.SetFillColor(241, 245, 249)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(labelW, 7, tr("AŞAMALAR"), "1", 0, "L", true, 0, "")
	for _, s := range sizes {
		pdf.CellFormat(sizeW, 7, tr(s), "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(totalW, 7, "TOPLAM", "1", 1, "C", true, 0, "")

	var totalOrdered, totalPlanned float64
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 7, tr("Sipariş"), "1", 0, "L", false, 0, "")
	for _, s := range sizes {
		qty := o.QtyBySize[s]
		totalOrdered += qty
		pdf.CellFormat(sizeW, 7, fmt.Sprintf("%.0f", qty), "1", 0, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(totalW, 7, fmt.Sprintf("%.0f", totalOrdered), "1", 1, "C", false, 0, "")

	pdf.SetFillColor(239, 246, 255)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(labelW, 7, tr(fmt.Sprintf("Planlanan (+%%%.0f)", o.ExtraPercent)), "1", 0, "L", true, 0, "")
	for _, s := range sizes {
		planned := math.Ceil(o.QtyBySize[s] * extraFactor)
		totalPlanned += planned
		pdf.CellFormat(sizeW, 7, fmt.Sprintf("%.0f", planned), "1", 0, "C", true, 0, "")
	}
	pdf.CellFormat(totalW, 7, fmt.Sprintf("%d", o.PlannedQuantity()), "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(labelW, 10, tr("Gerçek Kesim"), "1", 0, "L", false, 0, "")
	for _, s := range sizes {
		cell := ""
		if v, ok := o.CuttingQty[s]; ok && v > 0 {
			cell = fmt.Sprintf("%.0f", v)
		}
		pdf.CellFormat(sizeW, 10, cell, "1", 0, "C", false, 0, "")
	}
	totalCutCell := ""
	if o.CutQuantity() > 0 {
		totalCutCell = fmt.Sprintf("%.0f", o.CutQuantity())
	}
	pdf.CellFormat(totalW, 10, totalCutCell, "1", 1, "C", false, 0, "")
	pdf.Ln(10)

	// Talimatlar ve imza
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(148, 163, 184)
	pdf.CellFormat(186, 4, tr("KESİM TALİMATLARI VE NOTLAR"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(51, 65, 85)
	pdf.SetFont("Helvetica", "I", 9)
	notes := o.PostProcesses
	if notes == "" {
		notes = "Özel bir talimat bulunmamaktadır."
	}
	pdf.MultiCell(120, 5, tr(notes), "1", "L", false)

	pdf.SetY(-50)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(148, 163, 184)
	pdf.CellFormat(110, 5, tr("KESİM ŞEFİ"), "", 0, "L", false, 0, "")
	pdf.CellFormat(76, 5, "____ / ____ / ______", "", 1, "R", false, 0, "")
	pdf.Ln(14)
	pdf.SetDrawColor(15, 23, 42)
	pdf.SetLineWidth(0.5)
	pdf.Line(130, pdf.GetY(), 198, pdf.GetY())
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(186, 6, tr(companyName+" Onayı"), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("kesim emri PDF oluşturulamadı: %w", err)
	}
	return buf.Bytes(), nil
}
