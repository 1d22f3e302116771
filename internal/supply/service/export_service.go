package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportService xuất phiếu cung ứng ra file Excel
type ExportService struct {
	ticketSvc *TicketService
}

func NewExportService(ticketSvc *TicketService) *ExportService {
	return &ExportService{ticketSvc: ticketSvc}
}

// ExportTicket renders one supply ticket into an xlsx workbook. The
// caller owns the returned file and must Close it.
func (s *ExportService) ExportTicket(ctx context.Context, ticketID string) (*excelize.File, string, error) {
	ticket, err := s.ticketSvc.Get(ctx, ticketID)
	if err != nil {
		return nil, "", err
	}
	items, totals, err := s.ticketSvc.ListItems(ctx, ticketID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Phiếu cung ứng"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})

	f.SetCellValue(sheet, "A1", "PHIẾU CUNG ỨNG VẬT TƯ")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.MergeCell(sheet, "A1", "H1")

	info := [][]interface{}{
		{"Mã phiếu", ticket.Code},
		{"Địa điểm", ticket.Location},
		{"Nội dung", ticket.Content},
		{"Trạng thái", ticket.Status.Label()},
	}
	row := 3
	for _, pair := range info {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), pair[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pair[1])
		row++
	}
	row++

	headers := []string{"STT", "Mã VT", "Tên vật tư", "ĐVT", "Khối lượng", "Đơn giá", "Thành tiền", "Thuế VAT", "Tổng cộng", "Nhà cung cấp"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	row++
	for i, it := range items {
		name := it.MaterialName
		if it.IsDerived {
			name = "  + " + name
		}
		values := []interface{}{i + 1, it.MaterialCode, name, it.UnitName, it.Quantity, it.UnitPrice, it.Amount, it.VATAmount, it.AmountWithVAT, it.SupplierName}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), "Cộng")
	f.SetCellValue(sheet, fmt.Sprintf("G%d", row), totals.Amount)
	f.SetCellValue(sheet, fmt.Sprintf("H%d", row), totals.VATAmount)
	f.SetCellValue(sheet, fmt.Sprintf("I%d", row), totals.AmountWithVAT)

	f.SetColWidth(sheet, "A", "A", 6)
	f.SetColWidth(sheet, "B", "C", 25)
	f.SetColWidth(sheet, "D", "J", 14)

	filename := fmt.Sprintf("%s.xlsx", ticket.Code)
	return f, filename, nil
}
