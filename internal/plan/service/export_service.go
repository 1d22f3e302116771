package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportService xuất phương án thi công ra file Excel
type ExportService struct {
	planSvc *PlanService
}

func NewExportService(planSvc *PlanService) *ExportService {
	return &ExportService{planSvc: planSvc}
}

// ExportPlan renders one plan into an xlsx workbook. The caller owns the
// returned file and must Close it.
func (s *ExportService) ExportPlan(ctx context.Context, planID string) (*excelize.File, string, error) {
	plan, err := s.planSvc.Get(ctx, planID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Phương án"
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

	f.SetCellValue(sheet, "A1", "PHƯƠNG ÁN THI CÔNG")
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	f.MergeCell(sheet, "A1", "F1")

	constructionName := ""
	if plan.Construction != nil {
		constructionName = plan.Construction.Name
	}
	info := [][]interface{}{
		{"Mã phương án", plan.Code},
		{"Tên phương án", plan.Name},
		{"Công trình", constructionName},
		{"Số hợp đồng", plan.ContractNo},
		{"Giá trị hợp đồng", plan.ContractValue},
		{"Trạng thái", plan.Status.Label()},
	}
	row := 3
	for _, pair := range info {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), pair[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pair[1])
		row++
	}
	row += 1

	// workloads
	workloads, workloadTotal, err := s.planSvc.ListWorkloads(ctx, planID)
	if err != nil {
		return nil, "", err
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "I. KHỐI LƯỢNG GIAO KHOÁN")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
	row++
	headers := []string{"STT", "Hạng mục", "Đội thi công", "ĐVT", "Khối lượng", "Đơn giá", "Thành tiền"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	row++
	for i, it := range workloads {
		workItemName := ""
		if it.WorkItem != nil {
			workItemName = it.WorkItem.Name
		}
		teamName := ""
		if it.Team != nil {
			teamName = it.Team.Name
		}
		unitName := ""
		if it.Unit != nil {
			unitName = it.Unit.Name
		}
		values := []interface{}{i + 1, workItemName, teamName, unitName, it.Quantity, it.UnitPrice, it.Amount}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), "Cộng")
	f.SetCellValue(sheet, fmt.Sprintf("G%d", row), workloadTotal)
	row += 2

	// costs
	costs, costTotal, err := s.planSvc.ListCosts(ctx, planID)
	if err != nil {
		return nil, "", err
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "II. CHI PHÍ THI CÔNG")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
	row++
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	row++
	for i, it := range costs {
		workItemName := ""
		if it.WorkItem != nil {
			workItemName = it.WorkItem.Name
		}
		teamName := ""
		if it.Team != nil {
			teamName = it.Team.Name
		}
		unitName := ""
		if it.Unit != nil {
			unitName = it.Unit.Name
		}
		values := []interface{}{i + 1, workItemName, teamName, unitName, it.Quantity, it.UnitPrice, it.Amount}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), "Cộng")
	f.SetCellValue(sheet, fmt.Sprintf("G%d", row), costTotal)
	row += 2

	// other costs
	otherCosts, otherTotal, err := s.planSvc.ListOtherCosts(ctx, planID)
	if err != nil {
		return nil, "", err
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "III. CHI PHÍ KHÁC")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
	row++
	otherHeaders := []string{"STT", "Nội dung", "Thành tiền", "Ghi chú"}
	for i, h := range otherHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	row++
	for i, it := range otherCosts {
		values := []interface{}{i + 1, it.Content, it.Amount, it.Note}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Cộng")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), otherTotal)
	row += 2

	// materials
	materials, materialTotal, err := s.planSvc.ListMaterials(ctx, planID)
	if err != nil {
		return nil, "", err
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "IV. VẬT TƯ ĐỀ XUẤT")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
	row++
	materialHeaders := []string{"STT", "Mã VT", "Tên vật tư", "ĐVT", "KL thiết kế", "KL đề xuất", "Đơn giá", "Thành tiền"}
	for i, h := range materialHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	row++
	for i, it := range materials {
		values := []interface{}{i + 1, it.MaterialCode, it.MaterialName, it.UnitName, it.DesignQty, it.RequestQty, it.UnitPrice, it.Amount}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}
	f.SetCellValue(sheet, fmt.Sprintf("G%d", row), "Cộng")
	f.SetCellValue(sheet, fmt.Sprintf("H%d", row), materialTotal)
	row += 2

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "TỔNG CHI PHÍ")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), titleStyle)
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), costTotal+otherTotal+materialTotal)

	f.SetColWidth(sheet, "A", "A", 6)
	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "D", "H", 15)

	filename := fmt.Sprintf("%s.xlsx", plan.Code)
	return f, filename, nil
}
