package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"pronav-backend/internal/constants"
	"pronav-backend/internal/normalize"
	"pronav-backend/internal/storage"
)

type GenerateExcelStorage interface {
	GetReport(ctx context.Context, id int64, userID string) (*storage.ReportRecord, error)
}

type GenerateExcelService struct {
	storage GenerateExcelStorage
}

func NewGenerateService(storage GenerateExcelStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

// GenerateExcel exports a report's activity log as a spreadsheet: header
// block with the vessel identification, then one row per activity, same
// KM and time rules as the printed document.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, id int64, userID string) ([]byte, error) {
	rep, err := g.storage.GetReport(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch data: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Atividades"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	meta := [][2]string{
		{"CLIENTE", rep.Client},
		{"NAVIO", rep.Ship},
		{"OBRA", rep.Work},
		{"OS", rep.OS},
	}
	for i, kv := range meta {
		f.SetCellValue(sheet, cellName(1, i+1), kv[0])
		f.SetCellValue(sheet, cellName(2, i+1), kv[1])
		f.SetCellStyle(sheet, cellName(1, i+1), cellName(1, i+1), labelStyle)
	}

	headers := []string{"DATA", "HORÁRIO", "TIPO DE SERVIÇO", "DESCRIÇÃO", "KM", "TÉCNICO 1", "TÉCNICO 2"}
	headRow := len(meta) + 2
	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, headRow), name)
	}
	f.SetCellStyle(sheet, cellName(1, headRow), cellName(len(headers), headRow), headerStyle)

	for i, a := range rep.Activities {
		rowNum := headRow + 1 + i

		period := a.Time
		if a.StartTime != "" || a.EndTime != "" {
			period = normalize.CombineTime(normalize.TimeToken(a.StartTime), normalize.TimeToken(a.EndTime))
		}
		km := a.KM
		if constants.NoKMTypes[a.Type] {
			km = ""
		}

		f.SetCellValue(sheet, cellName(1, rowNum), normalize.DateBR(a.Date))
		f.SetCellValue(sheet, cellName(2, rowNum), period)
		f.SetCellValue(sheet, cellName(3, rowNum), a.Type)
		f.SetCellValue(sheet, cellName(4, rowNum), a.Description)
		f.SetCellValue(sheet, cellName(5, rowNum), km)
		f.SetCellValue(sheet, cellName(6, rowNum), a.Technician1)
		f.SetCellValue(sheet, cellName(7, rowNum), a.Technician2)
	}

	f.SetColWidth(sheet, "A", "B", 14)
	f.SetColWidth(sheet, "C", "D", 40)
	f.SetColWidth(sheet, "E", "G", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
