package services

import (
	"bytes"
	"fmt"
	"obra_flow_app_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// GenerateConstructionReport builds an Excel workbook summarizing a
// construction's services, their statuses and document completion
func GenerateConstructionReport(db *gorm.DB, ids StatusIDs, constructionID int) (*bytes.Buffer, error) {
	construction, err := GetConstructionByID(db, constructionID)
	if err != nil {
		return nil, err
	}

	progress, err := GetConstructionProgress(db, ids, constructionID)
	if err != nil {
		return nil, err
	}
	progressByService := make(map[int]ServiceProgress, len(progress))
	for _, p := range progress {
		progressByService[p.ServiceID] = p
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetServices := "Servicios"
	f.SetSheetName("Sheet1", sheetServices)

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	f.SetCellValue(sheetServices, "A1", fmt.Sprintf("%s — %s", construction.Name, construction.Address))
	f.SetCellStyle(sheetServices, "A1", "A1", titleStyle)

	headers := []string{"Servicio", "Estado", "Documentos aportados", "Documentos requeridos", "Completo", "Comentario"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(sheetServices, cell, h)
		f.SetCellStyle(sheetServices, cell, cell, headerStyle)
	}

	row := 4
	for _, service := range construction.Services {
		p := progressByService[service.ID]
		comment := ""
		if service.Comment != nil {
			comment = *service.Comment
		}
		f.SetCellValue(sheetServices, fmt.Sprintf("A%d", row), service.ServiceType.Name)
		f.SetCellValue(sheetServices, fmt.Sprintf("B%d", row), service.ServiceStatus.Name)
		f.SetCellValue(sheetServices, fmt.Sprintf("C%d", row), p.ProvidedCount)
		f.SetCellValue(sheetServices, fmt.Sprintf("D%d", row), p.RequiredCount)
		f.SetCellValue(sheetServices, fmt.Sprintf("E%d", row), p.Complete)
		f.SetCellValue(sheetServices, fmt.Sprintf("F%d", row), comment)
		row++
	}

	f.SetColWidth(sheetServices, "A", "B", 32)
	f.SetColWidth(sheetServices, "F", "F", 48)

	// --- Documents sheet ---
	sheetDocs := "Documentos"
	f.NewSheet(sheetDocs)

	docHeaders := []string{"Servicio", "Tipo de documento", "Estado", "Fichero", "Fecha"}
	for i, h := range docHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetDocs, cell, h)
		f.SetCellStyle(sheetDocs, cell, cell, headerStyle)
	}

	row = 2
	for _, service := range construction.Services {
		var docs []models.ServiceDocument
		if err := db.Where("service_id = ?", service.ID).
			Preload("DocumentationType").
			Preload("DocumentStatus").
			Order("created_at ASC").
			Find(&docs).Error; err != nil {
			return nil, err
		}
		for _, doc := range docs {
			f.SetCellValue(sheetDocs, fmt.Sprintf("A%d", row), service.ServiceType.Name)
			f.SetCellValue(sheetDocs, fmt.Sprintf("B%d", row), doc.DocumentationType.Name)
			f.SetCellValue(sheetDocs, fmt.Sprintf("C%d", row), doc.DocumentStatus.Name)
			f.SetCellValue(sheetDocs, fmt.Sprintf("D%d", row), doc.FileOriginalName)
			f.SetCellValue(sheetDocs, fmt.Sprintf("E%d", row), doc.CreatedAt.Format("2006-01-02 15:04"))
			row++
		}
	}

	f.SetColWidth(sheetDocs, "A", "D", 32)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return &buf, nil
}
