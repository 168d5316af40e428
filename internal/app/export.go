package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"slotify/internal/view"

	"github.com/xuri/excelize/v2"
)

// exportBookings создает Excel файл с данными о бронированиях
func (a *App) exportBookings(ctx context.Context) (string, error) {
	if err := os.MkdirAll(a.config.Storage.ExportPath, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	bookings, err := a.admin.ListBookings(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Bookings as of %s", time.Now().Format("02.01.2006")))
	_ = f.MergeCell(sheetName, "A1", "F1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Vendor", "Customer", "Email", "Phone", "Event date", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for row, b := range bookings {
		vendorName := view.UnknownVendor
		if v, ok := b.Vendor.Populated(); ok && v.Name != "" {
			vendorName = v.Name
		}
		values := []interface{}{vendorName, b.UserName, b.UserEmail, b.UserPhone, b.EventDate, b.Status}
		for col, val := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+3)
			_ = f.SetCellValue(sheetName, cell, val)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "B", 25)
	_ = f.SetColWidth(sheetName, "C", "F", 20)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(a.config.Storage.ExportPath, fileName)
	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}
	return filePath, nil
}
