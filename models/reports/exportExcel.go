package reports

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"bitbucket.org/mmdatafocus/property_backend/models"
	"bitbucket.org/mmdatafocus/property_backend/utils"
	"github.com/xuri/excelize/v2"
)

func buildAgingWorkbook(report *AgingReportResponse, title string) (*excelize.File, error) {

	f := excelize.NewFile()
	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	f.SetCellValue(sheetName, "A1", title)
	f.SetCellValue(sheetName, "B1", report.AsOf.Format("2006-01-02"))

	// Add headers
	f.SetCellValue(sheetName, "A3", "TransactionId")
	f.SetCellValue(sheetName, "B3", "Description")
	f.SetCellValue(sheetName, "C3", "DueDate")
	f.SetCellValue(sheetName, "D3", "DaysOverdue")
	f.SetCellValue(sheetName, "E3", "Bucket")
	f.SetCellValue(sheetName, "F3", "AmountDue")

	// Add data
	for i, e := range report.Entries {
		row := fmt.Sprint(i + 4)
		f.SetCellValue(sheetName, "A"+row, e.TransactionId)
		f.SetCellValue(sheetName, "B"+row, e.Description)
		f.SetCellValue(sheetName, "C"+row, e.DueDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, "D"+row, e.DaysOverdue)
		f.SetCellValue(sheetName, "E"+row, string(e.Bucket))
		f.SetCellValue(sheetName, "F"+row, e.AmountDue.InexactFloat64())
	}

	totalRow := fmt.Sprint(len(report.Entries) + 5)
	f.SetCellValue(sheetName, "A"+totalRow, "Total")
	f.SetCellValue(sheetName, "F"+totalRow, report.Totals.Total.InexactFloat64())

	return f, nil
}

// ExportAgingReportExcel streams an aging report as an xlsx attachment. The
// business lock keeps concurrent exports for the same business from piling
// up expensive report queries.
func ExportAgingReportExcel(ctx context.Context, w http.ResponseWriter, reportType string, currentDate models.MyDateString, propertyId *int) error {

	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return errors.New("business id is required")
	}

	if err := utils.BusinessLock(ctx, businessId, "ExportAging", "reports", "ExportAgingReportExcel"); err != nil {
		return err
	}

	var report *AgingReportResponse
	var title string
	var err error
	switch reportType {
	case "receivable":
		title = "Receivable Aging"
		report, err = GetReceivableAgingReport(ctx, currentDate, propertyId)
	case "payable":
		title = "Payable Aging"
		report, err = GetPayableAgingReport(ctx, currentDate, propertyId)
	default:
		return errors.New("invalid report type")
	}
	if err != nil {
		return err
	}

	f, err := buildAgingWorkbook(report, title)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_aging.xlsx", reportType))
	return f.Write(w)
}
