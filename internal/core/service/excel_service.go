package service

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/storeldb/storeapi/internal/core/domain"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	SalesSheet       = "SalesByClient"
	OrderDetailSheet = "OrderDetail"

	currencyFormat = "$#,##0.00"
	dateFormat     = "dd/mm/yyyy"

	// Column widths are estimated from content length and clamped.
	minColumnWidth = 10
	maxColumnWidth = 60
)

// ExcelService renders report projections into xlsx workbooks held in memory.
type ExcelService struct {
	now func() time.Time
}

func NewExcelService() *ExcelService {
	return &ExcelService{now: time.Now}
}

func (s *ExcelService) SalesReportFileName() string {
	return fmt.Sprintf("SalesByClientReport_%s.xlsx", s.now().Format("20060102"))
}

func (s *ExcelService) OrderReportFileName(orderID int) string {
	return fmt.Sprintf("OrderDetail_%d_%s.xlsx", orderID, s.now().Format("20060102"))
}

type workbook struct {
	f      *excelize.File
	sheet  string
	widths map[int]int

	bold         int
	currency     int
	boldCurrency int
	date         int
}

func newWorkbook(sheet string) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	wb := &workbook{f: f, sheet: sheet, widths: make(map[int]int)}

	currency := currencyFormat
	date := dateFormat
	styles := []struct {
		id    *int
		style *excelize.Style
	}{
		{&wb.bold, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&wb.currency, &excelize.Style{CustomNumFmt: &currency}},
		{&wb.boldCurrency, &excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &currency}},
		{&wb.date, &excelize.Style{CustomNumFmt: &date}},
	}
	for _, st := range styles {
		id, err := f.NewStyle(st.style)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
		*st.id = id
	}

	return wb, nil
}

// set writes value at (col, row), both 1-based, applying style when non-zero.
func (wb *workbook) set(col, row int, value interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := wb.f.SetCellValue(wb.sheet, cell, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", cell, err)
	}
	if style != 0 {
		if err := wb.f.SetCellStyle(wb.sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to style %s: %w", cell, err)
		}
	}

	width := utf8.RuneCountInString(fmt.Sprint(value)) + 2
	if width > wb.widths[col] {
		wb.widths[col] = width
	}
	return nil
}

func (wb *workbook) bytes() ([]byte, error) {
	defer wb.f.Close()

	for col, width := range wb.widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		width = max(minColumnWidth, min(width, maxColumnWidth))
		if err := wb.f.SetColWidth(wb.sheet, name, name, float64(width)); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	buf, err := wb.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SalesByClientReport renders one row per client under a bold header row.
func (s *ExcelService) SalesByClientReport(sales []*domain.ClientSales) ([]byte, error) {
	wb, err := newWorkbook(SalesSheet)
	if err != nil {
		return nil, err
	}

	for i, header := range []string{"Client ID", "Client Name", "Client Email", "Total Sales"} {
		if err := wb.set(i+1, 1, header, wb.bold); err != nil {
			wb.f.Close()
			return nil, err
		}
	}

	for i, row := range sales {
		r := i + 2
		cells := []struct {
			value interface{}
			style int
		}{
			{row.ClientID, 0},
			{row.ClientName, 0},
			{row.ClientEmail, 0},
			{row.TotalSales.InexactFloat64(), wb.currency},
		}
		for c, cell := range cells {
			if err := wb.set(c+1, r, cell.value, cell.style); err != nil {
				wb.f.Close()
				return nil, err
			}
		}
	}

	return wb.bytes()
}

// OrderDetailReport renders the order header, its lines from row 6 and the
// grand total two rows below the last line.
func (s *ExcelService) OrderDetailReport(order *domain.OrderWithDetails) ([]byte, error) {
	wb, err := newWorkbook(OrderDetailSheet)
	if err != nil {
		return nil, err
	}

	if err := s.writeOrderDetail(wb, order); err != nil {
		wb.f.Close()
		return nil, err
	}

	return wb.bytes()
}

func (s *ExcelService) writeOrderDetail(wb *workbook, order *domain.OrderWithDetails) error {
	clientName := ""
	if order.Client != nil {
		clientName = order.Client.Name
	}

	header := []struct {
		label string
		value interface{}
		style int
	}{
		{"Order ID:", order.OrderID, 0},
		{"Client:", clientName, 0},
		{"Date:", order.OrderDate, wb.date},
	}
	for i, h := range header {
		if err := wb.set(1, i+1, h.label, wb.bold); err != nil {
			return err
		}
		if err := wb.set(2, i+1, h.value, h.style); err != nil {
			return err
		}
	}

	for i, title := range []string{"Product", "Unit Price", "Quantity", "Subtotal"} {
		if err := wb.set(i+1, 5, title, wb.bold); err != nil {
			return err
		}
	}

	row := 6
	for _, line := range order.Lines {
		cells := []struct {
			value interface{}
			style int
		}{
			{line.ProductName, 0},
			{line.UnitPrice.InexactFloat64(), wb.currency},
			{line.Quantity, 0},
			{line.Subtotal.InexactFloat64(), wb.currency},
		}
		for c, cell := range cells {
			if err := wb.set(c+1, row, cell.value, cell.style); err != nil {
				return err
			}
		}
		row++
	}

	totalRow := row + 1
	if err := wb.set(3, totalRow, "Grand Total:", wb.bold); err != nil {
		return err
	}
	return wb.set(4, totalRow, order.Total.InexactFloat64(), wb.boldCurrency)
}
