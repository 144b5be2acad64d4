// Package spreadsheet reads and writes the asset register in xlsx and csv
// form. Both formats share one column layout, so an exported file can be
// edited and re-imported.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

const assetSheet = "Assets"

// assetHeaders is the canonical column order. Reference columns carry names
// rather than ids so files stay readable and survive re-imports across
// environments. The trailing computed columns are ignored on import.
var assetHeaders = []string{
	"asset_code",
	"barcode",
	"rfid",
	"description",
	"serial_number",
	"model_number",
	"asset_type",
	"major_category",
	"minor_category",
	"location",
	"department",
	"supplier",
	"employee_number",
	"economic_life",
	"purchase_price",
	"units",
	"date_of_purchase",
	"date_placed_in_service",
	"condition",
	"status",
	"depreciation_method",
	"net_book_value",
	"accumulated_depreciation",
	"is_disposed",
}

var headerIndex = func() map[string]int {
	m := make(map[string]int, len(assetHeaders))
	for i, header := range assetHeaders {
		m[header] = i
	}
	return m
}()

// ParseFields turns a comma separated column list into a validated subset of
// assetHeaders, keeping the caller's order. Empty input selects every column.
func ParseFields(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	seen := make(map[string]bool)
	fields := make([]string, 0, len(assetHeaders))
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" || seen[name] {
			continue
		}
		if _, ok := headerIndex[name]; !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		seen[name] = true
		fields = append(fields, name)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("fields selects no columns")
	}
	return fields, nil
}

// AssetRecord is one spreadsheet row with every cell kept as text. Line is
// the 1-based row number in the source file, set by the readers.
type AssetRecord struct {
	Line                    int
	AssetCode               string
	Barcode                 string
	RFID                    string
	Description             string
	SerialNumber            string
	ModelNumber             string
	AssetType               string
	MajorCategory           string
	MinorCategory           string
	Location                string
	Department              string
	Supplier                string
	EmployeeNumber          string
	EconomicLife            string
	PurchasePrice           string
	Units                   string
	DateOfPurchase          string
	DatePlacedInService     string
	Condition               string
	Status                  string
	DepreciationMethod      string
	NetBookValue            string
	AccumulatedDepreciation string
	IsDisposed              string
}

// values returns the cells in assetHeaders order.
func (r AssetRecord) values() []string {
	return []string{
		r.AssetCode,
		r.Barcode,
		r.RFID,
		r.Description,
		r.SerialNumber,
		r.ModelNumber,
		r.AssetType,
		r.MajorCategory,
		r.MinorCategory,
		r.Location,
		r.Department,
		r.Supplier,
		r.EmployeeNumber,
		r.EconomicLife,
		r.PurchasePrice,
		r.Units,
		r.DateOfPurchase,
		r.DatePlacedInService,
		r.Condition,
		r.Status,
		r.DepreciationMethod,
		r.NetBookValue,
		r.AccumulatedDepreciation,
		r.IsDisposed,
	}
}

// columnsFor resolves a parsed field subset, defaulting to every column.
func columnsFor(fields []string) []string {
	if len(fields) == 0 {
		return assetHeaders
	}
	return fields
}

// cells returns the record's values for the given columns, in column order.
func (r AssetRecord) cells(columns []string) []string {
	all := r.values()
	cells := make([]string, len(columns))
	for i, name := range columns {
		cells[i] = all[headerIndex[name]]
	}
	return cells
}

// WriteAssetsXLSX renders the records as a styled workbook: bold frozen
// header row and readable column widths. A non-empty fields subset, as
// returned by ParseFields, restricts the emitted columns.
func WriteAssetsXLSX(w io.Writer, records []AssetRecord, fields []string) error {
	columns := columnsFor(fields)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), assetSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to build header style: %w", err)
	}

	for i, header := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(assetSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return fmt.Errorf("failed to address header row: %w", err)
	}
	if err := f.SetCellStyle(assetSheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for rowIdx, record := range records {
		for colIdx, value := range record.cells(columns) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(assetSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	lastColumn, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return fmt.Errorf("failed to address last column: %w", err)
	}
	if err := f.SetColWidth(assetSheet, "A", lastColumn, 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetPanes(assetSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func WriteAssetsCSV(w io.Writer, records []AssetRecord, fields []string) error {
	columns := columnsFor(fields)

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, record := range records {
		if err := cw.Write(record.cells(columns)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadAssets parses an uploaded file in either supported format.
func ReadAssets(r io.Reader, format string) ([]AssetRecord, error) {
	switch strings.ToLower(format) {
	case FormatXLSX:
		return readAssetsXLSX(r)
	case FormatCSV:
		return readAssetsCSV(r)
	default:
		return nil, fmt.Errorf("unsupported format %q, expected xlsx or csv", format)
	}
}

func readAssetsXLSX(r io.Reader) ([]AssetRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return recordsFromRows(rows)
}

func readAssetsCSV(r io.Reader) ([]AssetRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may omit trailing cells

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return recordsFromRows(rows)
}

// recordsFromRows maps cells by header name, so files with reordered or
// missing columns still import.
func recordsFromRows(rows [][]string) ([]AssetRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	if _, ok := columns["description"]; !ok {
		return nil, fmt.Errorf("file is missing the description column")
	}

	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	records := make([]AssetRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, AssetRecord{
			Line:                i + 2, // 1-based, after the header
			AssetCode:           cell(row, "asset_code"),
			Barcode:             cell(row, "barcode"),
			RFID:                cell(row, "rfid"),
			Description:         cell(row, "description"),
			SerialNumber:        cell(row, "serial_number"),
			ModelNumber:         cell(row, "model_number"),
			AssetType:           cell(row, "asset_type"),
			MajorCategory:       cell(row, "major_category"),
			MinorCategory:       cell(row, "minor_category"),
			Location:            cell(row, "location"),
			Department:          cell(row, "department"),
			Supplier:            cell(row, "supplier"),
			EmployeeNumber:      cell(row, "employee_number"),
			EconomicLife:        cell(row, "economic_life"),
			PurchasePrice:       cell(row, "purchase_price"),
			Units:               cell(row, "units"),
			DateOfPurchase:      cell(row, "date_of_purchase"),
			DatePlacedInService: cell(row, "date_placed_in_service"),
			Condition:           cell(row, "condition"),
			Status:              cell(row, "status"),
			DepreciationMethod:  cell(row, "depreciation_method"),
		})
	}
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
