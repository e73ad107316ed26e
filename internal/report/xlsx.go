package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXFormatter renders a document as a single-sheet workbook.
type XLSXFormatter struct{}

func (XLSXFormatter) Name() string { return "xlsx" }

func (XLSXFormatter) Format(doc Document) ([]byte, error) {
	f, err := workbook(doc)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteWorkbook saves one sheet per document to path.
func WriteWorkbook(path string, docs ...Document) error {
	if len(docs) == 0 {
		return fmt.Errorf("no views to export")
	}
	f, err := workbook(docs...)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func workbook(docs ...Document) (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	seen := make(map[string]int)
	for i, doc := range docs {
		name := sheetName(doc.View, seen)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to name sheet %s: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, doc.Table, bold); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// writeSheet lays out a table: title on row 1, header on row 3, body below
// and notes after a blank row.
func writeSheet(f *excelize.File, sheet string, t Table, bold int) error {
	if err := f.SetCellValue(sheet, "A1", t.Title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", bold); err != nil {
		return fmt.Errorf("failed to style title: %w", err)
	}

	row := 3
	if err := setRow(f, sheet, row, t.Header); err != nil {
		return err
	}
	if len(t.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Header), row)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A3", last, bold); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}
	for _, r := range t.Rows {
		row++
		if err := setRow(f, sheet, row, r); err != nil {
			return err
		}
	}
	row++
	for _, n := range t.Notes {
		row++
		if err := setRow(f, sheet, row, []string{n}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "A", 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// sheetName returns view, suffixed with a counter when it is already taken.
func sheetName(view string, seen map[string]int) string {
	if view == "" {
		view = "view"
	}
	seen[view]++
	if n := seen[view]; n > 1 {
		return fmt.Sprintf("%s-%d", view, n)
	}
	return view
}
