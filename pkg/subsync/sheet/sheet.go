// Package sheet provides row-level access to the dated workbook files,
// keyed by column name.
package sheet

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"subsync/pkg/subsync/models"
)

// RequiredColumns must all appear in row 1 of every daily workbook.
var RequiredColumns = []string{
	"NOMBRES",
	"APELLIDO_PATERNO",
	"APELLIDO_MATERNO",
	"CELULAR",
	"MAIL",
	"CORREO",
	"SMS",
	"WHATSAPP",
	"TEXTO_MENSAJE",
}

// Handle wraps the active sheet of an open workbook. It owns the in-memory
// workbook state for the duration of one sync run; Save is the only
// operation that touches disk.
type Handle struct {
	file    *excelize.File
	path    string
	sheet   string
	headers []string
	maxRow  int
}

// Open loads the workbook at path and reads the header row of its active
// sheet. It returns an error wrapping ErrFileNotFound when path does not
// exist.
func Open(path string) (*Handle, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}

	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	h := &Handle{file: f, path: path, sheet: sheetName, maxRow: len(rows)}
	if len(rows) > 0 {
		for _, v := range rows[0] {
			h.headers = append(h.headers, strings.TrimSpace(v))
		}
	}
	return h, nil
}

// Path returns the workbook path the handle was opened from.
func (h *Handle) Path() string {
	return h.path
}

// Headers returns the trimmed row-1 column names in sheet order.
func (h *Handle) Headers() []string {
	return h.headers
}

// MaxRow returns the highest 1-based row index holding data, including the
// header row and any rows appended through SetCell.
func (h *Handle) MaxRow() int {
	return h.maxRow
}

// Cell reads the value at (row, column) where column is a header name.
func (h *Handle) Cell(row int, column string) (string, error) {
	cell, err := h.cellName(row, column)
	if err != nil {
		return "", err
	}
	v, err := h.file.GetCellValue(h.sheet, cell)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", cell, err)
	}
	return v, nil
}

// SetCell writes value at (row, column) where column is a header name.
// Writes land in memory only; nothing reaches disk until Save.
func (h *Handle) SetCell(row int, column string, value interface{}) error {
	cell, err := h.cellName(row, column)
	if err != nil {
		return err
	}
	if err := h.file.SetCellValue(h.sheet, cell, value); err != nil {
		return fmt.Errorf("write %s: %w", cell, err)
	}
	if row > h.maxRow {
		h.maxRow = row
	}
	return nil
}

// Save writes the workbook back to the path it was opened from.
func (h *Handle) Save() error {
	return h.file.Save()
}

// Close releases the workbook without saving.
func (h *Handle) Close() error {
	return h.file.Close()
}

// ExistingPhones scans every data row's CELULAR cell and collects the
// digits-only phone numbers into a set. Blank cells are skipped.
func (h *Handle) ExistingPhones() (map[string]struct{}, error) {
	existing := make(map[string]struct{})
	for r := 2; r <= h.maxRow; r++ {
		v, err := h.Cell(r, "CELULAR")
		if err != nil {
			return nil, err
		}
		if digits := models.NormalizePhone(v); digits != "" {
			existing[digits] = struct{}{}
		}
	}
	return existing, nil
}

// TemplateValues snapshots the given row into a map keyed by header name.
// The snapshot is detached from the workbook: later writes do not alias
// into it. Cells past the populated range read back as empty strings.
func (h *Handle) TemplateValues(row int) (map[string]string, error) {
	values := make(map[string]string, len(h.headers))
	for _, col := range h.headers {
		if col == "" {
			continue
		}
		v, err := h.Cell(row, col)
		if err != nil {
			return nil, err
		}
		values[col] = v
	}
	return values, nil
}

func (h *Handle) cellName(row int, column string) (string, error) {
	col := 0
	for i, name := range h.headers {
		if name == column {
			col = i + 1
			break
		}
	}
	if col == 0 {
		return "", fmt.Errorf("column %q not present in sheet %q", column, h.sheet)
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("cell name for (%d,%d): %w", col, row, err)
	}
	return cell, nil
}
