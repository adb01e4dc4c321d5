package sheet

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"subsync/pkg/subsync/models"
)

// writeWorkbook creates an xlsx file with the given header row and data rows
// (data starts at row 2).
func writeWorkbook(t *testing.T, path string, headers []string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test workbook: %v", err)
	}
}

func testTemplateRow() []interface{} {
	return []interface{}{"Maria", "Quispe", "Huaman", "51911111111", "maria@example.com", "NO", 0, "SI", "Buenos dias"}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "01012025.xlsx"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestOpenReadsHeadersAndMaxRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01012025.xlsx")
	writeWorkbook(t, path, RequiredColumns, [][]interface{}{testTemplateRow()})

	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()

	headers := h.Headers()
	if len(headers) != len(RequiredColumns) {
		t.Fatalf("Expected %d headers, got %d", len(RequiredColumns), len(headers))
	}
	for i, col := range RequiredColumns {
		if headers[i] != col {
			t.Errorf("Header %d = %q, expected %q", i, headers[i], col)
		}
	}
	if h.MaxRow() != 2 {
		t.Errorf("Expected max row 2, got %d", h.MaxRow())
	}
}

func TestEnsureExpectedHeaders(t *testing.T) {
	if err := EnsureExpectedHeaders(RequiredColumns); err != nil {
		t.Errorf("Expected full header set to validate, got %v", err)
	}

	// extra columns are tolerated
	extra := append([]string{"EXTRA"}, RequiredColumns...)
	if err := EnsureExpectedHeaders(extra); err != nil {
		t.Errorf("Expected extra columns to be tolerated, got %v", err)
	}

	var without []string
	for _, col := range RequiredColumns {
		if col != "CELULAR" && col != "MAIL" {
			without = append(without, col)
		}
	}
	err := EnsureExpectedHeaders(without)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Expected ErrSchemaMismatch, got %v", err)
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %T", err)
	}
	if len(schemaErr.Missing) != 2 {
		t.Errorf("Expected 2 missing columns, got %v", schemaErr.Missing)
	}
	if !strings.Contains(err.Error(), "CELULAR") || !strings.Contains(err.Error(), "MAIL") {
		t.Errorf("Error message should name every missing column, got %q", err.Error())
	}
}

func TestExistingPhones(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01012025.xlsx")
	rows := [][]interface{}{
		testTemplateRow(),
		{"Jose", "Garcia", "", "+51 922-222-222", "jose@example.com", "NO", 0, "SI", "Hola"},
		{"Ana", "Lopez", "", "", "ana@example.com", "NO", 0, "SI", "Hola"}, // blank phone skipped
	}
	writeWorkbook(t, path, RequiredColumns, rows)

	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()

	existing, err := h.ExistingPhones()
	if err != nil {
		t.Fatalf("ExistingPhones failed: %v", err)
	}
	if len(existing) != 2 {
		t.Fatalf("Expected 2 phones, got %d: %v", len(existing), existing)
	}
	for _, want := range []string{"51911111111", "51922222222"} {
		if _, ok := existing[want]; !ok {
			t.Errorf("Expected normalized phone %q in index", want)
		}
	}
}

func TestTemplateValuesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01012025.xlsx")
	writeWorkbook(t, path, RequiredColumns, [][]interface{}{testTemplateRow()})

	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()

	template, err := h.TemplateValues(2)
	if err != nil {
		t.Fatalf("TemplateValues failed: %v", err)
	}
	if template["TEXTO_MENSAJE"] != "Buenos dias" {
		t.Errorf("Expected template message 'Buenos dias', got %q", template["TEXTO_MENSAJE"])
	}

	// snapshot is detached: mutating the row must not change the snapshot
	if err := h.SetCell(2, "TEXTO_MENSAJE", "changed"); err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}
	if template["TEXTO_MENSAJE"] != "Buenos dias" {
		t.Errorf("Snapshot aliased into sheet state: %q", template["TEXTO_MENSAJE"])
	}
}

func TestTemplateValuesPastDataRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01012025.xlsx")
	writeWorkbook(t, path, RequiredColumns, [][]interface{}{testTemplateRow()})

	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()

	template, err := h.TemplateValues(50)
	if err != nil {
		t.Fatalf("TemplateValues failed: %v", err)
	}
	for col, v := range template {
		if v != "" {
			t.Errorf("Expected empty value for %s past data range, got %q", col, v)
		}
	}
}

func TestAppendSubscriber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01012025.xlsx")
	writeWorkbook(t, path, RequiredColumns, [][]interface{}{testTemplateRow()})

	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()

	template, err := h.TemplateValues(2)
	if err != nil {
		t.Fatalf("TemplateValues failed: %v", err)
	}

	sub := models.Subscriber{
		FirstName: "Jose",
		LastName:  "Garcia Lopez Perez",
		Phone:     "51933333333",
		Email:     "jose@example.com",
		IsActive:  true,
	}
	row, err := h.AppendSubscriber(template, sub, "Mensaje del dia", 0)
	if err != nil {
		t.Fatalf("AppendSubscriber failed: %v", err)
	}
	if row != 3 {
		t.Errorf("Expected row 3, got %d", row)
	}
	if h.MaxRow() != 3 {
		t.Errorf("Expected max row 3, got %d", h.MaxRow())
	}

	expect := map[string]string{
		"NOMBRES":          "Jose",
		"APELLIDO_PATERNO": "Garcia",
		"APELLIDO_MATERNO": "Lopez", // third token dropped
		"CELULAR":          "51933333333",
		"MAIL":             "jose@example.com",
		"CORREO":           "NO",
		"WHATSAPP":         "SI",
		"SMS":              "0",
		"TEXTO_MENSAJE":    "Mensaje del dia",
	}
	for col, want := range expect {
		got, err := h.Cell(row, col)
		if err != nil {
			t.Fatalf("Cell(%d, %s) failed: %v", row, col, err)
		}
		if got != want {
			t.Errorf("%s = %q, expected %q", col, got, want)
		}
	}
}

func TestAppendSubscriberTemplateFallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01012025.xlsx")
	// template row with empty CORREO and WHATSAPP cells
	row := []interface{}{"Maria", "Quispe", "", "51911111111", "maria@example.com", "", 0, "", "Hola"}
	writeWorkbook(t, path, RequiredColumns, [][]interface{}{row})

	h, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer h.Close()

	template, err := h.TemplateValues(2)
	if err != nil {
		t.Fatalf("TemplateValues failed: %v", err)
	}

	sub := models.Subscriber{FirstName: "Ana", LastName: "", Phone: "51944444444"}
	newRow, err := h.AppendSubscriber(template, sub, "Hola", 1)
	if err != nil {
		t.Fatalf("AppendSubscriber failed: %v", err)
	}

	correo, _ := h.Cell(newRow, "CORREO")
	if correo != "NO" {
		t.Errorf("Expected CORREO fallback 'NO', got %q", correo)
	}
	whatsapp, _ := h.Cell(newRow, "WHATSAPP")
	if whatsapp != "SI" {
		t.Errorf("Expected WHATSAPP fallback 'SI', got %q", whatsapp)
	}
	sms, _ := h.Cell(newRow, "SMS")
	if sms != "1" {
		t.Errorf("Expected SMS '1', got %q", sms)
	}

	// empty last name leaves both surname slots empty
	paternal, _ := h.Cell(newRow, "APELLIDO_PATERNO")
	maternal, _ := h.Cell(newRow, "APELLIDO_MATERNO")
	if paternal != "" || maternal != "" {
		t.Errorf("Expected empty surnames, got (%q, %q)", paternal, maternal)
	}
}
