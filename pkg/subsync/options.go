// Package subsync synchronizes the remote subscriber directory into the
// dated workbook files that drive the daily outbound send.
package subsync

// Options configures one single-date sync run.
type Options struct {
	// Date is the target day in DDMMYYYY form.
	Date string
	// Folder holds the daily workbook files.
	Folder string
	// TemplateRow is the 1-based row whose values seed every new row.
	// Row 2 is the first data row.
	TemplateRow int
	// DefaultSMS is written to the SMS column of new rows (0=pending, 1=sent).
	DefaultSMS int
	// Message overrides TEXTO_MENSAJE for new rows. Nil means use the
	// template row's own message text.
	Message *string
	// OnlyWhatsApp skips the run unless the template row is marked
	// WHATSAPP=SI. The skip is a successful outcome, not an error.
	OnlyWhatsApp bool
	// DryRun computes the full result without saving the workbook.
	DryRun bool
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		TemplateRow: 2,
		DefaultSMS:  0,
	}
}
