package models

// Result reports the outcome of one single-date sync run.
type Result struct {
	// Excel is the resolved workbook path the run targeted.
	Excel string `json:"excel"`
	// ActiveSubscribers counts records fetched from the directory.
	ActiveSubscribers int `json:"active_subscribers"`
	// ExistingInExcel counts distinct phones already present in the sheet.
	ExistingInExcel int `json:"existing_in_excel"`
	// Added counts rows appended by this run.
	Added int `json:"added"`
	// Skipped is true when the only-WhatsApp gate short-circuited the run.
	Skipped bool `json:"skipped,omitempty"`
	// Reason explains a skip.
	Reason string `json:"reason,omitempty"`
	// Note is informational output attached when rows were added.
	Note string `json:"note,omitempty"`
}
