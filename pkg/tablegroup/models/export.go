package models

// SummaryRow describes one group on the Summary sheet.
type SummaryRow struct {
	// Group is the stable identifier, Group_<n>.
	Group string `json:"group"`
	// Pages lists contributing pages ascending, comma-joined.
	Pages string `json:"pages"`
	// Columns lists the header labels, comma-joined.
	Columns string `json:"columns"`
}

// SheetRow is one data row of a group sheet.
type SheetRow struct {
	Cells []string `json:"cells"`
	Page  int      `json:"page"`
}

// Sheet is the combined data of one group.
type Sheet struct {
	// Name is the sheet name, equal to the group identifier.
	Name string `json:"name"`
	// Columns are the header labels followed by PageColumn.
	Columns []string `json:"columns"`
	// Rows are all frames concatenated in accumulation order.
	Rows []SheetRow `json:"rows"`
}

// ExportDocument is the complete grouped export.
type ExportDocument struct {
	// Source is the input file name (no path).
	Source string `json:"source"`
	// Summary has one row per group, in group order.
	Summary []SummaryRow `json:"summary"`
	// Sheets has one sheet per group, in the same order as Summary.
	Sheets []Sheet `json:"sheets"`
}
