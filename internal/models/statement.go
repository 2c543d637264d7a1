package models

// Label is the likely statement type of a document.
type Label string

const (
	LabelBalanceSheet  Label = "balance_sheet"
	LabelProfitAndLoss Label = "profit_and_loss"
	LabelCashFlow      Label = "cash_flow"
	LabelUnknown       Label = "unknown"
)

// TableGrid is a detected table, row-major. Absent cells are empty strings.
type TableGrid [][]string

// PageTables holds the tables detected on one page. Page is 1-based.
type PageTables struct {
	Page   int         `json:"page"`
	Tables []TableGrid `json:"tables"`
}

// DocumentInfo is descriptive metadata read from the PDF trailer.
type DocumentInfo struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Producer  string `json:"producer,omitempty"`
	Encrypted bool   `json:"encrypted"`
}
