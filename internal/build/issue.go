package build

// Issue is a single problem found while building, reported golangci-lint style.
type Issue struct {
	Kind        string   `json:"Kind"`     // "decode", "convert", "stale"
	Text        string   `json:"Text"`     // Human readable message
	Severity    string   `json:"Severity"` // "error" or "warning"
	SourceLines []string `json:"SourceLines"`
	Pos         IssuePos `json:"Pos"`
	Diff        string   `json:"Diff,omitempty"` // Stale outputs only
}

// IssuePos specifies the location of an issue. Line and Column are 1-based;
// zero means unknown.
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

const (
	IssueDecode  = "decode"
	IssueConvert = "convert"
	IssueStale   = "stale"
	IssueEmpty   = "empty"
)
