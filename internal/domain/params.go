package domain

import "github.com/shopspring/decimal"

// ReportParams holds every parameter a report may take. Each report reads only the
// fields it needs.
type ReportParams struct {
	Days      int             `json:"days,omitempty"`
	Months    int             `json:"months,omitempty"`
	N         int             `json:"n,omitempty"`
	Threshold decimal.Decimal `json:"threshold"`
	AccountID int64           `json:"account_id,omitempty"`
}

// ReportRequest names a report and its parameters.
type ReportRequest struct {
	Name   string       `json:"name"`
	Params ReportParams `json:"params"`
}

// ReportResult holds the ordered, materialized rows of one report run.
type ReportResult struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Rows  any    `json:"rows"`
}

// ReportInfo describes a registered report.
type ReportInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
}
