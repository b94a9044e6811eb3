package datamodel

// SalarySlip is the read-only monthly payroll record. The client only
// renders it into an HTML document; amounts are server-computed.
type SalarySlip struct {
	EmployeeID   int64        `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	Designation  string       `json:"designation"`
	Month        int          `json:"month"`
	Year         int          `json:"year"`
	BasicPay     int64        `json:"basic_pay"`
	Allowances   []SalaryLine `json:"allowances"`
	Deductions   []SalaryLine `json:"deductions"`
	NetPay       int64        `json:"net_pay"`
	Currency     string       `json:"currency"`
}

type SalaryLine struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// AnnualPackage is the yearly compensation summary. Year records which
// year the data actually came from, since the fetch falls back through
// earlier years when the requested one has no data.
type AnnualPackage struct {
	EmployeeID  int64        `json:"employee_id"`
	Year        int          `json:"year"`
	GrossAnnual int64        `json:"gross_annual"`
	NetAnnual   int64        `json:"net_annual"`
	Components  []SalaryLine `json:"components"`
	Currency    string       `json:"currency"`
}
