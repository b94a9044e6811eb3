package salary

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
)

var slipTemplate = template.Must(template.New("slip").Parse(`<!DOCTYPE html>
<html>
<head><title>Salary Slip {{.Month}}/{{.Year}}</title></head>
<body>
<h1>Salary Slip</h1>
<p>{{.EmployeeName}} ({{.Designation}}), {{.Month}}/{{.Year}}</p>
<table>
<tr><td>Basic Pay</td><td>{{.BasicPay}} {{.Currency}}</td></tr>
{{range .Allowances}}<tr><td>{{.Label}}</td><td>{{.Amount}}</td></tr>
{{end}}{{range .Deductions}}<tr><td>{{.Label}} (deduction)</td><td>-{{.Amount}}</td></tr>
{{end}}<tr><td><strong>Net Pay</strong></td><td><strong>{{.NetPay}} {{.Currency}}</strong></td></tr>
</table>
</body>
</html>
`))

var packageTemplate = template.Must(template.New("package").Parse(`<!DOCTYPE html>
<html>
<head><title>Annual Package {{.Year}}</title></head>
<body>
<h1>Annual Package {{.Year}}</h1>
<table>
{{range .Components}}<tr><td>{{.Label}}</td><td>{{.Amount}}</td></tr>
{{end}}<tr><td>Gross Annual</td><td>{{.GrossAnnual}} {{.Currency}}</td></tr>
<tr><td><strong>Net Annual</strong></td><td><strong>{{.NetAnnual}} {{.Currency}}</strong></td></tr>
</table>
</body>
</html>
`))

// RenderSlip assembles the salary slip HTML handed to the document
// writer.
func RenderSlip(slip datamodel.SalarySlip) ([]byte, error) {
	var buf bytes.Buffer
	if err := slipTemplate.Execute(&buf, slip); err != nil {
		return nil, fmt.Errorf("failed to render salary slip: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPackage assembles the annual package HTML.
func RenderPackage(pkg datamodel.AnnualPackage) ([]byte, error) {
	var buf bytes.Buffer
	if err := packageTemplate.Execute(&buf, pkg); err != nil {
		return nil, fmt.Errorf("failed to render annual package: %w", err)
	}
	return buf.Bytes(), nil
}

// FileWriter is the default DocumentWriter: it drops the HTML artifact
// into a directory and reports the path for the OS viewer to open.
type FileWriter struct {
	Dir string
}

func (w FileWriter) Write(name string, html []byte) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.Dir, fmt.Sprintf("%s-%d.html", name, time.Now().Unix()))
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return path, nil
}
