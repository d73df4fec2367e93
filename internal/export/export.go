// Package export renders the printable roster: the currently filtered
// list as a static RTL HTML table handed to the browser's print dialog.
// Everything interpolated goes through html/template, so stored markup
// prints as text. No pagination; the print pipeline handles page breaks.
package export

import (
	"html/template"
	"io"

	"github.com/sijil-app/sijil/internal/records"
)

var page = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html dir="rtl" lang="ar">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Segoe UI", Tahoma, sans-serif; margin: 24px; }
h1 { font-size: 18px; text-align: center; }
p.meta { font-size: 12px; color: #444; text-align: center; }
table { width: 100%; border-collapse: collapse; font-size: 12px; }
th, td { border: 1px solid #777; padding: 4px 6px; text-align: right; }
th { background: #eee; }
@media print { body { margin: 0; } }
</style>
</head>
<body onload="window.print()">
<h1>{{.Title}}</h1>
{{if .Term}}<p class="meta">نتائج البحث عن: {{.Term}}</p>{{end}}
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type doc struct {
	Title   string
	Term    string
	Columns []string
	Rows    [][]string
}

var prisonerColumns = []string{
	"الاسم", "التهمة", "السجن", "الأسرة", "مكان الإقامة",
	"مدة الحكم", "من", "إلى", "رقم الهاتف", "الرقم الوطني",
}

var releasedColumns = []string{
	"الاسم", "التهمة", "السجن", "الأسرة", "مكان الإقامة",
	"تاريخ الإفراج", "رقم الهاتف", "الرقم الوطني",
}

// Prisoners writes the printable current-records roster.
func Prisoners(w io.Writer, list []records.Prisoner, term string) error {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			p.Name, p.Charge, p.Prison, p.Family, p.Residence,
			p.Years, p.From, p.To, p.Phone, p.NationalID,
		})
	}
	return page.Execute(w, doc{
		Title:   "كشف السجناء",
		Term:    term,
		Columns: prisonerColumns,
		Rows:    rows,
	})
}

// Released writes the printable released-records roster.
func Released(w io.Writer, list []records.ReleasedPrisoner, term string) error {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			p.Name, p.Charge, p.Prison, p.Family, p.Residence,
			p.ReleaseDate, p.Phone, p.NationalID,
		})
	}
	return page.Execute(w, doc{
		Title:   "كشف المفرج عنهم",
		Term:    term,
		Columns: releasedColumns,
		Rows:    rows,
	})
}
