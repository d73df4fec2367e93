package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/sijil-app/sijil/internal/records"
	"github.com/sijil-app/sijil/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// banner codes carried in the query string after a redirect. The banner
// auto-dismisses client-side; the load error stays until retried.
var bannerText = map[string]string{
	"login":  "فشل تسجيل الدخول. تأكد من الاسم وحاول مرة أخرى.",
	"save":   "تعذر حفظ البيانات. حاول مرة أخرى.",
	"delete": "تعذر حذف السجل. حاول مرة أخرى.",
	"form":   "يرجى تعبئة جميع الحقول المطلوبة.",
}

var noticeText = map[string]string{
	"saved":   "تم حفظ البيانات بنجاح.",
	"deleted": "تم حذف السجل بنجاح.",
}

type page struct {
	Session *session.Session
	Banner  string
	Notice  string
	// LoadError marks a failed collection read; the template shows a
	// persistent inline error with a retry link instead of the list.
	LoadError bool
	Term      string

	Prisoners []records.Prisoner
	Released  []records.ReleasedPrisoner
	Admins    []records.User
	Viewers   []records.User

	Prisoner records.Prisoner
	RelRec   records.ReleasedPrisoner
	Editing  bool
}

func (s *Server) newPage(r *http.Request) page {
	q := r.URL.Query()
	return page{
		Session: sessionFrom(r.Context()),
		Banner:  bannerText[q.Get("err")],
		Notice:  noticeText[q.Get("ok")],
		Term:    q.Get("q"),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error(r.Context(), "template render failed", "template", name, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
