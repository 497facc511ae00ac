package web

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/kudimara/kudimara/internal/forms"
	"github.com/kudimara/kudimara/internal/i18n"
	"github.com/kudimara/kudimara/internal/session"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/wizard"
)

var pageTemplates = template.Must(template.New("kudimara").Parse(templateSrc))

// page is the single view model behind every template. Per-template payloads
// are optional fields; T and Opt localize inside the template.
type page struct {
	Lang    string
	Title   string
	Flashes []session.Flash
	CSRF    string

	Step      *wizard.StepPage
	StepOf    string
	Tool      string
	Records   []store.Envelope
	ToolLinks []toolLink
	Courses   []store.Course
	Course    *store.Course

	EditID     string
	EditFields []forms.Field
	EditValues forms.Values
	EditErrors forms.Errors
}

type toolLink struct {
	Name     string
	TitleKey string
}

func (p *page) T(key string) string {
	return i18n.T(key, p.Lang)
}

func (p *page) Opt(value string) string {
	return i18n.Opt(value, p.Lang)
}

// view renders pages and persists the session (drained flashes, partials)
// before the body is written. It implements wizard.View.
type view struct {
	sessions *session.Manager
}

func (v *view) render(w http.ResponseWriter, sess *session.Session, name string, p *page, status int) {
	p.Lang = sess.Lang
	p.Flashes = sess.TakeFlashes()
	p.CSRF = v.sessions.CSRFToken(sess)
	if err := v.sessions.Save(w, sess); err != nil {
		slog.Error("saving session", "session_id", sess.SID, "error", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, p); err != nil {
		slog.Error("rendering template", "template", name, "error", err)
	}
}

// Step renders one wizard screen.
func (v *view) Step(w http.ResponseWriter, r *http.Request, p wizard.StepPage) {
	if p.Values == nil {
		p.Values = forms.Values{}
	}
	if p.Errors == nil {
		p.Errors = forms.Errors{}
	}
	sess := p.Sess
	v.render(w, sess, "step", &page{
		Title: i18n.T(p.Tool.TitleKey, sess.Lang),
		Step:  &p,
		StepOf: i18n.T("core_step_of", sess.Lang, map[string]any{
			"step":  p.Step,
			"total": p.Total,
		}),
	}, http.StatusOK)
}

// Error renders the 400/404/500 pages.
func (v *view) Error(w http.ResponseWriter, r *http.Request, sess *session.Session, status int) {
	titleKey := "core_generic_error"
	switch status {
	case http.StatusNotFound:
		titleKey = "core_not_found"
	case http.StatusBadRequest:
		titleKey = "core_csrf_failed"
	}
	v.render(w, sess, "error", &page{Title: i18n.T(titleKey, sess.Lang)}, status)
}
