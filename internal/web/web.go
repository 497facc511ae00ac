// Package web wires the HTTP surface: wizard routes, per-tool dashboards,
// bill management, the learning hub, language switching, and the health
// probe.
package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kudimara/kudimara/internal/export"
	"github.com/kudimara/kudimara/internal/i18n"
	"github.com/kudimara/kudimara/internal/session"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/wizard"
)

type Handler struct {
	reg      *store.Registry
	sessions *session.Manager
	runtime  *wizard.Runtime
	view     *view
}

// New builds the handler set. tools must match the runtime's definitions.
func New(reg *store.Registry, sessions *session.Manager, toolDefs []wizard.Tool) *Handler {
	h := &Handler{
		reg:      reg,
		sessions: sessions,
		view:     &view{sessions: sessions},
	}
	h.runtime = wizard.NewRuntime(reg, sessions, h.view, toolDefs)
	return h
}

// View exposes the renderer for the wizard runtime.
func (h *Handler) View() wizard.View {
	return h.view
}

// RegisterRoutes installs every route on mux. Literal segments win over the
// wizard's /{tool}/{step} wildcards on specificity.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleLanding)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /set_language/{lang}", h.handleSetLanguage)

	for _, tool := range store.Tools {
		t := tool
		mux.HandleFunc("GET /"+t+"/dashboard", func(w http.ResponseWriter, r *http.Request) {
			h.handleDashboard(w, r, t)
		})
		mux.HandleFunc("GET /"+t+"/export.csv", func(w http.ResponseWriter, r *http.Request) {
			h.handleExportCSV(w, r, t)
		})
	}

	mux.HandleFunc("GET /bill/view_edit", h.handleBillView)
	mux.HandleFunc("POST /bill/view_edit", h.handleBillAction)
	mux.HandleFunc("GET /bill/unsubscribe/{token}", h.handleUnsubscribe)

	mux.HandleFunc("GET /learn", h.handleLearn)
	mux.HandleFunc("GET /learn/{id}", h.handleCourse)

	h.runtime.Register(mux)

	// Anything else is a 404 page, not the stdlib plain-text default.
	mux.HandleFunc("/", h.handleNotFound)
}

// Middleware wraps the mux with panic recovery and the standard security
// headers.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				sess := h.sessions.Load(r)
				slog.Error("panic serving request", "path", r.URL.Path, "session_id", sess.SID, "panic", rec)
				h.view.Error(w, r, sess, http.StatusInternalServerError)
			}
		}()
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleLanding(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	links := make([]toolLink, 0, len(store.Tools))
	for _, name := range store.Tools {
		if t, ok := h.runtime.Tool(name); ok {
			links = append(links, toolLink{Name: name, TitleKey: t.TitleKey})
		}
	}
	h.view.render(w, sess, "landing", &page{
		Title:     i18n.T("core_tagline", sess.Lang),
		ToolLinks: links,
	}, http.StatusOK)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.reg.Health(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fmt.Fprintln(w, "ok")
}

func (h *Handler) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	lang := r.PathValue("lang")
	if i18n.Supported(lang) {
		sess.Lang = lang
		sess.AddFlash(session.FlashSuccess, i18n.T("core_language_set", lang))
	} else {
		sess.AddFlash(session.FlashDanger, i18n.T("core_invalid_language", sess.Lang))
	}
	h.redirect(w, r, sess, "/")
}

// handleDashboard shows the session's results for one tool: every bill for
// the bill tracker, the latest record for everything else.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request, tool string) {
	sess := h.sessions.Load(r)
	st := h.reg.For(tool)
	if err := st.Healthy(); err != nil {
		slog.Warn("dashboard store unhealthy", "tool", tool, "session_id", sess.SID, "error", err)
		sess.AddFlash(session.FlashWarning, i18n.T("core_dashboard_stale", sess.Lang))
	}
	records := st.FilterBySession(sess.SID)

	titleKey := "core_app_name"
	if t, ok := h.runtime.Tool(tool); ok {
		titleKey = t.TitleKey
	}
	if tool == store.ToolBill {
		h.view.render(w, sess, "bills", &page{
			Title:   i18n.T(titleKey, sess.Lang),
			Tool:    tool,
			Records: records,
		}, http.StatusOK)
		return
	}
	if len(records) > 1 {
		records = records[len(records)-1:]
	}
	h.view.render(w, sess, "dashboard", &page{
		Title:   i18n.T(titleKey, sess.Lang),
		Tool:    tool,
		Records: records,
	}, http.StatusOK)
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request, tool string) {
	sess := h.sessions.Load(r)
	records := h.reg.For(tool).FilterBySession(sess.SID)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+tool+`.csv"`)
	if err := export.WriteCSV(w, records); err != nil {
		slog.Error("csv export failed", "tool", tool, "session_id", sess.SID, "error", err)
	}
}

func (h *Handler) handleLearn(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	h.view.render(w, sess, "learn", &page{
		Title:   i18n.T("learn_title", sess.Lang),
		Courses: h.reg.Courses.ReadAll(),
	}, http.StatusOK)
}

func (h *Handler) handleCourse(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	id := r.PathValue("id")
	for _, course := range h.reg.Courses.ReadAll() {
		if course.ID == id {
			title := course.TitleEN
			if sess.Lang == i18n.LangHausa {
				title = course.TitleHA
			}
			h.view.render(w, sess, "course", &page{Title: title, Course: &course}, http.StatusOK)
			return
		}
	}
	h.view.Error(w, r, sess, http.StatusNotFound)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.view.Error(w, r, h.sessions.Load(r), http.StatusNotFound)
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, sess *session.Session, path string) {
	if err := h.sessions.Save(w, sess); err != nil {
		slog.Error("saving session", "session_id", sess.SID, "error", err)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}
