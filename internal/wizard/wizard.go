// Package wizard drives every tool's multi-step form.
//
// A Tool declares an ordered list of steps with field specs and a finalizer;
// the runtime enforces step ordering, stashes validated partial input in the
// session, and on the last step runs the finalizer and appends exactly one
// record to the tool's store.
package wizard

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/kudimara/kudimara/internal/forms"
	"github.com/kudimara/kudimara/internal/i18n"
	"github.com/kudimara/kudimara/internal/session"
	"github.com/kudimara/kudimara/internal/store"
)

// Step is one screen of a tool's wizard.
type Step struct {
	TitleKey string
	Fields   []forms.Field

	// FieldsFor overrides Fields for steps whose inputs depend on session
	// state, such as the quiz question draw.
	FieldsFor func(s *session.Session) []forms.Field

	// Prepare runs before rendering the step and may stash derived state in
	// an earlier partial; the view persists the session on render.
	Prepare func(s *session.Session)

	// Extra validates the step's values against earlier steps. prior holds
	// the partials of steps 1..k-1 in order.
	Extra func(prior []forms.Values, v forms.Values, lang string) forms.Errors
}

// Tool is a complete wizard definition.
type Tool struct {
	Name     string
	TitleKey string
	Steps    []Step

	// Finalize turns the ordered step inputs into the record payload.
	// Returning *Failure rejects the submission with a localized message.
	Finalize func(steps []forms.Values) (map[string]any, error)

	// AfterSave runs once the record is stored, outside any store lock.
	// An error becomes a warning flash; the record stays saved.
	AfterSave func(env store.Envelope, lang string) error
}

// Failure is a finalizer-level rejection carrying an i18n message key.
type Failure struct {
	Key string
}

func (f *Failure) Error() string { return f.Key }

// StepPage is everything a view needs to render one step.
type StepPage struct {
	Tool   *Tool
	Step   int
	Total  int
	Fields []forms.Field
	Values forms.Values
	Errors forms.Errors
	Sess   *session.Session
	CSRF   string
}

// Last reports whether this is the final step of the wizard.
func (p StepPage) Last() bool {
	return p.Step == p.Total
}

// View renders wizard pages. Implemented by the web package. Step persists
// the session (drained flashes, fresh partials) before writing the body.
type View interface {
	Step(w http.ResponseWriter, r *http.Request, p StepPage)
	Error(w http.ResponseWriter, r *http.Request, sess *session.Session, status int)
}

// Runtime dispatches wizard HTTP traffic for a set of tools.
type Runtime struct {
	tools    map[string]*Tool
	reg      *store.Registry
	sessions *session.Manager
	view     View
}

func NewRuntime(reg *store.Registry, sessions *session.Manager, view View, tools []Tool) *Runtime {
	rt := &Runtime{
		tools:    make(map[string]*Tool, len(tools)),
		reg:      reg,
		sessions: sessions,
		view:     view,
	}
	for i := range tools {
		rt.tools[tools[i].Name] = &tools[i]
	}
	return rt
}

// Tool returns a registered tool definition by name.
func (rt *Runtime) Tool(name string) (*Tool, bool) {
	t, ok := rt.tools[name]
	return t, ok
}

// Register installs GET/POST /{tool}/step{k} for every tool. Literal routes
// like /{tool}/dashboard are registered elsewhere and win on specificity.
func (rt *Runtime) Register(mux *http.ServeMux) {
	for name, tool := range rt.tools {
		t := tool
		mux.HandleFunc("GET /"+name+"/{step}", func(w http.ResponseWriter, r *http.Request) {
			rt.handleGet(w, r, t)
		})
		mux.HandleFunc("POST /"+name+"/{step}", func(w http.ResponseWriter, r *http.Request) {
			rt.handlePost(w, r, t)
		})
	}
}

// stepNumber parses a path segment like "step2" into 2; 0 means not a step.
func stepNumber(segment string, max int) int {
	if !strings.HasPrefix(segment, "step") {
		return 0
	}
	k, err := strconv.Atoi(segment[len("step"):])
	if err != nil || k < 1 || k > max {
		return 0
	}
	return k
}

func (rt *Runtime) handleGet(w http.ResponseWriter, r *http.Request, tool *Tool) {
	sess := rt.sessions.Load(r)
	k := stepNumber(r.PathValue("step"), len(tool.Steps))
	if k == 0 {
		rt.view.Error(w, r, sess, http.StatusNotFound)
		return
	}
	if k > 1 && !sess.HasSteps(tool.Name, k-1) {
		rt.redirectStep1(w, r, sess, tool)
		return
	}

	step := &tool.Steps[k-1]
	if step.Prepare != nil {
		step.Prepare(sess)
	}
	values, _ := sess.Partial(tool.Name, k)
	rt.view.Step(w, r, rt.page(tool, k, sess, values, nil))
}

func (rt *Runtime) handlePost(w http.ResponseWriter, r *http.Request, tool *Tool) {
	sess := rt.sessions.Load(r)
	k := stepNumber(r.PathValue("step"), len(tool.Steps))
	if k == 0 {
		rt.view.Error(w, r, sess, http.StatusNotFound)
		return
	}
	if k > 1 && !sess.HasSteps(tool.Name, k-1) {
		rt.redirectStep1(w, r, sess, tool)
		return
	}
	if err := r.ParseForm(); err != nil {
		rt.view.Error(w, r, sess, http.StatusBadRequest)
		return
	}
	if !rt.sessions.VerifyCSRF(sess, r.PostFormValue("_csrf")) {
		rt.view.Error(w, r, sess, http.StatusBadRequest)
		return
	}

	fields := rt.fields(tool, k, sess)
	values, errs := forms.Validate(fields, r.PostForm, sess.Lang)
	if errs == nil && tool.Steps[k-1].Extra != nil {
		prior := rt.collect(sess, tool, k-1)
		if extraErrs := tool.Steps[k-1].Extra(prior, values, sess.Lang); len(extraErrs) > 0 {
			errs = extraErrs
		}
	}
	if errs != nil {
		// Re-render with what the user typed; session state untouched.
		rt.view.Step(w, r, rt.page(tool, k, sess, rawValues(fields, r), errs))
		return
	}

	sess.SetPartial(tool.Name, k, values)
	if k < len(tool.Steps) {
		rt.redirect(w, r, sess, fmt.Sprintf("/%s/step%d", tool.Name, k+1))
		return
	}
	rt.finalize(w, r, sess, tool, values)
}

// finalize runs the tool's finalizer over the ordered step inputs and
// appends the record. Partials survive any failure so the user can retry.
func (rt *Runtime) finalize(w http.ResponseWriter, r *http.Request, sess *session.Session, tool *Tool, last forms.Values) {
	steps := rt.collect(sess, tool, len(tool.Steps))

	data, err := rt.runFinalizer(sess, tool, steps)
	if err != nil {
		var failure *Failure
		if f, ok := err.(*Failure); ok {
			failure = f
		}
		msg := i18n.T("core_generic_error", sess.Lang)
		if failure != nil {
			msg = i18n.T(failure.Key, sess.Lang)
		}
		sess.AddFlash(session.FlashDanger, msg)
		rt.view.Step(w, r, rt.page(tool, len(tool.Steps), sess, last, nil))
		return
	}

	email := extractEmail(steps)
	id, err := rt.reg.For(tool.Name).Append(data, sess.SID, email)
	if err != nil {
		sess.AddFlash(session.FlashDanger, i18n.T("core_save_failed", sess.Lang))
		rt.view.Step(w, r, rt.page(tool, len(tool.Steps), sess, last, nil))
		return
	}

	sess.ClearTool(tool.Name)
	sess.AddFlash(session.FlashSuccess, i18n.T("core_saved", sess.Lang))

	if tool.AfterSave != nil {
		env := store.Envelope{ID: id, SessionID: sess.SID, UserEmail: email, Data: data}
		if err := tool.AfterSave(env, sess.Lang); err != nil {
			sess.AddFlash(session.FlashWarning, i18n.T("core_email_failed", sess.Lang))
		}
	}

	rt.redirect(w, r, sess, "/"+tool.Name+"/dashboard")
}

// runFinalizer isolates finalizer panics so a tool bug cannot take down the
// worker; the user sees a generic error and the session survives.
func (rt *Runtime) runFinalizer(sess *session.Session, tool *Tool, steps []forms.Values) (data map[string]any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("finalizer panicked", "tool", tool.Name, "session_id", sess.SID, "panic", rec)
			err = fmt.Errorf("finalizer panic: %v", rec)
		}
	}()
	data, err = tool.Finalize(steps)
	if _, expected := err.(*Failure); err != nil && !expected {
		slog.Error("finalizer failed", "tool", tool.Name, "session_id", sess.SID, "error", err)
	}
	return data, err
}

func (rt *Runtime) collect(sess *session.Session, tool *Tool, upto int) []forms.Values {
	steps := make([]forms.Values, upto)
	for i := 1; i <= upto; i++ {
		steps[i-1], _ = sess.Partial(tool.Name, i)
	}
	return steps
}

func (rt *Runtime) fields(tool *Tool, k int, sess *session.Session) []forms.Field {
	step := &tool.Steps[k-1]
	if step.FieldsFor != nil {
		return step.FieldsFor(sess)
	}
	return step.Fields
}

func (rt *Runtime) page(tool *Tool, k int, sess *session.Session, values forms.Values, errs forms.Errors) StepPage {
	return StepPage{
		Tool:   tool,
		Step:   k,
		Total:  len(tool.Steps),
		Fields: rt.fields(tool, k, sess),
		Values: values,
		Errors: errs,
		Sess:   sess,
		CSRF:   rt.sessions.CSRFToken(sess),
	}
}

func (rt *Runtime) redirectStep1(w http.ResponseWriter, r *http.Request, sess *session.Session, tool *Tool) {
	sess.AddFlash(session.FlashInfo, i18n.T("core_missing_previous_step", sess.Lang))
	rt.redirect(w, r, sess, "/"+tool.Name+"/step1")
}

func (rt *Runtime) redirect(w http.ResponseWriter, r *http.Request, sess *session.Session, path string) {
	if err := rt.sessions.Save(w, sess); err != nil {
		slog.Error("saving session", "session_id", sess.SID, "error", err)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// rawValues echoes the submitted form back into the re-rendered step.
func rawValues(fields []forms.Field, r *http.Request) forms.Values {
	v := make(forms.Values, len(fields))
	for _, f := range fields {
		v[f.Name] = strings.TrimSpace(r.PostFormValue(f.Name))
	}
	return v
}

// extractEmail denormalizes the user's email from whichever step asked for it.
func extractEmail(steps []forms.Values) string {
	for _, step := range steps {
		if email, ok := step["email"]; ok && email != "" {
			return email
		}
	}
	return ""
}
