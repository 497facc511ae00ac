package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/kudimara/kudimara/internal/i18n"
	"github.com/kudimara/kudimara/internal/mail"
	"github.com/kudimara/kudimara/internal/session"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/tools"
)

type testApp struct {
	srv      *httptest.Server
	client   *http.Client
	reg      *store.Registry
	sessions *session.Manager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	reg, err := store.OpenRegistry(t.TempDir())
	if err != nil {
		t.Fatalf("opening registry: %v", err)
	}
	if err := tools.SeedCourses(reg.Courses); err != nil {
		t.Fatalf("seeding courses: %v", err)
	}
	sessions := session.NewManager("test-secret", "kudimara_session", 24)
	h := New(reg, sessions, tools.Definitions(reg, mail.Disabled{}, nil))

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := httptest.NewServer(h.Middleware(mux))
	t.Cleanup(srv.Close)

	jar, _ := cookiejar.New(nil)
	return &testApp{srv: srv, client: &http.Client{Jar: jar}, reg: reg, sessions: sessions}
}

func (a *testApp) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := a.client.Get(a.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.srv.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

var csrfRe = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

func extractCSRF(t *testing.T, body string) string {
	t.Helper()
	m := csrfRe.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no CSRF token in page:\n%s", body)
	}
	return m[1]
}

// postStep fetches the step, lifts the CSRF token, and posts the fields.
func (a *testApp) postStep(t *testing.T, path string, fields map[string]string) (int, string) {
	t.Helper()
	status, body := a.get(t, path)
	if status != http.StatusOK {
		t.Fatalf("GET %s = %d", path, status)
	}
	form := url.Values{"_csrf": {extractCSRF(t, body)}}
	for k, v := range fields {
		form.Set(k, v)
	}
	return a.post(t, path, form)
}

func TestWizardPreconditionRedirect(t *testing.T) {
	app := newTestApp(t)

	// Observe the redirect itself, without following it.
	noRedirect := &http.Client{
		Jar:           app.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := noRedirect.Get(app.srv.URL + "/emergency_fund/step3")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "/emergency_fund/step1" {
		t.Fatalf("Location = %q, want /emergency_fund/step1", got)
	}

	// Step 1 then shows the info flash.
	_, body := app.get(t, "/emergency_fund/step1")
	if !strings.Contains(body, i18n.T("core_missing_previous_step", i18n.LangEnglish)) {
		t.Error("missing-previous-step flash not shown on step 1")
	}
}

func TestFinancialHealthWizardFlow(t *testing.T) {
	app := newTestApp(t)

	status, _ := app.postStep(t, "/financial_health/step1", map[string]string{
		"first_name": "Amina", "email": "amina@example.com",
	})
	if status != http.StatusOK {
		t.Fatalf("step1 post = %d", status)
	}
	app.postStep(t, "/financial_health/step2", map[string]string{
		"income": "100,000", "expenses": "60000",
	})
	status, body := app.postStep(t, "/financial_health/step3", map[string]string{
		"debt": "20000", "interest_rate": "10",
	})
	if status != http.StatusOK {
		t.Fatalf("final post = %d", status)
	}
	// Landed on the dashboard with the saved flash and the computed score.
	if !strings.Contains(body, i18n.T("core_saved", i18n.LangEnglish)) {
		t.Error("saved flash missing after finalize")
	}
	if !strings.Contains(body, "98") {
		t.Error("dashboard does not show the score")
	}

	records := app.reg.For(store.ToolFinancialHealth).ReadAll()
	if len(records) != 1 {
		t.Fatalf("store has %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.UserEmail != "amina@example.com" {
		t.Errorf("user_email = %q", rec.UserEmail)
	}
	if rec.Data["score"] != 98.0 || rec.Data["status"] != "excellent" {
		t.Errorf("record = %v", rec.Data)
	}
}

func TestWizardValidationRerenders(t *testing.T) {
	app := newTestApp(t)

	status, body := app.postStep(t, "/financial_health/step1", map[string]string{
		"first_name": "Amina", "email": "not-an-email",
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, i18n.T("core_field_email", i18n.LangEnglish)) {
		t.Error("validation message not rendered")
	}
	// What the user typed is echoed back.
	if !strings.Contains(body, "not-an-email") {
		t.Error("submitted value not echoed")
	}

	// The invalid step was not stored: step 2 still redirects.
	noRedirect := &http.Client{
		Jar:           app.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := noRedirect.Get(app.srv.URL + "/financial_health/step2")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("step2 after invalid step1 = %d, want 303", resp.StatusCode)
	}
}

func TestWizardCSRFRejected(t *testing.T) {
	app := newTestApp(t)
	app.get(t, "/financial_health/step1") // establish a session

	status, _ := app.post(t, "/financial_health/step1", url.Values{
		"first_name": {"A"}, "email": {"a@example.com"}, "_csrf": {"forged"},
	})
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestFinalizeFailureKeepsPartials(t *testing.T) {
	app := newTestApp(t)

	app.postStep(t, "/financial_health/step1", map[string]string{
		"first_name": "A", "email": "a@example.com",
	})
	app.postStep(t, "/financial_health/step2", map[string]string{
		"income": "0", "expenses": "1000",
	})
	status, body := app.postStep(t, "/financial_health/step3", map[string]string{
		"debt": "0", "interest_rate": "0",
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, i18n.T("health_income_zero", i18n.LangEnglish)) {
		t.Error("rejection flash missing")
	}
	if got := len(app.reg.For(store.ToolFinancialHealth).ReadAll()); got != 0 {
		t.Errorf("rejected submission stored %d records", got)
	}
	// Earlier steps survive, so the user can go back and fix the income.
	status, _ = app.get(t, "/financial_health/step2")
	if status != http.StatusOK {
		t.Errorf("step2 after rejection = %d, want direct render", status)
	}
}

func TestSetLanguage(t *testing.T) {
	app := newTestApp(t)

	_, body := app.get(t, "/set_language/ha")
	if !strings.Contains(body, `<html lang="ha">`) {
		t.Error("page not rendered in Hausa after switch")
	}
	if !strings.Contains(body, i18n.T("core_language_set", i18n.LangHausa)) {
		t.Error("language-set flash missing")
	}

	// The choice persists across requests.
	_, body = app.get(t, "/")
	if !strings.Contains(body, `<html lang="ha">`) {
		t.Error("language did not persist")
	}

	_, body = app.get(t, "/set_language/fr")
	if !strings.Contains(body, i18n.T("core_invalid_language", i18n.LangHausa)) {
		t.Error("invalid-language flash missing")
	}
	if !strings.Contains(body, `<html lang="ha">`) {
		t.Error("invalid code replaced the stored language")
	}
}

func TestLandingListsTools(t *testing.T) {
	app := newTestApp(t)
	status, body := app.get(t, "/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, tool := range store.Tools {
		if !strings.Contains(body, "/"+tool+"/step1") {
			t.Errorf("landing missing link to %s", tool)
		}
	}
	if !strings.Contains(body, "/learn") {
		t.Error("landing missing learning hub link")
	}
}

func TestHealthProbe(t *testing.T) {
	app := newTestApp(t)
	status, body := app.get(t, "/health")
	if status != http.StatusOK || !strings.Contains(body, "ok") {
		t.Errorf("health = %d %q", status, body)
	}
}

func TestNotFound(t *testing.T) {
	app := newTestApp(t)
	status, body := app.get(t, "/no/such/page")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if !strings.Contains(body, i18n.T("core_not_found", i18n.LangEnglish)) {
		t.Error("404 page not localized")
	}

	status, _ = app.get(t, "/financial_health/step9")
	if status != http.StatusNotFound {
		t.Errorf("out-of-range step = %d, want 404", status)
	}
}

func TestLearnPages(t *testing.T) {
	app := newTestApp(t)
	status, body := app.get(t, "/learn")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "/learn/budgeting-basics") {
		t.Error("course list missing seeded course")
	}

	status, body = app.get(t, "/learn/budgeting-basics")
	if status != http.StatusOK || !strings.Contains(body, "Budgeting Basics") {
		t.Errorf("course page = %d", status)
	}

	// Hausa rendering of the same course.
	app.get(t, "/set_language/ha")
	_, body = app.get(t, "/learn/budgeting-basics")
	if !strings.Contains(body, "Tushen Kasafin Kudi") {
		t.Error("course page not localized to Hausa")
	}

	status, _ = app.get(t, "/learn/nope")
	if status != http.StatusNotFound {
		t.Errorf("unknown course = %d, want 404", status)
	}
}

func completeBillWizard(t *testing.T, app *testApp, due string) {
	t.Helper()
	app.postStep(t, "/bill/step1", map[string]string{
		"first_name": "Amina", "email": "amina@example.com",
	})
	app.postStep(t, "/bill/step2", map[string]string{
		"bill_name": "Rent", "amount": "50000", "due_date": due,
		"frequency": "monthly", "category": "rent",
	})
	status, _ := app.postStep(t, "/bill/step3", map[string]string{
		"status": "unpaid", "reminder_days": "3",
	})
	if status != http.StatusOK {
		t.Fatalf("bill wizard finalize = %d", status)
	}
}

func TestBillLifecycle(t *testing.T) {
	app := newTestApp(t)
	completeBillWizard(t, app, "2030-01-15")

	st := app.reg.For(store.ToolBill)
	records := st.ReadAll()
	if len(records) != 1 {
		t.Fatalf("store has %d bills", len(records))
	}
	id := records[0].ID

	_, body := app.get(t, "/bill/dashboard")
	if !strings.Contains(body, "Rent") || !strings.Contains(body, id) {
		t.Error("dashboard does not list the bill")
	}

	t.Run("Toggle", func(t *testing.T) {
		_, page := app.get(t, "/bill/view_edit")
		_, body := app.post(t, "/bill/view_edit", url.Values{
			"_csrf": {extractCSRF(t, page)}, "id": {id}, "action": {"toggle_status"},
		})
		if !strings.Contains(body, i18n.T("bill_updated", i18n.LangEnglish)) {
			t.Error("updated flash missing")
		}
		env, _ := st.GetByID(id)
		if env.Data["status"] != "paid" {
			t.Errorf("status = %v, want paid", env.Data["status"])
		}
		// Monthly bill rolls over on payment.
		if got := len(st.ReadAll()); got != 2 {
			t.Errorf("store has %d bills after rollover, want 2", got)
		}
	})

	t.Run("Edit", func(t *testing.T) {
		_, page := app.get(t, "/bill/view_edit?id=" + id)
		if !strings.Contains(page, `value="Rent"`) {
			t.Error("edit form not prefilled")
		}
		app.post(t, "/bill/view_edit", url.Values{
			"_csrf": {extractCSRF(t, page)}, "id": {id}, "action": {"edit"},
			"bill_name": {"Rent II"}, "amount": {"60000"}, "due_date": {"2030-02-01"},
			"frequency": {"monthly"}, "category": {"rent"}, "status": {"pending"},
			"reminder_days": {"5"},
		})
		env, _ := st.GetByID(id)
		if env.Data["bill_name"] != "Rent II" || env.Data["status"] != "pending" {
			t.Errorf("edit not applied: %v", env.Data)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		_, page := app.get(t, "/bill/view_edit")
		_, body := app.post(t, "/bill/view_edit", url.Values{
			"_csrf": {extractCSRF(t, page)}, "id": {id}, "action": {"delete"},
		})
		if !strings.Contains(body, i18n.T("bill_deleted", i18n.LangEnglish)) {
			t.Error("deleted flash missing")
		}
		if _, ok := st.GetByID(id); ok {
			t.Error("bill still present after delete")
		}
	})
}

func TestBillActionsRejectForeignSession(t *testing.T) {
	app := newTestApp(t)
	// Bill owned by someone else's session.
	id, err := app.reg.For(store.ToolBill).Append(map[string]any{
		"bill_name": "Other", "status": "unpaid", "due_date": "2030-01-01",
		"frequency": "monthly", "send_email": false,
	}, "other-session", "other@example.com")
	if err != nil {
		t.Fatal(err)
	}

	// The bills page shows no forms for an empty session; any wizard page
	// carries the same per-session token.
	_, page := app.get(t, "/bill/step1")
	_, body := app.post(t, "/bill/view_edit", url.Values{
		"_csrf": {extractCSRF(t, page)}, "id": {id}, "action": {"delete"},
	})
	if !strings.Contains(body, i18n.T("bill_not_found", i18n.LangEnglish)) {
		t.Error("foreign bill not rejected")
	}
	if _, ok := app.reg.For(store.ToolBill).GetByID(id); !ok {
		t.Error("foreign bill was deleted")
	}
}

func TestUnsubscribe(t *testing.T) {
	app := newTestApp(t)
	st := app.reg.For(store.ToolBill)
	id, _ := st.Append(map[string]any{
		"bill_name": "Rent", "status": "unpaid", "due_date": "2030-01-01",
		"frequency": "monthly", "send_email": true,
	}, "any-session", "amina@example.com")

	token, err := app.sessions.EmailToken("amina@example.com")
	if err != nil {
		t.Fatal(err)
	}
	status, _ := app.get(t, "/bill/unsubscribe/"+token)
	if status != http.StatusOK {
		t.Fatalf("unsubscribe = %d", status)
	}
	env, _ := st.GetByID(id)
	if env.Data["send_email"] != false {
		t.Error("bill still opted in after unsubscribe")
	}

	status, _ = app.get(t, "/bill/unsubscribe/forged-token")
	if status != http.StatusNotFound {
		t.Errorf("forged token = %d, want 404", status)
	}
}

func TestExportCSV(t *testing.T) {
	app := newTestApp(t)

	app.postStep(t, "/financial_health/step1", map[string]string{
		"first_name": "Amina", "email": "amina@example.com",
	})
	app.postStep(t, "/financial_health/step2", map[string]string{
		"income": "100000", "expenses": "60000",
	})
	app.postStep(t, "/financial_health/step3", map[string]string{
		"debt": "20000", "interest_rate": "10",
	})

	resp, err := app.client.Get(app.srv.URL + "/financial_health/export.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv has %d lines, want header + 1 row", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,timestamp,user_email") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "amina@example.com") || !strings.Contains(lines[1], "98") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestDashboardShowsLatestRecordOnly(t *testing.T) {
	app := newTestApp(t)
	run := func(income string) {
		app.postStep(t, "/financial_health/step1", map[string]string{
			"first_name": "A", "email": "a@example.com",
		})
		app.postStep(t, "/financial_health/step2", map[string]string{
			"income": income, "expenses": "10000",
		})
		app.postStep(t, "/financial_health/step3", map[string]string{
			"debt": "0", "interest_rate": "0",
		})
	}
	run("50000")
	run("80000")

	_, body := app.get(t, "/financial_health/dashboard")
	if !strings.Contains(body, "80000") {
		t.Error("dashboard missing the latest record")
	}
	if strings.Contains(body, "50000") {
		t.Error("dashboard shows a superseded record")
	}
}
