// Package scheduler runs the deferred bill work: promoting unpaid bills past
// their due date to overdue, then emailing grouped reminders to opted-in
// users. Both tasks run at a daily cadence on one long-lived goroutine.
package scheduler

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/kudimara/kudimara/internal/i18n"
	"github.com/kudimara/kudimara/internal/mail"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/tools"
)

// TokenSigner mints the signed unsubscribe tokens embedded in reminder
// emails. Satisfied by session.Manager.
type TokenSigner interface {
	EmailToken(email string) (string, error)
}

type Scheduler struct {
	reg      *store.Registry
	sender   mail.Sender
	audit    *AuditLog
	signer   TokenSigner
	baseURL  string
	interval time.Duration
	deadline time.Duration
	// now is swapped in tests.
	now func() time.Time
}

func New(reg *store.Registry, sender mail.Sender, audit *AuditLog, signer TokenSigner, baseURL string, intervalHours, taskDeadlineSec int) *Scheduler {
	if intervalHours <= 0 {
		intervalHours = 24
	}
	if taskDeadlineSec <= 0 {
		taskDeadlineSec = 300
	}
	return &Scheduler{
		reg:      reg,
		sender:   sender,
		audit:    audit,
		signer:   signer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		interval: time.Duration(intervalHours) * time.Hour,
		deadline: time.Duration(taskDeadlineSec) * time.Second,
		now:      time.Now,
	}
}

// Run executes one pass immediately and then every interval until ctx is
// cancelled. It returns after finishing the in-flight record, never mid-write.
func (s *Scheduler) Run(ctx context.Context) {
	s.RunOnce(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce runs the overdue sweep and then the reminder dispatch, in that
// order, so reminders reflect freshly promoted statuses.
func (s *Scheduler) RunOnce(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.deadline)
	s.SweepOverdue(sweepCtx)
	cancel()

	dispatchCtx, cancel := context.WithTimeout(ctx, s.deadline)
	s.DispatchReminders(dispatchCtx)
	cancel()
}

// SweepOverdue promotes every unpaid or pending bill past its due date to
// overdue. Each promotion is its own committed write, so hitting the soft
// deadline loses no completed work.
func (s *Scheduler) SweepOverdue(ctx context.Context) {
	st := s.reg.For(store.ToolBill)
	now := s.now()
	promoted := 0
	for _, env := range st.ReadAll() {
		if ctx.Err() != nil {
			slog.Warn("overdue sweep truncated by deadline", "promoted", promoted)
			return
		}
		status, _ := env.Data["status"].(string)
		if status != tools.BillUnpaid && status != tools.BillPending {
			continue
		}
		due, _ := env.Data["due_date"].(string)
		if !dueBefore(due, now) {
			continue
		}
		env.Data["status"] = tools.BillOverdue
		if st.UpdateByID(env.ID, env.Data) {
			promoted++
		}
	}
	if promoted > 0 {
		slog.Info("overdue sweep complete", "promoted", promoted)
	}
}

// reminderBill is the per-bill snapshot stored in the audit log.
type reminderBill struct {
	ID      string  `json:"id"`
	Name    string  `json:"bill_name"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"due_date"`
	Status  string  `json:"status"`
	Owner   string  `json:"first_name,omitempty"`
}

// DispatchReminders groups due or troubled bills by recipient and sends one
// aggregated email per recipient per run. The store lock is never held while
// sending; reads take a snapshot first.
func (s *Scheduler) DispatchReminders(ctx context.Context) {
	if !s.sender.Enabled() {
		return
	}
	st := s.reg.For(store.ToolBill)
	now := s.now()

	byEmail := make(map[string][]reminderBill)
	for _, env := range st.ReadAll() {
		if env.UserEmail == "" || !tools.InReminderWindow(env.Data, now) {
			continue
		}
		name, _ := env.Data["bill_name"].(string)
		amount, _ := env.Data["amount"].(float64)
		due, _ := env.Data["due_date"].(string)
		status, _ := env.Data["status"].(string)
		owner, _ := env.Data["first_name"].(string)
		byEmail[env.UserEmail] = append(byEmail[env.UserEmail], reminderBill{
			ID: env.ID, Name: name, Amount: amount, DueDate: due, Status: status, Owner: owner,
		})
	}

	recipients := make([]string, 0, len(byEmail))
	for email := range byEmail {
		recipients = append(recipients, email)
	}
	sort.Strings(recipients)

	for _, email := range recipients {
		if ctx.Err() != nil {
			slog.Warn("reminder dispatch truncated by deadline", "remaining", len(recipients))
			return
		}
		bills := byEmail[email]
		subject, body := composeReminder(bills, i18n.LangEnglish)
		if link := s.unsubscribeLink(email); link != "" {
			body += "\n\n" + i18n.T("bill_reminder_unsub", i18n.LangEnglish, map[string]any{"url": link})
		}
		snapshot, _ := json.Marshal(bills)

		entry := &AuditEntry{Email: email, BillCount: len(bills), BillsJSON: string(snapshot)}
		if !s.sender.Send(email, subject, body, i18n.LangEnglish) {
			slog.Warn("reminder email failed", "email", email, "bills", len(bills))
			entry.Error = "send failed"
		}
		s.audit.LogAsync(entry)
	}
}

// composeReminder renders one aggregated reminder for a recipient.
func composeReminder(bills []reminderBill, lang string) (subject, body string) {
	subject = i18n.T("bill_reminder_subject", lang, map[string]any{"count": len(bills)})
	name := bills[0].Owner
	if name == "" {
		name = "there"
	}
	body = i18n.T("bill_reminder_intro", lang, map[string]any{"name": name}) + "\n"
	for _, b := range bills {
		body += "\n" + i18n.T("bill_reminder_line", lang, map[string]any{
			"bill":   b.Name,
			"amount": b.Amount,
			"due":    b.DueDate,
			"status": b.Status,
		})
	}
	return subject, body
}

// unsubscribeLink returns a signed opt-out URL, or "" when no signer or base
// URL is configured.
func (s *Scheduler) unsubscribeLink(email string) string {
	if s.signer == nil || s.baseURL == "" {
		return ""
	}
	token, err := s.signer.EmailToken(email)
	if err != nil {
		slog.Warn("signing unsubscribe token", "email", email, "error", err)
		return ""
	}
	return s.baseURL + "/bill/unsubscribe/" + token
}

func dueBefore(isoDate string, now time.Time) bool {
	due, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return false
	}
	y, m, d := now.UTC().Date()
	return due.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
