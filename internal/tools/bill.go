package tools

import (
	"fmt"
	"time"

	"github.com/kudimara/kudimara/internal/forms"
	"github.com/kudimara/kudimara/internal/i18n"
	"github.com/kudimara/kudimara/internal/mail"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/wizard"
)

// Bill statuses.
const (
	BillUnpaid  = "unpaid"
	BillPaid    = "paid"
	BillPending = "pending"
	BillOverdue = "overdue"
)

// Bill frequencies.
const (
	FreqOneTime   = "one-time"
	FreqWeekly    = "weekly"
	FreqMonthly   = "monthly"
	FreqQuarterly = "quarterly"
)

var (
	billStatusOptions = []string{BillUnpaid, BillPaid, BillPending}
	billFreqOptions   = []string{FreqOneTime, FreqWeekly, FreqMonthly, FreqQuarterly}
	billCategories    = []string{"utilities", "rent", "school", "subscription", "loan", "other"}
)

const dateLayout = "2006-01-02"

func BillTool(sender mail.Sender) wizard.Tool {
	return wizard.Tool{
		Name:     store.ToolBill,
		TitleKey: "bill_title",
		Steps: []wizard.Step{
			{
				TitleKey: "bill_step1_title",
				Fields: []forms.Field{
					{Name: "first_name", LabelKey: "bill_first_name", Kind: forms.KindString},
					{Name: "email", LabelKey: "bill_email", Kind: forms.KindEmail},
				},
			},
			{
				TitleKey: "bill_step2_title",
				Fields: []forms.Field{
					{Name: "bill_name", LabelKey: "bill_name", Kind: forms.KindString},
					{Name: "amount", LabelKey: "bill_amount", Kind: forms.KindMoney},
					{Name: "due_date", LabelKey: "bill_due_date", Kind: forms.KindDate},
					{Name: "frequency", LabelKey: "bill_frequency", Kind: forms.KindEnum, Options: billFreqOptions},
					{Name: "category", LabelKey: "bill_category", Kind: forms.KindEnum, Options: billCategories},
				},
			},
			{
				TitleKey: "bill_step3_title",
				Fields: []forms.Field{
					{Name: "status", LabelKey: "bill_status", Kind: forms.KindEnum, Options: billStatusOptions, Optional: true},
					{Name: "send_email", LabelKey: "bill_send_email", Kind: forms.KindBool},
					{Name: "reminder_days", LabelKey: "bill_reminder_days", Kind: forms.KindInt, Min: 1, Max: 30, MaxSet: true},
				},
				// A bill due today must already be paid or pending; unpaid
				// bills need a future due date.
				Extra: func(prior []forms.Values, v forms.Values, lang string) forms.Errors {
					due, err := time.Parse(dateLayout, prior[1]["due_date"])
					if err != nil {
						return nil
					}
					status := v["status"]
					if status == "" {
						status = BillUnpaid
					}
					if due.Equal(today(time.Now())) && status == BillUnpaid {
						return forms.Errors{"status": i18n.T("core_field_date_past", lang)}
					}
					return nil
				},
			},
		},
		Finalize: func(steps []forms.Values) (map[string]any, error) {
			return FinalizeBill(steps, time.Now()), nil
		},
		AfterSave: func(env store.Envelope, lang string) error {
			if env.Data["send_email"] != true || !sender.Enabled() {
				return nil
			}
			subject := i18n.T("bill_confirm_subject", lang)
			body := i18n.T("bill_confirm_body", lang, map[string]any{
				"name": env.Data["first_name"],
				"bill": env.Data["bill_name"],
				"due":  env.Data["due_date"],
			})
			if !sender.Send(env.UserEmail, subject, body, lang) {
				return fmt.Errorf("confirmation email to %s failed", env.UserEmail)
			}
			return nil
		},
	}
}

// BillEditFields is the field set for the view/edit form: the bill details
// and reminder settings, without the identity step.
func BillEditFields() []forms.Field {
	return []forms.Field{
		{Name: "bill_name", LabelKey: "bill_name", Kind: forms.KindString},
		{Name: "amount", LabelKey: "bill_amount", Kind: forms.KindMoney},
		{Name: "due_date", LabelKey: "bill_due_date", Kind: forms.KindDate},
		{Name: "frequency", LabelKey: "bill_frequency", Kind: forms.KindEnum, Options: billFreqOptions},
		{Name: "category", LabelKey: "bill_category", Kind: forms.KindEnum, Options: billCategories},
		{Name: "status", LabelKey: "bill_status", Kind: forms.KindEnum, Options: billStatusOptions, Optional: true},
		{Name: "send_email", LabelKey: "bill_send_email", Kind: forms.KindBool},
		{Name: "reminder_days", LabelKey: "bill_reminder_days", Kind: forms.KindInt, Min: 1, Max: 30, MaxSet: true},
	}
}

// EditBill applies a validated edit to an existing bill, preserving identity
// fields and re-running the overdue promotion.
func EditBill(st *store.Store, id string, v forms.Values, now time.Time) error {
	env, ok := st.GetByID(id)
	if !ok {
		return fmt.Errorf("bill %s not found", id)
	}
	data := env.Data
	status := v["status"]
	if status == "" {
		status = BillUnpaid
	}
	if status == BillUnpaid && beforeToday(v["due_date"], now) {
		status = BillOverdue
	}
	data["bill_name"] = v["bill_name"]
	data["amount"] = v.Float("amount")
	data["due_date"] = v["due_date"]
	data["frequency"] = v["frequency"]
	data["category"] = v["category"]
	data["status"] = status
	data["send_email"] = v.Bool("send_email")
	data["reminder_days"] = v.Int("reminder_days")
	if !st.UpdateByID(id, data) {
		return fmt.Errorf("updating bill %s", id)
	}
	return nil
}

// UnsubscribeEmail switches reminders off for every bill owned by email.
func UnsubscribeEmail(st *store.Store, email string) int {
	changed := 0
	for _, env := range st.FilterByEmail(email) {
		if env.Data["send_email"] == true {
			env.Data["send_email"] = false
			if st.UpdateByID(env.ID, env.Data) {
				changed++
			}
		}
	}
	return changed
}

// FinalizeBill builds the bill record. Status defaults to unpaid; a bill
// already past due that the user did not mark paid or pending is stored as
// overdue straight away.
func FinalizeBill(steps []forms.Values, now time.Time) map[string]any {
	status := steps[2]["status"]
	if status == "" {
		status = BillUnpaid
	}
	dueDate := steps[1]["due_date"]
	if status == BillUnpaid && beforeToday(dueDate, now) {
		status = BillOverdue
	}
	return map[string]any{
		"first_name":    steps[0]["first_name"],
		"bill_name":     steps[1]["bill_name"],
		"amount":        steps[1].Float("amount"),
		"due_date":      dueDate,
		"frequency":     steps[1]["frequency"],
		"category":      steps[1]["category"],
		"status":        status,
		"send_email":    steps[2].Bool("send_email"),
		"reminder_days": steps[2].Int("reminder_days"),
	}
}

// beforeToday reports whether an ISO date is strictly before today.
func beforeToday(isoDate string, now time.Time) bool {
	due, err := time.Parse(dateLayout, isoDate)
	if err != nil {
		return false
	}
	return due.Before(today(now))
}

// NextDueDate advances an ISO due date by one billing period.
func NextDueDate(isoDate, frequency string) (string, bool) {
	due, err := time.Parse(dateLayout, isoDate)
	if err != nil {
		return "", false
	}
	switch frequency {
	case FreqWeekly:
		due = due.AddDate(0, 0, 7)
	case FreqMonthly:
		due = due.AddDate(0, 0, 30)
	case FreqQuarterly:
		due = due.AddDate(0, 0, 90)
	default:
		return "", false
	}
	return due.Format(dateLayout), true
}

// ToggleBillStatus flips a bill between paid and unpaid. Marking a recurring
// bill paid appends exactly one fresh unpaid record with the next due date.
// Unpaying a bill past its due date lands it on overdue, not unpaid.
func ToggleBillStatus(st *store.Store, id string, now time.Time) error {
	env, ok := st.GetByID(id)
	if !ok {
		return fmt.Errorf("bill %s not found", id)
	}
	data := env.Data
	status, _ := data["status"].(string)
	dueDate, _ := data["due_date"].(string)
	frequency, _ := data["frequency"].(string)

	if status == BillPaid {
		next := BillUnpaid
		if beforeToday(dueDate, now) {
			next = BillOverdue
		}
		data["status"] = next
		if !st.UpdateByID(id, data) {
			return fmt.Errorf("updating bill %s", id)
		}
		return nil
	}

	data["status"] = BillPaid
	if !st.UpdateByID(id, data) {
		return fmt.Errorf("updating bill %s", id)
	}

	if nextDue, ok := NextDueDate(dueDate, frequency); ok {
		rollover := make(map[string]any, len(data))
		for k, v := range data {
			rollover[k] = v
		}
		rollover["status"] = BillUnpaid
		rollover["due_date"] = nextDue
		if _, err := st.Append(rollover, env.SessionID, env.UserEmail); err != nil {
			return fmt.Errorf("appending rollover for bill %s: %w", id, err)
		}
	}
	return nil
}

// InReminderWindow reports whether a bill should be included in a reminder
// run: opted in, and either due within its reminder window or already
// pending/overdue.
func InReminderWindow(data map[string]any, now time.Time) bool {
	if data["send_email"] != true {
		return false
	}
	status, _ := data["status"].(string)
	if status == BillPending || status == BillOverdue {
		return true
	}
	if status != BillUnpaid {
		return false
	}
	dueDate, _ := data["due_date"].(string)
	due, err := time.Parse(dateLayout, dueDate)
	if err != nil {
		return false
	}
	days := 1
	if n, ok := data["reminder_days"].(float64); ok {
		days = int(n)
	} else if n, ok := data["reminder_days"].(int); ok {
		days = n
	}
	t := today(now)
	return !due.Before(t) && !due.After(t.AddDate(0, 0, days))
}
