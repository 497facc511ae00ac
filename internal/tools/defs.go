// Package tools declares the six wizard tools: their step field specs and
// the finalizers that turn accumulated step input into one stored record.
package tools

import (
	"time"

	"github.com/kudimara/kudimara/internal/export"
	"github.com/kudimara/kudimara/internal/mail"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/wizard"
)

// Definitions builds every tool, wiring the record registry, the mail sender,
// and the spreadsheet mirror into the finalizers that need them.
func Definitions(reg *store.Registry, sender mail.Sender, mirror *export.SheetsMirror) []wizard.Tool {
	return []wizard.Tool{
		FinancialHealthTool(),
		BudgetTool(reg, mirror),
		NetWorthTool(),
		EmergencyFundTool(),
		BillTool(sender),
		QuizTool(),
	}
}

// today truncates to a calendar date in UTC.
func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// badgeList keeps a stable award order for rendering.
type badgeList []string

func (b badgeList) award(cond bool, name string) badgeList {
	if cond {
		return append(b, name)
	}
	return b
}
