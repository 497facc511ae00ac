package tools

import (
	"github.com/kudimara/kudimara/internal/export"
	"github.com/kudimara/kudimara/internal/forms"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/wizard"
)

func BudgetTool(reg *store.Registry, mirror *export.SheetsMirror) wizard.Tool {
	return wizard.Tool{
		Name:     store.ToolBudget,
		TitleKey: "budget_title",
		Steps: []wizard.Step{
			{
				TitleKey: "budget_step1_title",
				Fields: []forms.Field{
					{Name: "email", LabelKey: "budget_email", Kind: forms.KindEmail},
					{Name: "income", LabelKey: "budget_income", Kind: forms.KindMoney},
				},
			},
			{
				TitleKey: "budget_step2_title",
				Fields: []forms.Field{
					{Name: "housing", LabelKey: "budget_housing", Kind: forms.KindMoney},
					{Name: "food", LabelKey: "budget_food", Kind: forms.KindMoney},
					{Name: "transport", LabelKey: "budget_transport", Kind: forms.KindMoney},
					{Name: "other", LabelKey: "budget_other", Kind: forms.KindMoney},
				},
			},
			{
				TitleKey: "budget_step3_title",
				Fields: []forms.Field{
					{Name: "savings_goal", LabelKey: "budget_savings_goal", Kind: forms.KindMoney, Optional: true},
				},
			},
		},
		Finalize: func(steps []forms.Values) (map[string]any, error) {
			return FinalizeBudget(steps, reg.For(store.ToolBudget).ReadAll())
		},
		AfterSave: func(env store.Envelope, lang string) error {
			// Best-effort spreadsheet mirror; a nil mirror is disabled.
			mirror.Push(env)
			return nil
		},
	}
}

// FinalizeBudget computes the budget summary and the user's savings rank
// among all finalized budget records.
//
// Rank is the position when records are sorted by surplus_deficit descending;
// total_users counts distinct emails including this submission.
func FinalizeBudget(steps []forms.Values, existing []store.Envelope) (map[string]any, error) {
	income := steps[0].Float("income")
	housing := steps[1].Float("housing")
	food := steps[1].Float("food")
	transport := steps[1].Float("transport")
	other := steps[1].Float("other")
	totalExpenses := housing + food + transport + other

	savings := income * 0.1
	if savings < 0 {
		savings = 0
	}
	if _, ok := steps[2]["savings_goal"]; ok {
		savings = steps[2].Float("savings_goal")
	}
	surplus := income - totalExpenses - savings

	rank := 1
	emails := map[string]struct{}{}
	for _, env := range existing {
		if prior, ok := env.Data["surplus_deficit"].(float64); ok && prior > surplus {
			rank++
		}
		if env.UserEmail != "" {
			emails[env.UserEmail] = struct{}{}
		}
	}
	emails[steps[0]["email"]] = struct{}{}

	badges := badgeList{}.
		award(surplus > 0, "Surplus Builder").
		award(income > 0 && savings >= income*0.2, "Super Saver").
		award(income > 0 && totalExpenses <= income*0.5, "Lean Spender")

	return map[string]any{
		"income":          income,
		"housing":         housing,
		"food":            food,
		"transport":       transport,
		"other":           other,
		"total_expenses":  totalExpenses,
		"savings":         savings,
		"surplus_deficit": surplus,
		"badges":          []string(badges),
		"rank":            rank,
		"total_users":     len(emails),
	}, nil
}
