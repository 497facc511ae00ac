package tools

import (
	"github.com/kudimara/kudimara/internal/forms"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/wizard"
)

// Risk tolerance options.
var riskOptions = []string{"low", "medium", "high"}

// timelineOptions are months to reach the target.
var timelineOptions = []string{"6", "12", "18"}

func EmergencyFundTool() wizard.Tool {
	return wizard.Tool{
		Name:     store.ToolEmergencyFund,
		TitleKey: "efund_title",
		Steps: []wizard.Step{
			{
				TitleKey: "efund_step1_title",
				Fields: []forms.Field{
					{Name: "monthly_expenses", LabelKey: "efund_monthly_expenses", Kind: forms.KindMoney},
					{Name: "monthly_income", LabelKey: "efund_monthly_income", Kind: forms.KindMoney, Optional: true},
				},
			},
			{
				TitleKey: "efund_step2_title",
				Fields: []forms.Field{
					{Name: "current_savings", LabelKey: "efund_current_savings", Kind: forms.KindMoney},
					{Name: "risk_tolerance", LabelKey: "efund_risk_tolerance", Kind: forms.KindEnum, Options: riskOptions},
					{Name: "dependents", LabelKey: "efund_dependents", Kind: forms.KindInt, Min: 0, Max: 30, MaxSet: true},
				},
			},
			{
				TitleKey: "efund_step3_title",
				Fields: []forms.Field{
					{Name: "timeline", LabelKey: "efund_timeline", Kind: forms.KindEnum, Options: timelineOptions},
				},
			},
		},
		Finalize: func(steps []forms.Values) (map[string]any, error) {
			return FinalizeEmergencyFund(steps)
		},
	}
}

// FinalizeEmergencyFund sizes the fund target and the monthly savings needed
// to reach it within the chosen timeline.
//
// Recommended months start at the timeline, stretched to at least 12 for
// high risk tolerance, capped at 6 for low, plus 2 with two or more
// dependents.
func FinalizeEmergencyFund(steps []forms.Values) (map[string]any, error) {
	monthlyExpenses := steps[0].Float("monthly_expenses")
	currentSavings := steps[1].Float("current_savings")
	risk := steps[1]["risk_tolerance"]
	dependents := steps[1].Int("dependents")
	timeline := steps[2].Int("timeline")

	recommended := timeline
	switch risk {
	case "high":
		if recommended < 12 {
			recommended = 12
		}
	case "low":
		if recommended > 6 {
			recommended = 6
		}
	}
	if dependents >= 2 {
		recommended += 2
	}

	target := monthlyExpenses * float64(recommended)
	gap := target - currentSavings
	if gap < 0 {
		gap = 0
	}
	monthlySavings := 0.0
	if gap > 0 {
		monthlySavings = gap / float64(timeline)
	}

	badges := badgeList{}.
		award(timeline == 6 || timeline == 12, "Planner").
		award(dependents >= 2, "Protector").
		award(gap <= 0, "Steady Saver").
		award(currentSavings >= target, "Fund Master")

	data := map[string]any{
		"monthly_expenses":   monthlyExpenses,
		"current_savings":    currentSavings,
		"risk_tolerance":     risk,
		"dependents":         dependents,
		"timeline":           timeline,
		"recommended_months": recommended,
		"target_amount":      target,
		"savings_gap":        gap,
		"monthly_savings":    monthlySavings,
		"badges":             []string(badges),
	}

	if income, ok := steps[0]["monthly_income"]; ok && income != "" {
		monthlyIncome := steps[0].Float("monthly_income")
		data["monthly_income"] = monthlyIncome
		if monthlyIncome > 0 {
			data["percent_of_income"] = round2(monthlySavings / monthlyIncome * 100)
		}
	}
	return data, nil
}
