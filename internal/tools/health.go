package tools

import (
	"math"
	"time"

	"github.com/kudimara/kudimara/internal/forms"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/wizard"
)

// Financial health statuses.
const (
	StatusExcellent = "excellent"
	StatusGood      = "good"
	StatusNeedsWork = "needs-improvement"
)

func FinancialHealthTool() wizard.Tool {
	return wizard.Tool{
		Name:     store.ToolFinancialHealth,
		TitleKey: "health_title",
		Steps: []wizard.Step{
			{
				TitleKey: "health_step1_title",
				Fields: []forms.Field{
					{Name: "first_name", LabelKey: "health_first_name", Kind: forms.KindString},
					{Name: "email", LabelKey: "health_email", Kind: forms.KindEmail},
				},
			},
			{
				TitleKey: "health_step2_title",
				Fields: []forms.Field{
					{Name: "income", LabelKey: "health_income", Kind: forms.KindMoney},
					{Name: "expenses", LabelKey: "health_expenses", Kind: forms.KindMoney},
				},
			},
			{
				TitleKey: "health_step3_title",
				Fields: []forms.Field{
					{Name: "debt", LabelKey: "health_debt", Kind: forms.KindMoney},
					{Name: "interest_rate", LabelKey: "health_interest_rate", Kind: forms.KindMoney},
				},
			},
		},
		Finalize: func(steps []forms.Values) (map[string]any, error) {
			return FinalizeFinancialHealth(steps, time.Now())
		},
	}
}

// FinalizeFinancialHealth computes the 0-100 score from income, expenses,
// debt and interest rate.
//
// Ratios are percentages of income: debt_to_income = debt/income*100,
// savings_rate = (income-expenses)/income*100, interest_burden =
// rate*debt/income (the yearly interest cost as a share of income).
func FinalizeFinancialHealth(steps []forms.Values, now time.Time) (map[string]any, error) {
	income := steps[1].Float("income")
	expenses := steps[1].Float("expenses")
	debt := steps[2].Float("debt")
	rate := steps[2].Float("interest_rate")

	if income <= 0 {
		return nil, &wizard.Failure{Key: "health_income_zero"}
	}

	debtToIncome := debt / income * 100
	savingsRate := (income - expenses) / income * 100
	interestBurden := 0.0
	if debt > 0 {
		interestBurden = rate * debt / income
	}

	score := 100.0
	score -= math.Min(debtToIncome, 50)
	if savingsRate < 0 {
		score -= math.Min(-savingsRate, 30)
	} else {
		score += math.Min(savingsRate/2, 20)
	}
	score -= math.Min(interestBurden, 20)
	score = math.Min(math.Max(score, 0), 100)
	final := int(math.Round(score))

	status := StatusNeedsWork
	switch {
	case final >= 80:
		status = StatusExcellent
	case final >= 60:
		status = StatusGood
	}

	badges := badgeList{}.
		award(final >= 80, "Financial Star").
		award(debtToIncome <= 20, "Debt Manager").
		award(savingsRate >= 20, "Savings Pro").
		award(interestBurden == 0 && debt > 0, "Interest-Free")

	return map[string]any{
		"first_name":      steps[0]["first_name"],
		"email":           steps[0]["email"],
		"income":          income,
		"expenses":        expenses,
		"debt":            debt,
		"interest_rate":   rate,
		"debt_to_income":  round2(debtToIncome),
		"savings_rate":    round2(savingsRate),
		"interest_burden": round2(interestBurden),
		"score":           final,
		"status":          status,
		"badges":          []string(badges),
		"created_at":      now.UTC().Format(time.RFC3339),
	}, nil
}

// round2 keeps stored ratios readable without float dust.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
