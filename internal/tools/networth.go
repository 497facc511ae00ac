package tools

import (
	"github.com/kudimara/kudimara/internal/forms"
	"github.com/kudimara/kudimara/internal/store"
	"github.com/kudimara/kudimara/internal/wizard"
)

func NetWorthTool() wizard.Tool {
	return wizard.Tool{
		Name:     store.ToolNetWorth,
		TitleKey: "networth_title",
		Steps: []wizard.Step{
			{
				TitleKey: "networth_step1_title",
				Fields: []forms.Field{
					{Name: "cash_savings", LabelKey: "networth_cash_savings", Kind: forms.KindMoney},
					{Name: "investments", LabelKey: "networth_investments", Kind: forms.KindMoney},
					{Name: "property", LabelKey: "networth_property", Kind: forms.KindMoney},
				},
			},
			{
				TitleKey: "networth_step2_title",
				Fields: []forms.Field{
					{Name: "loans", LabelKey: "networth_loans", Kind: forms.KindMoney},
				},
			},
		},
		Finalize: func(steps []forms.Values) (map[string]any, error) {
			return FinalizeNetWorth(steps)
		},
	}
}

// FinalizeNetWorth sums assets and liabilities. Ratio badges are skipped for
// zero assets rather than dividing by zero.
func FinalizeNetWorth(steps []forms.Values) (map[string]any, error) {
	cash := steps[0].Float("cash_savings")
	investments := steps[0].Float("investments")
	property := steps[0].Float("property")
	loans := steps[1].Float("loans")

	totalAssets := cash + investments + property
	totalLiabilities := loans
	netWorth := totalAssets - totalLiabilities

	badges := badgeList{}.
		award(netWorth > 0, "Wealth Builder").
		award(totalLiabilities == 0, "Debt Free").
		award(totalAssets > 0 && cash >= totalAssets*0.3, "Savings Champion").
		award(totalAssets > 0 && property >= totalAssets*0.5, "Property Mogul")

	return map[string]any{
		"cash_savings":      cash,
		"investments":       investments,
		"property":          property,
		"loans":             loans,
		"total_assets":      totalAssets,
		"total_liabilities": totalLiabilities,
		"net_worth":         netWorth,
		"badges":            []string(badges),
	}, nil
}
