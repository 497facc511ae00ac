package i18n

// namespace groups the strings contributed by one feature area. The short
// prefix on each key (core_, bill_, ...) keeps collisions visible at a glance.
type namespace struct {
	prefix string
	en     map[string]string
	ha     map[string]string
}

var namespaces = []namespace{coreStrings, healthStrings, budgetStrings, networthStrings, efundStrings, billStrings, quizStrings, learnStrings}

var coreStrings = namespace{
	prefix: "core_",
	en: map[string]string{
		"core_app_name":              "KudiMara",
		"core_tagline":               "Simple money tools for everyday life",
		"core_missing_previous_step": "Please complete the earlier steps first.",
		"core_saved":                 "Your results have been saved.",
		"core_save_failed":           "We could not save your results. Please try again.",
		"core_invalid_language":      "Invalid language.",
		"core_language_set":          "Language updated.",
		"core_generic_error":         "Something went wrong. Please try again.",
		"core_not_found":             "Page not found.",
		"core_csrf_failed":           "Your form session expired. Please reload the page and try again.",
		"core_dashboard_empty":       "No results yet. Complete the steps to see your dashboard.",
		"core_dashboard_stale":       "We could not load your saved results right now.",
		"core_email_failed":          "Saved, but the confirmation email could not be sent.",
		"core_field_required":        "This field is required.",
		"core_field_email":           "Enter a valid email address.",
		"core_field_amount":          "Enter an amount between 0 and 10,000,000,000.",
		"core_field_integer":         "Enter a whole number.",
		"core_field_choice":          "Choose one of the listed options.",
		"core_field_date":            "Enter a date as YYYY-MM-DD.",
		"core_field_date_past":       "The due date must be in the future.",
		"core_step_of":               "Step {step} of {total}",
		"core_next":                  "Next",
		"core_submit":                "Submit",
		"core_back":                  "Back",
		"opt_low":          "Low",
		"opt_medium":       "Medium",
		"opt_high":         "High",
		"opt_unpaid":       "Unpaid",
		"opt_paid":         "Paid",
		"opt_pending":      "Pending",
		"opt_overdue":      "Overdue",
		"opt_one-time":     "One-time",
		"opt_weekly":       "Weekly",
		"opt_monthly":      "Monthly",
		"opt_quarterly":    "Quarterly",
		"opt_utilities":    "Utilities",
		"opt_rent":         "Rent",
		"opt_school":       "School fees",
		"opt_subscription": "Subscription",
		"opt_loan":         "Loan repayment",
		"opt_other":        "Other",
		"opt_always":       "Always",
		"opt_often":        "Often",
		"opt_sometimes":    "Sometimes",
		"opt_never":        "Never",
	},
	ha: map[string]string{
		"core_app_name":              "KudiMara",
		"core_tagline":               "Kayan aikin kudi masu sauki don rayuwar yau da kullum",
		"core_missing_previous_step": "Da fatan za a kammala matakan farko tukuna.",
		"core_saved":                 "An ajiye sakamakonka.",
		"core_save_failed":           "Ba mu iya ajiye sakamakonka ba. Da fatan a sake gwadawa.",
		"core_invalid_language":      "Harshen ba daidai ba ne.",
		"core_language_set":          "An sauya harshe.",
		"core_generic_error":         "Wani abu ya faru. Da fatan a sake gwadawa.",
		"core_not_found":             "Ba a sami shafin ba.",
		"core_csrf_failed":           "Lokacin fom dinka ya kare. Da fatan a sake bude shafin.",
		"core_dashboard_empty":       "Babu sakamako tukuna. Kammala matakan don ganin allon bayananka.",
		"core_dashboard_stale":       "Ba mu iya loda sakamakon da aka ajiye ba a yanzu.",
		"core_email_failed":          "An ajiye, amma ba a iya aika imel din tabbatarwa ba.",
		"core_field_required":        "Ana bukatar wannan filin.",
		"core_field_email":           "Shigar da adireshin imel mai inganci.",
		"core_field_amount":          "Shigar da adadi tsakanin 0 da 10,000,000,000.",
		"core_field_integer":         "Shigar da cikakken lamba.",
		"core_field_choice":          "Zabi daya daga cikin zabubbukan.",
		"core_field_date":            "Shigar da kwanan wata kamar YYYY-MM-DD.",
		"core_field_date_past":       "Ranar biya dole ta kasance nan gaba.",
		"core_step_of":               "Mataki {step} na {total}",
		"core_next":                  "Gaba",
		"core_submit":                "Aika",
		"core_back":                  "Baya",
		"opt_low":          "Karami",
		"opt_medium":       "Matsakaici",
		"opt_high":         "Babba",
		"opt_unpaid":       "Ba a biya ba",
		"opt_paid":         "An biya",
		"opt_pending":      "Ana jira",
		"opt_overdue":      "Ya wuce lokaci",
		"opt_one-time":     "Sau daya",
		"opt_weekly":       "Mako-mako",
		"opt_monthly":      "Wata-wata",
		"opt_quarterly":    "Kwata-kwata",
		"opt_utilities":    "Wutar lantarki da ruwa",
		"opt_rent":         "Hayar gida",
		"opt_school":       "Kudin makaranta",
		"opt_subscription": "Biyan kudin wata-wata",
		"opt_loan":         "Biyan bashi",
		"opt_other":        "Sauran",
		"opt_always":       "Kullum",
		"opt_often":        "Sau da yawa",
		"opt_sometimes":    "Wani lokaci",
		"opt_never":        "Ba taba",
	},
}

var healthStrings = namespace{
	prefix: "health_",
	en: map[string]string{
		"health_title":        "Financial Health Score",
		"health_step1_title":  "About you",
		"health_step2_title":  "Income and spending",
		"health_step3_title":  "Debt",
		"health_income_zero":  "Monthly income must be greater than zero.",
		"health_first_name":    "First name",
		"health_email":         "Email address",
		"health_income":        "Monthly income",
		"health_expenses":      "Monthly expenses",
		"health_debt":          "Total debt",
		"health_interest_rate": "Average interest rate (%)",
		"health_status_excellent":    "Excellent",
		"health_status_good":         "Good",
		"health_status_needs":       "Needs improvement",
		"health_result_score": "Your financial health score is {score} out of 100.",
	},
	ha: map[string]string{
		"health_title":        "Makin Lafiyar Kudi",
		"health_step1_title":  "Game da kai",
		"health_step2_title":  "Kudin shiga da kashewa",
		"health_step3_title":  "Bashi",
		"health_income_zero":  "Kudin shiga na wata dole ya zama sama da sifili.",
		"health_first_name":    "Sunan farko",
		"health_email":         "Adireshin imel",
		"health_income":        "Kudin shiga na wata",
		"health_expenses":      "Kashe-kashen wata",
		"health_debt":          "Jimlar bashi",
		"health_interest_rate": "Matsakaicin ruwan bashi (%)",
		"health_status_excellent":    "Madalla",
		"health_status_good":         "Mai kyau",
		"health_status_needs":       "Yana bukatar ingantawa",
		"health_result_score": "Makin lafiyar kudinka {score} ne daga cikin 100.",
	},
}

var budgetStrings = namespace{
	prefix: "budget_",
	en: map[string]string{
		"budget_title":       "Budget Planner",
		"budget_step1_title": "Your income",
		"budget_step2_title": "Your spending",
		"budget_step3_title": "Savings goal",
		"budget_rank":        "You rank {rank} of {total} savers.",
		"budget_email":        "Email address",
		"budget_income":       "Monthly income",
		"budget_housing":      "Housing",
		"budget_food":         "Food",
		"budget_transport":    "Transport",
		"budget_other":        "Other spending",
		"budget_savings_goal": "Monthly savings goal (optional)",
	},
	ha: map[string]string{
		"budget_title":       "Tsarin Kasafin Kudi",
		"budget_step1_title": "Kudin shigarka",
		"budget_step2_title": "Kashe-kashenka",
		"budget_step3_title": "Burin ajiya",
		"budget_rank":        "Matsayinka na {rank} cikin {total} masu ajiya.",
		"budget_email":        "Adireshin imel",
		"budget_income":       "Kudin shiga na wata",
		"budget_housing":      "Gidaje",
		"budget_food":         "Abinci",
		"budget_transport":    "Sufuri",
		"budget_other":        "Sauran kashewa",
		"budget_savings_goal": "Burin ajiyar wata (na zabi)",
	},
}

var networthStrings = namespace{
	prefix: "networth_",
	en: map[string]string{
		"networth_title":       "Net Worth Estimator",
		"networth_step1_title": "What you own",
		"networth_step2_title": "What you owe",
		"networth_result":      "Your estimated net worth is {amount}.",
		"networth_cash_savings": "Cash and savings",
		"networth_investments":  "Investments",
		"networth_property":     "Property value",
		"networth_loans":        "Loans and other debts",
	},
	ha: map[string]string{
		"networth_title":       "Kimar Dukiya",
		"networth_step1_title": "Abin da kake da shi",
		"networth_step2_title": "Abin da kake bin bashi",
		"networth_result":      "Kimar dukiyarka {amount} ne.",
		"networth_cash_savings": "Kudi da ajiya",
		"networth_investments":  "Jari",
		"networth_property":     "Kimar gida da fili",
		"networth_loans":        "Bashi da sauran lamuni",
	},
}

var efundStrings = namespace{
	prefix: "efund_",
	en: map[string]string{
		"efund_title":       "Emergency Fund Calculator",
		"efund_step1_title": "Monthly costs",
		"efund_step2_title": "Your situation",
		"efund_step3_title": "Timeline",
		"efund_result":      "Save {monthly} each month to reach {target} in {months} months.",
		"efund_monthly_expenses": "Monthly expenses",
		"efund_monthly_income":   "Monthly income (optional)",
		"efund_current_savings":  "Current savings",
		"efund_risk_tolerance":   "Risk tolerance",
		"efund_dependents":       "Number of dependents",
		"efund_timeline":         "Months to reach your target",
	},
	ha: map[string]string{
		"efund_title":       "Lissafin Asusun Gaggawa",
		"efund_step1_title": "Kudaden wata-wata",
		"efund_step2_title": "Halin da kake ciki",
		"efund_step3_title": "Tsawon lokaci",
		"efund_result":      "Ajiye {monthly} kowane wata don kaiwa {target} cikin watanni {months}.",
		"efund_monthly_expenses": "Kashe-kashen wata",
		"efund_monthly_income":   "Kudin shiga na wata (na zabi)",
		"efund_current_savings":  "Ajiyar yanzu",
		"efund_risk_tolerance":   "Juriya ga hadari",
		"efund_dependents":       "Yawan wadanda kake dauka",
		"efund_timeline":         "Watanni kafin kai wa burinka",
	},
}

var billStrings = namespace{
	prefix: "bill_",
	en: map[string]string{
		"bill_title":           "Bill Tracker",
		"bill_step1_title":     "Who you are",
		"bill_step2_title":     "Bill details",
		"bill_step3_title":     "Reminders",
		"bill_added":           "Bill added.",
		"bill_updated":         "Bill updated.",
		"bill_deleted":         "Bill deleted.",
		"bill_not_found":       "Bill not found.",
		"bill_reminder_subject": "KudiMara: {count} bill(s) need your attention",
		"bill_reminder_intro":  "Hello {name}, the following bills are due soon or overdue:",
		"bill_reminder_line":   "{bill}: {amount} due {due} ({status})",
		"bill_reminder_unsub":  "To stop these reminders, visit {url}",
		"bill_unsubscribed":    "You will no longer receive bill reminders at {email}.",
		"bill_first_name":      "First name",
		"bill_email":           "Email address",
		"bill_name":            "Bill name",
		"bill_amount":          "Amount",
		"bill_due_date":        "Due date",
		"bill_frequency":       "How often",
		"bill_category":        "Category",
		"bill_status":          "Current status",
		"bill_send_email":      "Email me reminders",
		"bill_reminder_days":   "Remind me this many days before (1-30)",
		"bill_action_toggle":   "Mark paid / unpaid",
		"bill_action_delete":   "Delete",
		"bill_action_edit":     "Edit",
		"bill_confirm_subject": "KudiMara: bill reminder set up",
		"bill_confirm_body":    "Hello {name}, we will remind you about {bill} before it is due on {due}.",
	},
	ha: map[string]string{
		"bill_title":           "Bibiyar Kudade",
		"bill_step1_title":     "Ko wanene kai",
		"bill_step2_title":     "Bayanin kudin biya",
		"bill_step3_title":     "Tunatarwa",
		"bill_added":           "An kara kudin biya.",
		"bill_updated":         "An sabunta kudin biya.",
		"bill_deleted":         "An goge kudin biya.",
		"bill_not_found":       "Ba a sami kudin biya ba.",
		"bill_reminder_subject": "KudiMara: kudade {count} na bukatar kulawa",
		"bill_reminder_intro":  "Sannu {name}, wadannan kudade sun kusa ko sun wuce lokacin biya:",
		"bill_reminder_line":   "{bill}: {amount} ranar biya {due} ({status})",
		"bill_reminder_unsub":  "Don dakatar da wadannan tunatarwa, ziyarci {url}",
		"bill_unsubscribed":    "Ba za ka kara samun tunatarwar kudade a {email} ba.",
		"bill_first_name":      "Sunan farko",
		"bill_email":           "Adireshin imel",
		"bill_name":            "Sunan kudin biya",
		"bill_amount":          "Adadi",
		"bill_due_date":        "Ranar biya",
		"bill_frequency":       "Sau nawa",
		"bill_category":        "Rukuni",
		"bill_status":          "Matsayin yanzu",
		"bill_send_email":      "Aiko min tunatarwa ta imel",
		"bill_reminder_days":   "Tunatar da ni kwanaki kafin (1-30)",
		"bill_action_toggle":   "Yi alama an biya / ba a biya ba",
		"bill_action_delete":   "Goge",
		"bill_action_edit":     "Gyara",
		"bill_confirm_subject": "KudiMara: an shirya tunatarwar kudin biya",
		"bill_confirm_body":    "Sannu {name}, za mu tunatar da kai game da {bill} kafin ranar biya {due}.",
	},
}

var quizStrings = namespace{
	prefix: "quiz_",
	en: map[string]string{
		"quiz_title":             "Money Personality Quiz",
		"quiz_step1_title":       "Before we start",
		"quiz_step2_title":       "Your habits",
		"quiz_personality_planner": "Planner",
		"quiz_personality_saver":   "Saver",
		"quiz_personality_balanced": "Balanced",
		"quiz_personality_spender": "Spender",
		"quiz_first_name":          "First name",
		"quiz_email":               "Email address (optional)",
		"quiz_q_track_spending":       "I track where my money goes",
		"quiz_q_save_first":           "I put savings aside before spending",
		"quiz_q_avoid_debt":           "I avoid borrowing for everyday needs",
		"quiz_q_budget_monthly":       "I set a budget at the start of the month",
		"quiz_q_resist_impulse":       "I resist unplanned purchases",
		"quiz_q_compare_prices":       "I compare prices before buying",
		"quiz_q_emergency_fund":       "I keep money aside for emergencies",
		"quiz_q_plan_purchases":       "I plan big purchases weeks ahead",
		"quiz_q_review_subscriptions": "I review my subscriptions and cancel unused ones",
		"quiz_q_invest_regularly":     "I invest part of my income regularly",
		"quiz_q_pay_bills_on_time":    "I pay my bills on or before the due date",
		"quiz_q_set_goals":            "I set money goals and check my progress",
		"quiz_q_cook_at_home":         "I cook at home instead of eating out",
		"quiz_q_save_windfall":        "I save unexpected money instead of spending it",
		"quiz_q_check_balance":        "I check my account balance through the week",
	},
	ha: map[string]string{
		"quiz_title":             "Gwajin Halin Kudi",
		"quiz_step1_title":       "Kafin mu fara",
		"quiz_step2_title":       "Dabi'unka",
		"quiz_personality_planner": "Mai tsari",
		"quiz_personality_saver":   "Mai ajiya",
		"quiz_personality_balanced": "Daidaitacce",
		"quiz_personality_spender": "Mai kashewa",
		"quiz_first_name":          "Sunan farko",
		"quiz_email":               "Adireshin imel (na zabi)",
		"quiz_q_track_spending":       "Ina bibiyar inda kudina ke tafiya",
		"quiz_q_save_first":           "Ina ajiye kudi kafin in fara kashewa",
		"quiz_q_avoid_debt":           "Ina guje wa cin bashi don bukatun yau da kullum",
		"quiz_q_budget_monthly":       "Ina shirya kasafi a farkon wata",
		"quiz_q_resist_impulse":       "Ina kin sayayyar da ba a shirya ba",
		"quiz_q_compare_prices":       "Ina kwatanta farashi kafin in saya",
		"quiz_q_emergency_fund":       "Ina ajiye kudi domin gaggawa",
		"quiz_q_plan_purchases":       "Ina shirya manyan sayayya makonni kafin lokaci",
		"quiz_q_review_subscriptions": "Ina duba biyan kudin wata-wata in soke wadanda ban amfani",
		"quiz_q_invest_regularly":     "Ina zuba jari daga kudin shigana akai-akai",
		"quiz_q_pay_bills_on_time":    "Ina biyan kudade kafin ko a ranar biya",
		"quiz_q_set_goals":            "Ina sa burin kudi ina duba ci gabana",
		"quiz_q_cook_at_home":         "Ina dafa abinci a gida maimakon cin waje",
		"quiz_q_save_windfall":        "Ina ajiye kudin da ba a zata ba maimakon kashewa",
		"quiz_q_check_balance":        "Ina duba ragowar asusuna cikin mako",
	},
}

var learnStrings = namespace{
	prefix: "learn_",
	en: map[string]string{
		"learn_title":     "Learning Hub",
		"learn_empty":     "No courses available yet.",
		"learn_not_found": "Course not found.",
	},
	ha: map[string]string{
		"learn_title":     "Cibiyar Koyo",
		"learn_empty":     "Babu darussa tukuna.",
		"learn_not_found": "Ba a sami darasin ba.",
	},
}
