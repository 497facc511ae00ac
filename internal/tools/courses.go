package tools

import "github.com/kudimara/kudimara/internal/store"

// SeedCourses fills the learning-hub catalog on first boot. An existing
// catalog, even a customized one, is left alone.
func SeedCourses(courses *store.ListStore[store.Course]) error {
	if len(courses.ReadAll()) > 0 {
		return nil
	}
	return courses.Replace(defaultCourses)
}

var defaultCourses = []store.Course{
	{
		ID:      "budgeting-basics",
		TitleEN: "Budgeting Basics",
		TitleHA: "Tushen Kasafin Kudi",
		Lessons: []store.Lesson{
			{
				TitleEN: "Why budget at all?",
				TitleHA: "Me yasa za a yi kasafi?",
				BodyEN:  "A budget is a plan for your money before the month starts. Without one, spending decides itself.",
				BodyHA:  "Kasafi shiri ne na kudinka kafin wata ya fara. In babu shi, kashewa na yanke shawara da kanta.",
			},
			{
				TitleEN: "The 50/30/20 starting point",
				TitleHA: "Farawa da tsarin 50/30/20",
				BodyEN:  "Half for needs, a third for wants, the rest for savings. Adjust the split to your income, not the other way round.",
				BodyHA:  "Rabi don bukatu, kashi daya bisa uku don so, sauran don ajiya. Daidaita rabon da kudin shigarka.",
			},
		},
	},
	{
		ID:      "emergency-funds",
		TitleEN: "Building an Emergency Fund",
		TitleHA: "Gina Asusun Gaggawa",
		Lessons: []store.Lesson{
			{
				TitleEN: "Start with one month",
				TitleHA: "Fara da wata daya",
				BodyEN:  "One month of expenses in a separate account already absorbs most surprises. Grow it from there.",
				BodyHA:  "Kudin wata daya a asusu daban yana daukar yawancin abubuwan mamaki. Ka kara girma daga nan.",
			},
		},
	},
	{
		ID:      "debt-smart",
		TitleEN: "Handling Debt Wisely",
		TitleHA: "Tafiyar da Bashi cikin Hikima",
		Lessons: []store.Lesson{
			{
				TitleEN: "Know your interest",
				TitleHA: "San ruwan bashinka",
				BodyEN:  "List every debt with its interest rate. Pay minimums everywhere, then attack the most expensive one first.",
				BodyHA:  "Rubuta kowane bashi da ruwansa. Biya mafi karanci ko'ina, sannan ka fara kai hari kan mafi tsada.",
			},
		},
	},
}
