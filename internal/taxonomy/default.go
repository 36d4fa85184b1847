package taxonomy

// Default is the taxonomy seeded as the "Default Categories" list when no
// category list exists yet.
func Default() Taxonomy {
	return MustNew(
		NewMain("Income",
			NewSub("Kinect", "dataannotation", "kinect"),
			NewSub("Other", "e-transfer", "deposit", "income"),
		),
		NewMain("Expenses",
			NewSub("Living Expenses", "rent", "hydro", "utility", "insurance", "bill", "property tax"),
			NewSub("Groceries", "walmart", "superstore", "loblaws", "costco", "iga", "super c",
				"the village store", "freshmarket", "athens fresh market"),
			NewSub("Pets", "vet", "petco", "petland"),
			NewSub("Subscriptions", "spotify", "netflix", "crave", "subscription", "prime",
				"virgin plus", "disney", "github"),
			NewSub("Phone Bill", "rogers", "bell", "fido", "koodo", "phone"),
			NewSub("Alcohol", "liquor", "beer store", "lcbo", "fpos Saq"),
			NewSub("Non-Grocery Food", "restaurant", "ubereats", "skipthe", "fast food", "mcdonalds",
				"tim hortons", "coffee", "couchetard", "convenien", "A & W", "Picton On vic social",
				"Picton On metro", "Kettleman'S"),
			NewSub("Misc Spending", "service charge", "fee", "bank charge", "big al's aquarium",
				"value village", "amzn", "affirm canada", "physio outaouais", "amazon.ca", "sail",
				"kindle", " L'As Des Jeux ", "sessions cannabis", "interest charges",
				"justice quebec amendes", "dollarama", "cdkeys"),
			NewSub("Automotive", "petro-canada", "esso", "shell", "gas", "car", "tire", "maintenance",
				"pioneer", "macewen"),
			NewSub("Gifts"),
			NewSub("Dates", "cinema", "famous players", "dinner", "flower", "midtown brewing",
				"currah's cafe", "karlo estates", "prince eddy"),
			NewSub("Loans", "loan", "student", "repayment", "nslsc"),
			NewSub("Trips", "airbnb", "flight", "air canada", "hotel", "expedia", "mecp-ontpark-int-resorill"),
			NewSub("Sailboat Work", "marine", "boat", "chandlery"),
		),
	)
}
