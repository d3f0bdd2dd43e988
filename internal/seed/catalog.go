package seed

type sampleDictionary struct {
	Name        string
	Description string
	SourceLang  string
	TargetLang  string
	Price       string // empty: not for sale
	Words       [][2]string
}

var catalog = []sampleDictionary{
	{
		Name:        "Spanish Essentials",
		Description: "The first few hundred words every Spanish learner needs.",
		SourceLang:  "en",
		TargetLang:  "es",
		Price:       "4.99",
		Words: [][2]string{
			{"house", "casa"}, {"water", "agua"}, {"friend", "amigo"}, {"book", "libro"},
			{"city", "ciudad"}, {"bread", "pan"}, {"morning", "mañana"}, {"street", "calle"},
		},
	},
	{
		Name:       "French Kitchen",
		SourceLang: "en",
		TargetLang: "fr",
		Words: [][2]string{
			{"knife", "couteau"}, {"spoon", "cuillère"}, {"butter", "beurre"}, {"salt", "sel"},
			{"oven", "four"}, {"cheese", "fromage"}, {"apple", "pomme"}, {"plate", "assiette"},
		},
	},
	{
		Name:        "German for Travellers",
		Description: "Stations, tickets and hotel check-ins.",
		SourceLang:  "en",
		TargetLang:  "de",
		Price:       "2.50",
		Words: [][2]string{
			{"train", "Zug"}, {"ticket", "Fahrkarte"}, {"platform", "Bahnsteig"}, {"room", "Zimmer"},
			{"key", "Schlüssel"}, {"luggage", "Gepäck"}, {"exit", "Ausgang"}, {"left", "links"},
		},
	},
	{
		Name:        "Italian Verbs",
		Description: "Common verbs in the infinitive.",
		SourceLang:  "en",
		TargetLang:  "it",
		Price:       "0.00",
		Words: [][2]string{
			{"to eat", "mangiare"}, {"to sleep", "dormire"}, {"to speak", "parlare"}, {"to read", "leggere"},
			{"to write", "scrivere"}, {"to open", "aprire"}, {"to run", "correre"}, {"to sing", "cantare"},
		},
	},
	{
		Name:       "Portuguese Numbers",
		SourceLang: "en",
		TargetLang: "pt",
		Words: [][2]string{
			{"one", "um"}, {"two", "dois"}, {"three", "três"}, {"four", "quatro"},
			{"five", "cinco"}, {"six", "seis"}, {"seven", "sete"}, {"eight", "oito"},
		},
	},
}
