package bible

// bookAbbreviations maps lower-cased Slovak book names (and common short
// forms) to the bible4u.net standard abbreviations.
var bookAbbreviations = map[string]string{
	// Starý zákon
	"genezis":        "Gen",
	"exodus":         "Exod",
	"levitikus":      "Lev",
	"numeri":         "Num",
	"deuteronómium":  "Deut",
	"jozue":          "Josh",
	"sudcov":         "Judg",
	"rút":            "Ruth",
	"1. samuelova":   "1Sam",
	"2. samuelova":   "2Sam",
	"1. kráľov":      "1Kgs",
	"2. kráľov":      "2Kgs",
	"1. kroník":      "1Chr",
	"2. kroník":      "2Chr",
	"ezdráš":         "Ezra",
	"nehemiáš":       "Neh",
	"ester":          "Esth",
	"jób":            "Job",
	"žalmy":          "Ps",
	"žalm":           "Ps",
	"príslovia":      "Prov",
	"kazateľ":        "Eccl",
	"pieseň piesní":  "Song",
	"izaiáš":         "Isa",
	"jeremiáš":       "Jer",
	"plač":           "Lam",
	"ezechiel":       "Ezek",
	"daniel":         "Dan",
	"ozeáš":          "Hos",
	"joel":           "Joel",
	"ámos":           "Amos",
	"abdiáš":         "Obad",
	"jonáš":          "Jonah",
	"micheáš":        "Mic",
	"nahum":          "Nah",
	"habakuk":        "Hab",
	"sofoniáš":       "Zeph",
	"aggeus":         "Hag",
	"zachariáš":      "Zech",
	"malachiáš":      "Mal",
	// Nový zákon
	"matúš":              "Matt",
	"marek":              "Mark",
	"lukáš":              "Luke",
	"ján":                "John",
	"skutky":             "Acts",
	"rimanom":            "Rom",
	"1. korinťanom":      "1Cor",
	"2. korinťanom":      "2Cor",
	"galatským":          "Gal",
	"galačanom":          "Gal",
	"efezanom":           "Eph",
	"efezským":           "Eph",
	"filipanom":          "Phil",
	"filipským":          "Phil",
	"kolosanom":          "Col",
	"kolosenským":        "Col",
	"1. tesaloničanom":   "1Thess",
	"2. tesaloničanom":   "2Thess",
	"1. timotejovi":      "1Tim",
	"2. timotejovi":      "2Tim",
	"títovi":             "Titus",
	"títusovi":           "Titus",
	"filemonovi":         "Phlm",
	"hebrejom":           "Heb",
	"jakub":              "Jas",
	"jakubov":            "Jas",
	"1. petrov":          "1Pet",
	"2. petrov":          "2Pet",
	"1. jánov":           "1John",
	"2. jánov":           "2John",
	"3. jánov":           "3John",
	"júdov":              "Jude",
	"zjavenie":           "Rev",
	// Skratky
	"gen":    "Gen",
	"ex":     "Exod",
	"lev":    "Lev",
	"num":    "Num",
	"dt":     "Deut",
	"joz":    "Josh",
	"ž":      "Ps",
	"z":      "Ps",
	"iz":     "Isa",
	"jer":    "Jer",
	"dan":    "Dan",
	"mt":     "Matt",
	"mk":     "Mark",
	"lk":     "Luke",
	"jn":     "John",
	"sk":     "Acts",
	"rim":    "Rom",
	"1kor":   "1Cor",
	"2kor":   "2Cor",
	"gal":    "Gal",
	"ef":     "Eph",
	"flp":    "Phil",
	"kol":    "Col",
	"1tes":   "1Thess",
	"2tes":   "2Thess",
	"1tim":   "1Tim",
	"2tim":   "2Tim",
	"tit":    "Titus",
	"flm":    "Phlm",
	"žid":    "Heb",
	"jk":     "Jas",
	"1pt":    "1Pet",
	"2pt":    "2Pet",
	"1jn":    "1John",
	"2jn":    "2John",
	"3jn":    "3John",
	"jud":    "Jude",
	"zjv":    "Rev",
	"zj":     "Rev",
}
