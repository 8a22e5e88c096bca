package main

import "strings"

const importFallbackFlag = "🌍"

// commodityIcon maps a commodity code from vw_colas.ct_commodity to its
// display icon.
func commodityIcon(commodity string) string {
	switch strings.ToLower(commodity) {
	case "beer":
		return "🍺"
	case "wine":
		return "🍷"
	case "distilled_spirits":
		return "🍸"
	case "", "unknown":
		return "❓"
	default:
		return "🍶"
	}
}

type flagEntry struct {
	name string
	flag string
}

var flagTable = []flagEntry{
	{"united states", "🇺🇸"},
	{"usa", "🇺🇸"},
	{"us", "🇺🇸"},
	{"american", "🇺🇸"},
	{"france", "🇫🇷"},
	{"french", "🇫🇷"},
	{"italy", "🇮🇹"},
	{"italian", "🇮🇹"},
	{"spain", "🇪🇸"},
	{"spanish", "🇪🇸"},
	{"germany", "🇩🇪"},
	{"german", "🇩🇪"},
	{"portugal", "🇵🇹"},
	{"portuguese", "🇵🇹"},
	{"chile", "🇨🇱"},
	{"chilean", "🇨🇱"},
	{"argentina", "🇦🇷"},
	{"argentine", "🇦🇷"},
	{"australia", "🇦🇺"},
	{"australian", "🇦🇺"},
	{"new zealand", "🇳🇿"},
	{"canada", "🇨🇦"},
	{"canadian", "🇨🇦"},
	{"mexico", "🇲🇽"},
	{"mexican", "🇲🇽"},
	{"japan", "🇯🇵"},
	{"japanese", "🇯🇵"},
	{"south africa", "🇿🇦"},
	{"austria", "🇦🇹"},
	{"austrian", "🇦🇹"},
	{"hungary", "🇭🇺"},
	{"hungarian", "🇭🇺"},
	{"greece", "🇬🇷"},
	{"greek", "🇬🇷"},
	{"turkey", "🇹🇷"},
	{"turkish", "🇹🇷"},
	{"israel", "🇮🇱"},
	{"lebanon", "🇱🇧"},
	{"india", "🇮🇳"},
	{"china", "🇨🇳"},
	{"chinese", "🇨🇳"},
	{"korea", "🇰🇷"},
	{"korean", "🇰🇷"},
	{"south korea", "🇰🇷"},
	{"brazil", "🇧🇷"},
	{"brazilian", "🇧🇷"},
	{"peru", "🇵🇪"},
	{"peruvian", "🇵🇪"},
	{"uruguay", "🇺🇾"},
	{"colombia", "🇨🇴"},
	{"colombian", "🇨🇴"},
	{"ecuador", "🇪🇨"},
	{"bolivia", "🇧🇴"},
	{"venezuela", "🇻🇪"},
	{"armenia", "🇦🇲"},
	{"armenian", "🇦🇲"},
	{"georgia", "🇬🇪"},
	{"georgian", "🇬🇪"},
	{"moldova", "🇲🇩"},
	{"ukraine", "🇺🇦"},
	{"ukrainian", "🇺🇦"},
	{"russia", "🇷🇺"},
	{"russian", "🇷🇺"},
	{"poland", "🇵🇱"},
	{"polish", "🇵🇱"},
	{"czech republic", "🇨🇿"},
	{"czech", "🇨🇿"},
	{"slovakia", "🇸🇰"},
	{"slovak", "🇸🇰"},
	{"slovenia", "🇸🇮"},
	{"croatia", "🇭🇷"},
	{"croatian", "🇭🇷"},
	{"serbia", "🇷🇸"},
	{"serbian", "🇷🇸"},
	{"bulgaria", "🇧🇬"},
	{"bulgarian", "🇧🇬"},
	{"romania", "🇷🇴"},
	{"romanian", "🇷🇴"},
	{"ireland", "🇮🇪"},
	{"irish", "🇮🇪"},
	{"scotland", "🏴󠁧󠁢󠁳󠁣󠁴󠁿"},
	{"scottish", "🏴󠁧󠁢󠁳󠁣󠁴󠁿"},
	{"england", "🏴󠁧󠁢󠁥󠁮󠁧󠁿"},
	{"english", "🏴󠁧󠁢󠁥󠁮󠁧󠁿"},
	{"wales", "🏴󠁧󠁢󠁷󠁬󠁳󠁿"},
	{"welsh", "🏴󠁧󠁢󠁷󠁬󠁳󠁿"},
	{"united kingdom", "🇬🇧"},
	{"uk", "🇬🇧"},
	{"britain", "🇬🇧"},
	{"british", "🇬🇧"},
	{"netherlands", "🇳🇱"},
	{"dutch", "🇳🇱"},
	{"belgium", "🇧🇪"},
	{"belgian", "🇧🇪"},
	{"switzerland", "🇨🇭"},
	{"swiss", "🇨🇭"},
	{"denmark", "🇩🇰"},
	{"danish", "🇩🇰"},
	{"sweden", "🇸🇪"},
	{"swedish", "🇸🇪"},
	{"norway", "🇳🇴"},
	{"norwegian", "🇳🇴"},
	{"finland", "🇫🇮"},
	{"finnish", "🇫🇮"},
	{"iceland", "🇮🇸"},
	{"icelandic", "🇮🇸"},
	{"luxembourg", "🇱🇺"},
	{"malta", "🇲🇹"},
	{"cyprus", "🇨🇾"},
	{"estonia", "🇪🇪"},
	{"latvia", "🇱🇻"},
	{"lithuania", "🇱🇹"},
	{"morocco", "🇲🇦"},
	{"moroccan", "🇲🇦"},
	{"tunisia", "🇹🇳"},
	{"algeria", "🇩🇿"},
	{"egypt", "🇪🇬"},
	{"egyptian", "🇪🇬"},
	{"ethiopia", "🇪🇹"},
	{"kenya", "🇰🇪"},
	{"madagascar", "🇲🇬"},
	{"thailand", "🇹🇭"},
	{"thai", "🇹🇭"},
	{"vietnam", "🇻🇳"},
	{"vietnamese", "🇻🇳"},
	{"cambodia", "🇰🇭"},
	{"laos", "🇱🇦"},
	{"myanmar", "🇲🇲"},
	{"philippines", "🇵🇭"},
	{"filipino", "🇵🇭"},
	{"indonesia", "🇮🇩"},
	{"indonesian", "🇮🇩"},
	{"malaysia", "🇲🇾"},
	{"singapore", "🇸🇬"},
	{"sri lanka", "🇱🇰"},
	{"bangladesh", "🇧🇩"},
	{"pakistan", "🇵🇰"},
	{"nepal", "🇳🇵"},
	{"bhutan", "🇧🇹"},
	{"mongolia", "🇲🇳"},
	{"taiwan", "🇹🇼"},
	{"hong kong", "🇭🇰"},
	{"macau", "🇲🇴"},
}

// flagIcon resolves a flag glyph for a record's origin text. The source
// classification from the view wins for domestic records; otherwise the
// origin is matched exactly, then by the most specific (longest) country
// name it contains, with a globe fallback for unmatched imports.
func flagIcon(origin, source string) string {
	sourceLower := strings.ToLower(strings.TrimSpace(source))
	if sourceLower == "domestic" {
		return "🇺🇸"
	}

	originLower := strings.ToLower(strings.TrimSpace(origin))
	if originLower == "" {
		if sourceLower == "import" {
			return importFallbackFlag
		}
		return ""
	}

	if strings.Contains(originLower, "domestic") {
		return "🇺🇸"
	}

	for _, entry := range flagTable {
		if entry.name == originLower {
			return entry.flag
		}
	}

	best := flagEntry{}
	for _, entry := range flagTable {
		if strings.Contains(originLower, entry.name) && len(entry.name) > len(best.name) {
			best = entry
		}
	}
	if best.flag != "" {
		return best.flag
	}

	if sourceLower == "import" {
		return importFallbackFlag
	}
	switch originLower {
	case "unknown", "n/a", "none":
		return ""
	}
	return importFallbackFlag
}
