package flightid

// Tables holds the lookup data used by the Normalizer.
// A Tables value is treated as read-only once handed to NewNormalizer.
type Tables struct {
	AirlineAliases map[string]string `yaml:"airline_aliases"`
	CabinCodes     map[string]string `yaml:"cabin_codes"`
}

// DefaultTables returns the built-in alias and cabin tables
func DefaultTables() Tables {
	return Tables{
		AirlineAliases: map[string]string{
			"TKN": "FK", // Taftan
			"K0":  "FK", // Taftan, safar366 spelling
			"ATS": "AT", // Ata / Atrak
			"NSM": "NA", // Naft
			"ISP": "JS", // Iran Asmanan / Eram
			"IS":  "JS",
			"J3":  "JS",
		},
		CabinCodes: map[string]string{
			"ECONOMY":         CabinEconomy,
			"BUSINESS":        CabinBusiness,
			"FIRST":           CabinFirst,
			"PREMIUM_ECONOMY": CabinPremiumEconomy,
			"PREMIUM ECONOMY": CabinPremiumEconomy,
			"اکونومی":         CabinEconomy,
			"بیزینس":          CabinBusiness,
			"اول":             CabinFirst,
		},
	}
}

// WithAirlineAliases returns a copy of t with extra aliases layered on top
func (t Tables) WithAirlineAliases(aliases map[string]string) Tables {
	merged := Tables{
		AirlineAliases: copyTable(t.AirlineAliases),
		CabinCodes:     copyTable(t.CabinCodes),
	}
	for alias, code := range aliases {
		alias = normalizeKey(alias)
		code = normalizeKey(code)
		if alias == "" || code == "" {
			continue
		}
		merged.AirlineAliases[alias] = code
	}
	return merged
}

// Merge layers every non-empty entry of other over t and returns the copy.
func (t Tables) Merge(other Tables) Tables {
	merged := t.WithAirlineAliases(other.AirlineAliases)
	for label, code := range other.CabinCodes {
		label = normalizeKey(label)
		code = normalizeKey(code)
		if label == "" || code == "" {
			continue
		}
		merged.CabinCodes[label] = code
	}
	return merged
}

func copyTable(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[normalizeKey(k)] = normalizeKey(v)
	}
	return dst
}
