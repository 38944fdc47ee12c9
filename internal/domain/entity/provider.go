package entity

import "strings"

// Provider is the canonical lower-case name of an upstream booking API
type Provider string

const (
	ProviderAlibaba     Provider = "alibaba"
	ProviderMrBilit     Provider = "mrbilit"
	ProviderSafarMarket Provider = "safarmarket"
	ProviderSafar366    Provider = "safar366"
	ProviderFlyToday    Provider = "flytoday"
	ProviderPateh       Provider = "pateh"
)

// Providers lists every supported provider in a fixed order
var Providers = []Provider{
	ProviderAlibaba,
	ProviderMrBilit,
	ProviderSafarMarket,
	ProviderSafar366,
	ProviderFlyToday,
	ProviderPateh,
}

var displayNames = map[Provider]string{
	ProviderAlibaba:     "Alibaba",
	ProviderMrBilit:     "MrBilit",
	ProviderSafarMarket: "SafarMarket",
	ProviderSafar366:    "Safar366",
	ProviderFlyToday:    "FlyToday",
	ProviderPateh:       "Pateh",
}

// ParseProvider resolves a provider name case-insensitively
func ParseProvider(name string) (Provider, bool) {
	p := Provider(strings.ToLower(strings.TrimSpace(name)))
	_, ok := displayNames[p]
	return p, ok
}

// DisplayName returns the human readable provider name
func (p Provider) DisplayName() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return string(p)
}

func (p Provider) String() string {
	return string(p)
}
