package smmprovider

import (
	"regexp"
	"strings"
)

// Platform, type and variant detection works on the free-text fields panels
// expose. Everything below is ordered data: adding a platform or a variant
// means adding a table row, never a new code path.

type platformRule struct {
	platform Platform
	pattern  *regexp.Regexp
}

// platformRules is evaluated in priority order, first match wins. Cross-posted
// listings often mention several networks in one category heading, so the
// order itself is part of the contract.
var platformRules = []platformRule{
	{PlatformInstagram, regexp.MustCompile(`(?i)\binsta(gram)?\b|\big\b`)},
	{PlatformFacebook, regexp.MustCompile(`(?i)\bface\s?book\b|\bfb\b`)},
	{PlatformX, regexp.MustCompile(`(?i)\btwitter\b|\bx\b`)},
	{PlatformTelegram, regexp.MustCompile(`(?i)\btelegram\b|\btg\b`)},
	{PlatformTikTok, regexp.MustCompile(`(?i)\btik\s?tok\b`)},
	{PlatformYouTube, regexp.MustCompile(`(?i)\byou\s?tube\b|\byt\b`)},
}

// DetectPlatform infers the platform from a listing's category and name.
// The boolean is false when no platform matched.
func DetectPlatform(category, name string) (Platform, bool) {
	text := category + " " + name
	for _, rule := range platformRules {
		if rule.pattern.MatchString(text) {
			return rule.platform, true
		}
	}
	return "", false
}

type typeRule struct {
	serviceType ServiceType
	pattern     *regexp.Regexp
	weight      int
}

// typeRules score against the full free text; a hit on the category field
// alone additionally counts categoryWeight because category headings are far
// more reliable than marketing copy in the service name.
var typeRules = []typeRule{
	{TypeFollowers, regexp.MustCompile(`(?i)\bfollowers?\b|\bsubscribers?\b|\bmembers?\b`), 2},
	{TypeLikes, regexp.MustCompile(`(?i)\blikes?\b|\breactions?\b|\bhearts?\b`), 2},
	{TypeViews, regexp.MustCompile(`(?i)\bviews?\b|\bplays?\b|\bwatch\s?time\b`), 2},
	{TypeComments, regexp.MustCompile(`(?i)\bcomments?\b|\breplies\b`), 3},
	{TypeShares, regexp.MustCompile(`(?i)\bshares?\b|\bretweets?\b|\breposts?\b`), 2},
	{TypeVotes, regexp.MustCompile(`(?i)\bvotes?\b|\bpolls?\b`), 1},
	{TypeSaves, regexp.MustCompile(`(?i)\bsaves?\b|\bbookmarks?\b`), 1},
}

const categoryWeight = 10

// excludePattern hard-rejects DM/inbox listings. They are out of catalog by
// policy no matter what else the text matches.
var excludePattern = regexp.MustCompile(`(?i)\bdms?\b|\bdirect\s?message(s)?\b|\binbox\b`)

// DetectType scores a listing's text against every service type and returns
// the strict winner. The boolean is false for unscorable or hard-excluded
// listings; both are dropped from the catalog.
func DetectType(category, name, description string) (ServiceType, bool) {
	text := category + " " + name + " " + description
	if excludePattern.MatchString(text) {
		return "", false
	}

	var best ServiceType
	bestScore := 0
	for _, rule := range typeRules {
		score := 0
		if rule.pattern.MatchString(text) {
			score += rule.weight
		}
		if rule.pattern.MatchString(category) {
			score += categoryWeight
		}
		// Strictly greater keeps ties deterministic: the first type in
		// table order to reach the top score wins.
		if score > bestScore {
			best = rule.serviceType
			bestScore = score
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}

type variantRule struct {
	variant Variant
	pattern *regexp.Regexp
}

// variantRules are per platform, ordered specific-before-generic so "reel"
// and "story" win over the catch-all "post"/"video" rows.
var variantRules = map[Platform][]variantRule{
	PlatformInstagram: {
		{VariantReel, regexp.MustCompile(`(?i)\breels?\b`)},
		{VariantStory, regexp.MustCompile(`(?i)\bstor(y|ies)\b`)},
		{VariantIGTV, regexp.MustCompile(`(?i)\bigtv\b`)},
		{VariantLive, regexp.MustCompile(`(?i)\blive\b`)},
		{VariantPost, regexp.MustCompile(`(?i)\bposts?\b|\bphotos?\b`)},
	},
	PlatformFacebook: {
		{VariantLive, regexp.MustCompile(`(?i)\blive\b`)},
		{VariantStory, regexp.MustCompile(`(?i)\bstor(y|ies)\b`)},
		{VariantVideo, regexp.MustCompile(`(?i)\bvideos?\b`)},
		{VariantPost, regexp.MustCompile(`(?i)\bposts?\b`)},
	},
	PlatformX: {
		{VariantVideo, regexp.MustCompile(`(?i)\bvideos?\b`)},
		{VariantPost, regexp.MustCompile(`(?i)\btweets?\b|\bposts?\b`)},
	},
	PlatformTelegram: {
		{VariantPost, regexp.MustCompile(`(?i)\bposts?\b`)},
	},
	PlatformTikTok: {
		{VariantLive, regexp.MustCompile(`(?i)\blive\b`)},
		{VariantVideo, regexp.MustCompile(`(?i)\bvideos?\b`)},
	},
	PlatformYouTube: {
		{VariantShort, regexp.MustCompile(`(?i)\bshorts?\b`)},
		{VariantLive, regexp.MustCompile(`(?i)\blive\b|\bstream\b`)},
		{VariantVideo, regexp.MustCompile(`(?i)\bvideos?\b`)},
	},
}

// DetectVariant refines the content shape for an already-resolved platform.
func DetectVariant(platform Platform, category, name string) Variant {
	text := category + " " + name
	for _, rule := range variantRules[platform] {
		if rule.pattern.MatchString(text) {
			return rule.variant
		}
	}
	return VariantAny
}

// usdRateFields are probed in order for an explicit USD-denominated rate;
// first non-empty wins and is used verbatim.
var usdRateFields = []string{"usd_rate", "rate_usd", "usd_price", "dollar_rate"}

// NormalizeRate converts a listing's raw rate into the provider's base rate
// and the canonical USD rate per 1000 units. A provider-pinned exchange rate
// wins over the shared fxRate for INR conversion.
func NormalizeRate(raw RawService, provider ProviderConfig, fxRate float64) (base, usd float64) {
	base, hasRate := raw.Num("rate", "price")

	if explicit, ok := raw.Num(usdRateFields...); ok {
		return base, explicit
	}

	if provider.Currency == CurrencyINR && hasRate {
		divisor := provider.ExchangeRate
		if divisor <= 0 {
			divisor = fxRate
		}
		return base, base / divisor
	}
	return base, base
}

// Classify runs one raw listing through the full pipeline. The boolean is
// false when the listing falls outside the supported taxonomy.
func Classify(raw RawService, provider ProviderConfig, fxRate float64) (Service, bool) {
	sourceID := raw.Str("service", "id", "service_id")
	name := raw.Str("name")
	category := raw.Str("category")
	description := raw.Str("description", "desc")
	if sourceID == "" {
		return Service{}, false
	}

	platform, ok := DetectPlatform(category, name)
	if !ok {
		return Service{}, false
	}
	serviceType, ok := DetectType(category, name, description)
	if !ok {
		return Service{}, false
	}

	base, usd := NormalizeRate(raw, provider, fxRate)

	svc := Service{
		ID:               ServiceID(provider.Key, sourceID),
		Source:           provider.Key,
		SourceServiceID:  sourceID,
		Platform:         platform,
		Type:             serviceType,
		Variant:          DetectVariant(platform, category, name),
		ProviderName:     name,
		Category:         category,
		BaseRatePer1000:  base,
		ProviderCurrency: providerCurrency(provider),
		RatePer1000:      usd,
		Refill:           raw.Flag("refill"),
		Dripfeed:         raw.Flag("dripfeed"),
		Cancel:           raw.Flag("cancel"),
		Raw:              raw,
	}
	if min, ok := raw.Num("min"); ok {
		svc.Min = int(min)
	}
	if max, ok := raw.Num("max"); ok {
		svc.Max = int(max)
	}
	if avg, ok := raw.Num("average_time", "avg_time"); ok {
		svc.AverageTime = &avg
	}
	return svc, true
}

func providerCurrency(p ProviderConfig) Currency {
	if strings.ToUpper(string(p.Currency)) == string(CurrencyINR) {
		return CurrencyINR
	}
	return CurrencyUSD
}
