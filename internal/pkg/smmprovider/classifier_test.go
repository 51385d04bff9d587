package smmprovider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		category string
		name     string
		want     Platform
		ok       bool
	}{
		{"Instagram Followers", "Real Followers", PlatformInstagram, true},
		{"", "Insta Likes - Fast", PlatformInstagram, true},
		{"FB Page Likes", "", PlatformFacebook, true},
		{"Twitter Services", "Retweets", PlatformX, true},
		{"Telegram", "Channel Members", PlatformTelegram, true},
		{"TikTok Views", "", PlatformTikTok, true},
		{"Tik Tok", "Video Views", PlatformTikTok, true},
		{"YouTube", "Watch Time", PlatformYouTube, true},
		{"YT Subscribers", "", PlatformYouTube, true},
		{"Spotify Plays", "Premium Plays", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		got, ok := DetectPlatform(tt.category, tt.name)
		assert.Equal(t, tt.ok, ok, "category=%q name=%q", tt.category, tt.name)
		assert.Equal(t, tt.want, got, "category=%q name=%q", tt.category, tt.name)
	}
}

func TestDetectPlatformPriorityOrder(t *testing.T) {
	// Cross-posted listings mention several networks; the first platform in
	// table order must win deterministically.
	got, ok := DetectPlatform("Instagram + Facebook Likes", "")
	require.True(t, ok)
	assert.Equal(t, PlatformInstagram, got)
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		category    string
		name        string
		description string
		want        ServiceType
		ok          bool
	}{
		{"Instagram Followers", "Real Followers", "", TypeFollowers, true},
		{"Instagram Likes", "Post Likes", "", TypeLikes, true},
		{"YouTube Views", "Video Views", "", TypeViews, true},
		{"Instagram Comments", "Random Comments", "", TypeComments, true},
		{"Twitter", "Retweets", "", TypeShares, true},
		{"Instagram", "Story Poll Votes", "", TypeVotes, true},
		{"Instagram", "Post Saves", "", TypeSaves, true},
		{"Gift Cards", "Amazon Card", "", "", false},
	}

	for _, tt := range tests {
		got, ok := DetectType(tt.category, tt.name, tt.description)
		assert.Equal(t, tt.ok, ok, "category=%q name=%q", tt.category, tt.name)
		assert.Equal(t, tt.want, got, "category=%q name=%q", tt.category, tt.name)
	}
}

func TestDetectTypeHardExclude(t *testing.T) {
	// DM/inbox listings are out of catalog by policy, no matter which other
	// keywords they also match.
	_, ok := DetectType("Instagram", "Instagram DM Inbox Replies", "")
	assert.False(t, ok)

	_, ok = DetectType("Instagram Comments", "Direct Message Replies", "sends comments to inbox")
	assert.False(t, ok)
}

func TestDetectTypeCategoryOutweighsName(t *testing.T) {
	// The category heading is the reliable signal: a "Followers" category
	// must win even when the free text is filled with "likes".
	got, ok := DetectType("Instagram Followers", "Likes likes likes bonus likes", "")
	require.True(t, ok)
	assert.Equal(t, TypeFollowers, got)
}

func TestDetectVariant(t *testing.T) {
	tests := []struct {
		platform Platform
		category string
		name     string
		want     Variant
	}{
		{PlatformInstagram, "Instagram Likes", "Reel Likes", VariantReel},
		{PlatformInstagram, "Instagram", "Story Views", VariantStory},
		{PlatformInstagram, "Instagram", "IGTV Views", VariantIGTV},
		{PlatformInstagram, "Instagram Likes", "Photo Post Likes", VariantPost},
		{PlatformInstagram, "Instagram Followers", "Real Followers", VariantAny},
		{PlatformYouTube, "YouTube", "Shorts Views", VariantShort},
		{PlatformYouTube, "YouTube", "Live Stream Views", VariantLive},
		{PlatformYouTube, "YouTube", "Video Views", VariantVideo},
		{PlatformTikTok, "TikTok", "Live Viewers", VariantLive},
		{PlatformX, "Twitter", "Tweet Likes", VariantPost},
	}

	for _, tt := range tests {
		got := DetectVariant(tt.platform, tt.category, tt.name)
		assert.Equal(t, tt.want, got, "platform=%s name=%q", tt.platform, tt.name)
	}
}

func TestDetectVariantSpecificBeforeGeneric(t *testing.T) {
	// "Reel Post Likes" mentions both; the more specific variant wins.
	got := DetectVariant(PlatformInstagram, "Instagram", "Reel Post Likes")
	assert.Equal(t, VariantReel, got)
}

func TestNormalizeRateUsdPassThrough(t *testing.T) {
	raw := RawService{"rate": "2.50"}
	provider := ProviderConfig{Key: "p", Currency: CurrencyUSD}

	base, usd := NormalizeRate(raw, provider, 83.0)
	assert.Equal(t, 2.50, base)
	assert.Equal(t, 2.50, usd)
}

func TestNormalizeRateInrConversion(t *testing.T) {
	raw := RawService{"rate": "830"}
	provider := ProviderConfig{Key: "p", Currency: CurrencyINR}

	base, usd := NormalizeRate(raw, provider, 83.0)
	assert.Equal(t, 830.0, base)
	assert.Equal(t, 10.0, usd)
}

func TestNormalizeRatePinnedExchangeRateWins(t *testing.T) {
	raw := RawService{"rate": "100"}
	provider := ProviderConfig{Key: "p", Currency: CurrencyINR, ExchangeRate: 80.0}

	_, usd := NormalizeRate(raw, provider, 83.0)
	assert.Equal(t, 1.25, usd)
}

func TestNormalizeRateExplicitUsdFieldWinsVerbatim(t *testing.T) {
	raw := RawService{"rate": "830", "usd_rate": "9.99"}
	provider := ProviderConfig{Key: "p", Currency: CurrencyINR}

	base, usd := NormalizeRate(raw, provider, 83.0)
	assert.Equal(t, 830.0, base)
	assert.Equal(t, 9.99, usd)
}

func TestClassifyEarthpanelScenario(t *testing.T) {
	raw := RawService{
		"service":  "101",
		"name":     "Instagram Followers - Real",
		"category": "Instagram Followers",
		"rate":     "2.50",
		"min":      "100",
		"max":      "10000",
	}
	provider := ProviderConfig{Key: "earthpanel", Currency: CurrencyUSD}

	svc, ok := Classify(raw, provider, 83.0)
	require.True(t, ok)
	assert.Equal(t, "earthpanel:101", svc.ID)
	assert.Equal(t, "earthpanel", svc.Source)
	assert.Equal(t, "101", svc.SourceServiceID)
	assert.Equal(t, PlatformInstagram, svc.Platform)
	assert.Equal(t, TypeFollowers, svc.Type)
	assert.Equal(t, VariantAny, svc.Variant)
	assert.Equal(t, 2.50, svc.BaseRatePer1000)
	assert.Equal(t, 2.50, svc.RatePer1000)
	assert.Equal(t, CurrencyUSD, svc.ProviderCurrency)
	assert.Equal(t, 100, svc.Min)
	assert.Equal(t, 10000, svc.Max)
	assert.Nil(t, svc.AverageTime)
	assert.Equal(t, raw, svc.Raw)
}

func TestClassifyDropsUnrecognizable(t *testing.T) {
	provider := ProviderConfig{Key: "p", Currency: CurrencyUSD}

	_, ok := Classify(RawService{"service": "1", "name": "Mystery Box", "category": "Misc"}, provider, 83.0)
	assert.False(t, ok)

	_, ok = Classify(RawService{"service": "2", "name": "Spotify Plays", "category": "Spotify"}, provider, 83.0)
	assert.False(t, ok)

	// Missing service id is unusable regardless of text.
	_, ok = Classify(RawService{"name": "Instagram Followers", "category": "Instagram Followers"}, provider, 83.0)
	assert.False(t, ok)
}

func TestClassifyCapabilityFlags(t *testing.T) {
	raw := RawService{
		"service":      "7",
		"name":         "Instagram Likes",
		"category":     "Instagram Likes",
		"rate":         1.2,
		"refill":       true,
		"dripfeed":     "1",
		"cancel":       false,
		"average_time": 45,
	}
	provider := ProviderConfig{Key: "p", Currency: CurrencyUSD}

	svc, ok := Classify(raw, provider, 83.0)
	require.True(t, ok)
	assert.True(t, svc.Refill)
	assert.True(t, svc.Dripfeed)
	assert.False(t, svc.Cancel)
	require.NotNil(t, svc.AverageTime)
	assert.Equal(t, 45.0, *svc.AverageTime)
}
