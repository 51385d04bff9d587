package smmprovider

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Currency a provider denominates its raw rates in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
)

// Platform is the canonical social network taxonomy.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformX         Platform = "x"
	PlatformTelegram  Platform = "telegram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// ServiceType is the canonical engagement taxonomy.
type ServiceType string

const (
	TypeFollowers ServiceType = "followers"
	TypeLikes     ServiceType = "likes"
	TypeViews     ServiceType = "views"
	TypeComments  ServiceType = "comments"
	TypeShares    ServiceType = "shares"
	TypeVotes     ServiceType = "votes"
	TypeSaves     ServiceType = "saves"
)

// Variant refines the content shape a service targets. Not every variant is
// meaningful on every platform; VariantAny is the catch-all.
type Variant string

const (
	VariantAny   Variant = "any"
	VariantPost  Variant = "post"
	VariantReel  Variant = "reel"
	VariantStory Variant = "story"
	VariantIGTV  Variant = "igtv"
	VariantVideo Variant = "video"
	VariantLive  Variant = "live"
	VariantShort Variant = "short"
)

// ProviderConfig is one configured upstream panel.
type ProviderConfig struct {
	Key     string `json:"key" validate:"max=64"`
	Name    string `json:"name,omitempty" validate:"max=255"`
	APIURL  string `json:"apiUrl" validate:"required,url"`
	APIKey  string `json:"apiKey" validate:"required"`
	Enabled bool   `json:"enabled"`
	// Currency the provider's raw rates are denominated in. Defaults to USD.
	Currency Currency `json:"currency,omitempty" validate:"omitempty,oneof=USD INR"`
	// ExchangeRate optionally pins the INR to USD conversion for this provider
	// instead of the shared FX rate.
	ExchangeRate float64 `json:"exchangeRate,omitempty" validate:"omitempty,gt=0"`
}

// RawService is one untyped listing row exactly as a panel API returned it.
// Panels disagree about field names and about whether numbers arrive as JSON
// numbers or strings, so rows stay maps and are probed through the helpers
// below.
type RawService map[string]any

// Str returns the first non-empty string value among the given keys.
func (r RawService) Str(keys ...string) string {
	for _, key := range keys {
		switch v := r[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			if s := v.String(); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// Num returns the first parseable numeric value among the given keys.
func (r RawService) Num(keys ...string) (float64, bool) {
	for _, key := range keys {
		switch v := r[key].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// Flag interprets the panels' many spellings of a boolean capability flag.
func (r RawService) Flag(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == "1" || s == "yes"
	case float64:
		return v != 0
	case json.Number:
		return v.String() != "0"
	}
	return false
}

// Service is the canonical cross-provider representation every consumer
// works with. RatePer1000 is always USD regardless of provider origin so
// margin and override math compares like with like.
type Service struct {
	ID               string      `json:"id"`
	Source           string      `json:"source"`
	SourceServiceID  string      `json:"sourceServiceId"`
	Platform         Platform    `json:"platform"`
	Type             ServiceType `json:"type"`
	Variant          Variant     `json:"variant"`
	ProviderName     string      `json:"providerName"`
	DisplayName      string      `json:"displayName,omitempty"`
	Category         string      `json:"category"`
	BaseRatePer1000  float64     `json:"baseRatePer1000"`
	ProviderCurrency Currency    `json:"providerCurrency"`
	RatePer1000      float64     `json:"ratePer1000"`
	Min              int         `json:"min"`
	Max              int         `json:"max"`
	Refill           bool        `json:"refill"`
	Dripfeed         bool        `json:"dripfeed"`
	Cancel           bool        `json:"cancel"`
	AverageTime      *float64    `json:"averageTime"`
	Raw              RawService  `json:"raw,omitempty"`
}

// OverrideKey is the composite identity admin overrides are keyed by.
func (s Service) OverrideKey() string {
	return s.Source + ":" + s.SourceServiceID
}

// ServiceID builds the catalog-wide unique id for a provider's listing.
func ServiceID(providerKey, sourceServiceID string) string {
	return providerKey + ":" + sourceServiceID
}
