package panelconfig

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"

	"github.com/boostgridhq/BoostGrid/app/models"
	"github.com/boostgridhq/BoostGrid/app/repository"
	"github.com/boostgridhq/BoostGrid/internal/pkg/smmprovider"
)

// Override is one admin-authored per-service customization, keyed by
// (source, sourceServiceId). Pointer fields distinguish "not set" from a
// zero value.
type Override struct {
	Source            string   `json:"source" validate:"required"`
	SourceServiceID   string   `json:"sourceServiceId" validate:"required"`
	Include           *bool    `json:"include,omitempty"`
	Platform          string   `json:"platform,omitempty"`
	Type              string   `json:"type,omitempty"`
	Variant           string   `json:"variant,omitempty"`
	DisplayName       string   `json:"displayName,omitempty"`
	CustomRatePer1000 *float64 `json:"customRatePer1000,omitempty" validate:"omitempty,gt=0"`
	MarginPercent     *float64 `json:"marginPercent,omitempty" validate:"omitempty,gte=0"`
}

// Key is the composite identity this override applies to.
func (o Override) Key() string {
	return o.Source + ":" + o.SourceServiceID
}

// Config is the override engine's full configuration.
type Config struct {
	// Strict flips the default inclusion posture: when true only services
	// with an explicit include:true override survive.
	Strict               bool       `json:"strict"`
	DefaultMarginPercent float64    `json:"defaultMarginPercent" validate:"gte=0"`
	Overrides            []Override `json:"overrides"`
}

// DefaultConfig is the neutral posture: everything included, no markup.
func DefaultConfig() Config {
	return Config{Strict: false, DefaultMarginPercent: 0, Overrides: []Override{}}
}

// Store loads and saves the panel configuration, persisted as a JSON
// document in the settings table. Like the provider registry it never touches
// the catalog caches; the admin write path invalidates them.
type Store struct {
	settings repository.SettingRepository
	validate *validator.Validate
}

func NewStore(settings repository.SettingRepository) *Store {
	return &Store{
		settings: settings,
		validate: validator.New(),
	}
}

// Load returns the persisted config, or the neutral default when storage is
// absent or malformed. It never fails.
func (s *Store) Load() Config {
	raw, err := s.settings.GetValue(models.SettingKeyPanelConfig)
	if err != nil {
		log.Warnf("panel config read failed, using defaults: %v", err)
		return DefaultConfig()
	}
	if strings.TrimSpace(raw) == "" {
		return DefaultConfig()
	}

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		log.Warnf("panel config document is malformed, using defaults: %v", err)
		return DefaultConfig()
	}
	if cfg.Overrides == nil {
		cfg.Overrides = []Override{}
	}
	return cfg
}

// Save validates and persists the whole config document.
func (s *Store) Save(cfg Config) error {
	if err := s.validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid panel config: %w", err)
	}
	for i, o := range cfg.Overrides {
		if err := s.validate.Struct(o); err != nil {
			return fmt.Errorf("invalid override %d (%s): %w", i, o.Key(), err)
		}
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode panel config: %w", err)
	}
	if err := s.settings.SetValue(models.SettingKeyPanelConfig, string(data)); err != nil {
		return fmt.Errorf("failed to persist panel config: %w", err)
	}
	return nil
}

// overrideIndex builds the lookup map used during override application.
func overrideIndex(cfg Config) map[string]Override {
	index := make(map[string]Override, len(cfg.Overrides))
	for _, o := range cfg.Overrides {
		index[o.Key()] = o
	}
	return index
}

// applyOverride returns a price- and classification-adjusted copy of svc.
func applyOverride(svc smmprovider.Service, o *Override, defaultMargin float64) smmprovider.Service {
	out := svc

	margin := defaultMargin
	if o != nil {
		if o.Platform != "" {
			out.Platform = smmprovider.Platform(o.Platform)
		}
		if o.Type != "" {
			out.Type = smmprovider.ServiceType(o.Type)
		}
		if o.Variant != "" {
			out.Variant = smmprovider.Variant(o.Variant)
		}
		if o.DisplayName != "" {
			out.DisplayName = o.DisplayName
		}
		if o.CustomRatePer1000 != nil {
			// An absolute custom rate beats any margin.
			out.RatePer1000 = *o.CustomRatePer1000
			return out
		}
		if o.MarginPercent != nil {
			margin = *o.MarginPercent
		}
	}

	if margin > 0 {
		out.RatePer1000 = svc.RatePer1000 * (1 + margin/100)
	}
	return out
}

// ApplyOverrides filters and reprices the normalized catalog according to
// cfg. Pure: the input list and its entries are never mutated, and equal
// inputs produce equal outputs.
func ApplyOverrides(services []smmprovider.Service, cfg Config) []smmprovider.Service {
	index := overrideIndex(cfg)
	out := make([]smmprovider.Service, 0, len(services))

	for _, svc := range services {
		o, found := index[svc.OverrideKey()]

		if cfg.Strict {
			// Opt-in: only explicitly included services survive.
			if !found || o.Include == nil || !*o.Include {
				continue
			}
		} else {
			// Opt-out: only explicit exclusion removes a service.
			if found && o.Include != nil && !*o.Include {
				continue
			}
		}

		var op *Override
		if found {
			op = &o
		}
		out = append(out, applyOverride(svc, op, cfg.DefaultMarginPercent))
	}
	return out
}
