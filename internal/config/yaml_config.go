package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the optional config.yaml file.
// Hierarchical site config that's easier to manage in YAML than env vars.
type YAMLConfig struct {
	PartsOfSpeech []PartOfSpeechConfig `yaml:"parts_of_speech"`
	Dialects      []string             `yaml:"dialects"`
	Branding      BrandingConfig       `yaml:"branding"`
}

// PartOfSpeechConfig defines an extra part-of-speech entry to seed.
type PartOfSpeechConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// BrandingConfig overrides the env-based site branding when set.
type BrandingConfig struct {
	SiteTitle   string `yaml:"site_title,omitempty"`
	SiteTagline string `yaml:"site_tagline,omitempty"`
	SiteFooter  string `yaml:"site_footer,omitempty"`
	SiteLogoURL string `yaml:"site_logo_url,omitempty"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Apply merges the YAML config into the env-based config.
func (y *YAMLConfig) Apply(cfg *Config) {
	if y == nil {
		return
	}
	if y.Branding.SiteTitle != "" {
		cfg.SiteTitle = y.Branding.SiteTitle
	}
	if y.Branding.SiteTagline != "" {
		cfg.SiteTagline = y.Branding.SiteTagline
	}
	if y.Branding.SiteFooter != "" {
		cfg.SiteFooter = y.Branding.SiteFooter
	}
	if y.Branding.SiteLogoURL != "" {
		cfg.SiteLogoURL = y.Branding.SiteLogoURL
	}
}
