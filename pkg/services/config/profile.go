package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Profile holds the settings one report run depends on: where the
// analysis backend lives, how image fetches behave, and how the
// finished document is branded.
type Profile struct {
	BackendURL       string `mapstructure:"backend_url"`
	OutputPathPrefix string `mapstructure:"output_path_prefix"`

	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds"`
	FetchRetryMax      int `mapstructure:"fetch_retry_max"`

	FooterLabel    string `mapstructure:"footer_label"`
	WatermarkText  string `mapstructure:"watermark_text"`
	WatermarkImage string `mapstructure:"watermark_image"`

	Page PageSettings `mapstructure:"page"`
}

// PageSettings is the fixed page geometry in millimetres. Zero values
// fall back to the A4 defaults applied by LoadProfile.
type PageSettings struct {
	Width        float64 `mapstructure:"width"`
	Height       float64 `mapstructure:"height"`
	MarginTop    float64 `mapstructure:"margin_top"`
	MarginBottom float64 `mapstructure:"margin_bottom"`
	MarginLeft   float64 `mapstructure:"margin_left"`
	MarginRight  float64 `mapstructure:"margin_right"`
}

func (p Profile) HTTPTimeout() time.Duration {
	return time.Duration(p.HTTPTimeoutSeconds) * time.Second
}

// LoadProfile reads a YAML profile from disk and applies defaults for
// everything the file leaves out.
func LoadProfile(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("output_path_prefix", "/outputs")
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("fetch_retry_max", 2)
	v.SetDefault("footer_label", "Water Atlas")
	v.SetDefault("watermark_text", "WATER ATLAS")
	v.SetDefault("page.width", 210.0)
	v.SetDefault("page.height", 297.0)
	v.SetDefault("page.margin_top", 15.0)
	v.SetDefault("page.margin_bottom", 20.0)
	v.SetDefault("page.margin_left", 15.0)
	v.SetDefault("page.margin_right", 15.0)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	if p.BackendURL == "" {
		return nil, fmt.Errorf("profile is missing backend_url")
	}
	return &p, nil
}
