package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"

	"github.com/arkline/payhook/pkg/firestore"
	"github.com/spf13/viper"
)

// SecretKeyLength is the required size of the webhook secret, in raw bytes.
const SecretKeyLength = 20

type Config struct {
	API       API              `mapstructure:"api"`
	Webhook   Webhook          `mapstructure:"webhook"`
	Firestore firestore.Config `mapstructure:"firestore"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Webhook struct {
	SecretKey   string `mapstructure:"secret_key"`
	IPWhiteList string `mapstructure:"ip_white_list"`

	allowList []netip.Prefix
}

// AllowList returns the CIDR ranges parsed from IPWhiteList at load time.
func (w Webhook) AllowList() []netip.Prefix {
	return w.allowList
}

var envBindings = map[string]string{
	"api.port":               "PORT",
	"webhook.secret_key":     "WEBHOOK_SECRET_KEY",
	"webhook.ip_white_list":  "IP_WHITE_LIST",
	"firestore.project_id":   "FIRESTORE_PROJECT_ID",
	"firestore.access_token": "FIRESTORE_ACCESS_TOKEN",
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetDefault("api.port", ":8080")
	viper.SetDefault("firestore.base_url", firestore.DefaultBaseURL)
	viper.SetDefault("firestore.timeout", "10s")

	for key, env := range envBindings {
		if err = viper.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Webhook.SecretKey) != SecretKeyLength {
		return fmt.Errorf("webhook secret key must be exactly %d bytes, got %d", SecretKeyLength, len(c.Webhook.SecretKey))
	}

	allowList, err := ParseAllowList(c.Webhook.IPWhiteList)
	if err != nil {
		return err
	}
	c.Webhook.allowList = allowList

	if c.Firestore.ProjectID == "" {
		return errors.New("firestore project id is required")
	}

	return nil
}

// ParseAllowList parses a semicolon-delimited list of CIDR ranges,
// e.g. "185.30.20.0/24;185.30.21.0/24".
func ParseAllowList(raw string) ([]netip.Prefix, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("ip white list is empty")
	}

	parts := strings.Split(raw, ";")
	prefixes := make([]netip.Prefix, 0, len(parts))
	for _, part := range parts {
		prefix, err := netip.ParsePrefix(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid ip white list entry %q: %w", part, err)
		}
		prefixes = append(prefixes, prefix)
	}

	return prefixes, nil
}
