package firestore

import "time"

const DefaultBaseURL = "https://firestore.googleapis.com/v1"

type Config struct {
	ProjectID   string        `mapstructure:"project_id"`
	BaseURL     string        `mapstructure:"base_url"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}
