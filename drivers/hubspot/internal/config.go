package driver

import (
	"fmt"
	"time"

	"github.com/streamzip/tap-hubspot/utils"
)

type Config struct {
	// OAuth client identity used for the refresh exchange
	RedirectURI  string `json:"redirect_uri" validate:"required"`
	ClientID     string `json:"client_id" validate:"required"`
	ClientSecret string `json:"client_secret" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`

	// StartDate seeds stream watermarks absent prior state (ISO-8601)
	StartDate string `json:"start_date" validate:"required"`

	// UserAgent is an optional client identification string attached to every request
	UserAgent string `json:"user_agent"`
}

func (c *Config) Validate() error {
	if err := utils.Validate(c); err != nil {
		return err
	}
	if _, err := time.Parse(time.RFC3339, c.StartDate); err != nil {
		return fmt.Errorf("start_date must be an ISO-8601 timestamp: %s", err)
	}
	return nil
}
