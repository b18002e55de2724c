package api

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// validate is shared across ComposeRequest validations.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ComposeRequest is the admin compose payload for POST /send.
// Either Broadcast is true or Recipients must name at least one user.
type ComposeRequest struct {
	Subject    string            `json:"subject" validate:"required,max=200"`
	Message    string            `json:"message" validate:"required,max=2000"`
	Topic      string            `json:"topic" validate:"required"`
	Priority   string            `json:"priority" validate:"required,oneof=low normal high urgent"`
	Channels   []string          `json:"channels" validate:"required,min=1,dive,oneof=push email in_app"`
	Recipients []string          `json:"recipients,omitempty" validate:"required_without=Broadcast,excluded_with=Broadcast"`
	Broadcast  bool              `json:"broadcast,omitempty"`
	ActionURL  string            `json:"actionUrl,omitempty" validate:"omitempty,url"`
	ActionText string            `json:"actionText,omitempty" validate:"omitempty,max=50"`
	Data       map[string]string `json:"data,omitempty"`
}

// Validate checks the compose request before it is sent.
func (r *ComposeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid compose request: field %s failed %s", first.Field(), first.Tag())
		}
		return fmt.Errorf("invalid compose request: %w", err)
	}
	return nil
}

func deviceName() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "unknown"
	}
	return hostname
}
