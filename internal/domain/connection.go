package domain

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	apperrors "github.com/shhac/cavern/internal/errors"
)

// Persisted keys of ConnectionSettings
const (
	KeyConnID        = "id"
	KeyConnName      = "name"
	KeyConnAddress   = "address"
	KeyConnTimeoutMs = "timeoutMs"
	KeyConnSSL       = "ssl"
)

// DefaultTimeout is used for connections that don't set one.
const DefaultTimeout = 10 * time.Second

var validate = validator.New()

// ConnectionSettings holds one saved database connection
type ConnectionSettings struct {
	ID      string        `validate:"required"`
	Name    string        `validate:"required"`
	Address string        `validate:"required,hostname_port"`
	Timeout time.Duration `validate:"gte=0"`

	// SSL is owned by the connection and never nil for values built by
	// NewConnectionSettings or FromVariant.
	SSL *SSLSettings
}

// NewConnectionSettings returns a connection with a fresh ID and default SSL settings.
func NewConnectionSettings() *ConnectionSettings {
	return &ConnectionSettings{
		ID:      uuid.NewString(),
		Name:    "New Connection",
		Address: "localhost:27017",
		Timeout: DefaultTimeout,
		SSL:     &SSLSettings{},
	}
}

// Clone returns a deep copy, SSL settings included.
func (c *ConnectionSettings) Clone() *ConnectionSettings {
	cloned := *c
	if c.SSL != nil {
		cloned.SSL = c.SSL.Clone()
	}
	return &cloned
}

// SSLSettings returns the SSL settings, creating defaults when missing.
func (c *ConnectionSettings) SSLSettings() *SSLSettings {
	if c.SSL == nil {
		c.SSL = &SSLSettings{}
	}
	return c.SSL
}

// Validate checks the fields a connection needs before it can be saved or dialed.
// The first failing field is returned as an apperrors.ValidationError.
func (c *ConnectionSettings) Validate() error {
	err := validate.Struct(c)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.ValidationError{Field: fe.Field(), Message: validationMessage(fe)}
	}
	return err
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "hostname_port":
		return "must be in host:port form"
	case "gte":
		return "must not be negative"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

// ToVariant converts the connection into its persisted form.
func (c *ConnectionSettings) ToVariant() Variant {
	return Variant{
		KeyConnID:        c.ID,
		KeyConnName:      c.Name,
		KeyConnAddress:   c.Address,
		KeyConnTimeoutMs: c.Timeout.Milliseconds(),
		KeyConnSSL:       c.SSLSettings().ToVariant(),
	}
}

// FromVariant overwrites the connection from its persisted form. A missing
// "ssl" member yields default SSL settings.
func (c *ConnectionSettings) FromVariant(v Variant) {
	c.ID = cast.ToString(v[KeyConnID])
	c.Name = cast.ToString(v[KeyConnName])
	c.Address = cast.ToString(v[KeyConnAddress])
	c.Timeout = time.Duration(cast.ToInt64(v[KeyConnTimeoutMs])) * time.Millisecond

	ssl := &SSLSettings{}
	switch m := v[KeyConnSSL].(type) {
	case Variant:
		ssl.FromVariant(m)
	case map[string]any:
		ssl.FromVariant(Variant(m))
	}
	c.SSL = ssl
}
