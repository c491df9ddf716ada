package config

import (
	"fmt"
	"net/url"
	"strings"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
	"github.com/saturncloud/examplecheck/internal/output"
)

// FieldError is a single invalid configuration value.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors is a collection of invalid configuration values.
type FieldErrors []FieldError

// Error implements the error interface.
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap classifies every config problem as a validation error.
func (e FieldErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validate checks the configuration before a run.
func (c *Config) Validate() error {
	var errs FieldErrors

	if strings.TrimSpace(c.ExamplesDir) == "" {
		errs = append(errs, FieldError{
			Field:   KeyExamplesDir,
			Message: "is required (--examples-dir or " + envName(KeyExamplesDir) + ")",
		})
	}

	if !c.OutputFormat().IsValid() {
		errs = append(errs, FieldError{
			Field:   KeyOutput,
			Message: fmt.Sprintf("must be one of %s, got %q", strings.Join(output.ValidFormats(), ", "), c.Output),
		})
	}

	for _, f := range []struct{ key, value string }{
		{KeySchemaBaseURL, c.SchemaBaseURL},
		{KeyInstanceTypesURL, c.InstanceTypesURL},
	} {
		if err := validateURL(f.value); err != nil {
			errs = append(errs, FieldError{Field: f.key, Message: err.Error()})
		}
	}

	if !c.SkipImageCheck && strings.TrimSpace(c.ECRTokenCommand) == "" {
		errs = append(errs, FieldError{
			Field:   KeyECRTokenCommand,
			Message: "must not be empty unless " + KeySkipImageCheck + " is set",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an http(s) URL, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host, got %q", raw)
	}
	return nil
}
