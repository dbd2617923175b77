package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateLedger, Config{})
	return v
}

// validateLedger requires a gateway URL when the gateway ledger is selected
func validateLedger(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	if c.LedgerMode == LedgerGateway && c.LedgerURL == "" {
		sl.ReportError(c.LedgerURL, "LedgerURL", "LedgerURL", "required_if", "LedgerMode gateway")
	}
}

// Validate checks the loaded configuration against its struct tags
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Warnings returns non-fatal issues worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string

	if c.StorageBackend == StoragePostgres && c.DBPassword == ExamplePassword {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.LedgerMode == LedgerGateway && (c.LedgerAPIKey == "" || c.LedgerAPIKey == ExampleAPIKey) {
		warnings = append(warnings, "LEDGER_API_KEY is unset or the example value - the gateway may reject requests")
	}
	if c.GamePackageID == "" {
		warnings = append(warnings, "GAME_PACKAGE_ID is not set - starting rounds and cashing out are disabled")
	}
	if c.StorageBackend == StorageMemory && c.Environment != DefaultEnvironment {
		warnings = append(warnings, "STORAGE_BACKEND is memory - nicknames and history are lost on restart")
	}

	return warnings
}
