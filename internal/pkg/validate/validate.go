// Package validate holds local, network-free checks for addresses, exchange
// credentials and user supplied names.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"wallet_aggregator/internal/domain/apperr"

	"github.com/go-playground/validator/v10"
)

const (
	MinCredentialLength = 16
	MaxNameLength       = 100
)

var (
	ethereumAddressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	bitcoinAddressRe  = regexp.MustCompile(`^(bc1|[13])[a-zA-HJ-NP-Z0-9]{25,62}$`)

	placeholderKeys = map[string]struct{}{
		"test":              {},
		"1234567890":        {},
		"your_api_key_here": {},
		"xxxxxxxxxxxxxxxx":  {},
	}

	nameReplacer = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "")
)

// EthereumAddress reports whether s is 0x followed by 40 hex characters.
func EthereumAddress(s string) bool {
	return ethereumAddressRe.MatchString(s)
}

// BitcoinAddress accepts legacy (1...), script (3...) and bech32 (bc1...) shapes.
func BitcoinAddress(s string) bool {
	return bitcoinAddressRe.MatchString(s)
}

type credentialShape struct {
	APIKey    string `validate:"required,min=16"`
	APISecret string `validate:"required,min=16"`
}

var (
	credentialValidator     *validator.Validate
	credentialValidatorOnce sync.Once
)

func getValidator() *validator.Validate {
	credentialValidatorOnce.Do(func() {
		credentialValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return credentialValidator
}

// Credential checks the shape of an exchange key pair. It never contacts the exchange.
func Credential(apiKey, apiSecret string) error {
	apiKey = strings.TrimSpace(apiKey)
	apiSecret = strings.TrimSpace(apiSecret)

	if err := getValidator().Struct(credentialShape{APIKey: apiKey, APISecret: apiSecret}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperr.InvalidInput("validate.credential",
				fmt.Errorf("%s failed %q check (minimum length %d)", fe.Field(), fe.Tag(), MinCredentialLength))
		}
		return apperr.InvalidInput("validate.credential", err)
	}
	if _, bad := placeholderKeys[strings.ToLower(apiKey)]; bad {
		return apperr.InvalidInput("validate.credential", fmt.Errorf("api key looks like a placeholder"))
	}
	return nil
}

// SanitizeName strips markup characters, trims and caps the name length.
// An empty result falls back to def.
func SanitizeName(name, def string) string {
	name = strings.TrimSpace(nameReplacer.Replace(name))
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}
	if name == "" {
		return def
	}
	return name
}
