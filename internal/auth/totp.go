package auth

import (
	"fmt"
	"time"

	"github.com/pquerna/otp/totp"
)

// TOTPKey is what a client needs to enrol an authenticator app.
type TOTPKey struct {
	Secret string `json:"secret"`
	URL    string `json:"otpauth_url"`
}

func GenerateTOTP(issuer, accountName string) (*TOTPKey, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
	})
	if err != nil {
		return nil, fmt.Errorf("generate totp: %w", err)
	}
	return &TOTPKey{Secret: key.Secret(), URL: key.URL()}, nil
}

func ValidateTOTP(code, secret string) bool {
	if code == "" || secret == "" {
		return false
	}
	return totp.Validate(code, secret)
}

// CurrentTOTP is used by tests and support tooling.
func CurrentTOTP(secret string) (string, error) {
	return totp.GenerateCode(secret, time.Now())
}
