package security

import (
	"fmt"

	"github.com/pquerna/otp/totp"
)

// TOTPProvider provisions and checks time-based one-time codes for the
// optional second factor. The generated secret is handed to the user exactly
// once at enrollment and afterwards lives only in the two-factor store.
type TOTPProvider struct {
	issuer string
}

func NewTOTPProvider(issuer string) *TOTPProvider {
	if issuer == "" {
		issuer = "Guardline"
	}
	return &TOTPProvider{issuer: issuer}
}

// Provision generates a fresh secret for the account and returns the secret
// together with the otpauth enrollment URL for authenticator apps.
func (p *TOTPProvider) Provision(accountName string) (secret, enrollmentURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      p.issuer,
		AccountName: accountName,
	})
	if err != nil {
		return "", "", fmt.Errorf("generate totp secret: %w", err)
	}
	return key.Secret(), key.URL(), nil
}

// Verify checks a submitted code against the stored secret using the
// standard 30-second period.
func (p *TOTPProvider) Verify(code, secret string) bool {
	return totp.Validate(code, secret)
}
