package ports

// SecondFactorVerifier provisions and checks one-time codes for the optional
// second factor. Held behind a port so the application layer stays
// crypto-library agnostic.
type SecondFactorVerifier interface {
	Provision(accountName string) (secret, enrollmentURL string, err error)
	Verify(code, secret string) bool
}
