package contracts

// SecretService issues and checks the one-time specimen secret. The
// plaintext leaves through Issue exactly once; only the salted hash is ever
// stored.
type SecretService interface {
	Issue() (string, error)
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}
