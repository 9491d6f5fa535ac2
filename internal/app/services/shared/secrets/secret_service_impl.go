package secrets

import (
	"crypto/rand"
	"labtrail-service/internal/app/contracts"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	secretMin  = 100000
	secretSpan = 900000
)

type secretService struct {
	cost int
}

func NewSecretService() contracts.SecretService {
	return &secretService{cost: bcrypt.DefaultCost}
}

// Issue draws a 6 digit secret uniformly from 100000-999999.
func (s *secretService) Issue() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(secretSpan))
	if err != nil {
		return "", err
	}
	return big.NewInt(secretMin + n.Int64()).String(), nil
}

func (s *secretService) Hash(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (s *secretService) Verify(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}
