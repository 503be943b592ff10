package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/plm-api/internal/domain"
)

// maxPasswordBytes límite de bcrypt; bytes posteriores se ignorarían al comparar.
const maxPasswordBytes = 72

// PasswordHasher hashea y verifica contraseñas con un algoritmo unidireccional con sal.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

// BcryptHasher implementa PasswordHasher con bcrypt y costo configurable.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher. Un costo fuera de rango usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost costo efectivo del hasher.
func (h *BcryptHasher) Cost() int { return h.cost }

// Hash genera el hash de password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password vacío", domain.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password supera %d bytes", domain.ErrInvalidInput, maxPasswordBytes)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// Verify compara password con hash. Una contraseña que no coincide devuelve ErrInvalidCredentials.
func (h *BcryptHasher) Verify(hash, password string) error {
	if len(password) > maxPasswordBytes {
		return domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("bcrypt: %w", err)
	}
	return nil
}
