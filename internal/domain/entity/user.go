package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// User representa un usuario del sistema con su conjunto de roles.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca la contraseña en claro
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleNames devuelve los nombres de los roles del usuario.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// NormalizeEmail recorta espacios y pasa a minúsculas; se usa al guardar y al buscar.
// El Caser se crea por llamada: cases no permite compartirlo entre goroutines.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}
