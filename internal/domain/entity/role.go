package entity

// Roles sembrados por la migración inicial.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// DefaultRole es el rol asignado cuando no se solicita ninguno o el solicitado no existe.
const DefaultRole = RoleUser

// Role es un dato de referencia (tabla roles); la aplicación nunca lo modifica.
type Role struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}
