package postgres

import (
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/plm-api/internal/domain"
)

// psql builder de squirrel con placeholders $n de PostgreSQL.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Constraints UNIQUE definidas en migrations/00001_init.sql.
const (
	constraintUsersUsername   = "users_username_key"
	constraintUsersEmail      = "users_email_key"
	constraintProductsProduct = "products_product_id_key"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// duplicateError traduce una violación de unicidad al error de dominio según la constraint.
// Devuelve nil si err no es una violación de unicidad conocida.
func duplicateError(err error) error {
	if err == nil || !isUniqueViolation(err) {
		return nil
	}
	var pgErr *pgconn.PgError
	name := ""
	if errors.As(err, &pgErr) {
		name = pgErr.ConstraintName
	}
	switch name {
	case constraintUsersUsername:
		return domain.ErrDuplicateUsername
	case constraintUsersEmail:
		return domain.ErrDuplicateEmail
	case constraintProductsProduct:
		return domain.ErrDuplicateProductCode
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern arma el patrón ILIKE de "contiene" escapando comodines del usuario.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// isUUID indica si s es aceptable para una columna UUID. Un id con otro formato
// no puede existir en la tabla y PostgreSQL lo rechazaría con 22P02.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
