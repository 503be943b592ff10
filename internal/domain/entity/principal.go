package entity

import "sort"

// Principal es la identidad autenticada de una petición junto con sus grants.
type Principal struct {
	UserID   string
	Username string
	Grants   []string
}

// HasAnyGrant indica si el principal tiene al menos uno de los grants indicados.
func (p *Principal) HasAnyGrant(grants ...string) bool {
	if p == nil {
		return false
	}
	for _, want := range grants {
		for _, g := range p.Grants {
			if g == want {
				return true
			}
		}
	}
	return false
}

// GrantsFromRoles convierte roles en grants: un nombre de rol es exactamente un grant,
// sin jerarquía (ROLE_ADMIN no implica ROLE_USER). Resultado ordenado y sin duplicados.
func GrantsFromRoles(roles []Role) []string {
	seen := make(map[string]struct{}, len(roles))
	grants := make([]string, 0, len(roles))
	for _, r := range roles {
		if r.Name == "" {
			continue
		}
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		grants = append(grants, r.Name)
	}
	sort.Strings(grants)
	return grants
}

// NewPrincipal construye el principal de un usuario autenticado.
func NewPrincipal(u *User) *Principal {
	return &Principal{
		UserID:   u.ID,
		Username: u.Username,
		Grants:   GrantsFromRoles(u.Roles),
	}
}
