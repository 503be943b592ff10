package entity_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/plm-api/internal/domain/entity"
)

func TestGrantsFromRoles_UnoAUnoSinJerarquia(t *testing.T) {
	grants := entity.GrantsFromRoles([]entity.Role{
		{ID: 2, Name: entity.RoleAdmin},
		{ID: 2, Name: entity.RoleAdmin},
		{ID: 3, Name: ""},
	})
	assert.Equal(t, []string{entity.RoleAdmin}, grants, "ROLE_ADMIN no implica ROLE_USER")
}

func TestGrantsFromRoles_Ordenados(t *testing.T) {
	grants := entity.GrantsFromRoles([]entity.Role{{Name: "ROLE_USER"}, {Name: "ROLE_ADMIN"}})
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_USER"}, grants)
}

func TestPrincipal_HasAnyGrant(t *testing.T) {
	p := entity.NewPrincipal(&entity.User{
		ID:       "u1",
		Username: "alice",
		Roles:    []entity.Role{{Name: entity.RoleUser}},
	})
	assert.Equal(t, "alice", p.Username)
	assert.True(t, p.HasAnyGrant(entity.RoleAdmin, entity.RoleUser))
	assert.False(t, p.HasAnyGrant(entity.RoleAdmin))

	var nilPrincipal *entity.Principal
	assert.False(t, nilPrincipal.HasAnyGrant(entity.RoleUser))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@x.com", entity.NormalizeEmail("  Alice@X.com "))
}

func TestNormalizeEmail_Concurrente(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]string, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = entity.NormalizeEmail(fmt.Sprintf(" User%d@Example.COM", i))
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		assert.Equal(t, fmt.Sprintf("user%d@example.com", i), got)
	}
}
