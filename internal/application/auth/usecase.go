package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/plm-api/internal/application/dto"
	"github.com/jhoicas/plm-api/internal/domain"
	"github.com/jhoicas/plm-api/internal/domain/entity"
	"github.com/jhoicas/plm-api/internal/domain/repository"
	"github.com/jhoicas/plm-api/pkg/jwt"
)

// JWTConfig configuración para emisión de tokens bearer. Secret vacío desactiva los tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y resolución del principal.
type AuthUseCase struct {
	userRepo repository.UserRepository
	txRunner UserTxRunner
	hasher   PasswordHasher
	jwtCfg   JWTConfig

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, txRunner UserTxRunner, hasher PasswordHasher, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, txRunner: txRunner, hasher: hasher, jwtCfg: jwtCfg}
}

// TokensEnabled indica si Login emite tokens bearer.
func (uc *AuthUseCase) TokensEnabled() bool { return uc.jwtCfg.Secret != "" }

// Register crea un usuario: valida unicidad, hashea el password, resuelve roles y persiste todo en una transacción.
// Un rol solicitado que no existe se sustituye por ROLE_USER; si ROLE_USER no existe devuelve ErrConfiguration.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	log := zerolog.Ctx(ctx)
	username := strings.TrimSpace(in.Username)
	email := entity.NormalizeEmail(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username, email y password son requeridos", domain.ErrInvalidInput)
	}
	log.Info().Str("username", username).Msg("registrando usuario")

	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateUsername
	}
	exists, err = uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.RunUsers(ctx, func(userRepo repository.UserRepository, roleRepo repository.RoleRepository) error {
		roles, err := resolveRoles(ctx, roleRepo, in.RequestedRoles())
		if err != nil {
			return err
		}
		user.Roles = roles
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("username", user.Username).Strs("roles", user.RoleNames()).Msg("usuario registrado")
	return dto.NewUserResponse(user), nil
}

// resolveRoles busca cada nombre en el almacén de roles; los desconocidos se reemplazan por el rol por defecto.
func resolveRoles(ctx context.Context, roleRepo repository.RoleRepository, requested []string) ([]entity.Role, error) {
	var fallback *entity.Role
	defaultRole := func() (*entity.Role, error) {
		if fallback != nil {
			return fallback, nil
		}
		r, err := roleRepo.GetByName(ctx, entity.DefaultRole)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, fmt.Errorf("%w: el rol por defecto %s no existe", domain.ErrConfiguration, entity.DefaultRole)
		}
		fallback = r
		return r, nil
	}

	if len(requested) == 0 {
		r, err := defaultRole()
		if err != nil {
			return nil, err
		}
		return []entity.Role{*r}, nil
	}

	seen := make(map[string]struct{}, len(requested))
	roles := make([]entity.Role, 0, len(requested))
	for _, name := range requested {
		name = strings.TrimSpace(name)
		r, err := roleRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if r == nil {
			zerolog.Ctx(ctx).Warn().
				Str("role", name).
				Str("default_role", entity.DefaultRole).
				Msg("el rol solicitado no existe, se asigna el rol por defecto")
			if r, err = defaultRole(); err != nil {
				return nil, err
			}
		}
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		roles = append(roles, *r)
	}
	return roles, nil
}

// Authenticate verifica username (o email) y password y devuelve el principal.
// Usuario desconocido y password incorrecto devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*entity.Principal, error) {
	log := zerolog.Ctx(ctx)
	user, err := uc.findByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Igualar tiempos con el caso de password incorrecto.
		_ = uc.hasher.Verify(uc.dummy(), password)
		log.Debug().Str("login", login).Msg("autenticación fallida: usuario desconocido")
		return nil, domain.ErrInvalidCredentials
	}
	if err := uc.hasher.Verify(user.PasswordHash, password); err != nil {
		log.Debug().Str("username", user.Username).Msg("autenticación fallida: password incorrecto")
		return nil, err
	}
	return entity.NewPrincipal(user), nil
}

// Login autentica y, si hay secret configurado, emite un JWT con el principal.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	principal, err := uc.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		return nil, err
	}
	out := &dto.LoginResponse{
		Message:   "login exitoso",
		Principal: ToPrincipalResponse(principal),
	}
	if uc.TokensEnabled() {
		token, err := jwt.Generate(uc.jwtCfg.Secret, principal.UserID, principal.Username, principal.Grants, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
		if err != nil {
			return nil, fmt.Errorf("generar token: %w", err)
		}
		out.Token = token
	}
	zerolog.Ctx(ctx).Info().Str("username", principal.Username).Msg("login exitoso")
	return out, nil
}

// PrincipalFromToken valida un JWT emitido por Login y reconstruye el principal.
func (uc *AuthUseCase) PrincipalFromToken(tokenString string) (*entity.Principal, error) {
	if !uc.TokensEnabled() {
		return nil, domain.ErrUnauthorized
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return &entity.Principal{UserID: claims.UserID, Username: claims.Username, Grants: claims.Roles}, nil
}

func (uc *AuthUseCase) findByLogin(ctx context.Context, login string) (*entity.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, nil
	}
	user, err := uc.userRepo.GetByUsername(ctx, login)
	if err != nil || user != nil {
		return user, err
	}
	return uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(login))
}

func (uc *AuthUseCase) dummy() string {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = uc.hasher.Hash(uuid.New().String())
	})
	return uc.dummyHash
}

// ToPrincipalResponse convierte el principal al DTO de salida.
func ToPrincipalResponse(p *entity.Principal) dto.PrincipalResponse {
	roles := p.Grants
	if roles == nil {
		roles = []string{}
	}
	return dto.PrincipalResponse{UserID: p.UserID, Username: p.Username, Roles: roles}
}
