package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

func newAuthSvc(env *workflowEnv) *AuthService {
	return &AuthService{
		sqlSvc: env.sqlSvc,
		jwtSvc: &JWTService{
			AccessTokenDuration: time.Hour,
			jwtSecretKey:        "test-secret",
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newWorkflowEnv(t)
	authSvc := newAuthSvc(env)

	registered, err := authSvc.Register(dto.RegisterRequest{
		Username: "ada",
		Email:    "Ada@Example.com",
		Password: "Str0ng!pass",
		Role:     shared.RoleTutor,
		Language: shared.LanguageIgbo,
	})
	require.NoError(t, err)
	assert.Equal(t, shared.RoleTutor, registered.Role)

	// Registration creates the tutor's language scope.
	actor, err := env.scopeSvc.ResolveActor(registered.UserID, shared.RoleTutor)
	require.NoError(t, err)
	assert.Equal(t, shared.LanguageIgbo, actor.ScopeLanguage)

	// Login works by email (stored lowercased) or username.
	login, err := authSvc.Login(dto.LoginRequest{EmailOrUsername: "ada@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Tokens.AccessToken)

	_, err = authSvc.Login(dto.LoginRequest{EmailOrUsername: "ada", Password: "wrong"})
	requireReason(t, err, shared.ReasonUnauthorized)
}

func TestRegisterTutorRequiresLanguage(t *testing.T) {
	env := newWorkflowEnv(t)
	authSvc := newAuthSvc(env)

	_, err := authSvc.Register(dto.RegisterRequest{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "Str0ng!pass",
		Role:     shared.RoleTutor,
	})
	requireReason(t, err, shared.ReasonValidationError)
}

func TestRefreshToken(t *testing.T) {
	env := newWorkflowEnv(t)
	authSvc := newAuthSvc(env)

	registered, err := authSvc.Register(dto.RegisterRequest{
		Username: "bayo",
		Email:    "bayo@example.com",
		Password: "Str0ng!pass",
		Role:     shared.RoleAdmin,
	})
	require.NoError(t, err)

	refreshed, err := authSvc.Refresh(registered.UserID)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, refreshed.UserID)
	assert.NotEmpty(t, refreshed.Tokens.AccessToken)

	// A token can still be unexpired after the account disappears.
	_, err = authSvc.Refresh("no-such-user")
	requireReason(t, err, shared.ReasonUnauthorized)
}
