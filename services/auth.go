// services/auth.go
package services

import (
	"errors"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/model"
	"github.com/naija-lingo/lingo_api/shared"
)

// AuthService handles registration, login and the request auth middleware.
type AuthService struct {
	context.DefaultService
	sqlSvc *PostgresService
	jwtSvc *JWTService
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

// ==================== REGISTRATION / LOGIN ====================

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role := req.Role
	if role == "" {
		role = shared.RoleTutor
	}
	if (role == shared.RoleTutor || role == shared.RoleVoiceArtist) && req.Language == "" {
		return nil, shared.NewBadRequestError(nil, "tutors and voice artists must declare a language")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError(err, "failed to hash password")
	}

	user := &model.User{
		Email:    strings.ToLower(req.Email),
		Username: req.Username,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	user, err = svc.sqlSvc.Users().Create(user)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if req.Language != "" && (role == shared.RoleTutor || role == shared.RoleVoiceArtist) {
		_, err := svc.sqlSvc.Users().CreateTutorProfile(&model.TutorProfile{
			UserID:   user.ID,
			Language: req.Language,
			IsActive: true,
		})
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	log.WithFields(log.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")

	return &dto.RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.sqlSvc.Users().GetByEmailOrUsername(strings.ToLower(req.EmailOrUsername))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError("invalid credentials")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError("invalid credentials")
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, shared.NewInternalError(err, "failed to issue token")
	}

	if err := svc.sqlSvc.Users().UpdateLastLogin(user.ID); err != nil {
		log.WithError(err).Warn("Failed to record last login")
	}

	return &dto.LoginResponse{
		UserID: user.ID,
		Role:   user.Role,
		Tokens: *tokens,
	}, nil
}

// Refresh reissues a token for an authenticated caller. The account is
// re-checked so deactivated users cannot extend their session.
func (svc *AuthService) Refresh(userID string) (*dto.LoginResponse, error) {
	user, err := svc.sqlSvc.Users().Get(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewUnauthorizedError("account is gone or deactivated")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	tokens, err := svc.jwtSvc.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, shared.NewInternalError(err, "failed to issue token")
	}

	return &dto.LoginResponse{
		UserID: user.ID,
		Role:   user.Role,
		Tokens: *tokens,
	}, nil
}

// ==================== MIDDLEWARE ====================

// RequiredAuth validates the bearer token and stashes the caller identity in
// the request locals.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return shared.NewUnauthorizedError("missing bearer token")
		}

		userID, role, err := svc.jwtSvc.VerifyJWTToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return shared.NewUnauthorizedError("invalid or expired token")
		}

		c.Locals(shared.UserID, userID)
		c.Locals(shared.UserRole, role)
		return c.Next()
	}
}

// RequireRole allows only the listed roles past; RequiredAuth must run first.
func (svc *AuthService) RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(shared.UserRole).(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return shared.NewForbiddenError("insufficient role")
	}
}
