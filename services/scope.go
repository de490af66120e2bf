package services

import (
	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

// ScopeService resolves which language partition a caller may author in.
// Admins and the AI pipeline are unscoped; tutors and voice artists act inside
// the single language of their active profile.
type ScopeService struct {
	context.DefaultService
	sqlSvc *PostgresService
}

const SCOPE_SVC = "scope_svc"

func (svc ScopeService) Id() string {
	return SCOPE_SVC
}

func (svc *ScopeService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ScopeService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ResolveActor builds the workflow actor for an authenticated user. A tutor
// without an active profile gets an empty scope and can author nothing.
func (svc *ScopeService) ResolveActor(userID, role string) (dto.Actor, error) {
	actor := dto.Actor{ID: userID, Role: role}

	if role != shared.RoleTutor && role != shared.RoleVoiceArtist {
		return actor, nil
	}

	profile, err := svc.sqlSvc.Users().ActiveTutorProfile(userID)
	if err != nil {
		return actor, svc.sqlSvc.HandleError(err)
	}
	if profile == nil {
		log.WithField("user_id", userID).Warn("Scoped user has no active language profile")
		return actor, nil
	}

	actor.ScopeLanguage = profile.Language
	return actor, nil
}

// CanAccess reports whether the actor may touch content in the language.
func (svc *ScopeService) CanAccess(actor dto.Actor, language string) bool {
	switch actor.Role {
	case shared.RoleAdmin, shared.RoleAI:
		return true
	default:
		return actor.ScopeLanguage != "" && actor.ScopeLanguage == language
	}
}

// GuardLanguage rejects out-of-scope access. The rejection is a not-found so a
// probing caller cannot distinguish foreign content from absent content.
func (svc *ScopeService) GuardLanguage(actor dto.Actor, language, entity string) error {
	if svc.CanAccess(actor, language) {
		return nil
	}
	return shared.NewNotFoundError(entity)
}
