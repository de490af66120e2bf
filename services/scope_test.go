package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-lingo/lingo_api/model"
	"github.com/naija-lingo/lingo_api/shared"
)

func TestResolveActor(t *testing.T) {
	env := newWorkflowEnv(t)

	scoped, err := env.sqlSvc.Users().Create(&model.User{
		Email: "tutor@example.com", Username: "tutor", Role: shared.RoleTutor, IsActive: true,
	})
	require.NoError(t, err)
	_, err = env.sqlSvc.Users().CreateTutorProfile(&model.TutorProfile{
		UserID: scoped.ID, Language: shared.LanguageYoruba, IsActive: true,
	})
	require.NoError(t, err)

	unscoped, err := env.sqlSvc.Users().Create(&model.User{
		Email: "new@example.com", Username: "newtutor", Role: shared.RoleTutor, IsActive: true,
	})
	require.NoError(t, err)

	actor, err := env.scopeSvc.ResolveActor(scoped.ID, shared.RoleTutor)
	require.NoError(t, err)
	assert.Equal(t, shared.LanguageYoruba, actor.ScopeLanguage)

	// No active profile means no authoring scope at all.
	actor, err = env.scopeSvc.ResolveActor(unscoped.ID, shared.RoleTutor)
	require.NoError(t, err)
	assert.Empty(t, actor.ScopeLanguage)

	// Admins are never scoped; no profile lookup happens.
	actor, err = env.scopeSvc.ResolveActor("admin-1", shared.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, actor.ScopeLanguage)
}

func TestResolveActorDeactivatedProfile(t *testing.T) {
	env := newWorkflowEnv(t)

	user, err := env.sqlSvc.Users().Create(&model.User{
		Email: "tutor@example.com", Username: "tutor", Role: shared.RoleTutor, IsActive: true,
	})
	require.NoError(t, err)
	_, err = env.sqlSvc.Users().CreateTutorProfile(&model.TutorProfile{
		UserID: user.ID, Language: shared.LanguageYoruba, IsActive: true,
	})
	require.NoError(t, err)
	require.NoError(t, env.sqlSvc.Users().DeactivateTutorProfile(user.ID))

	actor, err := env.scopeSvc.ResolveActor(user.ID, shared.RoleTutor)
	require.NoError(t, err)
	assert.Empty(t, actor.ScopeLanguage)
}

func TestCanAccess(t *testing.T) {
	env := newWorkflowEnv(t)

	assert.True(t, env.scopeSvc.CanAccess(adminActor(), shared.LanguageHausa))
	assert.True(t, env.scopeSvc.CanAccess(tutorActor(shared.LanguageYoruba), shared.LanguageYoruba))
	assert.False(t, env.scopeSvc.CanAccess(tutorActor(shared.LanguageYoruba), shared.LanguageIgbo))

	// An empty scope grants nothing, not everything.
	unscoped := tutorActor("")
	assert.False(t, env.scopeSvc.CanAccess(unscoped, shared.LanguageYoruba))
}

func TestOutOfScopeAccessLooksLikeNotFound(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	tutor := tutorActor(shared.LanguageYoruba)

	igboLesson := env.createLesson(t, admin, shared.LanguageIgbo, "Igbo lesson")

	_, err := env.lessonSvc.GetLesson(tutor, igboLesson.ID)
	appErr := requireReason(t, err, shared.ReasonNotFound)
	assert.Equal(t, 404, appErr.StatusCode, "scope violations are indistinguishable from missing content")

	err = env.lessonSvc.DeleteLesson(tutor, igboLesson.ID)
	requireReason(t, err, shared.ReasonNotFound)

	// In scope, the same tutor operates normally.
	own := env.createLesson(t, tutor, shared.LanguageYoruba, "Yoruba lesson")
	got, err := env.lessonSvc.GetLesson(tutor, own.ID)
	require.NoError(t, err)
	assert.Equal(t, own.ID, got.ID)
}
