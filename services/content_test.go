package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

func newContentSvc(env *workflowEnv) *ContentService {
	return &ContentService{
		sqlSvc:     env.sqlSvc,
		lessonSvc:  env.lessonSvc,
		phraseSvc:  env.phraseSvc,
		proverbSvc: env.proverbSvc,
		quizSvc:    env.questionSvc,
	}
}

func TestGetCatalogListsPublishedOnly(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	contentSvc := newContentSvc(env)

	live := env.createLesson(t, admin, shared.LanguageYoruba, "Live")
	env.createLesson(t, admin, shared.LanguageYoruba, "Still draft")
	_, err := env.lessonSvc.PublishLesson(admin, live.ID)
	require.NoError(t, err)

	catalog, err := contentSvc.GetCatalog(shared.LanguageYoruba)
	require.NoError(t, err)
	require.Len(t, catalog.Lessons, 1)
	assert.Equal(t, live.ID, catalog.Lessons[0].ID)

	_, err = contentSvc.GetCatalog("klingon")
	requireReason(t, err, shared.ReasonValidationError)
}

func TestGetLessonContentFiltersUnpublished(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	contentSvc := newContentSvc(env)

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")

	visible := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")
	env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàsán", "Good afternoon")
	_, err := env.phraseSvc.FinishPhrase(admin, visible.ID)
	require.NoError(t, err)
	_, err = env.phraseSvc.PublishPhrase(admin, visible.ID, dto.PublishRequest{})
	require.NoError(t, err)

	question := env.createQuestion(t, admin, lesson.ID, visible.ID)
	_, err = env.questionSvc.FinishQuestion(admin, question.ID)
	require.NoError(t, err)
	_, err = env.questionSvc.PublishQuestion(admin, question.ID)
	require.NoError(t, err)

	// Draft lessons are invisible to learners.
	_, err = contentSvc.GetLessonContent(lesson.ID)
	requireReason(t, err, shared.ReasonNotFound)

	_, err = env.lessonSvc.PublishLesson(admin, lesson.ID)
	require.NoError(t, err)

	content, err := contentSvc.GetLessonContent(lesson.ID)
	require.NoError(t, err)
	require.Len(t, content.Phrases, 1)
	assert.Equal(t, visible.ID, content.Phrases[0].ID)
	require.Len(t, content.Quiz, 1)
	assert.Equal(t, question.ID, content.Quiz[0].ID)
}
