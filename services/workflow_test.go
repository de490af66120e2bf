package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

// workflowEnv wires the content services against an in-memory database,
// bypassing the service container.
type workflowEnv struct {
	sqlSvc      *PostgresService
	scopeSvc    *ScopeService
	lessonSvc   *LessonService
	phraseSvc   *PhraseService
	proverbSvc  *ProverbService
	questionSvc *QuestionService
	aiSvc       *AiService
}

func newWorkflowEnv(t *testing.T) *workflowEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlSvc := &PostgresService{}
	require.NoError(t, sqlSvc.Migrate(db))
	sqlSvc.db = db
	sqlSvc.bindRepositories(db)

	scopeSvc := &ScopeService{sqlSvc: sqlSvc}
	lessonSvc := &LessonService{sqlSvc: sqlSvc, scopeSvc: scopeSvc}
	phraseSvc := &PhraseService{sqlSvc: sqlSvc, scopeSvc: scopeSvc}
	proverbSvc := &ProverbService{sqlSvc: sqlSvc, scopeSvc: scopeSvc}
	questionSvc := &QuestionService{sqlSvc: sqlSvc, scopeSvc: scopeSvc}
	aiSvc := &AiService{sqlSvc: sqlSvc, scopeSvc: scopeSvc, lessonSvc: lessonSvc, phraseSvc: phraseSvc}

	return &workflowEnv{
		sqlSvc:      sqlSvc,
		scopeSvc:    scopeSvc,
		lessonSvc:   lessonSvc,
		phraseSvc:   phraseSvc,
		proverbSvc:  proverbSvc,
		questionSvc: questionSvc,
		aiSvc:       aiSvc,
	}
}

func adminActor() dto.Actor {
	return dto.Actor{ID: "admin-1", Role: shared.RoleAdmin}
}

func tutorActor(language string) dto.Actor {
	return dto.Actor{ID: "tutor-1", Role: shared.RoleTutor, ScopeLanguage: language}
}

func (env *workflowEnv) createLesson(t *testing.T, actor dto.Actor, language, title string) *dto.LessonResponse {
	t.Helper()
	lesson, err := env.lessonSvc.CreateLesson(actor, dto.CreateLessonRequest{
		Title:    title,
		Language: language,
		Level:    shared.LevelBeginner,
	})
	require.NoError(t, err)
	return lesson
}

func (env *workflowEnv) createPhrase(t *testing.T, actor dto.Actor, lessonIDs []string, text, translation string) *dto.PhraseResponse {
	t.Helper()
	phrase, err := env.phraseSvc.CreatePhrase(actor, dto.CreatePhraseRequest{
		LessonIDs:   lessonIDs,
		Text:        text,
		Translation: translation,
	})
	require.NoError(t, err)
	return phrase
}

func (env *workflowEnv) createQuestion(t *testing.T, actor dto.Actor, lessonID, phraseID string) *dto.QuestionResponse {
	t.Helper()
	question, err := env.questionSvc.CreateQuestion(actor, dto.CreateQuestionRequest{
		LessonID:       lessonID,
		PhraseID:       phraseID,
		Type:           shared.QuestionTypeMultipleChoice,
		PromptTemplate: "What does {{phrase}} mean?",
		Options:        []string{"Good morning", "Good night"},
		CorrectIndex:   0,
	})
	require.NoError(t, err)
	return question
}

// requireReason asserts the error is an AppError carrying the given reason code.
func requireReason(t *testing.T, err error, reason string) *shared.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	require.Equal(t, reason, appErr.Reason)
	return appErr
}
