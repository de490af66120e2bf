package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

func TestCreateQuestionPhraseNotInLesson(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	a := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	b := env.createLesson(t, admin, shared.LanguageYoruba, "B")
	phrase := env.createPhrase(t, admin, []string{a.ID}, "Ẹ káàárọ̀", "Good morning")

	_, err := env.questionSvc.CreateQuestion(admin, dto.CreateQuestionRequest{
		LessonID:       b.ID,
		PhraseID:       phrase.ID,
		Type:           shared.QuestionTypeMultipleChoice,
		PromptTemplate: "What does {{phrase}} mean?",
		Options:        []string{"Good morning", "Good night"},
		CorrectIndex:   0,
	})
	requireReason(t, err, shared.ReasonPhraseNotInLesson)
}

func TestCreateQuestionOnPublishedLessonRejected(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")
	_, err := env.lessonSvc.PublishLesson(admin, lesson.ID)
	require.NoError(t, err)

	_, err = env.questionSvc.CreateQuestion(admin, dto.CreateQuestionRequest{
		LessonID:       lesson.ID,
		PhraseID:       phrase.ID,
		Type:           shared.QuestionTypeMultipleChoice,
		PromptTemplate: "What does {{phrase}} mean?",
		Options:        []string{"Good morning", "Good night"},
		CorrectIndex:   0,
	})
	requireReason(t, err, shared.ReasonStateConflict)
}

func TestCreateQuestionCorrectIndexBounds(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")

	_, err := env.questionSvc.CreateQuestion(admin, dto.CreateQuestionRequest{
		LessonID:       lesson.ID,
		PhraseID:       phrase.ID,
		Type:           shared.QuestionTypeMultipleChoice,
		PromptTemplate: "What does {{phrase}} mean?",
		Options:        []string{"Good morning", "Good night"},
		CorrectIndex:   2,
	})
	requireReason(t, err, shared.ReasonValidationError)
}

func TestCreateWordOrderQuestion(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Mo fẹ́ jẹun", "I want to eat")

	base := dto.CreateQuestionRequest{
		LessonID:       lesson.ID,
		PhraseID:       phrase.ID,
		Type:           shared.QuestionTypeWordOrder,
		PromptTemplate: "Arrange the words",
		Options:        []string{"n/a", "n/a"},
		CorrectIndex:   0,
	}

	// review_data is mandatory for word_order.
	_, err := env.questionSvc.CreateQuestion(admin, base)
	requireReason(t, err, shared.ReasonValidationError)

	// The answer key must be a permutation of the word positions.
	bad := base
	bad.ReviewData = &dto.ReviewDataInput{
		Sentence:     "Mo fẹ́ jẹun",
		Words:        []string{"Mo", "fẹ́", "jẹun"},
		CorrectOrder: []int{0, 0, 2},
	}
	_, err = env.questionSvc.CreateQuestion(admin, bad)
	requireReason(t, err, shared.ReasonValidationError)

	good := base
	good.ReviewData = &dto.ReviewDataInput{
		Sentence:     "Mo fẹ́ jẹun",
		Words:        []string{"Mo", "fẹ́", "jẹun"},
		CorrectOrder: []int{0, 1, 2},
		Meaning:      "I want to eat",
	}
	created, err := env.questionSvc.CreateQuestion(admin, good)
	require.NoError(t, err)
	require.NotNil(t, created.ReviewData)
	assert.Equal(t, []int{0, 1, 2}, created.ReviewData.CorrectOrder)
}

func TestPublishQuestionGates(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")
	question := env.createQuestion(t, admin, lesson.ID, phrase.ID)

	// Draft question: the caller learns the question itself is the blocker.
	_, err := env.questionSvc.PublishQuestion(admin, question.ID)
	requireReason(t, err, shared.ReasonQuestionNotFinished)

	_, err = env.questionSvc.FinishQuestion(admin, question.ID)
	require.NoError(t, err)

	// Finished question on an unpublished phrase: the phrase is the blocker.
	_, err = env.questionSvc.PublishQuestion(admin, question.ID)
	requireReason(t, err, shared.ReasonPhraseNotPublished)

	_, err = env.phraseSvc.FinishPhrase(admin, phrase.ID)
	require.NoError(t, err)
	_, err = env.phraseSvc.PublishPhrase(admin, phrase.ID, dto.PublishRequest{})
	require.NoError(t, err)

	published, err := env.questionSvc.PublishQuestion(admin, question.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusPublished, published.Status)
}

func TestSendBackToTutor(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	tutor := tutorActor(shared.LanguageYoruba)

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")
	question := env.createQuestion(t, admin, lesson.ID, phrase.ID)
	_, err := env.questionSvc.FinishQuestion(admin, question.ID)
	require.NoError(t, err)

	_, err = env.questionSvc.SendBackToTutor(tutor, question.ID)
	requireReason(t, err, shared.ReasonForbidden)

	reopened, err := env.questionSvc.SendBackToTutor(admin, question.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusDraft, reopened.Status)

	// Only finished questions can be sent back.
	_, err = env.questionSvc.SendBackToTutor(admin, question.ID)
	requireReason(t, err, shared.ReasonStateConflict)
}

func TestFinishQuestionTwiceRejected(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")
	question := env.createQuestion(t, admin, lesson.ID, phrase.ID)

	_, err := env.questionSvc.FinishQuestion(admin, question.ID)
	require.NoError(t, err)
	_, err = env.questionSvc.FinishQuestion(admin, question.ID)
	requireReason(t, err, shared.ReasonStateConflict)
}
