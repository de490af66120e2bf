package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

func TestCreateLessonAppendsPerLanguage(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	a := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")
	b := env.createLesson(t, admin, shared.LanguageYoruba, "Family")
	c := env.createLesson(t, admin, shared.LanguageIgbo, "Numbers")

	assert.Equal(t, 0, a.OrderIndex)
	assert.Equal(t, 1, b.OrderIndex)
	assert.Equal(t, 0, c.OrderIndex, "each language keeps its own order partition")
}

func TestDeleteLessonCompactsOrderIndexes(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	first := env.createLesson(t, admin, shared.LanguageYoruba, "First")
	middle := env.createLesson(t, admin, shared.LanguageYoruba, "Middle")
	last := env.createLesson(t, admin, shared.LanguageYoruba, "Last")

	require.NoError(t, env.lessonSvc.DeleteLesson(admin, middle.ID))

	listing, err := env.lessonSvc.ListLessons(admin, shared.LanguageYoruba)
	require.NoError(t, err)
	require.Len(t, listing.Lessons, 2)
	assert.Equal(t, first.ID, listing.Lessons[0].ID)
	assert.Equal(t, 0, listing.Lessons[0].OrderIndex)
	assert.Equal(t, last.ID, listing.Lessons[1].ID)
	assert.Equal(t, 1, listing.Lessons[1].OrderIndex)
}

func TestReorderLessons(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	a := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	b := env.createLesson(t, admin, shared.LanguageYoruba, "B")
	c := env.createLesson(t, admin, shared.LanguageYoruba, "C")

	listing, err := env.lessonSvc.ReorderLessons(admin, dto.ReorderLessonsRequest{
		Language:   shared.LanguageYoruba,
		OrderedIDs: []string{c.ID, a.ID, b.ID},
	})
	require.NoError(t, err)
	require.Len(t, listing.Lessons, 3)
	assert.Equal(t, c.ID, listing.Lessons[0].ID)
	assert.Equal(t, a.ID, listing.Lessons[1].ID)
	assert.Equal(t, b.ID, listing.Lessons[2].ID)
}

func TestReorderLessonsRejectsSetMismatch(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	a := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	b := env.createLesson(t, admin, shared.LanguageYoruba, "B")

	cases := []struct {
		name string
		ids  []string
	}{
		{"missing id", []string{a.ID}},
		{"unknown id", []string{a.ID, b.ID, "no-such-lesson"}},
		{"duplicate id", []string{a.ID, a.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.lessonSvc.ReorderLessons(admin, dto.ReorderLessonsRequest{
				Language:   shared.LanguageYoruba,
				OrderedIDs: tc.ids,
			})
			requireReason(t, err, shared.ReasonOrderSetMismatch)
		})
	}

	// A rejected reorder must not have touched the stored order.
	listing, err := env.lessonSvc.ListLessons(admin, shared.LanguageYoruba)
	require.NoError(t, err)
	assert.Equal(t, a.ID, listing.Lessons[0].ID)
	assert.Equal(t, b.ID, listing.Lessons[1].ID)
}

func TestLessonLifecycle(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")
	assert.Equal(t, shared.StatusDraft, lesson.Status)

	finished, err := env.lessonSvc.FinishLesson(admin, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusFinished, finished.Status)

	published, err := env.lessonSvc.PublishLesson(admin, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	_, err = env.lessonSvc.FinishLesson(admin, lesson.ID)
	requireReason(t, err, shared.ReasonStateConflict)
}

func TestPublishLessonStraightFromDraft(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")

	published, err := env.lessonSvc.PublishLesson(admin, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.StatusPublished, published.Status)
}

func TestUpdatePublishedLessonRejected(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")
	_, err := env.lessonSvc.PublishLesson(admin, lesson.ID)
	require.NoError(t, err)

	title := "New title"
	_, err = env.lessonSvc.UpdateLesson(admin, lesson.ID, dto.UpdateLessonRequest{Title: &title})
	requireReason(t, err, shared.ReasonStateConflict)
}

func TestUpdateLessonLanguageMovesAcrossPartitions(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	env.createLesson(t, admin, shared.LanguageYoruba, "Y0")
	moved := env.createLesson(t, admin, shared.LanguageYoruba, "Y1")
	tail := env.createLesson(t, admin, shared.LanguageYoruba, "Y2")
	env.createLesson(t, admin, shared.LanguageIgbo, "I0")

	igbo := shared.LanguageIgbo
	resp, err := env.lessonSvc.UpdateLesson(admin, moved.ID, dto.UpdateLessonRequest{Language: &igbo})
	require.NoError(t, err)
	assert.Equal(t, shared.LanguageIgbo, resp.Language)
	assert.Equal(t, 1, resp.OrderIndex, "moved lesson appends to the target partition")

	// The vacated partition closed its gap.
	listing, err := env.lessonSvc.ListLessons(admin, shared.LanguageYoruba)
	require.NoError(t, err)
	require.Len(t, listing.Lessons, 2)
	assert.Equal(t, 1, listing.Lessons[1].OrderIndex)
	assert.Equal(t, tail.ID, listing.Lessons[1].ID)
}

func TestUpdateLessonLanguageRejectedWhileLinked(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")

	// The linked phrase carries yoruba; moving the lesson would strand it.
	igbo := shared.LanguageIgbo
	_, err := env.lessonSvc.UpdateLesson(admin, lesson.ID, dto.UpdateLessonRequest{Language: &igbo})
	requireReason(t, err, shared.ReasonLanguageMismatch)

	kept, err := env.lessonSvc.GetLesson(admin, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.LanguageYoruba, kept.Language)

	// Shedding the link frees the lesson to move.
	require.NoError(t, env.phraseSvc.UnlinkPhrase(admin, phrase.ID, lesson.ID))
	moved, err := env.lessonSvc.UpdateLesson(admin, lesson.ID, dto.UpdateLessonRequest{Language: &igbo})
	require.NoError(t, err)
	assert.Equal(t, shared.LanguageIgbo, moved.Language)
}

func TestDeleteLessonCascade(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	doomed := env.createLesson(t, admin, shared.LanguageYoruba, "Doomed")
	survivor := env.createLesson(t, admin, shared.LanguageYoruba, "Survivor")

	exclusive := env.createPhrase(t, admin, []string{doomed.ID}, "Ẹ káàárọ̀", "Good morning")
	sharedPhrase := env.createPhrase(t, admin, []string{doomed.ID, survivor.ID}, "Báwo ni?", "How are you?")

	onExclusive := env.createQuestion(t, admin, doomed.ID, exclusive.ID)
	onShared := env.createQuestion(t, admin, doomed.ID, sharedPhrase.ID)
	elsewhere := env.createQuestion(t, admin, survivor.ID, sharedPhrase.ID)

	require.NoError(t, env.lessonSvc.DeleteLesson(admin, doomed.ID))

	_, err := env.lessonSvc.GetLesson(admin, doomed.ID)
	requireReason(t, err, shared.ReasonNotFound)

	// The phrase that only lived in the deleted lesson is gone with its questions.
	_, err = env.phraseSvc.GetPhrase(admin, exclusive.ID)
	requireReason(t, err, shared.ReasonNotFound)
	_, err = env.questionSvc.GetQuestion(admin, onExclusive.ID)
	requireReason(t, err, shared.ReasonNotFound)

	// The shared phrase survives in the other lesson, minus the deleted
	// lesson's question.
	kept, err := env.phraseSvc.GetPhrase(admin, sharedPhrase.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{survivor.ID}, kept.LessonIDs)
	_, err = env.questionSvc.GetQuestion(admin, onShared.ID)
	requireReason(t, err, shared.ReasonNotFound)
	_, err = env.questionSvc.GetQuestion(admin, elsewhere.ID)
	require.NoError(t, err)
}

func TestDeleteLessonTwiceRejected(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Once")
	require.NoError(t, env.lessonSvc.DeleteLesson(admin, lesson.ID))

	err := env.lessonSvc.DeleteLesson(admin, lesson.ID)
	requireReason(t, err, shared.ReasonNotFound)
}
