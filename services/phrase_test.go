package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

func TestCreatePhraseAcrossLanguagesRejected(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	yoruba := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")
	igbo := env.createLesson(t, admin, shared.LanguageIgbo, "Greetings")

	_, err := env.phraseSvc.CreatePhrase(admin, dto.CreatePhraseRequest{
		LessonIDs:   []string{yoruba.ID, igbo.ID},
		Text:        "Ẹ káàárọ̀",
		Translation: "Good morning",
	})
	requireReason(t, err, shared.ReasonLanguageMismatch)
}

func TestCreatePhraseUnknownLessonRejected(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	_, err := env.phraseSvc.CreatePhrase(admin, dto.CreatePhraseRequest{
		LessonIDs:   []string{"no-such-lesson"},
		Text:        "Ẹ káàárọ̀",
		Translation: "Good morning",
	})
	requireReason(t, err, shared.ReasonNotFound)
}

func TestLinkPhraseLanguageMismatch(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	yoruba := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")
	igbo := env.createLesson(t, admin, shared.LanguageIgbo, "Greetings")
	phrase := env.createPhrase(t, admin, []string{yoruba.ID}, "Ẹ káàárọ̀", "Good morning")

	_, err := env.phraseSvc.LinkPhrase(admin, phrase.ID, igbo.ID)
	requireReason(t, err, shared.ReasonLanguageMismatch)
}

func TestLinkPhraseIsIdempotent(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")

	resp, err := env.phraseSvc.LinkPhrase(admin, phrase.ID, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{lesson.ID}, resp.LessonIDs)
}

func TestUnlinkPhraseDeletesOrphan(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")
	question := env.createQuestion(t, admin, lesson.ID, phrase.ID)

	require.NoError(t, env.phraseSvc.UnlinkPhrase(admin, phrase.ID, lesson.ID))

	_, err := env.phraseSvc.GetPhrase(admin, phrase.ID)
	requireReason(t, err, shared.ReasonNotFound)
	_, err = env.questionSvc.GetQuestion(admin, question.ID)
	requireReason(t, err, shared.ReasonNotFound)
}

func TestUnlinkPhraseKeepsOtherLessons(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	a := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	b := env.createLesson(t, admin, shared.LanguageYoruba, "B")
	phrase := env.createPhrase(t, admin, []string{a.ID, b.ID}, "Báwo ni?", "How are you?")
	questionA := env.createQuestion(t, admin, a.ID, phrase.ID)
	questionB := env.createQuestion(t, admin, b.ID, phrase.ID)

	require.NoError(t, env.phraseSvc.UnlinkPhrase(admin, phrase.ID, a.ID))

	kept, err := env.phraseSvc.GetPhrase(admin, phrase.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, kept.LessonIDs)

	// Only the questions of the severed pair went away.
	_, err = env.questionSvc.GetQuestion(admin, questionA.ID)
	requireReason(t, err, shared.ReasonNotFound)
	_, err = env.questionSvc.GetQuestion(admin, questionB.ID)
	require.NoError(t, err)
}

func TestUnlinkPhraseWithoutLink(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	a := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	b := env.createLesson(t, admin, shared.LanguageYoruba, "B")
	phrase := env.createPhrase(t, admin, []string{a.ID}, "Ẹ káàárọ̀", "Good morning")

	err := env.phraseSvc.UnlinkPhrase(admin, phrase.ID, b.ID)
	requireReason(t, err, shared.ReasonNotFound)
}

func TestPublishPhraseRequiresFinished(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")

	// A draft never publishes; review happens at the finished checkpoint.
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")
	_, err := env.phraseSvc.PublishPhrase(admin, phrase.ID, dto.PublishRequest{})
	requireReason(t, err, shared.ReasonStateConflict)

	_, err = env.phraseSvc.FinishPhrase(admin, phrase.ID)
	require.NoError(t, err)
	published, err := env.phraseSvc.PublishPhrase(admin, phrase.ID, dto.PublishRequest{ReviewedByAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, shared.StatusPublished, published.Status)
	assert.True(t, published.AIMeta.ReviewedByAdmin)

	_, err = env.phraseSvc.PublishPhrase(admin, phrase.ID, dto.PublishRequest{})
	requireReason(t, err, shared.ReasonStateConflict)
}

func TestUpdatePublishedPhraseRejected(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")
	phrase := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")
	_, err := env.phraseSvc.FinishPhrase(admin, phrase.ID)
	require.NoError(t, err)
	_, err = env.phraseSvc.PublishPhrase(admin, phrase.ID, dto.PublishRequest{})
	require.NoError(t, err)

	text := "changed"
	_, err = env.phraseSvc.UpdatePhrase(admin, phrase.ID, dto.UpdatePhraseRequest{Text: &text})
	requireReason(t, err, shared.ReasonStateConflict)
}

func TestAttachAudioAndWorkQueue(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "Greetings")
	voiced := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàárọ̀", "Good morning")
	silent := env.createPhrase(t, admin, []string{lesson.ID}, "Ẹ káàsán", "Good afternoon")
	for _, id := range []string{voiced.ID, silent.ID} {
		_, err := env.phraseSvc.FinishPhrase(admin, id)
		require.NoError(t, err)
	}

	resp, err := env.phraseSvc.AttachAudio(admin, voiced.ID, dto.AudioDescriptor{
		Provider:   "voice_artist",
		Format:     "mp3",
		URL:        "https://cdn.example.com/audio/yo/1.mp3",
		StorageKey: "audio/yoruba/1.mp3",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Audio)
	assert.Equal(t, "mp3", resp.Audio.Format)

	queue, err := env.phraseSvc.ListMissingAudio(admin, shared.LanguageYoruba)
	require.NoError(t, err)
	require.Len(t, queue.Phrases, 1)
	assert.Equal(t, silent.ID, queue.Phrases[0].ID)
}
