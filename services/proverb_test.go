package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

func strPtr(s string) *string { return &s }

func TestNormalizeProverbText(t *testing.T) {
	assert.Equal(t, "ìwà l'ẹwà", NormalizeProverbText("  Ìwà l'ẹwà "))
	assert.Equal(t, "", NormalizeProverbText("   "))
}

func TestCreateProverbMergesDuplicateText(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	a := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	b := env.createLesson(t, admin, shared.LanguageYoruba, "B")

	created, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs: []string{a.ID},
		Language:  shared.LanguageYoruba,
		Text:      "Ìwà l'ẹwà",
	})
	require.NoError(t, err)
	assert.False(t, created.Merged)

	// Same text up to case and surrounding whitespace merges instead of
	// creating a second row.
	merged, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs:   []string{b.ID},
		Language:    shared.LanguageYoruba,
		Text:        "  ìwà L'Ẹwà ",
		Translation: strPtr("Character is beauty"),
	})
	require.NoError(t, err)
	assert.True(t, merged.Merged)
	assert.Equal(t, created.ID, merged.ID)
	assert.Equal(t, "Ìwà l'ẹwà", merged.Text, "original spelling is kept")
	assert.Equal(t, "Character is beauty", merged.Translation)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, merged.LessonIDs)
}

func TestCreateProverbMergeKeepsAbsentFields(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")

	_, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs:   []string{lesson.ID},
		Language:    shared.LanguageYoruba,
		Text:        "Agbajo owo la fi n soya",
		Translation: strPtr("Unity is strength"),
		ContextNote: strPtr("Used to encourage cooperation"),
	})
	require.NoError(t, err)

	merged, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs: []string{lesson.ID},
		Language:  shared.LanguageYoruba,
		Text:      "agbajo owo la fi n soya",
	})
	require.NoError(t, err)
	assert.True(t, merged.Merged)
	assert.Equal(t, "Unity is strength", merged.Translation)
	assert.Equal(t, "Used to encourage cooperation", merged.ContextNote)
}

func TestCreateProverbMergeIgnoresEmptyOverride(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")

	_, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs:   []string{lesson.ID},
		Language:    shared.LanguageYoruba,
		Text:        "Ìwà l'ẹwà",
		Translation: strPtr("Character is beauty"),
		ContextNote: strPtr("On good character"),
	})
	require.NoError(t, err)

	// An explicit empty string is "no override", not a wipe.
	merged, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs:   []string{lesson.ID},
		Language:    shared.LanguageYoruba,
		Text:        "ìwà l'ẹwà",
		Translation: strPtr(""),
		ContextNote: strPtr(""),
	})
	require.NoError(t, err)
	assert.True(t, merged.Merged)
	assert.Equal(t, "Character is beauty", merged.Translation)
	assert.Equal(t, "On good character", merged.ContextNote)
}

func TestCreateProverbSameTextDifferentLanguage(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	yoruba := env.createLesson(t, admin, shared.LanguageYoruba, "Y")
	igbo := env.createLesson(t, admin, shared.LanguageIgbo, "I")

	first, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs: []string{yoruba.ID},
		Language:  shared.LanguageYoruba,
		Text:      "Proverb text",
	})
	require.NoError(t, err)

	second, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs: []string{igbo.ID},
		Language:  shared.LanguageIgbo,
		Text:      "Proverb text",
	})
	require.NoError(t, err)
	assert.False(t, second.Merged, "dedup never crosses language partitions")
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpdateProverbTextCollision(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")

	_, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs: []string{lesson.ID},
		Language:  shared.LanguageYoruba,
		Text:      "First proverb",
	})
	require.NoError(t, err)

	second, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs: []string{lesson.ID},
		Language:  shared.LanguageYoruba,
		Text:      "Second proverb",
	})
	require.NoError(t, err)

	_, err = env.proverbSvc.UpdateProverb(admin, second.ID, dto.UpdateProverbRequest{
		Text: strPtr("  FIRST proverb "),
	})
	requireReason(t, err, shared.ReasonStateConflict)
}

func TestUnlinkProverbDeletesOrphan(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()

	a := env.createLesson(t, admin, shared.LanguageYoruba, "A")
	b := env.createLesson(t, admin, shared.LanguageYoruba, "B")

	proverb, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs: []string{a.ID, b.ID},
		Language:  shared.LanguageYoruba,
		Text:      "Ìwà l'ẹwà",
	})
	require.NoError(t, err)

	require.NoError(t, env.proverbSvc.UnlinkProverb(admin, proverb.ID, a.ID))
	kept, err := env.proverbSvc.GetProverb(admin, proverb.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, kept.LessonIDs)

	require.NoError(t, env.proverbSvc.UnlinkProverb(admin, proverb.ID, b.ID))
	_, err = env.proverbSvc.GetProverb(admin, proverb.ID)
	requireReason(t, err, shared.ReasonNotFound)
}

func TestProverbLifecycle(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")

	proverb, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs: []string{lesson.ID},
		Language:  shared.LanguageYoruba,
		Text:      "Ìwà l'ẹwà",
	})
	require.NoError(t, err)

	// Publish has a mandatory review checkpoint: drafts are rejected.
	_, err = env.proverbSvc.PublishProverb(admin, proverb.ID, dto.PublishRequest{})
	requireReason(t, err, shared.ReasonStateConflict)

	_, err = env.proverbSvc.FinishProverb(admin, proverb.ID)
	require.NoError(t, err)

	published, err := env.proverbSvc.PublishProverb(admin, proverb.ID, dto.PublishRequest{ReviewedByAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, shared.StatusPublished, published.Status)
	assert.True(t, published.AIMeta.ReviewedByAdmin)

	_, err = env.proverbSvc.PublishProverb(admin, proverb.ID, dto.PublishRequest{})
	requireReason(t, err, shared.ReasonStateConflict)

	_, err = env.proverbSvc.UpdateProverb(admin, proverb.ID, dto.UpdateProverbRequest{
		Translation: strPtr("changed"),
	})
	requireReason(t, err, shared.ReasonStateConflict)
}

func TestDeletedProverbTextIsReusable(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	lesson := env.createLesson(t, admin, shared.LanguageYoruba, "A")

	first, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs: []string{lesson.ID},
		Language:  shared.LanguageYoruba,
		Text:      "Ìwà l'ẹwà",
	})
	require.NoError(t, err)
	require.NoError(t, env.proverbSvc.DeleteProverb(admin, first.ID))

	second, err := env.proverbSvc.CreateProverb(admin, dto.CreateProverbRequest{
		LessonIDs: []string{lesson.ID},
		Language:  shared.LanguageYoruba,
		Text:      "Ìwà l'ẹwà",
	})
	require.NoError(t, err)
	assert.False(t, second.Merged)
	assert.NotEqual(t, first.ID, second.ID)
}
