package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naija-lingo/lingo_api/dto"
)

func TestSanitizePhraseBatchLeniency(t *testing.T) {
	env := newWorkflowEnv(t)

	items := []dto.RawPhrase{
		{"text": "Ẹ káàárọ̀", "translation": "Good morning", "difficulty": float64(2)},
		{"text": "  ẹ KÁÀÁRỌ̀ ", "translation": "good morning"},
		{"text": "Ẹ káàsán"},
		{"translation": "Good evening"},
	}

	kept, skipped, errs := env.aiSvc.SanitizePhraseBatch(items, "test-model", nil)

	require.Len(t, kept, 1, "the duplicate and the incomplete records are dropped")
	assert.Equal(t, 3, skipped)
	assert.Len(t, errs, 3)
	assert.Equal(t, "Ẹ káàárọ̀", kept[0].Text)
	assert.Equal(t, "Good morning", kept[0].Translation)
	assert.Equal(t, 2, kept[0].Difficulty)
	assert.Equal(t, "test-model", kept[0].Model)
}

func TestSanitizePhraseBatchDropsBadOptionalFields(t *testing.T) {
	env := newWorkflowEnv(t)

	items := []dto.RawPhrase{
		{
			"text":        "Báwo ni?",
			"translation": "How are you?",
			"difficulty":  float64(9),
			"examples":    "not a list",
		},
		{
			"text":        "Ẹ káàsán",
			"translation": "Good afternoon",
			"examples": []interface{}{
				map[string]interface{}{"original": "Ẹ káàsán o", "translation": "Good afternoon to you"},
				map[string]interface{}{"original": "missing other side"},
				"not an object",
			},
		},
	}

	kept, skipped, errs := env.aiSvc.SanitizePhraseBatch(items, "test-model", nil)

	require.Len(t, kept, 2, "a bad optional field never drops the record")
	assert.Zero(t, skipped)
	assert.Empty(t, errs)

	assert.Zero(t, kept[0].Difficulty, "out-of-range difficulty falls back to the default")
	assert.Nil(t, kept[0].Examples)

	// One malformed element poisons the whole examples list, not just itself.
	assert.Nil(t, kept[1].Examples)
}

func TestSanitizePhraseBatchKeepsWellFormedExamples(t *testing.T) {
	env := newWorkflowEnv(t)

	items := []dto.RawPhrase{
		{
			"text":        "Ẹ káàsán",
			"translation": "Good afternoon",
			"examples": []interface{}{
				map[string]interface{}{"original": "Ẹ káàsán o", "translation": "Good afternoon to you"},
			},
		},
	}

	kept, _, _ := env.aiSvc.SanitizePhraseBatch(items, "test-model", nil)

	require.Len(t, kept, 1)
	require.Len(t, kept[0].Examples, 1)
	assert.Equal(t, "Ẹ káàsán o", kept[0].Examples[0].Original)
}

func TestSanitizePhraseBatchSeededDedup(t *testing.T) {
	env := newWorkflowEnv(t)

	seen := map[string]bool{
		dedupKey("Ẹ káàárọ̀", "Good morning"): true,
	}
	items := []dto.RawPhrase{
		{"text": "Ẹ káàárọ̀", "translation": "Good morning"},
		{"text": "Báwo ni?", "translation": "How are you?"},
	}

	kept, skipped, _ := env.aiSvc.SanitizePhraseBatch(items, "test-model", seen)

	require.Len(t, kept, 1, "content already stored for the lesson is not recreated")
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "Báwo ni?", kept[0].Text)
}

func TestDedupKeyIgnoresCaseAndSpace(t *testing.T) {
	assert.Equal(t,
		dedupKey("Ẹ káàárọ̀", "Good morning"),
		dedupKey("  ẹ KÁÀÁRỌ̀ ", " good MORNING"))
	assert.NotEqual(t,
		dedupKey("Ẹ káàárọ̀", "Good morning"),
		dedupKey("Ẹ káàárọ̀", "Good evening"))
}

func TestCreateGeneratedPhraseCarriesProvenance(t *testing.T) {
	env := newWorkflowEnv(t)
	admin := adminActor()
	lesson := env.createLesson(t, admin, "yoruba", "Greetings")

	created, err := env.phraseSvc.CreateGeneratedPhrase(lesson.Language, "test-model", dto.SanitizedPhrase{
		Text:        "Ẹ káàárọ̀",
		Translation: "Good morning",
	}, []string{lesson.ID})
	require.NoError(t, err)

	assert.True(t, created.AIMeta.GeneratedByAI)
	assert.Equal(t, "test-model", created.AIMeta.Model)
	assert.False(t, created.AIMeta.ReviewedByAdmin)
	assert.Equal(t, 1, created.Difficulty, "missing difficulty takes the default")
}
