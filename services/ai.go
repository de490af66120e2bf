// services/ai.go
package services

import (
	"fmt"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

// AiService turns untrusted LLM output into workflow content. Structural
// problems are handled with a leniency gradient: a record missing its text or
// translation is dropped, a record with a malformed optional field just loses
// that field.
type AiService struct {
	context.DefaultService
	sqlSvc    *PostgresService
	scopeSvc  *ScopeService
	lessonSvc *LessonService
	phraseSvc *PhraseService
	llmSvc    *LLMService
}

const AI_SVC = "ai_svc"

func (svc AiService) Id() string {
	return AI_SVC
}

func (svc *AiService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AiService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.scopeSvc = svc.Service(SCOPE_SVC).(*ScopeService)
	svc.lessonSvc = svc.Service(LESSON_SVC).(*LessonService)
	svc.phraseSvc = svc.Service(PHRASE_SVC).(*PhraseService)
	svc.llmSvc = svc.Service(LLM_SVC).(*LLMService)
	return nil
}

// ==================== SANITIZER ====================

// dedupKey collapses case so the same phrase pair proposed twice counts once.
func dedupKey(text, translation string) string {
	return strings.ToLower(strings.TrimSpace(text)) + "::" + strings.ToLower(strings.TrimSpace(translation))
}

// SanitizePhraseBatch validates a batch of raw LLM proposals. Within the
// batch the first occurrence of a (text, translation) pair wins; later
// duplicates are skipped. The seen set lets callers extend dedup across
// already-stored content; pass nil to dedup within the batch only.
func (svc *AiService) SanitizePhraseBatch(items []dto.RawPhrase, modelName string, seen map[string]bool) ([]dto.SanitizedPhrase, int, []string) {
	if seen == nil {
		seen = map[string]bool{}
	}

	var kept []dto.SanitizedPhrase
	var errs []string
	skipped := 0

	for i, item := range items {
		text, ok := stringField(item, "text")
		if !ok || strings.TrimSpace(text) == "" {
			errs = append(errs, fmt.Sprintf("item %d: missing text", i))
			skipped++
			continue
		}
		translation, ok := stringField(item, "translation")
		if !ok || strings.TrimSpace(translation) == "" {
			errs = append(errs, fmt.Sprintf("item %d: missing translation", i))
			skipped++
			continue
		}

		key := dedupKey(text, translation)
		if seen[key] {
			errs = append(errs, fmt.Sprintf("item %d: duplicate of an earlier phrase", i))
			skipped++
			continue
		}
		seen[key] = true

		phrase := dto.SanitizedPhrase{
			Text:        strings.TrimSpace(text),
			Translation: strings.TrimSpace(translation),
			Model:       modelName,
		}

		if pronunciation, ok := stringField(item, "pronunciation"); ok {
			phrase.Pronunciation = strings.TrimSpace(pronunciation)
		}
		if explanation, ok := stringField(item, "explanation"); ok {
			phrase.Explanation = strings.TrimSpace(explanation)
		}
		phrase.Examples = exampleField(item, "examples")
		phrase.Difficulty = difficultyField(item, "difficulty")

		kept = append(kept, phrase)
	}

	return kept, skipped, errs
}

func stringField(item dto.RawPhrase, key string) (string, bool) {
	raw, exists := item[key]
	if !exists {
		return "", false
	}
	value, ok := raw.(string)
	return value, ok
}

// exampleField accepts the list only when every element carries both sides;
// a single malformed element drops the whole field.
func exampleField(item dto.RawPhrase, key string) []dto.ExampleInput {
	raw, exists := item[key]
	if !exists {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	var examples []dto.ExampleInput
	for _, entry := range list {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			return nil
		}
		original, okO := obj["original"].(string)
		translation, okT := obj["translation"].(string)
		if !okO || !okT || strings.TrimSpace(original) == "" || strings.TrimSpace(translation) == "" {
			return nil
		}
		examples = append(examples, dto.ExampleInput{
			Original:    strings.TrimSpace(original),
			Translation: strings.TrimSpace(translation),
		})
	}
	return examples
}

// difficultyField returns 0 when absent or invalid; the store layer applies
// the default.
func difficultyField(item dto.RawPhrase, key string) int {
	raw, exists := item[key]
	if !exists {
		return 0
	}
	value, ok := raw.(float64)
	if !ok {
		return 0
	}
	difficulty := int(value)
	if difficulty < shared.MinDifficulty || difficulty > shared.MaxDifficulty {
		return 0
	}
	return difficulty
}

// ==================== BULK GENERATION ====================

// GeneratePhrases asks the model for a batch of phrases for one lesson and
// persists everything that survives sanitization. One bad item never aborts
// the batch.
func (svc *AiService) GeneratePhrases(actor dto.Actor, req dto.GeneratePhrasesRequest) (*dto.BulkGenerationResponse, error) {
	lesson, err := svc.sqlSvc.Lessons().Get(req.LessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, lesson.Language, "lesson"); err != nil {
		return nil, err
	}
	if lesson.Status == shared.StatusPublished {
		return nil, shared.NewStateConflictError(shared.ReasonStateConflict,
			"phrases cannot be generated into a published lesson")
	}

	count := req.Count
	if count == 0 {
		count = 10
	}

	raw, err := svc.llmSvc.Complete(phraseSystemPrompt, phraseUserPrompt(lesson.Language, lesson.Title, lesson.Level, req.SeedWords, count))
	if err != nil {
		return nil, err
	}

	items, err := parsePhraseBatch(raw)
	if err != nil {
		return nil, err
	}

	// Seed the dedup set with what the lesson already holds so regeneration
	// does not pile up copies.
	seen := map[string]bool{}
	existing, err := svc.sqlSvc.Phrases().ListByLesson(req.LessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	for _, phrase := range existing {
		seen[dedupKey(phrase.Text, phrase.Translation)] = true
	}

	sanitized, skipped, errs := svc.SanitizePhraseBatch(items, svc.llmSvc.ModelName(), seen)

	result := &dto.BulkGenerationResponse{
		Created: []dto.PhraseResponse{},
		Skipped: skipped,
		Errors:  errs,
	}
	for _, item := range sanitized {
		created, err := svc.phraseSvc.CreateGeneratedPhrase(lesson.Language, item.Model, item, []string{req.LessonID})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%q: %v", item.Text, err))
			result.Skipped++
			continue
		}
		result.Created = append(result.Created, *created)
	}

	log.WithFields(log.Fields{
		"lesson_id": req.LessonID,
		"created":   len(result.Created),
		"skipped":   result.Skipped,
	}).Info("AI phrase batch processed")

	RecordAIPhrasesCreated(len(result.Created))
	RecordAIPhrasesSkipped(result.Skipped)
	return result, nil
}

func parsePhraseBatch(raw string) ([]dto.RawPhrase, error) {
	var envelope struct {
		Phrases []dto.RawPhrase `json:"phrases"`
	}
	if err := sonic.Unmarshal([]byte(raw), &envelope); err != nil {
		return nil, shared.NewUpstreamError(err, "language model returned an unreadable batch")
	}
	return envelope.Phrases, nil
}

// ==================== ENHANCEMENT ====================

// EnhancePhrase fills in pronunciation, explanation and examples on a draft
// phrase. The tutor's text and translation are never overwritten.
func (svc *AiService) EnhancePhrase(actor dto.Actor, req dto.EnhancePhraseRequest) (*dto.PhraseResponse, error) {
	phrase, err := svc.sqlSvc.Phrases().Get(req.PhraseID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, phrase.Language, "phrase"); err != nil {
		return nil, err
	}
	if phrase.Status != shared.StatusDraft {
		return nil, shared.NewStateConflictError(shared.ReasonStateConflict,
			"only draft phrases can be enhanced")
	}

	raw, err := svc.llmSvc.Complete(enhanceSystemPrompt, enhanceUserPrompt(phrase.Language, phrase.Text, phrase.Translation))
	if err != nil {
		return nil, err
	}

	var item dto.RawPhrase
	if err := sonic.Unmarshal([]byte(raw), &item); err != nil {
		return nil, shared.NewUpstreamError(err, "language model returned an unreadable enhancement")
	}

	fields := map[string]interface{}{
		"generated_by_ai": true,
		"ai_model":        svc.llmSvc.ModelName(),
	}
	if pronunciation, ok := stringField(item, "pronunciation"); ok && strings.TrimSpace(pronunciation) != "" {
		fields["pronunciation"] = strings.TrimSpace(pronunciation)
	}
	if explanation, ok := stringField(item, "explanation"); ok && strings.TrimSpace(explanation) != "" {
		fields["explanation"] = strings.TrimSpace(explanation)
	}
	if examples := exampleField(item, "examples"); len(examples) > 0 {
		fields["examples"] = marshalExamples(examples)
	}
	if difficulty := difficultyField(item, "difficulty"); difficulty != 0 {
		fields["difficulty"] = difficulty
	}

	if err := svc.sqlSvc.Phrases().UpdateFields(req.PhraseID, fields); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return svc.phraseSvc.GetPhrase(actor, req.PhraseID)
}

// ==================== LESSON SUGGESTION ====================

// SuggestLesson drafts a whole lesson: the model proposes the outline, the
// lesson is created in draft, and the seed phrases are run through the normal
// generation pipeline.
func (svc *AiService) SuggestLesson(actor dto.Actor, req dto.SuggestLessonRequest) (*dto.SuggestLessonResponse, error) {
	if err := svc.scopeSvc.GuardLanguage(actor, req.Language, "lesson"); err != nil {
		return nil, err
	}

	raw, err := svc.llmSvc.Complete(suggestSystemPrompt, suggestUserPrompt(req.Language, req.Level, req.Topic))
	if err != nil {
		return nil, err
	}

	var suggestion dto.LessonSuggestion
	if err := sonic.Unmarshal([]byte(raw), &suggestion); err != nil {
		return nil, shared.NewUpstreamError(err, "language model returned an unreadable suggestion")
	}
	if strings.TrimSpace(suggestion.Title) == "" {
		return nil, shared.NewUpstreamError(fmt.Errorf("empty title"), "language model suggestion is unusable")
	}

	lesson, err := svc.lessonSvc.CreateLesson(actor, dto.CreateLessonRequest{
		Title:       suggestion.Title,
		Language:    req.Language,
		Level:       req.Level,
		Description: suggestion.Description,
		Topics:      suggestion.Objectives,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.SuggestLessonResponse{
		Lesson:     *lesson,
		Suggestion: suggestion,
	}

	if len(suggestion.SeedPhrases) > 0 {
		generation, err := svc.GeneratePhrases(actor, dto.GeneratePhrasesRequest{
			LessonID:  lesson.ID,
			SeedWords: suggestion.SeedPhrases,
			Count:     len(suggestion.SeedPhrases),
		})
		if err != nil {
			// The lesson outline stands even when phrase generation fails.
			log.WithError(err).Warn("Seed phrase generation failed after lesson suggestion")
		} else {
			resp.Generation = generation
		}
	}

	return resp, nil
}

// ==================== PROMPTS ====================

const phraseSystemPrompt = `You are a curriculum assistant for a West African language learning platform.
Respond with a single JSON object: {"phrases": [{"text", "translation", "pronunciation", "explanation", "examples": [{"original", "translation"}], "difficulty": 1-5}]}.
"text" is in the target language, "translation" is English. No prose outside the JSON.`

func phraseUserPrompt(language, title, level string, seedWords []string, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d %s phrases for a %s lesson titled %q.", count, language, level, title)
	if len(seedWords) > 0 {
		fmt.Fprintf(&sb, " Build around these seed words: %s.", strings.Join(seedWords, ", "))
	}
	return sb.String()
}

const enhanceSystemPrompt = `You are a curriculum assistant for a West African language learning platform.
Given a phrase and its translation, respond with a single JSON object: {"pronunciation", "explanation", "examples": [{"original", "translation"}], "difficulty": 1-5}.
Never change the phrase or its translation. No prose outside the JSON.`

func enhanceUserPrompt(language, text, translation string) string {
	return fmt.Sprintf("Language: %s\nPhrase: %s\nTranslation: %s", language, text, translation)
}

const suggestSystemPrompt = `You are a curriculum designer for a West African language learning platform.
Respond with a single JSON object: {"title", "description", "objectives": ["..."], "seed_phrases": ["..."]}. No prose outside the JSON.`

func suggestUserPrompt(language, level, topic string) string {
	if topic == "" {
		return fmt.Sprintf("Design a %s lesson for %s learners.", level, language)
	}
	return fmt.Sprintf("Design a %s lesson for %s learners about %s.", level, language, topic)
}
