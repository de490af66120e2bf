// services/phrase.go
package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/model"
	"github.com/naija-lingo/lingo_api/services/repositories"
	"github.com/naija-lingo/lingo_api/shared"
)

// PhraseService manages reusable vocabulary shared across lessons. A phrase
// carries the language of the lessons it links to; a link crossing language
// partitions is never created.
type PhraseService struct {
	context.DefaultService
	sqlSvc   *PostgresService
	scopeSvc *ScopeService
}

const PHRASE_SVC = "phrase_svc"

func (svc PhraseService) Id() string {
	return PHRASE_SVC
}

func (svc *PhraseService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *PhraseService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.scopeSvc = svc.Service(SCOPE_SVC).(*ScopeService)
	return nil
}

// ==================== CRUD ====================

func (svc *PhraseService) CreatePhrase(actor dto.Actor, req dto.CreatePhraseRequest) (*dto.PhraseResponse, error) {
	language, err := svc.resolveLessonLanguage(actor, req.LessonIDs)
	if err != nil {
		return nil, err
	}

	difficulty := req.Difficulty
	if difficulty == 0 {
		difficulty = shared.MinDifficulty
	}

	phrase := &model.Phrase{
		Language:      language,
		Text:          req.Text,
		Translation:   req.Translation,
		Pronunciation: req.Pronunciation,
		Explanation:   req.Explanation,
		Examples:      marshalExamples(req.Examples),
		Difficulty:    difficulty,
		Status:        shared.StatusDraft,
	}

	return svc.createLinked(phrase, req.LessonIDs)
}

// CreateGeneratedPhrase persists one sanitized AI proposal. The caller has
// already validated the batch item.
func (svc *PhraseService) CreateGeneratedPhrase(language, aiModel string, item dto.SanitizedPhrase, lessonIDs []string) (*dto.PhraseResponse, error) {
	difficulty := item.Difficulty
	if difficulty == 0 {
		difficulty = shared.MinDifficulty
	}

	phrase := &model.Phrase{
		Language:      language,
		Text:          item.Text,
		Translation:   item.Translation,
		Pronunciation: item.Pronunciation,
		Explanation:   item.Explanation,
		Examples:      marshalExamples(item.Examples),
		Difficulty:    difficulty,
		GeneratedByAI: true,
		AIModel:       aiModel,
		Status:        shared.StatusDraft,
	}

	return svc.createLinked(phrase, lessonIDs)
}

func (svc *PhraseService) createLinked(phrase *model.Phrase, lessonIDs []string) (*dto.PhraseResponse, error) {
	phrase, err := svc.sqlSvc.Phrases().Create(phrase)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	for _, lessonID := range lessonIDs {
		if err := svc.sqlSvc.Phrases().Link(lessonID, phrase.ID); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	log.WithFields(log.Fields{
		"phrase_id": phrase.ID,
		"language":  phrase.Language,
		"lessons":   len(lessonIDs),
	}).Info("Phrase created")

	resp := svc.mapPhraseToResponse(phrase, lessonIDs)
	return &resp, nil
}

func (svc *PhraseService) GetPhrase(actor dto.Actor, id string) (*dto.PhraseResponse, error) {
	phrase, err := svc.loadScoped(actor, id)
	if err != nil {
		return nil, err
	}
	lessonIDs, err := svc.sqlSvc.Phrases().LessonIDs(id)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	resp := svc.mapPhraseToResponse(phrase, lessonIDs)
	return &resp, nil
}

func (svc *PhraseService) ListLessonPhrases(actor dto.Actor, lessonID string) (*dto.PhraseCollectionResponse, error) {
	lesson, err := svc.sqlSvc.Lessons().Get(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, lesson.Language, "lesson"); err != nil {
		return nil, err
	}

	phrases, err := svc.sqlSvc.Phrases().ListByLesson(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.PhraseResponse, 0, len(phrases))
	for i := range phrases {
		lessonIDs, err := svc.sqlSvc.Phrases().LessonIDs(phrases[i].ID)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		responses = append(responses, svc.mapPhraseToResponse(&phrases[i], lessonIDs))
	}
	return &dto.PhraseCollectionResponse{Phrases: responses, Total: len(responses)}, nil
}

func (svc *PhraseService) UpdatePhrase(actor dto.Actor, id string, req dto.UpdatePhraseRequest) (*dto.PhraseResponse, error) {
	phrase, err := svc.loadScoped(actor, id)
	if err != nil {
		return nil, err
	}
	if phrase.Status == shared.StatusPublished {
		return nil, shared.NewStateConflictError(shared.ReasonStateConflict, "published phrase cannot be edited")
	}

	fields := map[string]interface{}{}
	if req.Text != nil {
		fields["text"] = *req.Text
	}
	if req.Translation != nil {
		fields["translation"] = *req.Translation
	}
	if req.Pronunciation != nil {
		fields["pronunciation"] = *req.Pronunciation
	}
	if req.Explanation != nil {
		fields["explanation"] = *req.Explanation
	}
	if req.Examples != nil {
		fields["examples"] = marshalExamples(*req.Examples)
	}
	if req.Difficulty != nil {
		fields["difficulty"] = *req.Difficulty
	}

	if len(fields) > 0 {
		if err := svc.sqlSvc.Phrases().UpdateFields(id, fields); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	return svc.GetPhrase(actor, id)
}

// ==================== LESSON LINKS ====================

func (svc *PhraseService) LinkPhrase(actor dto.Actor, phraseID, lessonID string) (*dto.PhraseResponse, error) {
	phrase, err := svc.loadScoped(actor, phraseID)
	if err != nil {
		return nil, err
	}

	lesson, err := svc.sqlSvc.Lessons().Get(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, lesson.Language, "lesson"); err != nil {
		return nil, err
	}
	if lesson.Language != phrase.Language {
		return nil, shared.NewStateConflictError(shared.ReasonLanguageMismatch,
			"phrase and lesson belong to different languages")
	}

	if err := svc.sqlSvc.Phrases().Link(lessonID, phraseID); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return svc.GetPhrase(actor, phraseID)
}

// UnlinkPhrase removes the link and the questions built on the pair. A phrase
// left without any lesson is deleted outright.
func (svc *PhraseService) UnlinkPhrase(actor dto.Actor, phraseID, lessonID string) error {
	if _, err := svc.loadScoped(actor, phraseID); err != nil {
		return err
	}

	hasLink, err := svc.sqlSvc.Phrases().HasLink(lessonID, phraseID)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if !hasLink {
		return shared.NewNotFoundError("phrase link")
	}

	now := time.Now()
	if err := svc.sqlSvc.Questions().SoftDeleteByLessonAndPhrase(lessonID, phraseID, now); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if err := svc.sqlSvc.Phrases().Unlink(lessonID, phraseID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	remaining, err := svc.sqlSvc.Phrases().CountLinks(phraseID)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if remaining == 0 {
		if err := svc.sqlSvc.Phrases().SoftDelete(phraseID, now); err != nil {
			return svc.sqlSvc.HandleError(err)
		}
		if err := svc.sqlSvc.Questions().SoftDeleteByPhrase(phraseID, now); err != nil {
			return svc.sqlSvc.HandleError(err)
		}
	}
	return nil
}

// ==================== LIFECYCLE ====================

func (svc *PhraseService) FinishPhrase(actor dto.Actor, id string) (*dto.PhraseResponse, error) {
	return svc.transition(actor, id, shared.StatusDraft, map[string]interface{}{
		"status": shared.StatusFinished,
	})
}

// PublishPhrase requires a finished phrase; drafts go through review first.
func (svc *PhraseService) PublishPhrase(actor dto.Actor, id string, req dto.PublishRequest) (*dto.PhraseResponse, error) {
	phrase, err := svc.loadScoped(actor, id)
	if err != nil {
		return nil, err
	}
	if phrase.Status == shared.StatusPublished {
		return nil, shared.NewStateConflictError(shared.ReasonStateConflict, "phrase is already published")
	}

	fields := map[string]interface{}{
		"status": shared.StatusPublished,
	}
	if req.ReviewedByAdmin {
		fields["reviewed_by_admin"] = true
	}
	return svc.transition(actor, id, shared.StatusFinished, fields)
}

func (svc *PhraseService) transition(actor dto.Actor, id, expected string, fields map[string]interface{}) (*dto.PhraseResponse, error) {
	if _, err := svc.loadScoped(actor, id); err != nil {
		return nil, err
	}
	if err := svc.sqlSvc.Phrases().UpdateStatusIf(id, expected, fields); err != nil {
		if errors.Is(err, repositories.ErrStaleWrite) {
			return nil, shared.NewStateConflictError(shared.ReasonStateConflict,
				"phrase is not in a state that allows this transition")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}
	return svc.GetPhrase(actor, id)
}

// ==================== AUDIO ====================

// AttachAudio stores the recording descriptor verbatim; upload happens in the
// audio pipeline before this call.
func (svc *PhraseService) AttachAudio(actor dto.Actor, id string, desc dto.AudioDescriptor) (*dto.PhraseResponse, error) {
	if _, err := svc.loadScoped(actor, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"audio_provider":    desc.Provider,
		"audio_model":       desc.Model,
		"audio_voice":       desc.Voice,
		"audio_locale":      desc.Locale,
		"audio_format":      desc.Format,
		"audio_url":         desc.URL,
		"audio_storage_key": desc.StorageKey,
	}
	if err := svc.sqlSvc.Phrases().UpdateFields(id, fields); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return svc.GetPhrase(actor, id)
}

// ListMissingAudio feeds the voice-artist work queue.
func (svc *PhraseService) ListMissingAudio(actor dto.Actor, language string) (*dto.PhraseCollectionResponse, error) {
	if !shared.IsValidLanguage(language) {
		return nil, shared.NewBadRequestError(nil, "unknown language")
	}
	if err := svc.scopeSvc.GuardLanguage(actor, language, "phrase"); err != nil {
		return nil, err
	}

	phrases, err := svc.sqlSvc.Phrases().ListMissingAudio(language)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.PhraseResponse, 0, len(phrases))
	for i := range phrases {
		lessonIDs, err := svc.sqlSvc.Phrases().LessonIDs(phrases[i].ID)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		responses = append(responses, svc.mapPhraseToResponse(&phrases[i], lessonIDs))
	}
	return &dto.PhraseCollectionResponse{Phrases: responses, Total: len(responses)}, nil
}

// ==================== DELETION ====================

// DeletePhrase removes the phrase everywhere: its questions in every lesson,
// then its links, then the phrase itself.
func (svc *PhraseService) DeletePhrase(actor dto.Actor, id string) error {
	if _, err := svc.loadScoped(actor, id); err != nil {
		return err
	}

	now := time.Now()
	if err := svc.sqlSvc.Questions().SoftDeleteByPhrase(id, now); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	lessonIDs, err := svc.sqlSvc.Phrases().LessonIDs(id)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	for _, lessonID := range lessonIDs {
		if err := svc.sqlSvc.Phrases().Unlink(lessonID, id); err != nil {
			return svc.sqlSvc.HandleError(err)
		}
	}

	if err := svc.sqlSvc.Phrases().SoftDelete(id, now); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	log.WithField("phrase_id", id).Info("Phrase deleted with cascade")
	return nil
}

// ==================== HELPERS ====================

func (svc *PhraseService) loadScoped(actor dto.Actor, id string) (*model.Phrase, error) {
	phrase, err := svc.sqlSvc.Phrases().Get(id)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, phrase.Language, "phrase"); err != nil {
		return nil, err
	}
	return phrase, nil
}

// resolveLessonLanguage verifies every target lesson exists, is active, sits
// in one single language partition and is inside the actor's scope. Returns
// that language.
func (svc *PhraseService) resolveLessonLanguage(actor dto.Actor, lessonIDs []string) (string, error) {
	lessons, err := svc.sqlSvc.Lessons().ListByIDs(lessonIDs)
	if err != nil {
		return "", svc.sqlSvc.HandleError(err)
	}
	if len(lessons) != len(lessonIDs) {
		return "", shared.NewNotFoundError("lesson")
	}

	language := lessons[0].Language
	for _, lesson := range lessons[1:] {
		if lesson.Language != language {
			return "", shared.NewStateConflictError(shared.ReasonLanguageMismatch,
				"target lessons span multiple languages")
		}
	}
	if err := svc.scopeSvc.GuardLanguage(actor, language, "lesson"); err != nil {
		return "", err
	}
	return language, nil
}

func (svc *PhraseService) mapPhraseToResponse(phrase *model.Phrase, lessonIDs []string) dto.PhraseResponse {
	resp := dto.PhraseResponse{
		ID:            phrase.ID,
		LessonIDs:     lessonIDs,
		Language:      phrase.Language,
		Text:          phrase.Text,
		Translation:   phrase.Translation,
		Pronunciation: phrase.Pronunciation,
		Explanation:   phrase.Explanation,
		Examples:      unmarshalExamples(phrase.Examples),
		Difficulty:    phrase.Difficulty,
		AIMeta: dto.AIMetaResponse{
			GeneratedByAI:   phrase.GeneratedByAI,
			Model:           phrase.AIModel,
			ReviewedByAdmin: phrase.ReviewedByAdmin,
		},
		Status:    phrase.Status,
		CreatedAt: phrase.CreatedAt,
		UpdatedAt: phrase.UpdatedAt,
	}

	if phrase.AudioURL != "" {
		resp.Audio = &dto.AudioDescriptor{
			Provider:   phrase.AudioProvider,
			Model:      phrase.AudioModel,
			Voice:      phrase.AudioVoice,
			Locale:     phrase.AudioLocale,
			Format:     phrase.AudioFormat,
			URL:        phrase.AudioURL,
			StorageKey: phrase.AudioStorageKey,
		}
	}
	return resp
}

func marshalExamples(examples []dto.ExampleInput) json.RawMessage {
	if examples == nil {
		examples = []dto.ExampleInput{}
	}
	raw, err := json.Marshal(examples)
	if err != nil {
		return json.RawMessage("[]")
	}
	return raw
}

func unmarshalExamples(raw json.RawMessage) []dto.ExampleInput {
	if len(raw) == 0 {
		return nil
	}
	var examples []dto.ExampleInput
	if err := json.Unmarshal(raw, &examples); err != nil {
		log.WithError(err).Warn("Failed to decode embedded examples")
		return nil
	}
	return examples
}
