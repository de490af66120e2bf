// services/lesson.go
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

// LessonService owns the lesson lifecycle, the per-language ordering and the
// deletion cascade.
type LessonService struct {
	context.DefaultService
	sqlSvc   *PostgresService
	scopeSvc *ScopeService
	cacheSvc *CacheService
}

const LESSON_SVC = "lesson_svc"

func (svc LessonService) Id() string {
	return LESSON_SVC
}

func (svc *LessonService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *LessonService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.scopeSvc = svc.Service(SCOPE_SVC).(*ScopeService)
	svc.cacheSvc = svc.Service(CACHE_SVC).(*CacheService)
	return nil
}

// ==================== CRUD ====================

func (svc *LessonService) CreateLesson(actor dto.Actor, req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if err := svc.scopeSvc.GuardLanguage(actor, req.Language, "lesson"); err != nil {
		return nil, err
	}

	// New lessons always append; the partition stays contiguous 0..N-1.
	lastIndex, err := svc.sqlSvc.Lessons().FindLastOrderIndex(req.Language)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	lesson := &model.Lesson{
		Title:       req.Title,
		Language:    req.Language,
		Level:       req.Level,
		OrderIndex:  lastIndex + 1,
		Description: req.Description,
		Topics:      marshalStrings(req.Topics),
		Status:      shared.StatusDraft,
		CreatedBy:   actor.ID,
	}

	lesson, err = svc.sqlSvc.Lessons().Create(lesson)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{
		"lesson_id": lesson.ID,
		"language":  lesson.Language,
		"index":     lesson.OrderIndex,
	}).Info("Lesson created")

	resp := svc.mapLessonToResponse(lesson)
	return &resp, nil
}

func (svc *LessonService) GetLesson(actor dto.Actor, id string) (*dto.LessonResponse, error) {
	lesson, err := svc.loadScoped(actor, id)
	if err != nil {
		return nil, err
	}
	resp := svc.mapLessonToResponse(lesson)
	return &resp, nil
}

func (svc *LessonService) ListLessons(actor dto.Actor, language string) (*dto.LessonCollectionResponse, error) {
	if !shared.IsValidLanguage(language) {
		return nil, shared.NewBadRequestError(nil, "unknown language")
	}
	if err := svc.scopeSvc.GuardLanguage(actor, language, "lesson"); err != nil {
		return nil, err
	}

	lessons, err := svc.sqlSvc.Lessons().ListByLanguage(language)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.LessonResponse, len(lessons))
	for i := range lessons {
		responses[i] = svc.mapLessonToResponse(&lessons[i])
	}
	return &dto.LessonCollectionResponse{Lessons: responses, Total: len(responses)}, nil
}

func (svc *LessonService) UpdateLesson(actor dto.Actor, id string, req dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	lesson, err := svc.loadScoped(actor, id)
	if err != nil {
		return nil, err
	}
	if lesson.Status == shared.StatusPublished {
		return nil, shared.NewStateConflictError(shared.ReasonStateConflict, "published lesson cannot be edited")
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Level != nil {
		fields["level"] = *req.Level
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Topics != nil {
		fields["topics"] = marshalStrings(*req.Topics)
	}

	oldLanguage := ""
	if req.Language != nil && *req.Language != lesson.Language {
		// Reassignment appends to the target partition and leaves a gap in
		// the old one; the gap is compacted below. Linked phrases and
		// proverbs carry the old language, so the lesson must shed them
		// before it can move.
		if err := svc.scopeSvc.GuardLanguage(actor, *req.Language, "lesson"); err != nil {
			return nil, err
		}
		if err := svc.guardNoLinkedContent(id); err != nil {
			return nil, err
		}
		lastIndex, err := svc.sqlSvc.Lessons().FindLastOrderIndex(*req.Language)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		fields["language"] = *req.Language
		fields["order_index"] = lastIndex + 1
		oldLanguage = lesson.Language
	}

	if len(fields) > 0 {
		if err := svc.sqlSvc.Lessons().UpdateFields(id, fields); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	if oldLanguage != "" {
		if err := svc.sqlSvc.Lessons().CompactOrderIndexes(oldLanguage); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	lesson, err = svc.sqlSvc.Lessons().Get(id)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	resp := svc.mapLessonToResponse(lesson)
	return &resp, nil
}

// ==================== ORDERING ====================

// ReorderLessons replaces the partition ordering wholesale. The submitted id
// set must match the active partition exactly; anything else is rejected
// without touching a single row.
func (svc *LessonService) ReorderLessons(actor dto.Actor, req dto.ReorderLessonsRequest) (*dto.LessonCollectionResponse, error) {
	if err := svc.scopeSvc.GuardLanguage(actor, req.Language, "lesson"); err != nil {
		return nil, err
	}

	current, err := svc.sqlSvc.Lessons().ListByLanguage(req.Language)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if mismatch := orderSetMismatch(current, req.OrderedIDs); mismatch != nil {
		return nil, &shared.AppError{
			StatusCode: 409,
			Reason:     shared.ReasonOrderSetMismatch,
			Message:    "submitted ids do not match the active lesson set",
			Data:       mismatch,
		}
	}

	if err := svc.sqlSvc.Lessons().ReorderByIDs(req.OrderedIDs); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{
		"language": req.Language,
		"count":    len(req.OrderedIDs),
	}).Info("Lessons reordered")

	return svc.ListLessons(actor, req.Language)
}

// orderSetMismatch compares the submitted ids against the active partition and
// returns the difference, or nil when the sets match exactly.
func orderSetMismatch(current []model.Lesson, orderedIDs []string) map[string][]string {
	active := make(map[string]bool, len(current))
	for _, lesson := range current {
		active[lesson.ID] = true
	}

	var unknown, duplicate []string
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if seen[id] {
			duplicate = append(duplicate, id)
			continue
		}
		seen[id] = true
		if !active[id] {
			unknown = append(unknown, id)
		}
	}

	var missing []string
	for _, lesson := range current {
		if !seen[lesson.ID] {
			missing = append(missing, lesson.ID)
		}
	}

	if len(unknown) == 0 && len(duplicate) == 0 && len(missing) == 0 {
		return nil
	}
	return map[string][]string{
		"unknown":   unknown,
		"duplicate": duplicate,
		"missing":   missing,
	}
}

// ==================== LIFECYCLE ====================

func (svc *LessonService) FinishLesson(actor dto.Actor, id string) (*dto.LessonResponse, error) {
	return svc.transition(actor, id, shared.StatusDraft, map[string]interface{}{
		"status": shared.StatusFinished,
	})
}

// PublishLesson accepts both draft and finished lessons; a lesson does not
// have to pass through review to go live.
func (svc *LessonService) PublishLesson(actor dto.Actor, id string) (*dto.LessonResponse, error) {
	now := time.Now()
	resp, err := svc.transition(actor, id, "draft_or_finished", map[string]interface{}{
		"status":       shared.StatusPublished,
		"published_at": now,
	})
	if err != nil {
		return nil, err
	}
	svc.invalidateCatalog(resp.Language)
	return resp, nil
}

func (svc *LessonService) transition(actor dto.Actor, id, expected string, fields map[string]interface{}) (*dto.LessonResponse, error) {
	if _, err := svc.loadScoped(actor, id); err != nil {
		return nil, err
	}

	if err := svc.sqlSvc.Lessons().UpdateStatusIf(id, expected, fields); err != nil {
		if errors.Is(err, repositories.ErrStaleWrite) {
			return nil, shared.NewStateConflictError(shared.ReasonStateConflict,
				"lesson is not in a state that allows this transition")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}

	lesson, err := svc.sqlSvc.Lessons().Get(id)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{
		"lesson_id": lesson.ID,
		"status":    lesson.Status,
	}).Info("Lesson transitioned")

	resp := svc.mapLessonToResponse(lesson)
	return &resp, nil
}

// ==================== DELETION CASCADE ====================

// DeleteLesson soft-deletes the lesson and everything that only existed for
// it: the lesson's questions always go, linked phrases and proverbs go only
// when this was their last remaining lesson. The lesson row goes first so a
// mid-cascade failure never leaves deleted children under a live lesson. The
// partition is compacted last.
func (svc *LessonService) DeleteLesson(actor dto.Actor, id string) error {
	lesson, err := svc.loadScoped(actor, id)
	if err != nil {
		return err
	}

	now := time.Now()

	if err := svc.sqlSvc.Lessons().SoftDelete(id, now); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if err := svc.sqlSvc.Questions().SoftDeleteByLesson(id, now); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	phraseIDs, err := svc.sqlSvc.Phrases().LinkedPhraseIDs(id)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if err := svc.sqlSvc.Phrases().UnlinkLesson(id); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	for _, phraseID := range phraseIDs {
		remaining, err := svc.sqlSvc.Phrases().CountLinks(phraseID)
		if err != nil {
			return svc.sqlSvc.HandleError(err)
		}
		if remaining > 0 {
			continue
		}
		if err := svc.sqlSvc.Phrases().SoftDelete(phraseID, now); err != nil {
			return svc.sqlSvc.HandleError(err)
		}
		if err := svc.sqlSvc.Questions().SoftDeleteByPhrase(phraseID, now); err != nil {
			return svc.sqlSvc.HandleError(err)
		}
	}

	proverbIDs, err := svc.sqlSvc.Proverbs().LinkedProverbIDs(id)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if err := svc.sqlSvc.Proverbs().UnlinkLesson(id); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	for _, proverbID := range proverbIDs {
		remaining, err := svc.sqlSvc.Proverbs().CountLinks(proverbID)
		if err != nil {
			return svc.sqlSvc.HandleError(err)
		}
		if remaining > 0 {
			continue
		}
		if err := svc.sqlSvc.Proverbs().SoftDelete(proverbID, now); err != nil {
			return svc.sqlSvc.HandleError(err)
		}
	}

	if err := svc.sqlSvc.Lessons().CompactOrderIndexes(lesson.Language); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{
		"lesson_id": id,
		"language":  lesson.Language,
		"phrases":   len(phraseIDs),
		"proverbs":  len(proverbIDs),
	}).Info("Lesson deleted with cascade")

	RecordCascadeDeletion()
	svc.invalidateCatalog(lesson.Language)
	return nil
}

// ==================== HELPERS ====================

func (svc *LessonService) loadScoped(actor dto.Actor, id string) (*model.Lesson, error) {
	lesson, err := svc.sqlSvc.Lessons().Get(id)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, lesson.Language, "lesson"); err != nil {
		return nil, err
	}
	return lesson, nil
}

// guardNoLinkedContent blocks a language change while phrases or proverbs of
// the current partition still link to the lesson.
func (svc *LessonService) guardNoLinkedContent(id string) error {
	phraseIDs, err := svc.sqlSvc.Phrases().LinkedPhraseIDs(id)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	proverbIDs, err := svc.sqlSvc.Proverbs().LinkedProverbIDs(id)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if len(phraseIDs) > 0 || len(proverbIDs) > 0 {
		return shared.NewStateConflictError(shared.ReasonLanguageMismatch,
			"lesson still has linked phrases or proverbs in its current language")
	}
	return nil
}

func (svc *LessonService) invalidateCatalog(language string) {
	if svc.cacheSvc == nil {
		return
	}
	if err := svc.cacheSvc.InvalidateCatalog(language); err != nil {
		log.WithError(err).Warn("Failed to invalidate catalog cache")
	}
}

func (svc *LessonService) mapLessonToResponse(lesson *model.Lesson) dto.LessonResponse {
	return dto.LessonResponse{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Language:    lesson.Language,
		Level:       lesson.Level,
		OrderIndex:  lesson.OrderIndex,
		Description: lesson.Description,
		Topics:      unmarshalStrings(lesson.Topics),
		Status:      lesson.Status,
		CreatedBy:   lesson.CreatedBy,
		PublishedAt: lesson.PublishedAt,
		CreatedAt:   lesson.CreatedAt,
		UpdatedAt:   lesson.UpdatedAt,
	}
}

func marshalStrings(values []string) json.RawMessage {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return json.RawMessage("[]")
	}
	return raw
}

func unmarshalStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		log.WithError(err).Warn("Failed to decode embedded string array")
		return []string{}
	}
	return values
}
