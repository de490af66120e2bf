// services/proverb.go
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/model"
	"github.com/naija-lingo/lingo_api/services/repositories"
	"github.com/naija-lingo/lingo_api/shared"
)

// ProverbService deduplicates proverbs per language. Submitting a text that
// already exists in the partition merges into the existing row instead of
// creating a second one.
type ProverbService struct {
	context.DefaultService
	sqlSvc   *PostgresService
	scopeSvc *ScopeService
}

const PROVERB_SVC = "proverb_svc"

func (svc ProverbService) Id() string {
	return PROVERB_SVC
}

func (svc *ProverbService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProverbService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.scopeSvc = svc.Service(SCOPE_SVC).(*ScopeService)
	return nil
}

// NormalizeProverbText is the dedup key: surrounding whitespace and letter
// case never distinguish two proverbs.
func NormalizeProverbText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// ==================== CREATE / MERGE ====================

// CreateProverb creates a new proverb or merges into an existing one with the
// same normalized text. On merge, lesson links are unioned and any provided
// translation or context note overwrites the stored value; absent fields are
// left alone. The response flags which path was taken.
func (svc *ProverbService) CreateProverb(actor dto.Actor, req dto.CreateProverbRequest) (*dto.ProverbResponse, error) {
	if err := svc.scopeSvc.GuardLanguage(actor, req.Language, "lesson"); err != nil {
		return nil, err
	}
	if err := svc.guardLessons(req.Language, req.LessonIDs); err != nil {
		return nil, err
	}

	normalized := NormalizeProverbText(req.Text)
	if normalized == "" {
		return nil, shared.NewBadRequestError(nil, "proverb text is empty")
	}

	existing, err := svc.sqlSvc.Proverbs().FindReusable(req.Language, normalized)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if existing != nil {
		return svc.merge(existing, req)
	}

	proverb := &model.Proverb{
		Language:       req.Language,
		Text:           strings.TrimSpace(req.Text),
		NormalizedText: normalized,
		Status:         shared.StatusDraft,
	}
	if req.Translation != nil {
		proverb.Translation = *req.Translation
	}
	if req.ContextNote != nil {
		proverb.ContextNote = *req.ContextNote
	}

	proverb, err = svc.sqlSvc.Proverbs().Create(proverb)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	for _, lessonID := range req.LessonIDs {
		if err := svc.sqlSvc.Proverbs().Link(lessonID, proverb.ID); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	log.WithFields(log.Fields{
		"proverb_id": proverb.ID,
		"language":   proverb.Language,
	}).Info("Proverb created")

	return svc.respond(proverb, false)
}

func (svc *ProverbService) merge(existing *model.Proverb, req dto.CreateProverbRequest) (*dto.ProverbResponse, error) {
	// An empty submission value is "no override", never a wipe.
	fields := map[string]interface{}{}
	if req.Translation != nil && *req.Translation != "" {
		fields["translation"] = *req.Translation
	}
	if req.ContextNote != nil && *req.ContextNote != "" {
		fields["context_note"] = *req.ContextNote
	}
	if len(fields) > 0 {
		if err := svc.sqlSvc.Proverbs().UpdateFields(existing.ID, fields); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	for _, lessonID := range req.LessonIDs {
		if err := svc.sqlSvc.Proverbs().Link(lessonID, existing.ID); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	proverb, err := svc.sqlSvc.Proverbs().Get(existing.ID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{
		"proverb_id": proverb.ID,
		"language":   proverb.Language,
	}).Info("Proverb merged into existing entry")

	return svc.respond(proverb, true)
}

// ==================== READ ====================

func (svc *ProverbService) GetProverb(actor dto.Actor, id string) (*dto.ProverbResponse, error) {
	proverb, err := svc.loadScoped(actor, id)
	if err != nil {
		return nil, err
	}
	return svc.respond(proverb, false)
}

func (svc *ProverbService) ListLessonProverbs(actor dto.Actor, lessonID string) (*dto.ProverbCollectionResponse, error) {
	lesson, err := svc.sqlSvc.Lessons().Get(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, lesson.Language, "lesson"); err != nil {
		return nil, err
	}

	proverbs, err := svc.sqlSvc.Proverbs().ListByLesson(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.ProverbResponse, 0, len(proverbs))
	for i := range proverbs {
		resp, err := svc.respond(&proverbs[i], false)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return &dto.ProverbCollectionResponse{Proverbs: responses, Total: len(responses)}, nil
}

// ==================== UPDATE ====================

func (svc *ProverbService) UpdateProverb(actor dto.Actor, id string, req dto.UpdateProverbRequest) (*dto.ProverbResponse, error) {
	proverb, err := svc.loadScoped(actor, id)
	if err != nil {
		return nil, err
	}
	if proverb.Status == shared.StatusPublished {
		return nil, shared.NewStateConflictError(shared.ReasonStateConflict, "published proverb cannot be edited")
	}

	fields := map[string]interface{}{}
	if req.Text != nil {
		normalized := NormalizeProverbText(*req.Text)
		if normalized == "" {
			return nil, shared.NewBadRequestError(nil, "proverb text is empty")
		}
		if normalized != proverb.NormalizedText {
			// A text change must not collide with another active proverb.
			other, err := svc.sqlSvc.Proverbs().FindReusable(proverb.Language, normalized)
			if err != nil {
				return nil, svc.sqlSvc.HandleError(err)
			}
			if other != nil && other.ID != id {
				return nil, shared.NewStateConflictError(shared.ReasonStateConflict,
					"another proverb already carries this text")
			}
		}
		fields["text"] = strings.TrimSpace(*req.Text)
		fields["normalized_text"] = normalized
	}
	if req.Translation != nil {
		fields["translation"] = *req.Translation
	}
	if req.ContextNote != nil {
		fields["context_note"] = *req.ContextNote
	}

	if len(fields) > 0 {
		if err := svc.sqlSvc.Proverbs().UpdateFields(id, fields); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
	}

	proverb, err = svc.sqlSvc.Proverbs().Get(id)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return svc.respond(proverb, false)
}

// ==================== LIFECYCLE ====================

func (svc *ProverbService) FinishProverb(actor dto.Actor, id string) (*dto.ProverbResponse, error) {
	return svc.transition(actor, id, shared.StatusDraft, map[string]interface{}{
		"status": shared.StatusFinished,
	})
}

// PublishProverb requires a finished proverb; drafts go through review first.
func (svc *ProverbService) PublishProverb(actor dto.Actor, id string, req dto.PublishRequest) (*dto.ProverbResponse, error) {
	proverb, err := svc.loadScoped(actor, id)
	if err != nil {
		return nil, err
	}
	if proverb.Status == shared.StatusPublished {
		return nil, shared.NewStateConflictError(shared.ReasonStateConflict, "proverb is already published")
	}

	fields := map[string]interface{}{
		"status": shared.StatusPublished,
	}
	if req.ReviewedByAdmin {
		fields["reviewed_by_admin"] = true
	}
	return svc.transition(actor, id, shared.StatusFinished, fields)
}

func (svc *ProverbService) transition(actor dto.Actor, id, expected string, fields map[string]interface{}) (*dto.ProverbResponse, error) {
	if _, err := svc.loadScoped(actor, id); err != nil {
		return nil, err
	}
	if err := svc.sqlSvc.Proverbs().UpdateStatusIf(id, expected, fields); err != nil {
		if errors.Is(err, repositories.ErrStaleWrite) {
			return nil, shared.NewStateConflictError(shared.ReasonStateConflict,
				"proverb is not in a state that allows this transition")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}
	proverb, err := svc.sqlSvc.Proverbs().Get(id)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return svc.respond(proverb, false)
}

// ==================== UNLINK / DELETE ====================

// UnlinkProverb detaches the proverb from the lesson; an orphaned proverb is
// deleted.
func (svc *ProverbService) UnlinkProverb(actor dto.Actor, proverbID, lessonID string) error {
	if _, err := svc.loadScoped(actor, proverbID); err != nil {
		return err
	}

	if err := svc.sqlSvc.Proverbs().Unlink(lessonID, proverbID); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	remaining, err := svc.sqlSvc.Proverbs().CountLinks(proverbID)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if remaining == 0 {
		if err := svc.sqlSvc.Proverbs().SoftDelete(proverbID, time.Now()); err != nil {
			return svc.sqlSvc.HandleError(err)
		}
	}
	return nil
}

func (svc *ProverbService) DeleteProverb(actor dto.Actor, id string) error {
	if _, err := svc.loadScoped(actor, id); err != nil {
		return err
	}

	lessonIDs, err := svc.sqlSvc.Proverbs().LessonIDs(id)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	for _, lessonID := range lessonIDs {
		if err := svc.sqlSvc.Proverbs().Unlink(lessonID, id); err != nil {
			return svc.sqlSvc.HandleError(err)
		}
	}

	if err := svc.sqlSvc.Proverbs().SoftDelete(id, time.Now()); err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	log.WithField("proverb_id", id).Info("Proverb deleted")
	return nil
}

// ==================== HELPERS ====================

func (svc *ProverbService) loadScoped(actor dto.Actor, id string) (*model.Proverb, error) {
	proverb, err := svc.sqlSvc.Proverbs().Get(id)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, proverb.Language, "proverb"); err != nil {
		return nil, err
	}
	return proverb, nil
}

// guardLessons verifies every target lesson exists and sits in the requested
// language partition.
func (svc *ProverbService) guardLessons(language string, lessonIDs []string) error {
	lessons, err := svc.sqlSvc.Lessons().ListByIDs(lessonIDs)
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	if len(lessons) != len(lessonIDs) {
		return shared.NewNotFoundError("lesson")
	}
	for _, lesson := range lessons {
		if lesson.Language != language {
			return shared.NewStateConflictError(shared.ReasonLanguageMismatch,
				"proverb language does not match the target lesson")
		}
	}
	return nil
}

func (svc *ProverbService) respond(proverb *model.Proverb, merged bool) (*dto.ProverbResponse, error) {
	lessonIDs, err := svc.sqlSvc.Proverbs().LessonIDs(proverb.ID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	return &dto.ProverbResponse{
		ID:          proverb.ID,
		LessonIDs:   lessonIDs,
		Language:    proverb.Language,
		Text:        proverb.Text,
		Translation: proverb.Translation,
		ContextNote: proverb.ContextNote,
		AIMeta: dto.AIMetaResponse{
			GeneratedByAI:   proverb.GeneratedByAI,
			Model:           proverb.AIModel,
			ReviewedByAdmin: proverb.ReviewedByAdmin,
		},
		Status:    proverb.Status,
		Merged:    merged,
		CreatedAt: proverb.CreatedAt,
		UpdatedAt: proverb.UpdatedAt,
	}, nil
}
