// services/question.go
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

// QuestionService manages quiz questions. Every question belongs to exactly
// one (lesson, phrase) pair and can only go live once its phrase has.
type QuestionService struct {
	context.DefaultService
	sqlSvc   *PostgresService
	scopeSvc *ScopeService
}

const QUESTION_SVC = "question_svc"

func (svc QuestionService) Id() string {
	return QUESTION_SVC
}

func (svc *QuestionService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *QuestionService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.scopeSvc = svc.Service(SCOPE_SVC).(*ScopeService)
	return nil
}

// ==================== CREATE ====================

func (svc *QuestionService) CreateQuestion(actor dto.Actor, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	lesson, err := svc.sqlSvc.Lessons().Get(req.LessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, lesson.Language, "lesson"); err != nil {
		return nil, err
	}
	if lesson.Status == shared.StatusPublished {
		return nil, shared.NewStateConflictError(shared.ReasonStateConflict,
			"questions cannot be added to a published lesson")
	}

	if _, err := svc.sqlSvc.Phrases().Get(req.PhraseID); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	linked, err := svc.sqlSvc.Phrases().HasLink(req.LessonID, req.PhraseID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if !linked {
		return nil, shared.NewStateConflictError(shared.ReasonPhraseNotInLesson,
			"phrase is not part of the target lesson")
	}

	if req.CorrectIndex < 0 || req.CorrectIndex >= len(req.Options) {
		return nil, shared.NewBadRequestError(nil, "correct_index is out of the options range")
	}
	if req.Type == shared.QuestionTypeWordOrder && req.ReviewData == nil {
		return nil, shared.NewBadRequestError(nil, "word_order questions require review_data")
	}
	if req.ReviewData != nil {
		if err := validateReviewData(req.ReviewData); err != nil {
			return nil, err
		}
	}

	question := &model.Question{
		LessonID:       req.LessonID,
		PhraseID:       req.PhraseID,
		Type:           req.Type,
		Subtype:        req.Subtype,
		PromptTemplate: req.PromptTemplate,
		Options:        marshalStrings(req.Options),
		CorrectIndex:   req.CorrectIndex,
		ReviewData:     marshalReviewData(req.ReviewData),
		Explanation:    req.Explanation,
		Status:         shared.StatusDraft,
	}

	question, err = svc.sqlSvc.Questions().Create(question)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithFields(log.Fields{
		"question_id": question.ID,
		"lesson_id":   question.LessonID,
		"type":        question.Type,
	}).Info("Question created")

	resp := svc.mapQuestionToResponse(question)
	return &resp, nil
}

// validateReviewData rejects word-order payloads whose answer key is not a
// permutation of the word list.
func validateReviewData(input *dto.ReviewDataInput) error {
	if len(input.CorrectOrder) != len(input.Words) {
		return shared.NewBadRequestError(nil, "correct_order must cover every word exactly once")
	}
	seen := make([]bool, len(input.Words))
	for _, pos := range input.CorrectOrder {
		if pos < 0 || pos >= len(input.Words) || seen[pos] {
			return shared.NewBadRequestError(nil, "correct_order must be a permutation of the word positions")
		}
		seen[pos] = true
	}
	return nil
}

// ==================== READ ====================

func (svc *QuestionService) GetQuestion(actor dto.Actor, id string) (*dto.QuestionResponse, error) {
	question, err := svc.loadScoped(actor, id)
	if err != nil {
		return nil, err
	}
	resp := svc.mapQuestionToResponse(question)
	return &resp, nil
}

func (svc *QuestionService) ListLessonQuestions(actor dto.Actor, lessonID string) (*dto.QuestionCollectionResponse, error) {
	lesson, err := svc.sqlSvc.Lessons().Get(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, lesson.Language, "lesson"); err != nil {
		return nil, err
	}

	questions, err := svc.sqlSvc.Questions().ListByLesson(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		responses[i] = svc.mapQuestionToResponse(&questions[i])
	}
	return &dto.QuestionCollectionResponse{Questions: responses, Total: len(responses)}, nil
}

// ==================== LIFECYCLE ====================

func (svc *QuestionService) FinishQuestion(actor dto.Actor, id string) (*dto.QuestionResponse, error) {
	return svc.transition(actor, id, shared.StatusDraft, map[string]interface{}{
		"status": shared.StatusFinished,
	})
}

// PublishQuestion gates on two distinct preconditions so the caller learns
// exactly which one failed: the question must have finished review, and its
// phrase must already be live.
func (svc *QuestionService) PublishQuestion(actor dto.Actor, id string) (*dto.QuestionResponse, error) {
	question, err := svc.loadScoped(actor, id)
	if err != nil {
		return nil, err
	}

	if question.Status != shared.StatusFinished {
		return nil, shared.NewStateConflictError(shared.ReasonQuestionNotFinished,
			"question has not finished review")
	}

	phrase, err := svc.sqlSvc.Phrases().Get(question.PhraseID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if phrase.Status != shared.StatusPublished {
		return nil, shared.NewStateConflictError(shared.ReasonPhraseNotPublished,
			"the question's phrase is not published")
	}

	return svc.transition(actor, id, shared.StatusFinished, map[string]interface{}{
		"status": shared.StatusPublished,
	})
}

// SendBackToTutor reopens a finished question for editing. Admin only.
func (svc *QuestionService) SendBackToTutor(actor dto.Actor, id string) (*dto.QuestionResponse, error) {
	if actor.Role != shared.RoleAdmin {
		return nil, shared.NewForbiddenError("only admins can send questions back")
	}
	return svc.transition(actor, id, shared.StatusFinished, map[string]interface{}{
		"status": shared.StatusDraft,
	})
}

func (svc *QuestionService) transition(actor dto.Actor, id, expected string, fields map[string]interface{}) (*dto.QuestionResponse, error) {
	if _, err := svc.loadScoped(actor, id); err != nil {
		return nil, err
	}
	if err := svc.sqlSvc.Questions().UpdateStatusIf(id, expected, fields); err != nil {
		if errors.Is(err, repositories.ErrStaleWrite) {
			return nil, shared.NewStateConflictError(shared.ReasonStateConflict,
				"question is not in a state that allows this transition")
		}
		return nil, svc.sqlSvc.HandleError(err)
	}
	return svc.GetQuestion(actor, id)
}

// ==================== DELETE ====================

func (svc *QuestionService) DeleteQuestion(actor dto.Actor, id string) error {
	if _, err := svc.loadScoped(actor, id); err != nil {
		return err
	}
	if err := svc.sqlSvc.Questions().SoftDelete(id, time.Now()); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

// ==================== HELPERS ====================

// loadScoped resolves the question's language through its lesson; questions do
// not carry a language column of their own.
func (svc *QuestionService) loadScoped(actor dto.Actor, id string) (*model.Question, error) {
	question, err := svc.sqlSvc.Questions().Get(id)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	lesson, err := svc.sqlSvc.Lessons().Get(question.LessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if err := svc.scopeSvc.GuardLanguage(actor, lesson.Language, "question"); err != nil {
		return nil, err
	}
	return question, nil
}

func (svc *QuestionService) mapQuestionToResponse(question *model.Question) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:             question.ID,
		LessonID:       question.LessonID,
		PhraseID:       question.PhraseID,
		Type:           question.Type,
		Subtype:        question.Subtype,
		PromptTemplate: question.PromptTemplate,
		Options:        unmarshalStrings(question.Options),
		CorrectIndex:   question.CorrectIndex,
		Explanation:    question.Explanation,
		Status:         question.Status,
		CreatedAt:      question.CreatedAt,
		UpdatedAt:      question.UpdatedAt,
	}

	if len(question.ReviewData) > 0 {
		var review dto.ReviewDataInput
		if err := json.Unmarshal(question.ReviewData, &review); err == nil && len(review.Words) > 0 {
			resp.ReviewData = &review
		}
	}
	return resp
}

func marshalReviewData(input *dto.ReviewDataInput) json.RawMessage {
	if input == nil {
		return nil
	}
	raw, err := json.Marshal(input)
	if err != nil {
		return nil
	}
	return raw
}
