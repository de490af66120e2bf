// services/content.go
package services

import (
	"context"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

// ContentService serves the learner-facing read API. It only ever exposes
// published content and leans on the catalog cache.
type ContentService struct {
	appContext.DefaultService
	sqlSvc     *PostgresService
	cacheSvc   *CacheService
	lessonSvc  *LessonService
	phraseSvc  *PhraseService
	proverbSvc *ProverbService
	quizSvc    *QuestionService
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.cacheSvc = svc.Service(CACHE_SVC).(*CacheService)
	svc.lessonSvc = svc.Service(LESSON_SVC).(*LessonService)
	svc.phraseSvc = svc.Service(PHRASE_SVC).(*PhraseService)
	svc.proverbSvc = svc.Service(PROVERB_SVC).(*ProverbService)
	svc.quizSvc = svc.Service(QUESTION_SVC).(*QuestionService)
	return nil
}

// GetCatalog lists the published lessons of a language in study order.
func (svc *ContentService) GetCatalog(language string) (*dto.CatalogResponse, error) {
	if !shared.IsValidLanguage(language) {
		return nil, shared.NewBadRequestError(nil, "unknown language")
	}

	ctx := context.Background()
	var cached dto.CatalogResponse
	if svc.cacheSvc != nil && svc.cacheSvc.GetJSON(ctx, svc.cacheSvc.CatalogKey(language), &cached) {
		return &cached, nil
	}

	lessons, err := svc.sqlSvc.Lessons().ListPublishedByLanguage(language)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	responses := make([]dto.LessonResponse, len(lessons))
	for i := range lessons {
		responses[i] = svc.lessonSvc.mapLessonToResponse(&lessons[i])
	}

	catalog := &dto.CatalogResponse{Language: language, Lessons: responses}
	if svc.cacheSvc != nil {
		svc.cacheSvc.SetJSON(ctx, svc.cacheSvc.CatalogKey(language), catalog)
	}
	return catalog, nil
}

// GetLessonContent assembles one published lesson with its published phrases,
// proverbs and quiz.
func (svc *ContentService) GetLessonContent(lessonID string) (*dto.CatalogLessonResponse, error) {
	ctx := context.Background()
	var cached dto.CatalogLessonResponse
	if svc.cacheSvc != nil && svc.cacheSvc.GetJSON(ctx, svc.cacheSvc.LessonKey(lessonID), &cached) {
		return &cached, nil
	}

	lesson, err := svc.sqlSvc.Lessons().Get(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if lesson.Status != shared.StatusPublished {
		return nil, shared.NewNotFoundError("lesson")
	}

	result := &dto.CatalogLessonResponse{
		Lesson:   svc.lessonSvc.mapLessonToResponse(lesson),
		Phrases:  []dto.PhraseResponse{},
		Proverbs: []dto.ProverbResponse{},
		Quiz:     []dto.QuestionResponse{},
	}

	phrases, err := svc.sqlSvc.Phrases().ListByLesson(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	for i := range phrases {
		if phrases[i].Status != shared.StatusPublished {
			continue
		}
		lessonIDs, err := svc.sqlSvc.Phrases().LessonIDs(phrases[i].ID)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		result.Phrases = append(result.Phrases, svc.phraseSvc.mapPhraseToResponse(&phrases[i], lessonIDs))
	}

	proverbs, err := svc.sqlSvc.Proverbs().ListByLesson(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	for i := range proverbs {
		if proverbs[i].Status != shared.StatusPublished {
			continue
		}
		resp, err := svc.proverbSvc.respond(&proverbs[i], false)
		if err != nil {
			return nil, err
		}
		result.Proverbs = append(result.Proverbs, *resp)
	}

	questions, err := svc.sqlSvc.Questions().ListByLesson(lessonID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	for i := range questions {
		if questions[i].Status != shared.StatusPublished {
			continue
		}
		result.Quiz = append(result.Quiz, svc.quizSvc.mapQuestionToResponse(&questions[i]))
	}

	if svc.cacheSvc != nil {
		svc.cacheSvc.SetJSON(ctx, svc.cacheSvc.LessonKey(lessonID), result)
	}

	log.WithFields(log.Fields{
		"lesson_id": lessonID,
		"phrases":   len(result.Phrases),
		"quiz":      len(result.Quiz),
	}).Debug("Lesson content assembled")

	return result, nil
}
