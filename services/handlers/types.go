package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(userID string) (*dto.LoginResponse, error)
}

type ActorResolver interface {
	ResolveActor(userID, role string) (dto.Actor, error)
}

type LessonServiceInterface interface {
	CreateLesson(actor dto.Actor, req dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetLesson(actor dto.Actor, id string) (*dto.LessonResponse, error)
	ListLessons(actor dto.Actor, language string) (*dto.LessonCollectionResponse, error)
	UpdateLesson(actor dto.Actor, id string, req dto.UpdateLessonRequest) (*dto.LessonResponse, error)
	ReorderLessons(actor dto.Actor, req dto.ReorderLessonsRequest) (*dto.LessonCollectionResponse, error)
	FinishLesson(actor dto.Actor, id string) (*dto.LessonResponse, error)
	PublishLesson(actor dto.Actor, id string) (*dto.LessonResponse, error)
	DeleteLesson(actor dto.Actor, id string) error
}

type PhraseServiceInterface interface {
	CreatePhrase(actor dto.Actor, req dto.CreatePhraseRequest) (*dto.PhraseResponse, error)
	GetPhrase(actor dto.Actor, id string) (*dto.PhraseResponse, error)
	ListLessonPhrases(actor dto.Actor, lessonID string) (*dto.PhraseCollectionResponse, error)
	UpdatePhrase(actor dto.Actor, id string, req dto.UpdatePhraseRequest) (*dto.PhraseResponse, error)
	LinkPhrase(actor dto.Actor, phraseID, lessonID string) (*dto.PhraseResponse, error)
	UnlinkPhrase(actor dto.Actor, phraseID, lessonID string) error
	FinishPhrase(actor dto.Actor, id string) (*dto.PhraseResponse, error)
	PublishPhrase(actor dto.Actor, id string, req dto.PublishRequest) (*dto.PhraseResponse, error)
	DeletePhrase(actor dto.Actor, id string) error
}

type ProverbServiceInterface interface {
	CreateProverb(actor dto.Actor, req dto.CreateProverbRequest) (*dto.ProverbResponse, error)
	GetProverb(actor dto.Actor, id string) (*dto.ProverbResponse, error)
	ListLessonProverbs(actor dto.Actor, lessonID string) (*dto.ProverbCollectionResponse, error)
	UpdateProverb(actor dto.Actor, id string, req dto.UpdateProverbRequest) (*dto.ProverbResponse, error)
	FinishProverb(actor dto.Actor, id string) (*dto.ProverbResponse, error)
	PublishProverb(actor dto.Actor, id string, req dto.PublishRequest) (*dto.ProverbResponse, error)
	UnlinkProverb(actor dto.Actor, proverbID, lessonID string) error
	DeleteProverb(actor dto.Actor, id string) error
}

type QuestionServiceInterface interface {
	CreateQuestion(actor dto.Actor, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	GetQuestion(actor dto.Actor, id string) (*dto.QuestionResponse, error)
	ListLessonQuestions(actor dto.Actor, lessonID string) (*dto.QuestionCollectionResponse, error)
	FinishQuestion(actor dto.Actor, id string) (*dto.QuestionResponse, error)
	PublishQuestion(actor dto.Actor, id string) (*dto.QuestionResponse, error)
	SendBackToTutor(actor dto.Actor, id string) (*dto.QuestionResponse, error)
	DeleteQuestion(actor dto.Actor, id string) error
}

type AiServiceInterface interface {
	GeneratePhrases(actor dto.Actor, req dto.GeneratePhrasesRequest) (*dto.BulkGenerationResponse, error)
	EnhancePhrase(actor dto.Actor, req dto.EnhancePhraseRequest) (*dto.PhraseResponse, error)
	SuggestLesson(actor dto.Actor, req dto.SuggestLessonRequest) (*dto.SuggestLessonResponse, error)
}

type AudioServiceInterface interface {
	UploadRecording(actor dto.Actor, phraseID string, reader io.Reader, size int64, contentType string) (*dto.PhraseResponse, error)
	RemoveRecording(actor dto.Actor, phraseID string) error
	WorkQueue(actor dto.Actor, language string) (*dto.PhraseCollectionResponse, error)
}

type ContentServiceInterface interface {
	GetCatalog(language string) (*dto.CatalogResponse, error)
	GetLessonContent(lessonID string) (*dto.CatalogLessonResponse, error)
}

// requestActor rebuilds the workflow actor from the authenticated request.
func requestActor(c *fiber.Ctx, resolver ActorResolver) (dto.Actor, error) {
	userID, _ := c.Locals(shared.UserID).(string)
	role, _ := c.Locals(shared.UserRole).(string)
	if userID == "" {
		return dto.Actor{}, shared.NewUnauthorizedError("missing authenticated user")
	}
	return resolver.ResolveActor(userID, role)
}
