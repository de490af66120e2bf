// services/http.go
package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	"github.com/naija-lingo/lingo_api/services/handlers"
	"github.com/naija-lingo/lingo_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc *AuthService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	scopeSvc := svc.Service(SCOPE_SVC).(*ScopeService)
	lessonSvc := svc.Service(LESSON_SVC).(*LessonService)
	phraseSvc := svc.Service(PHRASE_SVC).(*PhraseService)
	proverbSvc := svc.Service(PROVERB_SVC).(*ProverbService)
	questionSvc := svc.Service(QUESTION_SVC).(*QuestionService)
	aiSvc := svc.Service(AI_SVC).(*AiService)
	audioSvc := svc.Service(AUDIO_SVC).(*AudioService)
	contentSvc := svc.Service(CONTENT_SVC).(*ContentService)

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
		BodyLimit:    32 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(svc.requestMetrics)

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	authHandler := handlers.NewAuthHandler(svc.authSvc)
	lessonHandler := handlers.NewLessonHandler(scopeSvc, lessonSvc)
	phraseHandler := handlers.NewPhraseHandler(scopeSvc, phraseSvc)
	proverbHandler := handlers.NewProverbHandler(scopeSvc, proverbSvc)
	questionHandler := handlers.NewQuestionHandler(scopeSvc, questionSvc)
	aiHandler := handlers.NewAiHandler(scopeSvc, aiSvc)
	audioHandler := handlers.NewAudioHandler(scopeSvc, audioSvc)
	contentHandler := handlers.NewContentHandler(contentSvc)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	v1.Post("/register", authHandler.Register)
	v1.Post("/login", authHandler.Login)
	v1.Post("/refresh", svc.authSvc.RequiredAuth(), authHandler.Refresh)

	// Learner read API, unauthenticated.
	v1.Get("/catalog/lessons/:id", contentHandler.LessonContent)
	v1.Get("/catalog/:language", contentHandler.Catalog)

	authoring := v1.Group("", svc.authSvc.RequiredAuth(),
		svc.authSvc.RequireRole(shared.RoleAdmin, shared.RoleTutor))

	authoring.Post("/lessons", lessonHandler.Create)
	authoring.Get("/lessons", lessonHandler.List)
	authoring.Post("/lessons/reorder", lessonHandler.Reorder)
	authoring.Get("/lessons/:id", lessonHandler.Get)
	authoring.Put("/lessons/:id", lessonHandler.Update)
	authoring.Delete("/lessons/:id", lessonHandler.Delete)
	authoring.Post("/lessons/:id/finish", lessonHandler.Finish)
	authoring.Post("/lessons/:id/publish", lessonHandler.Publish)
	authoring.Get("/lessons/:id/phrases", phraseHandler.ListByLesson)
	authoring.Get("/lessons/:id/proverbs", proverbHandler.ListByLesson)
	authoring.Get("/lessons/:id/questions", questionHandler.ListByLesson)

	authoring.Post("/phrases", phraseHandler.Create)
	authoring.Get("/phrases/:id", phraseHandler.Get)
	authoring.Put("/phrases/:id", phraseHandler.Update)
	authoring.Delete("/phrases/:id", phraseHandler.Delete)
	authoring.Post("/phrases/:id/link", phraseHandler.Link)
	authoring.Post("/phrases/:id/unlink", phraseHandler.Unlink)
	authoring.Post("/phrases/:id/finish", phraseHandler.Finish)
	authoring.Post("/phrases/:id/publish", phraseHandler.Publish)

	authoring.Post("/proverbs", proverbHandler.Create)
	authoring.Get("/proverbs/:id", proverbHandler.Get)
	authoring.Put("/proverbs/:id", proverbHandler.Update)
	authoring.Delete("/proverbs/:id", proverbHandler.Delete)
	authoring.Post("/proverbs/:id/finish", proverbHandler.Finish)
	authoring.Post("/proverbs/:id/publish", proverbHandler.Publish)
	authoring.Post("/proverbs/:id/unlink", proverbHandler.Unlink)

	authoring.Post("/questions", questionHandler.Create)
	authoring.Get("/questions/:id", questionHandler.Get)
	authoring.Delete("/questions/:id", questionHandler.Delete)
	authoring.Post("/questions/:id/finish", questionHandler.Finish)
	authoring.Post("/questions/:id/publish", questionHandler.Publish)

	v1.Post("/questions/:id/send-back", svc.authSvc.RequiredAuth(),
		svc.authSvc.RequireRole(shared.RoleAdmin), questionHandler.SendBack)

	authoring.Post("/ai/phrases", aiHandler.GeneratePhrases)
	authoring.Post("/ai/enhance", aiHandler.EnhancePhrase)
	authoring.Post("/ai/lessons", aiHandler.SuggestLesson)

	recording := v1.Group("/audio", svc.authSvc.RequiredAuth(),
		svc.authSvc.RequireRole(shared.RoleAdmin, shared.RoleVoiceArtist))
	recording.Get("/queue", audioHandler.Queue)
	recording.Post("/phrases/:id", audioHandler.Upload)
	recording.Delete("/phrases/:id", audioHandler.Remove)

	svc.server = app

	log.WithField("port", svc.port).Info("HTTP server starting")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseOK(c, "pong")
}

func (svc *HttpService) requestMetrics(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if appErr, ok := shared.GetAppError(err); ok {
			status = appErr.StatusCode
		} else if fiberErr, ok := err.(*fiber.Error); ok {
			status = fiberErr.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	RecordHTTPRequest(c.Route().Path, c.Method(), status, time.Since(start))
	return err
}

// handleError is the single place API errors turn into wire responses.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, fiber.Map{
			"reason":  appErr.Reason,
			"details": appErr.Data,
		})
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).Error("Unhandled request error")
	return shared.ResponseInternalError(c, err)
}
