package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

type QuestionHandler struct {
	resolver    ActorResolver
	questionSvc QuestionServiceInterface
}

func NewQuestionHandler(resolver ActorResolver, questionSvc QuestionServiceInterface) *QuestionHandler {
	return &QuestionHandler{resolver: resolver, questionSvc: questionSvc}
}

// @Summary Create a question on a (lesson, phrase) pair
// @Tags questions
// @Accept json
// @Produce json
// @Param createQuestionRequest body dto.CreateQuestionRequest true "Question details"
// @Success 201 {object} shared.Response{data=dto.QuestionResponse}
// @Router /api/v1/questions [post]
func (h *QuestionHandler) Create(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.questionSvc.CreateQuestion(actor, req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusCreated, "Question created", resp)
}

// @Summary Get a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} shared.Response{data=dto.QuestionResponse}
// @Router /api/v1/questions/{id} [get]
func (h *QuestionHandler) Get(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.questionSvc.GetQuestion(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary List the questions of a lesson
// @Tags questions
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.QuestionCollectionResponse}
// @Router /api/v1/lessons/{id}/questions [get]
func (h *QuestionHandler) ListByLesson(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.questionSvc.ListLessonQuestions(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Mark a question finished
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} shared.Response{data=dto.QuestionResponse}
// @Router /api/v1/questions/{id}/finish [post]
func (h *QuestionHandler) Finish(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.questionSvc.FinishQuestion(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Publish a question
// @Description Requires the question to be finished and its phrase to be published
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} shared.Response{data=dto.QuestionResponse}
// @Router /api/v1/questions/{id}/publish [post]
func (h *QuestionHandler) Publish(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.questionSvc.PublishQuestion(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Send a finished question back to its tutor
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} shared.Response{data=dto.QuestionResponse}
// @Router /api/v1/questions/{id}/send-back [post]
func (h *QuestionHandler) SendBack(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.questionSvc.SendBackToTutor(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/questions/{id} [delete]
func (h *QuestionHandler) Delete(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	if err := h.questionSvc.DeleteQuestion(actor, c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Question deleted", nil)
}
