package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

type LessonHandler struct {
	resolver  ActorResolver
	lessonSvc LessonServiceInterface
}

func NewLessonHandler(resolver ActorResolver, lessonSvc LessonServiceInterface) *LessonHandler {
	return &LessonHandler{resolver: resolver, lessonSvc: lessonSvc}
}

// @Summary Create a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param createLessonRequest body dto.CreateLessonRequest true "Lesson details"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons [post]
func (h *LessonHandler) Create(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.lessonSvc.CreateLesson(actor, req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusCreated, "Lesson created", resp)
}

// @Summary Get a lesson
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons/{id} [get]
func (h *LessonHandler) Get(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.lessonSvc.GetLesson(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary List lessons of a language in study order
// @Tags lessons
// @Produce json
// @Param language query string true "Language"
// @Success 200 {object} shared.Response{data=dto.LessonCollectionResponse}
// @Router /api/v1/lessons [get]
func (h *LessonHandler) List(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	language := c.Query("language")
	if language == "" && actor.ScopeLanguage != "" {
		language = actor.ScopeLanguage
	}

	resp, err := h.lessonSvc.ListLessons(actor, language)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param updateLessonRequest body dto.UpdateLessonRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons/{id} [put]
func (h *LessonHandler) Update(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.lessonSvc.UpdateLesson(actor, c.Params("id"), req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Reorder the lessons of a language
// @Description Atomically replaces the ordering; the submitted id set must match the active lesson set exactly
// @Tags lessons
// @Accept json
// @Produce json
// @Param reorderRequest body dto.ReorderLessonsRequest true "New ordering"
// @Success 200 {object} shared.Response{data=dto.LessonCollectionResponse}
// @Router /api/v1/lessons/reorder [post]
func (h *LessonHandler) Reorder(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.ReorderLessonsRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.lessonSvc.ReorderLessons(actor, req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Mark a lesson finished
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons/{id}/finish [post]
func (h *LessonHandler) Finish(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.lessonSvc.FinishLesson(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Publish a lesson
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons/{id}/publish [post]
func (h *LessonHandler) Publish(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.lessonSvc.PublishLesson(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Delete a lesson and its dependent content
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/lessons/{id} [delete]
func (h *LessonHandler) Delete(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	if err := h.lessonSvc.DeleteLesson(actor, c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Lesson deleted", nil)
}
