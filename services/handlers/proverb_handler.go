package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

type ProverbHandler struct {
	resolver   ActorResolver
	proverbSvc ProverbServiceInterface
}

func NewProverbHandler(resolver ActorResolver, proverbSvc ProverbServiceInterface) *ProverbHandler {
	return &ProverbHandler{resolver: resolver, proverbSvc: proverbSvc}
}

// @Summary Create a proverb, merging into an existing duplicate if one exists
// @Tags proverbs
// @Accept json
// @Produce json
// @Param createProverbRequest body dto.CreateProverbRequest true "Proverb details"
// @Success 201 {object} shared.Response{data=dto.ProverbResponse}
// @Router /api/v1/proverbs [post]
func (h *ProverbHandler) Create(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.CreateProverbRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.proverbSvc.CreateProverb(actor, req)
	if err != nil {
		return err
	}

	status := http.StatusCreated
	message := "Proverb created"
	if resp.Merged {
		status = http.StatusOK
		message = "Proverb merged into existing entry"
	}
	return shared.ResponseJSON(c, status, message, resp)
}

// @Summary Get a proverb
// @Tags proverbs
// @Produce json
// @Param id path string true "Proverb ID"
// @Success 200 {object} shared.Response{data=dto.ProverbResponse}
// @Router /api/v1/proverbs/{id} [get]
func (h *ProverbHandler) Get(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.proverbSvc.GetProverb(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary List the proverbs of a lesson
// @Tags proverbs
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.ProverbCollectionResponse}
// @Router /api/v1/lessons/{id}/proverbs [get]
func (h *ProverbHandler) ListByLesson(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.proverbSvc.ListLessonProverbs(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Update a proverb
// @Tags proverbs
// @Accept json
// @Produce json
// @Param id path string true "Proverb ID"
// @Param updateProverbRequest body dto.UpdateProverbRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.ProverbResponse}
// @Router /api/v1/proverbs/{id} [put]
func (h *ProverbHandler) Update(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.UpdateProverbRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.proverbSvc.UpdateProverb(actor, c.Params("id"), req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Mark a proverb finished
// @Tags proverbs
// @Produce json
// @Param id path string true "Proverb ID"
// @Success 200 {object} shared.Response{data=dto.ProverbResponse}
// @Router /api/v1/proverbs/{id}/finish [post]
func (h *ProverbHandler) Finish(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.proverbSvc.FinishProverb(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Publish a proverb
// @Tags proverbs
// @Accept json
// @Produce json
// @Param id path string true "Proverb ID"
// @Param publishRequest body dto.PublishRequest false "Review flag"
// @Success 200 {object} shared.Response{data=dto.ProverbResponse}
// @Router /api/v1/proverbs/{id}/publish [post]
func (h *ProverbHandler) Publish(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.PublishRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return err
		}
	}

	resp, err := h.proverbSvc.PublishProverb(actor, c.Params("id"), req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Unlink a proverb from a lesson
// @Tags proverbs
// @Accept json
// @Produce json
// @Param id path string true "Proverb ID"
// @Param linkRequest body dto.LinkPhraseRequest true "Lesson to detach from"
// @Success 200 {object} shared.Response
// @Router /api/v1/proverbs/{id}/unlink [post]
func (h *ProverbHandler) Unlink(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.LinkPhraseRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.proverbSvc.UnlinkProverb(actor, c.Params("id"), req.LessonID); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Proverb unlinked", nil)
}

// @Summary Delete a proverb everywhere
// @Tags proverbs
// @Produce json
// @Param id path string true "Proverb ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/proverbs/{id} [delete]
func (h *ProverbHandler) Delete(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	if err := h.proverbSvc.DeleteProverb(actor, c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Proverb deleted", nil)
}
