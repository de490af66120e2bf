package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

type PhraseHandler struct {
	resolver  ActorResolver
	phraseSvc PhraseServiceInterface
}

func NewPhraseHandler(resolver ActorResolver, phraseSvc PhraseServiceInterface) *PhraseHandler {
	return &PhraseHandler{resolver: resolver, phraseSvc: phraseSvc}
}

// @Summary Create a phrase linked to one or more lessons
// @Tags phrases
// @Accept json
// @Produce json
// @Param createPhraseRequest body dto.CreatePhraseRequest true "Phrase details"
// @Success 201 {object} shared.Response{data=dto.PhraseResponse}
// @Router /api/v1/phrases [post]
func (h *PhraseHandler) Create(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.CreatePhraseRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.phraseSvc.CreatePhrase(actor, req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusCreated, "Phrase created", resp)
}

// @Summary Get a phrase
// @Tags phrases
// @Produce json
// @Param id path string true "Phrase ID"
// @Success 200 {object} shared.Response{data=dto.PhraseResponse}
// @Router /api/v1/phrases/{id} [get]
func (h *PhraseHandler) Get(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.phraseSvc.GetPhrase(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary List the phrases of a lesson
// @Tags phrases
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.PhraseCollectionResponse}
// @Router /api/v1/lessons/{id}/phrases [get]
func (h *PhraseHandler) ListByLesson(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.phraseSvc.ListLessonPhrases(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Update a phrase
// @Tags phrases
// @Accept json
// @Produce json
// @Param id path string true "Phrase ID"
// @Param updatePhraseRequest body dto.UpdatePhraseRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.PhraseResponse}
// @Router /api/v1/phrases/{id} [put]
func (h *PhraseHandler) Update(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.UpdatePhraseRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.phraseSvc.UpdatePhrase(actor, c.Params("id"), req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Link a phrase into another lesson
// @Tags phrases
// @Accept json
// @Produce json
// @Param id path string true "Phrase ID"
// @Param linkRequest body dto.LinkPhraseRequest true "Target lesson"
// @Success 200 {object} shared.Response{data=dto.PhraseResponse}
// @Router /api/v1/phrases/{id}/link [post]
func (h *PhraseHandler) Link(c *fiber.Ctx) error {
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

	resp, err := h.phraseSvc.LinkPhrase(actor, c.Params("id"), req.LessonID)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Unlink a phrase from a lesson
// @Description Removes the questions built on the pair; a phrase left without lessons is deleted
// @Tags phrases
// @Accept json
// @Produce json
// @Param id path string true "Phrase ID"
// @Param linkRequest body dto.LinkPhraseRequest true "Lesson to detach from"
// @Success 200 {object} shared.Response
// @Router /api/v1/phrases/{id}/unlink [post]
func (h *PhraseHandler) Unlink(c *fiber.Ctx) error {
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

	if err := h.phraseSvc.UnlinkPhrase(actor, c.Params("id"), req.LessonID); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Phrase unlinked", nil)
}

// @Summary Mark a phrase finished
// @Tags phrases
// @Produce json
// @Param id path string true "Phrase ID"
// @Success 200 {object} shared.Response{data=dto.PhraseResponse}
// @Router /api/v1/phrases/{id}/finish [post]
func (h *PhraseHandler) Finish(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	resp, err := h.phraseSvc.FinishPhrase(actor, c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Publish a phrase
// @Tags phrases
// @Accept json
// @Produce json
// @Param id path string true "Phrase ID"
// @Param publishRequest body dto.PublishRequest false "Review flag"
// @Success 200 {object} shared.Response{data=dto.PhraseResponse}
// @Router /api/v1/phrases/{id}/publish [post]
func (h *PhraseHandler) Publish(c *fiber.Ctx) error {
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

	resp, err := h.phraseSvc.PublishPhrase(actor, c.Params("id"), req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Delete a phrase everywhere
// @Tags phrases
// @Produce json
// @Param id path string true "Phrase ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/phrases/{id} [delete]
func (h *PhraseHandler) Delete(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	if err := h.phraseSvc.DeletePhrase(actor, c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Phrase deleted", nil)
}
