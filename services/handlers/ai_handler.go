package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

type AiHandler struct {
	resolver ActorResolver
	aiSvc    AiServiceInterface
}

func NewAiHandler(resolver ActorResolver, aiSvc AiServiceInterface) *AiHandler {
	return &AiHandler{resolver: resolver, aiSvc: aiSvc}
}

// @Summary Generate phrases into a lesson
// @Description Runs model output through sanitization; bad items are skipped, never aborting the batch
// @Tags ai
// @Accept json
// @Produce json
// @Param generateRequest body dto.GeneratePhrasesRequest true "Generation parameters"
// @Success 200 {object} shared.Response{data=dto.BulkGenerationResponse}
// @Router /api/v1/ai/phrases [post]
func (h *AiHandler) GeneratePhrases(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.GeneratePhrasesRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.aiSvc.GeneratePhrases(actor, req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Phrase batch processed", resp)
}

// @Summary Enhance a draft phrase
// @Description Fills pronunciation, explanation and examples without touching text or translation
// @Tags ai
// @Accept json
// @Produce json
// @Param enhanceRequest body dto.EnhancePhraseRequest true "Phrase to enhance"
// @Success 200 {object} shared.Response{data=dto.PhraseResponse}
// @Router /api/v1/ai/enhance [post]
func (h *AiHandler) EnhancePhrase(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.EnhancePhraseRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.aiSvc.EnhancePhrase(actor, req)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Suggest and draft a whole lesson
// @Tags ai
// @Accept json
// @Produce json
// @Param suggestRequest body dto.SuggestLessonRequest true "Suggestion parameters"
// @Success 201 {object} shared.Response{data=dto.SuggestLessonResponse}
// @Router /api/v1/ai/lessons [post]
func (h *AiHandler) SuggestLesson(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	var req dto.SuggestLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.aiSvc.SuggestLesson(actor, req)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusCreated, "Lesson drafted", resp)
}
