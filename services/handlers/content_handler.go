package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/naija-lingo/lingo_api/shared"
)

// ContentHandler serves the unauthenticated learner read API.
type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{contentSvc: contentSvc}
}

// @Summary Published lesson catalog for a language
// @Tags catalog
// @Produce json
// @Param language path string true "Language"
// @Success 200 {object} shared.Response{data=dto.CatalogResponse}
// @Router /api/v1/catalog/{language} [get]
func (h *ContentHandler) Catalog(c *fiber.Ctx) error {
	resp, err := h.contentSvc.GetCatalog(c.Params("language"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Published lesson with phrases, proverbs and quiz
// @Tags catalog
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.CatalogLessonResponse}
// @Router /api/v1/catalog/lessons/{id} [get]
func (h *ContentHandler) LessonContent(c *fiber.Ctx) error {
	resp, err := h.contentSvc.GetLessonContent(c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}
