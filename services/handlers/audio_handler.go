package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/naija-lingo/lingo_api/shared"
)

type AudioHandler struct {
	resolver ActorResolver
	audioSvc AudioServiceInterface
}

func NewAudioHandler(resolver ActorResolver, audioSvc AudioServiceInterface) *AudioHandler {
	return &AudioHandler{resolver: resolver, audioSvc: audioSvc}
}

// @Summary List phrases awaiting a recording
// @Tags audio
// @Produce json
// @Param language query string true "Language"
// @Success 200 {object} shared.Response{data=dto.PhraseCollectionResponse}
// @Router /api/v1/audio/queue [get]
func (h *AudioHandler) Queue(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	language := c.Query("language")
	if language == "" && actor.ScopeLanguage != "" {
		language = actor.ScopeLanguage
	}

	resp, err := h.audioSvc.WorkQueue(actor, language)
	if err != nil {
		return err
	}
	return shared.ResponseOK(c, resp)
}

// @Summary Upload a recording for a phrase
// @Tags audio
// @Accept mpfd
// @Produce json
// @Param id path string true "Phrase ID"
// @Param file formData file true "Audio file"
// @Success 200 {object} shared.Response{data=dto.PhraseResponse}
// @Router /api/v1/audio/phrases/{id} [post]
func (h *AudioHandler) Upload(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "missing audio file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return shared.NewBadRequestError(err, "unreadable audio file")
	}
	defer file.Close()

	resp, err := h.audioSvc.UploadRecording(actor, c.Params("id"), file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Recording attached", resp)
}

// @Summary Remove the recording of a phrase
// @Tags audio
// @Produce json
// @Param id path string true "Phrase ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/audio/phrases/{id} [delete]
func (h *AudioHandler) Remove(c *fiber.Ctx) error {
	actor, err := requestActor(c, h.resolver)
	if err != nil {
		return err
	}

	if err := h.audioSvc.RemoveRecording(actor, c.Params("id")); err != nil {
		return err
	}
	return shared.ResponseJSON(c, http.StatusOK, "Recording removed", nil)
}
