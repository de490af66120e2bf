// services/audio.go
package services

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/naija-lingo/lingo_api/dto"
	"github.com/naija-lingo/lingo_api/shared"
)

// AudioService runs the voice-artist recording pipeline: files land in object
// storage and the resulting descriptor is attached to the phrase.
type AudioService struct {
	context.DefaultService
	sqlSvc    *PostgresService
	scopeSvc  *ScopeService
	phraseSvc *PhraseService
	minioSvc  *MinIOService

	publicBaseURL string
}

const AUDIO_SVC = "audio_svc"

func (svc AudioService) Id() string {
	return AUDIO_SVC
}

func (svc *AudioService) Configure(ctx *context.Context) error {
	svc.publicBaseURL = os.Getenv("AUDIO_PUBLIC_BASE_URL")
	return svc.DefaultService.Configure(ctx)
}

func (svc *AudioService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.scopeSvc = svc.Service(SCOPE_SVC).(*ScopeService)
	svc.phraseSvc = svc.Service(PHRASE_SVC).(*PhraseService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

var audioFormats = map[string]string{
	"audio/mpeg": "mp3",
	"audio/mp3":  "mp3",
	"audio/wav":  "wav",
	"audio/wave": "wav",
	"audio/ogg":  "ogg",
	"audio/webm": "webm",
}

// UploadRecording stores the file and attaches its descriptor to the phrase.
// The artist's locale comes from their language scope.
func (svc *AudioService) UploadRecording(actor dto.Actor, phraseID string, reader io.Reader, size int64, contentType string) (*dto.PhraseResponse, error) {
	format, ok := audioFormats[strings.ToLower(contentType)]
	if !ok {
		return nil, shared.NewBadRequestError(nil, "unsupported audio content type")
	}

	phrase, err := svc.phraseSvc.loadScoped(actor, phraseID)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("audio/%s/%s.%s", phrase.Language, phraseID, format)
	if _, err := svc.minioSvc.UploadFile(objectName, reader, size, contentType); err != nil {
		return nil, shared.NewUpstreamError(err, "failed to store recording")
	}

	url, err := svc.resolveURL(objectName)
	if err != nil {
		return nil, shared.NewUpstreamError(err, "failed to resolve recording URL")
	}

	log.WithFields(log.Fields{
		"phrase_id": phraseID,
		"object":    objectName,
		"artist":    actor.ID,
	}).Info("Recording uploaded")

	return svc.phraseSvc.AttachAudio(actor, phraseID, dto.AudioDescriptor{
		Provider:   "voice_artist",
		Voice:      actor.ID,
		Locale:     phrase.Language,
		Format:     format,
		URL:        url,
		StorageKey: objectName,
	})
}

// RemoveRecording deletes the stored object and clears the descriptor.
func (svc *AudioService) RemoveRecording(actor dto.Actor, phraseID string) error {
	phrase, err := svc.phraseSvc.loadScoped(actor, phraseID)
	if err != nil {
		return err
	}
	if phrase.AudioStorageKey == "" {
		return shared.NewNotFoundError("recording")
	}

	if err := svc.minioSvc.DeleteFile(phrase.AudioStorageKey); err != nil {
		log.WithError(err).Warn("Failed to delete stored recording; clearing descriptor anyway")
	}

	fields := map[string]interface{}{
		"audio_provider":    "",
		"audio_model":       "",
		"audio_voice":       "",
		"audio_locale":      "",
		"audio_format":      "",
		"audio_url":         "",
		"audio_storage_key": "",
	}
	if err := svc.sqlSvc.Phrases().UpdateFields(phraseID, fields); err != nil {
		return svc.sqlSvc.HandleError(err)
	}
	return nil
}

// WorkQueue lists the phrases in the artist's language still waiting for a
// recording.
func (svc *AudioService) WorkQueue(actor dto.Actor, language string) (*dto.PhraseCollectionResponse, error) {
	return svc.phraseSvc.ListMissingAudio(actor, language)
}

func (svc *AudioService) resolveURL(objectName string) (string, error) {
	if svc.publicBaseURL != "" {
		return strings.TrimSuffix(svc.publicBaseURL, "/") + "/" + objectName, nil
	}
	return svc.minioSvc.GetFileURL(objectName, 7*24*time.Hour)
}
