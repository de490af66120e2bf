package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/naija-lingo/lingo_api/model"
	"gorm.io/gorm"
)

type PhraseRepository struct {
	BaseRepository
}

func NewPhraseRepository(db *gorm.DB) *PhraseRepository {
	return &PhraseRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *PhraseRepository) Create(phrase *model.Phrase) (*model.Phrase, error) {
	if phrase.ID == "" {
		id, _ := uuid.NewV7()
		phrase.ID = id.String()
	}
	phrase.CreatedAt = time.Now()
	phrase.UpdatedAt = time.Now()

	if err := ds.db.Create(phrase).Error; err != nil {
		return nil, err
	}
	return phrase, nil
}

func (ds *PhraseRepository) Get(id string) (*model.Phrase, error) {
	var phrase model.Phrase
	if err := ds.db.Where("id = ? AND deleted = ?", id, false).First(&phrase).Error; err != nil {
		return nil, err
	}
	return &phrase, nil
}

func (ds *PhraseRepository) ListByLesson(lessonID string) ([]model.Phrase, error) {
	var phrases []model.Phrase
	if err := ds.db.
		Joins("JOIN lesson_phrases ON lesson_phrases.phrase_id = phrases.id").
		Where("lesson_phrases.lesson_id = ? AND phrases.deleted = ?", lessonID, false).
		Order("phrases.created_at ASC").
		Find(&phrases).Error; err != nil {
		return nil, err
	}
	return phrases, nil
}

func (ds *PhraseRepository) ListByLanguageAndStatus(language, status string) ([]model.Phrase, error) {
	var phrases []model.Phrase
	query := ds.db.Where("language = ? AND deleted = ?", language, false)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at ASC").Find(&phrases).Error; err != nil {
		return nil, err
	}
	return phrases, nil
}

// ListMissingAudio feeds the voice-artist queue: reviewed phrases that still
// have no recording attached.
func (ds *PhraseRepository) ListMissingAudio(language string) ([]model.Phrase, error) {
	var phrases []model.Phrase
	if err := ds.db.
		Where("language = ? AND deleted = ? AND audio_url = ? AND status IN ?",
			language, false, "", []string{"finished", "published"}).
		Order("created_at ASC").
		Find(&phrases).Error; err != nil {
		return nil, err
	}
	return phrases, nil
}

func (ds *PhraseRepository) UpdateFields(id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := ds.db.Model(&model.Phrase{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(fields)
	return checkAffected(res)
}

func (ds *PhraseRepository) UpdateStatusIf(id, expected string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := ds.db.Model(&model.Phrase{}).
		Where("id = ? AND deleted = ? AND status = ?", id, false, expected).
		Updates(fields)
	return checkAffected(res)
}

func (ds *PhraseRepository) SoftDelete(id string, now time.Time) error {
	res := ds.db.Model(&model.Phrase{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"deleted_at": now,
			"updated_at": now,
		})
	return checkAffected(res)
}

// ==================== LESSON LINKS ====================

func (ds *PhraseRepository) Link(lessonID, phraseID string) error {
	link := model.LessonPhrase{LessonID: lessonID, PhraseID: phraseID, CreatedAt: time.Now()}
	// Re-linking an existing pair is a no-op, not an error.
	err := ds.db.Create(&link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (ds *PhraseRepository) Unlink(lessonID, phraseID string) error {
	return ds.db.Where("lesson_id = ? AND phrase_id = ?", lessonID, phraseID).
		Delete(&model.LessonPhrase{}).Error
}

func (ds *PhraseRepository) HasLink(lessonID, phraseID string) (bool, error) {
	var count int64
	if err := ds.db.Model(&model.LessonPhrase{}).
		Where("lesson_id = ? AND phrase_id = ?", lessonID, phraseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ds *PhraseRepository) LessonIDs(phraseID string) ([]string, error) {
	var ids []string
	if err := ds.db.Model(&model.LessonPhrase{}).
		Where("phrase_id = ?", phraseID).
		Order("created_at ASC").
		Pluck("lesson_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ds *PhraseRepository) CountLinks(phraseID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.LessonPhrase{}).
		Where("phrase_id = ?", phraseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LinkedPhraseIDs returns the ids of every phrase referencing the lesson.
func (ds *PhraseRepository) LinkedPhraseIDs(lessonID string) ([]string, error) {
	var ids []string
	if err := ds.db.Model(&model.LessonPhrase{}).
		Where("lesson_id = ?", lessonID).
		Pluck("phrase_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ds *PhraseRepository) UnlinkLesson(lessonID string) error {
	return ds.db.Where("lesson_id = ?", lessonID).
		Delete(&model.LessonPhrase{}).Error
}
