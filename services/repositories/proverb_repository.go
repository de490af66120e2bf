package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/naija-lingo/lingo_api/model"
	"gorm.io/gorm"
)

type ProverbRepository struct {
	BaseRepository
}

func NewProverbRepository(db *gorm.DB) *ProverbRepository {
	return &ProverbRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ProverbRepository) Create(proverb *model.Proverb) (*model.Proverb, error) {
	if proverb.ID == "" {
		id, _ := uuid.NewV7()
		proverb.ID = id.String()
	}
	proverb.CreatedAt = time.Now()
	proverb.UpdatedAt = time.Now()

	if err := ds.db.Create(proverb).Error; err != nil {
		return nil, err
	}
	return proverb, nil
}

func (ds *ProverbRepository) Get(id string) (*model.Proverb, error) {
	var proverb model.Proverb
	if err := ds.db.Where("id = ? AND deleted = ?", id, false).First(&proverb).Error; err != nil {
		return nil, err
	}
	return &proverb, nil
}

// FindReusable looks up the single active proverb carrying this normalized
// text in the language partition. At most one exists; merge-on-create keeps
// that invariant.
func (ds *ProverbRepository) FindReusable(language, normalizedText string) (*model.Proverb, error) {
	var proverb model.Proverb
	err := ds.db.Where("language = ? AND normalized_text = ? AND deleted = ?",
		language, normalizedText, false).First(&proverb).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &proverb, nil
}

func (ds *ProverbRepository) ListByLesson(lessonID string) ([]model.Proverb, error) {
	var proverbs []model.Proverb
	if err := ds.db.
		Joins("JOIN lesson_proverbs ON lesson_proverbs.proverb_id = proverbs.id").
		Where("lesson_proverbs.lesson_id = ? AND proverbs.deleted = ?", lessonID, false).
		Order("proverbs.created_at ASC").
		Find(&proverbs).Error; err != nil {
		return nil, err
	}
	return proverbs, nil
}

func (ds *ProverbRepository) ListByLanguage(language string) ([]model.Proverb, error) {
	var proverbs []model.Proverb
	if err := ds.db.Where("language = ? AND deleted = ?", language, false).
		Order("created_at ASC").Find(&proverbs).Error; err != nil {
		return nil, err
	}
	return proverbs, nil
}

func (ds *ProverbRepository) UpdateFields(id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := ds.db.Model(&model.Proverb{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(fields)
	return checkAffected(res)
}

func (ds *ProverbRepository) UpdateStatusIf(id, expected string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := ds.db.Model(&model.Proverb{}).
		Where("id = ? AND deleted = ? AND status = ?", id, false, expected).
		Updates(fields)
	return checkAffected(res)
}

func (ds *ProverbRepository) SoftDelete(id string, now time.Time) error {
	res := ds.db.Model(&model.Proverb{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"deleted_at": now,
			"updated_at": now,
		})
	return checkAffected(res)
}

// ==================== LESSON LINKS ====================

func (ds *ProverbRepository) Link(lessonID, proverbID string) error {
	link := model.LessonProverb{LessonID: lessonID, ProverbID: proverbID, CreatedAt: time.Now()}
	err := ds.db.Create(&link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (ds *ProverbRepository) Unlink(lessonID, proverbID string) error {
	return ds.db.Where("lesson_id = ? AND proverb_id = ?", lessonID, proverbID).
		Delete(&model.LessonProverb{}).Error
}

func (ds *ProverbRepository) LessonIDs(proverbID string) ([]string, error) {
	var ids []string
	if err := ds.db.Model(&model.LessonProverb{}).
		Where("proverb_id = ?", proverbID).
		Order("created_at ASC").
		Pluck("lesson_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ds *ProverbRepository) CountLinks(proverbID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.LessonProverb{}).
		Where("proverb_id = ?", proverbID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ds *ProverbRepository) LinkedProverbIDs(lessonID string) ([]string, error) {
	var ids []string
	if err := ds.db.Model(&model.LessonProverb{}).
		Where("lesson_id = ?", lessonID).
		Pluck("proverb_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (ds *ProverbRepository) UnlinkLesson(lessonID string) error {
	return ds.db.Where("lesson_id = ?", lessonID).
		Delete(&model.LessonProverb{}).Error
}
