package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/naija-lingo/lingo_api/model"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	BaseRepository
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *QuestionRepository) Create(question *model.Question) (*model.Question, error) {
	if question.ID == "" {
		id, _ := uuid.NewV7()
		question.ID = id.String()
	}
	question.CreatedAt = time.Now()
	question.UpdatedAt = time.Now()

	if err := ds.db.Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (ds *QuestionRepository) Get(id string) (*model.Question, error) {
	var question model.Question
	if err := ds.db.Where("id = ? AND deleted = ?", id, false).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (ds *QuestionRepository) ListByLesson(lessonID string) ([]model.Question, error) {
	var questions []model.Question
	if err := ds.db.Where("lesson_id = ? AND deleted = ?", lessonID, false).
		Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (ds *QuestionRepository) ListByPhrase(phraseID string) ([]model.Question, error) {
	var questions []model.Question
	if err := ds.db.Where("phrase_id = ? AND deleted = ?", phraseID, false).
		Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (ds *QuestionRepository) UpdateFields(id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := ds.db.Model(&model.Question{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(fields)
	return checkAffected(res)
}

func (ds *QuestionRepository) UpdateStatusIf(id, expected string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := ds.db.Model(&model.Question{}).
		Where("id = ? AND deleted = ? AND status = ?", id, false, expected).
		Updates(fields)
	return checkAffected(res)
}

func (ds *QuestionRepository) SoftDelete(id string, now time.Time) error {
	res := ds.db.Model(&model.Question{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"deleted_at": now,
			"updated_at": now,
		})
	return checkAffected(res)
}

// SoftDeleteByLesson removes every active question of the lesson in one pass.
// Zero matches is fine; a lesson can have no questions yet.
func (ds *QuestionRepository) SoftDeleteByLesson(lessonID string, now time.Time) error {
	return ds.db.Model(&model.Question{}).
		Where("lesson_id = ? AND deleted = ?", lessonID, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"deleted_at": now,
			"updated_at": now,
		}).Error
}

func (ds *QuestionRepository) SoftDeleteByPhrase(phraseID string, now time.Time) error {
	return ds.db.Model(&model.Question{}).
		Where("phrase_id = ? AND deleted = ?", phraseID, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"deleted_at": now,
			"updated_at": now,
		}).Error
}

// SoftDeleteByLessonAndPhrase covers unlinking: questions built on the departed
// phrase no longer belong in the lesson.
func (ds *QuestionRepository) SoftDeleteByLessonAndPhrase(lessonID, phraseID string, now time.Time) error {
	return ds.db.Model(&model.Question{}).
		Where("lesson_id = ? AND phrase_id = ? AND deleted = ?", lessonID, phraseID, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"deleted_at": now,
			"updated_at": now,
		}).Error
}

func (ds *QuestionRepository) CountByLesson(lessonID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.Question{}).
		Where("lesson_id = ? AND deleted = ?", lessonID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
