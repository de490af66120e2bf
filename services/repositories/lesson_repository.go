package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/naija-lingo/lingo_api/model"
	"gorm.io/gorm"
)

type LessonRepository struct {
	BaseRepository
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *LessonRepository) Create(lesson *model.Lesson) (*model.Lesson, error) {
	if lesson.ID == "" {
		id, _ := uuid.NewV7()
		lesson.ID = id.String()
	}
	lesson.CreatedAt = time.Now()
	lesson.UpdatedAt = time.Now()

	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

// Get returns the active lesson only; soft-deleted rows are invisible here.
func (ds *LessonRepository) Get(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Where("id = ? AND deleted = ?", id, false).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (ds *LessonRepository) ListByLanguage(language string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := ds.db.Where("language = ? AND deleted = ?", language, false).
		Order("order_index ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (ds *LessonRepository) ListPublishedByLanguage(language string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := ds.db.Where("language = ? AND status = ? AND deleted = ?", language, "published", false).
		Order("order_index ASC").Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

// FindLastOrderIndex returns the highest order index in the active partition,
// or -1 when the partition is empty.
func (ds *LessonRepository) FindLastOrderIndex(language string) (int, error) {
	var lesson model.Lesson
	err := ds.db.Where("language = ? AND deleted = ?", language, false).
		Order("order_index DESC").First(&lesson).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return -1, nil
		}
		return 0, err
	}
	return lesson.OrderIndex, nil
}

// UpdateFields applies a partial update only while the lesson is still active.
func (ds *LessonRepository) UpdateFields(id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := ds.db.Model(&model.Lesson{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(fields)
	return checkAffected(res)
}

// UpdateStatusIf transitions status only from the expected current status.
// A zero-row match means the precondition no longer holds.
func (ds *LessonRepository) UpdateStatusIf(id, expected string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := ds.db.Model(&model.Lesson{}).
		Where("id = ? AND deleted = ? AND status IN ?", id, false, expandStatuses(expected)).
		Updates(fields)
	return checkAffected(res)
}

func expandStatuses(expected string) []string {
	if expected == "draft_or_finished" {
		return []string{"draft", "finished"}
	}
	return []string{expected}
}

// SoftDelete marks the lesson deleted; a second call is a stale write.
func (ds *LessonRepository) SoftDelete(id string, now time.Time) error {
	res := ds.db.Model(&model.Lesson{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(map[string]interface{}{
			"deleted":    true,
			"deleted_at": now,
			"updated_at": now,
		})
	return checkAffected(res)
}

// ReorderByIDs assigns index i to orderedIDs[i]. The caller has already
// verified the id set matches the active partition exactly.
func (ds *LessonRepository) ReorderByIDs(orderedIDs []string) error {
	now := time.Now()
	for i, id := range orderedIDs {
		res := ds.db.Model(&model.Lesson{}).
			Where("id = ? AND deleted = ?", id, false).
			Updates(map[string]interface{}{
				"order_index": i,
				"updated_at":  now,
			})
		if err := checkAffected(res); err != nil {
			return err
		}
	}
	return nil
}

// CompactOrderIndexes re-reads the active partition ordered by
// (order_index, created_at) and rewrites indexes 0..N-1. Running it twice
// is a no-op.
func (ds *LessonRepository) CompactOrderIndexes(language string) error {
	var lessons []model.Lesson
	if err := ds.db.Where("language = ? AND deleted = ?", language, false).
		Order("order_index ASC, created_at ASC").Find(&lessons).Error; err != nil {
		return err
	}

	now := time.Now()
	for i, lesson := range lessons {
		if lesson.OrderIndex == i {
			continue
		}
		res := ds.db.Model(&model.Lesson{}).
			Where("id = ? AND deleted = ?", lesson.ID, false).
			Updates(map[string]interface{}{
				"order_index": i,
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		// A row deleted mid-pass just drops out; the next compaction closes
		// the new gap.
	}
	return nil
}

func (ds *LessonRepository) CountByIDs(ids []string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.Lesson{}).
		Where("id IN ? AND deleted = ?", ids, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ds *LessonRepository) ListByIDs(ids []string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if err := ds.db.Where("id IN ? AND deleted = ?", ids, false).
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}
