package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/naija-lingo/lingo_api/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *UserRepository) Create(user *model.User) (*model.User, error) {
	if user.ID == "" {
		id, _ := uuid.NewV7()
		user.ID = id.String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := ds.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ds *UserRepository) Get(id string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ? AND is_active = ?", id, true).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) GetByEmailOrUsername(identifier string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("(email = ? OR username = ?) AND is_active = ?",
		identifier, identifier, true).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) UpdateLastLogin(id string) error {
	now := time.Now()
	return ds.db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login": now,
			"updated_at": now,
		}).Error
}

// ==================== TUTOR PROFILES ====================

func (ds *UserRepository) CreateTutorProfile(profile *model.TutorProfile) (*model.TutorProfile, error) {
	if profile.ID == "" {
		id, _ := uuid.NewV7()
		profile.ID = id.String()
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	if err := ds.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// ActiveTutorProfile returns nil without error when the user has no active
// profile; callers treat that as "no authoring scope".
func (ds *UserRepository) ActiveTutorProfile(userID string) (*model.TutorProfile, error) {
	var profile model.TutorProfile
	err := ds.db.Where("user_id = ? AND is_active = ?", userID, true).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (ds *UserRepository) DeactivateTutorProfile(userID string) error {
	return ds.db.Model(&model.TutorProfile{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}
