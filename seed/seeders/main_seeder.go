package seeders

import (
	"log"

	"github.com/naija-lingo/lingo_api/model"
	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll migrates the schema and runs all seeders in order.
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.migrate(); err != nil {
		log.Printf("Schema migration failed: %v", err)
		return err
	}

	adminSeeder := NewAdminSeeder(s.db)
	if err := adminSeeder.SeedAdmin(); err != nil {
		log.Printf("Admin seeding failed: %v", err)
		return err
	}

	lessonSeeder := NewLessonSeeder(s.db)
	if err := lessonSeeder.SeedLessons(); err != nil {
		log.Printf("Lesson seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedAdminOnly() error {
	if err := s.migrate(); err != nil {
		return err
	}
	return NewAdminSeeder(s.db).SeedAdmin()
}

func (s *MainSeeder) SeedLessonsOnly() error {
	if err := s.migrate(); err != nil {
		return err
	}
	return NewLessonSeeder(s.db).SeedLessons()
}

func (s *MainSeeder) migrate() error {
	return s.db.AutoMigrate(
		&model.User{},
		&model.TutorProfile{},
		&model.Lesson{},
		&model.Phrase{},
		&model.Proverb{},
		&model.Question{},
		&model.LessonPhrase{},
		&model.LessonProverb{},
	)
}
