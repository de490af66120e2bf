// seed/seeders/lesson_seeder.go
package seeders

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/naija-lingo/lingo_api/model"
	"gorm.io/gorm"
)

// LessonSeeder handles seeding the yoruba starter lessons
type LessonSeeder struct {
	db *gorm.DB
}

func NewLessonSeeder(db *gorm.DB) *LessonSeeder {
	return &LessonSeeder{db: db}
}

type starterPhrase struct {
	Text          string
	Translation   string
	Pronunciation string
}

type starterLesson struct {
	Title       string
	Level       string
	Description string
	Topics      []string
	Phrases     []starterPhrase
}

// SeedLessons creates the yoruba starter lessons with their phrases, linked and
// published so a fresh install serves a non-empty catalog.
func (s *LessonSeeder) SeedLessons() error {
	var count int64
	if err := s.db.Model(&model.Lesson{}).Where("language = ? AND deleted = ?", "yoruba", false).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Yoruba lessons already exist, skipping lesson seeding")
		return nil
	}

	now := time.Now()
	for i, src := range s.starterLessons() {
		topics, _ := json.Marshal(src.Topics)
		lessonID := newID()

		lesson := model.Lesson{
			ID:          lessonID,
			Title:       src.Title,
			Language:    "yoruba",
			Level:       src.Level,
			OrderIndex:  i,
			Description: src.Description,
			Topics:      topics,
			Status:      "published",
			PublishedAt: &now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.db.Create(&lesson).Error; err != nil {
			log.Printf("Error creating lesson %s: %v", src.Title, err)
			return err
		}

		for _, p := range src.Phrases {
			phrase := model.Phrase{
				ID:            newID(),
				Language:      "yoruba",
				Text:          p.Text,
				Translation:   p.Translation,
				Pronunciation: p.Pronunciation,
				Difficulty:    1,
				Status:        "published",
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := s.db.Create(&phrase).Error; err != nil {
				log.Printf("Error creating phrase %s: %v", p.Text, err)
				return err
			}
			link := model.LessonPhrase{LessonID: lessonID, PhraseID: phrase.ID, CreatedAt: now}
			if err := s.db.Create(&link).Error; err != nil {
				return err
			}
		}

		log.Printf("Created lesson: %s", src.Title)
	}

	log.Println("Lesson seeding completed successfully")
	return nil
}

func (s *LessonSeeder) starterLessons() []starterLesson {
	return []starterLesson{
		{
			Title:       "Greetings and Introductions",
			Level:       "beginner",
			Description: "Everyday greetings and how to introduce yourself in Yoruba.",
			Topics:      []string{"greetings", "introductions"},
			Phrases: []starterPhrase{
				{Text: "Ẹ káàárọ̀", Translation: "Good morning", Pronunciation: "eh kah-ah-raw"},
				{Text: "Ẹ káàsán", Translation: "Good afternoon", Pronunciation: "eh kah-ah-sahn"},
				{Text: "Báwo ni?", Translation: "How are you?", Pronunciation: "bah-woh nee"},
				{Text: "Orúkọ mi ni...", Translation: "My name is...", Pronunciation: "oh-roo-kaw mee nee"},
			},
		},
		{
			Title:       "Family and Home",
			Level:       "beginner",
			Description: "Words for family members and talking about your household.",
			Topics:      []string{"family", "home"},
			Phrases: []starterPhrase{
				{Text: "Ìyá", Translation: "Mother", Pronunciation: "ee-yah"},
				{Text: "Bàbá", Translation: "Father", Pronunciation: "bah-bah"},
				{Text: "Ẹ̀gbọ́n", Translation: "Older sibling", Pronunciation: "eh-gbawn"},
				{Text: "Àbúrò", Translation: "Younger sibling", Pronunciation: "ah-boo-roh"},
			},
		},
		{
			Title:       "Numbers and Market Talk",
			Level:       "beginner",
			Description: "Counting from one to ten and bargaining at the market.",
			Topics:      []string{"numbers", "shopping"},
			Phrases: []starterPhrase{
				{Text: "Ọ̀kan", Translation: "One", Pronunciation: "aw-kahn"},
				{Text: "Èjì", Translation: "Two", Pronunciation: "eh-jee"},
				{Text: "Ẹ̀ẹ́lò ni?", Translation: "How much is it?", Pronunciation: "eh-eh-loh nee"},
				{Text: "Ó wọ́n jù", Translation: "It is too expensive", Pronunciation: "oh wawn joo"},
			},
		},
	}
}

func newID() string {
	id, _ := uuid.NewV7()
	return id.String()
}
