// model/content.go
package model

import (
	"encoding/json"
	"time"
)

// Lesson is the unit of study authored per language. Non-deleted lessons of a
// language always hold contiguous order indexes 0..N-1.
type Lesson struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null"`
	Language    string          `json:"language" gorm:"not null;index"`
	Level       string          `json:"level" gorm:"not null"`
	OrderIndex  int             `json:"order_index" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Topics      json.RawMessage `json:"topics" gorm:"type:text"` // JSON array of strings
	Status      string          `json:"status" gorm:"default:draft;index"`
	CreatedBy   string          `json:"created_by"`
	PublishedAt *time.Time      `json:"published_at"`
	Deleted     bool            `json:"deleted" gorm:"default:false;index"`
	DeletedAt   *time.Time      `json:"deleted_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Phrase is reusable vocabulary shared across lessons through LessonPhrase links.
type Phrase struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	Language      string          `json:"language" gorm:"not null;index"`
	Text          string          `json:"text" gorm:"not null;type:text"`
	Translation   string          `json:"translation" gorm:"not null;type:text"`
	Pronunciation string          `json:"pronunciation"`
	Explanation   string          `json:"explanation" gorm:"type:text"`
	Examples      json.RawMessage `json:"examples" gorm:"type:text"` // JSON array of {original, translation}
	Difficulty    int             `json:"difficulty" gorm:"default:1"`

	GeneratedByAI   bool   `json:"generated_by_ai" gorm:"default:false"`
	AIModel         string `json:"ai_model"`
	ReviewedByAdmin bool   `json:"reviewed_by_admin" gorm:"default:false"`

	AudioProvider   string `json:"audio_provider"`
	AudioModel      string `json:"audio_model"`
	AudioVoice      string `json:"audio_voice"`
	AudioLocale     string `json:"audio_locale"`
	AudioFormat     string `json:"audio_format"`
	AudioURL        string `json:"audio_url"`
	AudioStorageKey string `json:"audio_storage_key"`

	Status    string     `json:"status" gorm:"default:draft;index"`
	Deleted   bool       `json:"deleted" gorm:"default:false;index"`
	DeletedAt *time.Time `json:"deleted_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Proverb is deduplicated per (language, normalized_text); duplicate submissions
// merge into the existing row instead of creating a second one.
type Proverb struct {
	ID             string `json:"id" gorm:"primaryKey"`
	Language       string `json:"language" gorm:"not null;index"`
	Text           string `json:"text" gorm:"not null;type:text"`
	NormalizedText string `json:"normalized_text" gorm:"not null;index"`
	Translation    string `json:"translation" gorm:"type:text"`
	ContextNote    string `json:"context_note" gorm:"type:text"`

	GeneratedByAI   bool   `json:"generated_by_ai" gorm:"default:false"`
	AIModel         string `json:"ai_model"`
	ReviewedByAdmin bool   `json:"reviewed_by_admin" gorm:"default:false"`

	Status    string     `json:"status" gorm:"default:draft;index"`
	Deleted   bool       `json:"deleted" gorm:"default:false;index"`
	DeletedAt *time.Time `json:"deleted_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Question belongs to exactly one (lesson, phrase) pair.
type Question struct {
	ID             string          `json:"id" gorm:"primaryKey"`
	LessonID       string          `json:"lesson_id" gorm:"not null;index"`
	PhraseID       string          `json:"phrase_id" gorm:"not null;index"`
	Type           string          `json:"type" gorm:"not null"`
	Subtype        string          `json:"subtype"`
	PromptTemplate string          `json:"prompt_template" gorm:"type:text"`
	Options        json.RawMessage `json:"options" gorm:"type:text"` // JSON array of strings
	CorrectIndex   int             `json:"correct_index"`
	ReviewData     json.RawMessage `json:"review_data" gorm:"type:text"` // optional word-order payload
	Explanation    string          `json:"explanation" gorm:"type:text"`

	Status    string     `json:"status" gorm:"default:draft;index"`
	Deleted   bool       `json:"deleted" gorm:"default:false;index"`
	DeletedAt *time.Time `json:"deleted_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ReviewData is the word-order payload carried by word_order questions.
// CorrectOrder must be a permutation of [0, len(Words)).
type ReviewData struct {
	Sentence     string   `json:"sentence"`
	Words        []string `json:"words"`
	CorrectOrder []int    `json:"correct_order"`
	Meaning      string   `json:"meaning"`
}

// Example is one usage sample attached to a phrase.
type Example struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

// LessonPhrase links lessons and phrases many-to-many.
type LessonPhrase struct {
	LessonID  string    `json:"lesson_id" gorm:"primaryKey"`
	PhraseID  string    `json:"phrase_id" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`
}

// LessonProverb links lessons and proverbs many-to-many.
type LessonProverb struct {
	LessonID  string    `json:"lesson_id" gorm:"primaryKey"`
	ProverbID string    `json:"proverb_id" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`
}
