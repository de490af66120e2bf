package dto

// RawPhrase is one untyped record proposed by the LLM. Field shapes are not
// trusted until the sanitizer has coerced them.
type RawPhrase map[string]interface{}

// SanitizedPhrase is a RawPhrase that survived structural validation.
type SanitizedPhrase struct {
	Text          string         `json:"text"`
	Translation   string         `json:"translation"`
	Pronunciation string         `json:"pronunciation,omitempty"`
	Explanation   string         `json:"explanation,omitempty"`
	Examples      []ExampleInput `json:"examples,omitempty"`
	Difficulty    int            `json:"difficulty,omitempty"`
	Model         string         `json:"model"`
}

type GeneratePhrasesRequest struct {
	LessonID  string   `json:"lesson_id" validate:"required"`
	SeedWords []string `json:"seed_words"`
	Count     int      `json:"count" validate:"omitempty,min=1,max=50"`
}

func (r GeneratePhrasesRequest) Validate() error {
	return validate.Struct(r)
}

// BulkGenerationResponse reports per-item outcomes; one bad item never aborts
// the batch.
type BulkGenerationResponse struct {
	Created []PhraseResponse `json:"created"`
	Skipped int              `json:"skipped"`
	Errors  []string         `json:"errors"`
}

type EnhancePhraseRequest struct {
	PhraseID string `json:"phrase_id" validate:"required"`
}

func (r EnhancePhraseRequest) Validate() error {
	return validate.Struct(r)
}

type SuggestLessonRequest struct {
	Language string `json:"language" validate:"required,oneof=yoruba igbo hausa"`
	Level    string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Topic    string `json:"topic"`
}

func (r SuggestLessonRequest) Validate() error {
	return validate.Struct(r)
}

type LessonSuggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Objectives  []string `json:"objectives"`
	SeedPhrases []string `json:"seed_phrases"`
}

type SuggestLessonResponse struct {
	Lesson     LessonResponse   `json:"lesson"`
	Suggestion LessonSuggestion `json:"suggestion"`
	Generation *BulkGenerationResponse `json:"generation,omitempty"`
}
