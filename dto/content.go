package dto

import "time"

// Actor is the already-authenticated caller every workflow operation receives.
// ScopeLanguage is set for tutors only; admins and the AI pipeline are unscoped.
type Actor struct {
	ID            string `json:"id"`
	Role          string `json:"role"`
	ScopeLanguage string `json:"scope_language,omitempty"`
}

// ==================== LESSON DTOs ====================

type CreateLessonRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Language    string   `json:"language" validate:"required,oneof=yoruba igbo hausa"`
	Level       string   `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
}

func (r CreateLessonRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateLessonRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Language    *string   `json:"language" validate:"omitempty,oneof=yoruba igbo hausa"`
	Level       *string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Description *string   `json:"description"`
	Topics      *[]string `json:"topics"`
}

func (r UpdateLessonRequest) Validate() error {
	return validate.Struct(r)
}

type ReorderLessonsRequest struct {
	Language   string   `json:"language" validate:"required,oneof=yoruba igbo hausa"`
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1,dive,required"`
}

func (r ReorderLessonsRequest) Validate() error {
	return validate.Struct(r)
}

type LessonResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Language    string     `json:"language"`
	Level       string     `json:"level"`
	OrderIndex  int        `json:"order_index"`
	Description string     `json:"description"`
	Topics      []string   `json:"topics"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"created_by"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	PhraseCount int        `json:"phrase_count,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type LessonCollectionResponse struct {
	Lessons []LessonResponse `json:"lessons"`
	Total   int              `json:"total"`
}

// ==================== PHRASE DTOs ====================

type ExampleInput struct {
	Original    string `json:"original" validate:"required"`
	Translation string `json:"translation" validate:"required"`
}

type CreatePhraseRequest struct {
	LessonIDs     []string       `json:"lesson_ids" validate:"required,min=1,dive,required"`
	Text          string         `json:"text" validate:"required"`
	Translation   string         `json:"translation" validate:"required"`
	Pronunciation string         `json:"pronunciation"`
	Explanation   string         `json:"explanation"`
	Examples      []ExampleInput `json:"examples" validate:"omitempty,dive"`
	Difficulty    int            `json:"difficulty" validate:"omitempty,min=1,max=5"`
}

func (r CreatePhraseRequest) Validate() error {
	return validate.Struct(r)
}

type UpdatePhraseRequest struct {
	Text          *string         `json:"text" validate:"omitempty,min=1"`
	Translation   *string         `json:"translation" validate:"omitempty,min=1"`
	Pronunciation *string         `json:"pronunciation"`
	Explanation   *string         `json:"explanation"`
	Examples      *[]ExampleInput `json:"examples" validate:"omitempty,dive"`
	Difficulty    *int            `json:"difficulty" validate:"omitempty,min=1,max=5"`
}

func (r UpdatePhraseRequest) Validate() error {
	return validate.Struct(r)
}

type LinkPhraseRequest struct {
	LessonID string `json:"lesson_id" validate:"required"`
}

func (r LinkPhraseRequest) Validate() error {
	return validate.Struct(r)
}

// AudioDescriptor is stored verbatim on the phrase; upload and synthesis happen
// outside the workflow core.
type AudioDescriptor struct {
	Provider   string `json:"provider" validate:"required"`
	Model      string `json:"model"`
	Voice      string `json:"voice"`
	Locale     string `json:"locale"`
	Format     string `json:"format" validate:"required"`
	URL        string `json:"url" validate:"required"`
	StorageKey string `json:"storage_key" validate:"required"`
}

func (r AudioDescriptor) Validate() error {
	return validate.Struct(r)
}

type AIMetaResponse struct {
	GeneratedByAI   bool   `json:"generated_by_ai"`
	Model           string `json:"model,omitempty"`
	ReviewedByAdmin bool   `json:"reviewed_by_admin"`
}

type PhraseResponse struct {
	ID            string           `json:"id"`
	LessonIDs     []string         `json:"lesson_ids"`
	Language      string           `json:"language"`
	Text          string           `json:"text"`
	Translation   string           `json:"translation"`
	Pronunciation string           `json:"pronunciation,omitempty"`
	Explanation   string           `json:"explanation,omitempty"`
	Examples      []ExampleInput   `json:"examples,omitempty"`
	Difficulty    int              `json:"difficulty"`
	AIMeta        AIMetaResponse   `json:"ai_meta"`
	Audio         *AudioDescriptor `json:"audio,omitempty"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type PhraseCollectionResponse struct {
	Phrases []PhraseResponse `json:"phrases"`
	Total   int              `json:"total"`
}

// ==================== PROVERB DTOs ====================

type CreateProverbRequest struct {
	LessonIDs   []string `json:"lesson_ids" validate:"required,min=1,dive,required"`
	Language    string   `json:"language" validate:"required,oneof=yoruba igbo hausa"`
	Text        string   `json:"text" validate:"required"`
	Translation *string  `json:"translation"`
	ContextNote *string  `json:"context_note"`
}

func (r CreateProverbRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateProverbRequest struct {
	Text        *string `json:"text" validate:"omitempty,min=1"`
	Translation *string `json:"translation"`
	ContextNote *string `json:"context_note"`
}

func (r UpdateProverbRequest) Validate() error {
	return validate.Struct(r)
}

type ProverbResponse struct {
	ID          string         `json:"id"`
	LessonIDs   []string       `json:"lesson_ids"`
	Language    string         `json:"language"`
	Text        string         `json:"text"`
	Translation string         `json:"translation,omitempty"`
	ContextNote string         `json:"context_note,omitempty"`
	AIMeta      AIMetaResponse `json:"ai_meta"`
	Status      string         `json:"status"`
	Merged      bool           `json:"merged"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ProverbCollectionResponse struct {
	Proverbs []ProverbResponse `json:"proverbs"`
	Total    int               `json:"total"`
}

// ==================== QUESTION DTOs ====================

type ReviewDataInput struct {
	Sentence     string   `json:"sentence" validate:"required"`
	Words        []string `json:"words" validate:"required,min=1"`
	CorrectOrder []int    `json:"correct_order" validate:"required,min=1"`
	Meaning      string   `json:"meaning"`
}

type CreateQuestionRequest struct {
	LessonID       string           `json:"lesson_id" validate:"required"`
	PhraseID       string           `json:"phrase_id" validate:"required"`
	Type           string           `json:"type" validate:"required,oneof=multiple_choice word_order listening fill_blank"`
	Subtype        string           `json:"subtype"`
	PromptTemplate string           `json:"prompt_template" validate:"required"`
	Options        []string         `json:"options" validate:"required,min=2,dive,required"`
	CorrectIndex   int              `json:"correct_index" validate:"min=0"`
	ReviewData     *ReviewDataInput `json:"review_data" validate:"omitempty"`
	Explanation    string           `json:"explanation"`
}

func (r CreateQuestionRequest) Validate() error {
	return validate.Struct(r)
}

type QuestionResponse struct {
	ID             string           `json:"id"`
	LessonID       string           `json:"lesson_id"`
	PhraseID       string           `json:"phrase_id"`
	Type           string           `json:"type"`
	Subtype        string           `json:"subtype,omitempty"`
	PromptTemplate string           `json:"prompt_template"`
	Options        []string         `json:"options"`
	CorrectIndex   int              `json:"correct_index"`
	ReviewData     *ReviewDataInput `json:"review_data,omitempty"`
	Explanation    string           `json:"explanation,omitempty"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type QuestionCollectionResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Total     int                `json:"total"`
}

// ==================== PUBLISH / REVIEW DTOs ====================

type PublishRequest struct {
	ReviewedByAdmin bool `json:"reviewed_by_admin"`
}

// ==================== LEARNER CATALOG DTOs ====================

type CatalogLessonResponse struct {
	Lesson   LessonResponse     `json:"lesson"`
	Phrases  []PhraseResponse   `json:"phrases"`
	Proverbs []ProverbResponse  `json:"proverbs"`
	Quiz     []QuestionResponse `json:"quiz"`
}

type CatalogResponse struct {
	Language string           `json:"language"`
	Lessons  []LessonResponse `json:"lessons"`
}
