package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	LanguageYoruba = "yoruba"
	LanguageIgbo   = "igbo"
	LanguageHausa  = "hausa"

	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"

	StatusDraft     = "draft"
	StatusFinished  = "finished"
	StatusPublished = "published"

	RoleAdmin       = "admin"
	RoleTutor       = "tutor"
	RoleVoiceArtist = "voice_artist"
	RoleAI          = "ai"

	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeWordOrder      = "word_order"
	QuestionTypeListening      = "listening"
	QuestionTypeFillBlank      = "fill_blank"

	MinDifficulty = 1
	MaxDifficulty = 5
)

// Languages lists the supported language partitions.
var Languages = []string{LanguageYoruba, LanguageIgbo, LanguageHausa}

func IsValidLanguage(language string) bool {
	for _, l := range Languages {
		if l == language {
			return true
		}
	}
	return false
}

func IsValidLevel(level string) bool {
	return level == LevelBeginner || level == LevelIntermediate || level == LevelAdvanced
}
