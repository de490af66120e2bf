package main

import (
	"github.com/naija-lingo/lingo_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// @title Lingo API
// @version 1.0
// @description Content authoring backend for Yoruba, Igbo and Hausa lessons
// @BasePath /
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.CacheService{},
		&services.JWTService{},
		&services.AuthService{},
		&services.ScopeService{},

		&services.LessonService{},
		&services.PhraseService{},
		&services.ProverbService{},
		&services.QuestionService{},

		&services.LLMService{},
		&services.AiService{},

		&services.MinIOService{},
		&services.AudioService{},
		&services.ContentService{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
