package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/naija-lingo/lingo_api/model"
	"github.com/naija-lingo/lingo_api/services/repositories"
	"github.com/naija-lingo/lingo_api/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string

	lessons   *repositories.LessonRepository
	phrases   *repositories.PhraseRepository
	proverbs  *repositories.ProverbRepository
	questions *repositories.QuestionRepository
	users     *repositories.UserRepository
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds *PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Lessons() *repositories.LessonRepository     { return ds.lessons }
func (ds *PostgresService) Phrases() *repositories.PhraseRepository     { return ds.phrases }
func (ds *PostgresService) Proverbs() *repositories.ProverbRepository   { return ds.proverbs }
func (ds *PostgresService) Questions() *repositories.QuestionRepository { return ds.questions }
func (ds *PostgresService) Users() *repositories.UserRepository         { return ds.users }

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "lingo_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Error),
			TranslateError: true,
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	if err = ds.Migrate(ds.db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	ds.bindRepositories(ds.db)

	log.Println("Database connected and migrated successfully")
	return nil
}

// Migrate runs schema migration; tests reuse it against their own connection.
func (ds *PostgresService) Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
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

func (ds *PostgresService) bindRepositories(db *gorm.DB) {
	ds.lessons = repositories.NewLessonRepository(db)
	ds.phrases = repositories.NewPhraseRepository(db)
	ds.proverbs = repositories.NewProverbRepository(db)
	ds.questions = repositories.NewQuestionRepository(db)
	ds.users = repositories.NewUserRepository(db)
}

func (ds *PostgresService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// HandleError maps storage failures onto the API error taxonomy. Not-found and
// stale conditional writes are the caller's business; everything else is an
// internal fault.
func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError("resource")
	case errors.Is(err, repositories.ErrStaleWrite):
		return shared.NewStateConflictError(shared.ReasonStateConflict, "resource changed since it was read")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewBadRequestError(err, "duplicate resource")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewBadRequestError(err, "referenced resource does not exist")
	}

	errorType := "INTERNAL_ERROR"
	if strings.Contains(err.Error(), "connection refused") {
		errorType = "DATABASE_CONNECTION_ERROR"
	}

	log.WithFields(log.Fields{
		"error_type": errorType,
		"error":      err.Error(),
	}).Error("Database error occurred")

	return shared.NewInternalError(err, "database operation failed")
}
