package app

import (
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/config"
	"github.com/qs-lzh/fyyur-trivia/internal/cache"
	"github.com/qs-lzh/fyyur-trivia/internal/mq"
	"github.com/qs-lzh/fyyur-trivia/internal/service/domain"
)

type App struct {
	Config *config.Config

	DB       *gorm.DB
	Cache    *cache.RedisCache
	Logger   *zap.Logger
	MQConn   *amqp.Connection
	Notifier *mq.Notifier

	VenueService  domain.VenueService
	ArtistService domain.ArtistService
	ShowService   domain.ShowService

	CategoryService domain.CategoryService
	QuestionService domain.QuestionService
	QuizService     domain.QuizService
}

// New wires repositories and services. cache and mqConn are optional; without
// mqConn no change messages are published.
func New(config *config.Config, db *gorm.DB, redisCache *cache.RedisCache, logger *zap.Logger, mqConn *amqp.Connection) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		Config: config,
		DB:     db,
		Cache:  redisCache,
		Logger: logger,
		MQConn: mqConn,
	}

	var notifier domain.ChangeNotifier = domain.NopNotifier{}
	if mqConn != nil {
		n, err := mq.NewNotifier(mqConn, config.MQQueue, logger)
		if err != nil {
			return nil, err
		}
		app.Notifier = n
		notifier = n
	}

	var categoryCache domain.CategoryCache
	if redisCache != nil {
		categoryCache = redisCache
	}

	repos := newRepositories(db)

	app.VenueService = domain.NewVenueService(db, repos.venues, repos.shows, notifier, nil)
	app.ArtistService = domain.NewArtistService(db, repos.artists, repos.shows, notifier, nil)
	app.ShowService = domain.NewShowService(db, repos.shows, repos.venues, repos.artists, notifier)

	app.CategoryService = domain.NewCategoryService(repos.categories, categoryCache)
	app.QuestionService = domain.NewQuestionService(db, repos.questions, repos.categories, app.CategoryService, notifier)
	app.QuizService = domain.NewQuizService(repos.questions, nil)

	return app, nil
}

func (app *App) Close() error {
	var errs []error
	if app.Notifier != nil {
		errs = append(errs, app.Notifier.Close())
	}
	if app.MQConn != nil {
		errs = append(errs, app.MQConn.Close())
	}
	if app.Cache != nil {
		errs = append(errs, app.Cache.Close())
	}
	sqlDB, err := app.DB.DB()
	if err != nil {
		errs = append(errs, err)
	} else {
		errs = append(errs, sqlDB.Close())
	}
	_ = app.Logger.Sync()
	return errors.Join(errs...)
}
