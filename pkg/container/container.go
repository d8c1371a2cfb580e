package container

import (
	"context"
	"fmt"

	"viewtech-backend/internal/config"
	"viewtech-backend/internal/infrastructure/cache"
	"viewtech-backend/internal/infrastructure/database"
	"viewtech-backend/internal/infrastructure/email"
	"viewtech-backend/internal/infrastructure/queue"
	"viewtech-backend/internal/infrastructure/storage"
	"viewtech-backend/pkg/jwt"
	"viewtech-backend/pkg/logger"

	"viewtech-backend/internal/domains/blog"
	blogrepo "viewtech-backend/internal/domains/blog/repository"
	blogsvc "viewtech-backend/internal/domains/blog/service"
	"viewtech-backend/internal/domains/media"
	mediarepo "viewtech-backend/internal/domains/media/repository"
	mediasvc "viewtech-backend/internal/domains/media/service"
	"viewtech-backend/internal/domains/message"
	messagerepo "viewtech-backend/internal/domains/message/repository"
	messagesvc "viewtech-backend/internal/domains/message/service"
	"viewtech-backend/internal/domains/page"
	pagerepo "viewtech-backend/internal/domains/page/repository"
	pagesvc "viewtech-backend/internal/domains/page/service"
	"viewtech-backend/internal/domains/portfolio"
	portfoliorepo "viewtech-backend/internal/domains/portfolio/repository"
	portfoliosvc "viewtech-backend/internal/domains/portfolio/service"
	"viewtech-backend/internal/domains/settings"
	settingsrepo "viewtech-backend/internal/domains/settings/repository"
	settingssvc "viewtech-backend/internal/domains/settings/service"
	"viewtech-backend/internal/domains/taxonomy"
	taxonomyrepo "viewtech-backend/internal/domains/taxonomy/repository"
	taxonomysvc "viewtech-backend/internal/domains/taxonomy/service"
	"viewtech-backend/internal/domains/user"
	userrepo "viewtech-backend/internal/domains/user/repository"
	usersvc "viewtech-backend/internal/domains/user/service"
)

// Container wires configuration, infrastructure, repositories and services
// together for the API binary.
type Container struct {
	Config *config.Config

	DB             *database.PostgresDB
	Cache          *cache.RedisCache
	Storage        *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor
	QueueClient    *queue.Client
	JWTManager     *jwt.Manager
	EmailService   email.EmailService

	BlogRepository      blog.Repository
	PortfolioRepository portfolio.Repository
	CategoryRepository  taxonomy.CategoryRepository
	TagRepository       taxonomy.TagRepository
	PageRepository      page.Repository
	MessageRepository   message.Repository
	MediaRepository     media.Repository
	UserRepository      user.Repository
	SettingsRepository  settings.Repository

	BlogService      blog.Service
	PortfolioService portfolio.Service
	TaxonomyService  taxonomy.Service
	PageService      page.Service
	MessageService   message.Service
	MediaService     media.Service
	UserService      user.Service
	SettingsService  settings.Service
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	c.DB = database.NewPostgresDB(&cfg.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	c.Cache = cache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("redis init failed: %w", err)
	}

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("object storage init failed: %w", err)
	}
	c.Storage = minioStorage
	c.ImageProcessor = storage.NewImageProcessor()

	c.QueueClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	c.EmailService = email.NewSMTPEmailService(cfg.SMTP)

	pool := c.DB.Pool

	c.BlogRepository = blogrepo.NewPostgresRepository(pool)
	c.PortfolioRepository = portfoliorepo.NewPostgresRepository(pool)
	c.CategoryRepository = taxonomyrepo.NewCategoryRepository(pool)
	c.TagRepository = taxonomyrepo.NewTagRepository(pool)
	c.PageRepository = pagerepo.NewPostgresRepository(pool)
	c.MessageRepository = messagerepo.NewPostgresRepository(pool)
	c.MediaRepository = mediarepo.NewPostgresRepository(pool)
	c.UserRepository = userrepo.NewPostgresRepository(pool)
	c.SettingsRepository = settingsrepo.NewPostgresRepository(pool)

	c.BlogService = blogsvc.NewBlogService(c.BlogRepository, c.Cache)
	c.PortfolioService = portfoliosvc.NewPortfolioService(c.PortfolioRepository)
	c.TaxonomyService = taxonomysvc.NewTaxonomyService(c.CategoryRepository, c.TagRepository)
	c.PageService = pagesvc.NewPageService(c.PageRepository)
	c.MessageService = messagesvc.NewMessageService(c.MessageRepository, c.QueueClient)
	c.MediaService = mediasvc.NewMediaService(c.MediaRepository, c.Storage, c.ImageProcessor, c.QueueClient)
	c.UserService = usersvc.NewUserService(c.UserRepository, c.JWTManager)
	c.SettingsService = settingssvc.NewSettingsService(c.SettingsRepository, c.Cache)

	logger.Info("container initialised", map[string]interface{}{"env": cfg.App.Environment})
	return c, nil
}

// Cleanup releases external connections in reverse construction order.
func (c *Container) Cleanup() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Error("queue client close failed", err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("redis close failed", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
