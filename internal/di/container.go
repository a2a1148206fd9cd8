package di

import (
	"time"

	"github.com/Abhiram86/event-management-api/internal/database"
	"github.com/Abhiram86/event-management-api/internal/handler"
	"github.com/Abhiram86/event-management-api/internal/redis"
	"github.com/Abhiram86/event-management-api/internal/repository"
	"github.com/Abhiram86/event-management-api/internal/service"
)

// Container holds all dependencies for the event service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	EventRepo   repository.EventRepository
	BookingRepo repository.BookingRepository
	Users       repository.UserDirectory

	// Publishers
	EventPublisher service.EventPublisher

	// Services
	EventService   service.EventService
	BookingService service.BookingService

	// Handlers
	HealthHandler  *handler.HealthHandler
	EventHandler   *handler.EventHandler
	BookingHandler *handler.BookingHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *redis.Client
	EventPublisher service.EventPublisher
	LockTimeout    time.Duration
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:             cfg.DB,
		Redis:          cfg.Redis,
		EventPublisher: cfg.EventPublisher,
	}

	// Initialize repositories
	pool := c.DB.Pool()
	c.EventRepo = repository.NewPostgresEventRepository(pool)
	c.BookingRepo = repository.NewPostgresBookingRepository(pool, cfg.LockTimeout)
	c.Users = repository.NewPostgresUserDirectory(pool)

	// Initialize services
	c.EventService = service.NewEventService(c.EventRepo, c.BookingRepo, c.Users)
	c.BookingService = service.NewBookingService(c.BookingRepo, c.EventPublisher)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.EventHandler = handler.NewEventHandler(c.EventService)
	c.BookingHandler = handler.NewBookingHandler(c.BookingService)

	return c
}
