package container

import (
	"fmt"
	"net/http"

	"github.com/Pinank23/CODECRAFT-CS-02/internal/config"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/repository"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/service"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/storage"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/transport"
)

// Container holds all application dependencies.
type Container struct {
	config  *config.Config
	fetcher storage.ImageFetcher
	results storage.ResultStore
	history repository.HistoryRepository
	service service.TransformService
	handler http.Handler
}

// NewContainer builds the dependency graph.
func NewContainer(cfg *config.Config) (*Container, error) {
	fetcher := storage.NewHTTPImageFetcher(cfg.ImageFetchTimeout)
	history := repository.NewInMemoryHistoryRepository(cfg.HistoryLimit)

	var results storage.ResultStore
	if cfg.AzureEnabled() {
		store, err := storage.NewAzureResultStore(
			cfg.AzureAccountName, cfg.AzureAccountKey, cfg.AzureResultContainer)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize result store: %w", err)
		}
		results = store
	}

	svc := service.NewTransformService(fetcher, results, history, cfg.BatchWorkers)
	handler := transport.NewHandler(svc, cfg)

	return &Container{
		config:  cfg,
		fetcher: fetcher,
		results: results,
		history: history,
		service: svc,
		handler: handler,
	}, nil
}

// Handler returns the HTTP handler.
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration.
func (c *Container) Config() *config.Config {
	return c.config
}
