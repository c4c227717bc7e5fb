package global

import (
	"sync"

	"github.com/ScopeCreep-zip/open-sesame/pkg/config"
	"github.com/ScopeCreep-zip/open-sesame/pkg/logger"
	"github.com/ScopeCreep-zip/open-sesame/pkg/notify"
)

var (
	cfg      *config.Config
	log      *logger.Logger
	notifier *notify.NotifyService
	initOnce sync.Once
	mu       sync.RWMutex
)

func InitGlobals(config *config.Config, logger *logger.Logger) {
	initOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		cfg = config
		log = logger
		notifier = notify.NewNotifyService(logger)
	})
}

// GetConfig returns the global config instance
func GetConfig() *config.Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetLogger returns the global logger instance
func GetLogger() *logger.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// GetNotifier returns the global notifier instance
func GetNotifier() *notify.NotifyService {
	mu.RLock()
	defer mu.RUnlock()
	return notifier
}

// GetAll returns all global instances at once.
// This can be useful when multiple services are needed together.
func GetAll() (*config.Config, *logger.Logger, *notify.NotifyService) {
	mu.RLock()
	defer mu.RUnlock()
	return cfg, log, notifier
}
