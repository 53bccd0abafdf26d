package downdetect

import (
	"fmt"

	"github.com/git-webzoom/assistente-x-hub/internal/storage"
	cache_utils "github.com/git-webzoom/assistente-x-hub/internal/util/cache"
)

type DowndetectService struct{}

// IsAvailable reports whether every backing dependency of the gateway is
// reachable.
func (s *DowndetectService) IsAvailable() error {
	if err := storage.GetDb().Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.testCacheConnection(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *DowndetectService) testCacheConnection() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	cache_utils.TestCacheConnection()
	return nil
}
