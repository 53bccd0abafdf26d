package storage

import (
	"sync"

	"github.com/git-webzoom/assistente-x-hub/internal/config"
	"github.com/git-webzoom/assistente-x-hub/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

func GetDb() *gorm.DB {
	once.Do(func() {
		if db != nil {
			// a test database was injected before first use
			return
		}

		log := logger.GetLogger()

		connection, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		})
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			panic(err)
		}

		db = connection
	})

	return db
}

// SetDb replaces the process-wide database handle. Tests use it to point
// repositories at an in-memory database before any component touches storage.
func SetDb(database *gorm.DB) {
	db = database
	once.Do(func() {})
}
