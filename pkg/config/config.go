package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config содержит настройки сервиса аналитики кампаний
type Config struct {
	Port        string
	DatabaseURL string
	APIToken    string // Пустое значение отключает проверку Bearer-токена
	RedisURL    string // Пустое значение: троттлинг обновлений хранится в памяти процесса
	GinMode     string

	SnapshotRefreshTTL time.Duration
	SnapshotDelay      [2]int        // Диапазон паузы между постами в секундах
	SnapshotSchedule   time.Duration // Период фонового обновления всех кампаний, 0 выключает
}

// Load читает конфигурацию из .env-файлов и окружения.
// DATABASE_URL обязателен: строки подключения по умолчанию нет.
func Load(logger *logrus.Logger) (*Config, error) {
	LoadEnv(logger)

	dsn, err := RequireEnv("DATABASE_URL")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               GetEnv("PORT", "8080"),
		DatabaseURL:        dsn,
		APIToken:           GetEnv("API_TOKEN", ""),
		RedisURL:           GetEnv("REDIS_URL", ""),
		GinMode:            GetEnv("GIN_MODE", "release"),
		SnapshotRefreshTTL: time.Duration(GetEnvInt("SNAPSHOT_REFRESH_TTL_MINUTES", 60)) * time.Minute,
		SnapshotSchedule:   time.Duration(GetEnvInt("SNAPSHOT_SCHEDULE_MINUTES", 0)) * time.Minute,
		SnapshotDelay: [2]int{
			GetEnvInt("SNAPSHOT_DELAY_MIN_SECONDS", 2),
			GetEnvInt("SNAPSHOT_DELAY_MAX_SECONDS", 6),
		},
	}

	// Диапазон задержки должен быть корректным, иначе rand.Intn запаникует
	if cfg.SnapshotDelay[0] < 0 {
		cfg.SnapshotDelay[0] = 0
	}
	if cfg.SnapshotDelay[1] < cfg.SnapshotDelay[0] {
		cfg.SnapshotDelay[1] = cfg.SnapshotDelay[0]
	}
	return cfg, nil
}
