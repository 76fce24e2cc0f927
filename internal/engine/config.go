package engine

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации сервера.
type Config struct {
	Server ServerConfig `yaml:"server"`
	World  WorldConfig  `yaml:"world"`
	Events EventsConfig `yaml:"events"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type WorldConfig struct {
	// DataDir - каталог конфигурационных документов (tiles/, entities/,
	// zones/, interactions/). Пусто или нет зон — генерируется мир по умолчанию.
	DataDir string `yaml:"data_dir"`

	// TickRate - кадров в секунду
	TickRate int `yaml:"tick_rate"`

	// Seed для генерации мира и случайного поведения NPC; 0 = из времени
	Seed int64 `yaml:"seed"`
}

type EventsConfig struct {
	// LogCapacity - емкость кольцевого журнала шины событий
	LogCapacity int `yaml:"log_capacity"`

	// JournalDir - каталог бинарных журналов сессий; пусто = не писать
	JournalDir string `yaml:"journal_dir"`
}

// GetPort возвращает порт с приоритетом: config -> env -> default
func (s *ServerConfig) GetPort() int {
	if s.Port > 0 {
		return s.Port
	}
	if v := os.Getenv("PH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			return port
		}
	}
	return 8080
}

// GetDataDir возвращает каталог данных с приоритетом: config -> env
func (w *WorldConfig) GetDataDir() string {
	if w.DataDir != "" {
		return w.DataDir
	}
	return os.Getenv("PH_DATA_DIR")
}

// GetTickRate возвращает частоту тиков (минимум 1)
func (w *WorldConfig) GetTickRate() int {
	if w.TickRate > 0 {
		return w.TickRate
	}
	if v := os.Getenv("PH_TICK_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 20
}

// GetLogCapacity возвращает емкость кольцевого журнала событий
func (e *EventsConfig) GetLogCapacity() int {
	if e.LogCapacity > 0 {
		return e.LogCapacity
	}
	return 256
}

// LoadConfig читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV PH_CONFIG или возвращает nil, nil.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("PH_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
