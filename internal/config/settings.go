package config

import "time"

const (
	defaultPort         = 5000
	defaultMonPort      = 8888
	defaultLogLevel     = "info"
	defaultServiceName  = "myriota-webhook"
	defaultMessagesFile = "myriota_messages.json"
)

// Settings contains the application config
type Settings struct {
	Port         int           `env:"PORT"`
	MonPort      int           `env:"MON_PORT"`
	EnablePprof  bool          `env:"ENABLE_PPROF"`
	LogLevel     string        `env:"LOG_LEVEL"`
	ServiceName  string        `env:"SERVICE_NAME"`
	MessagesFile string        `env:"MESSAGES_FILE"`
	RetentionCap int           `env:"RETENTION_CAP"`
	ListCacheTTL time.Duration `env:"LIST_CACHE_TTL"`
}

// ApplyDefaults fills every unset field with its default.
// A negative RetentionCap is treated as unlimited.
func (s *Settings) ApplyDefaults() {
	if s.Port == 0 {
		s.Port = defaultPort
	}
	if s.MonPort == 0 {
		s.MonPort = defaultMonPort
	}
	if s.LogLevel == "" {
		s.LogLevel = defaultLogLevel
	}
	if s.ServiceName == "" {
		s.ServiceName = defaultServiceName
	}
	if s.MessagesFile == "" {
		s.MessagesFile = defaultMessagesFile
	}
	if s.RetentionCap < 0 {
		s.RetentionCap = 0
	}
}
