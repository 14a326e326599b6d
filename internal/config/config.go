package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Log       LogConfig       `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// WorkspaceConfig holds workspace service settings.
type WorkspaceConfig struct {
	DefaultPageSize         int `yaml:"default_page_size"          env:"WORKSPACE_DEFAULT_PAGE_SIZE"          env-default:"50"`
	MaxPageSize             int `yaml:"max_page_size"              env:"WORKSPACE_MAX_PAGE_SIZE"              env-default:"200"`
	HardDeleteRetentionDays int `yaml:"hard_delete_retention_days" env:"WORKSPACE_HARD_DELETE_RETENTION_DAYS" env-default:"30"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
