package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must be in [0, max_conns] (got %d)", c.Database.MinConns)
	}

	if err := c.Workspace.validate(); err != nil {
		return fmt.Errorf("workspace: %w", err)
	}

	return nil
}

func (w *WorkspaceConfig) validate() error {
	if w.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be > 0 (got %d)", w.DefaultPageSize)
	}
	if w.MaxPageSize < w.DefaultPageSize {
		return fmt.Errorf("max_page_size must be >= default_page_size (got %d < %d)", w.MaxPageSize, w.DefaultPageSize)
	}
	if w.HardDeleteRetentionDays <= 0 {
		return fmt.Errorf("hard_delete_retention_days must be > 0 (got %d)", w.HardDeleteRetentionDays)
	}
	return nil
}
