package shared

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./karpeslop.db"
	} `yaml:"database"`

	Analysis struct {
		Sources []string `yaml:"sources"` // ["./src"]
		Rules   string   `yaml:"rules"`   // path to detection rule pack (optional)
		Quiet   bool     `yaml:"quiet"`   // focus on core app code
	} `yaml:"analysis"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	API struct {
		Addr           string   `yaml:"addr"` // ":8787"
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"api"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./karpeslop.db"
	c.Reporting.OutDir = "./reports"
	c.API.Addr = ":8787"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("KARPESLOP_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("KARPESLOP_RULES"); v != "" {
		c.Analysis.Rules = v
	}
	if v := os.Getenv("KARPESLOP_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("KARPESLOP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("KARPESLOP_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("KARPESLOP_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	return c, nil
}
