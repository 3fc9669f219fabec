// Package config loads binary settings from defaults, an optional YAML file
// and command line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the pizzaform binaries.
type Config struct {
	Addr           string        `yaml:"addr"`
	APIAddr        string        `yaml:"api_addr"`
	Endpoint       string        `yaml:"endpoint"`
	DatabaseURL    string        `yaml:"database_url"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Theme          string        `yaml:"theme"`
	Variant        string        `yaml:"variant"`
	TemplatesDir   string        `yaml:"templates_dir"`
	UISchemaDir    string        `yaml:"ui_schema_dir"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	ClientTimeout  time.Duration `yaml:"client_timeout"`
	ShutdownGrace  time.Duration `yaml:"shutdown_grace"`
	SecureCookies  bool          `yaml:"secure_cookies"`
	Quiet          bool          `yaml:"quiet"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          ":3003",
		APIAddr:       ":9009",
		Theme:         "bloom",
		SessionTTL:    30 * time.Minute,
		ClientTimeout: 10 * time.Second,
		ShutdownGrace: 5 * time.Second,
	}
}

// LoadFile decodes path over the defaults. Unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	if err := decode(file, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Parse reads -config first, then applies only the flags that were set on the
// command line so a YAML value is not clobbered by a flag default.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	defaults := Default()
	flags := defaults
	var origins string
	configPath := fs.String("config", "", "YAML configuration file")
	fs.StringVar(&flags.Addr, "addr", defaults.Addr, "web app listen address")
	fs.StringVar(&flags.APIAddr, "api-addr", defaults.APIAddr, "order API listen address")
	fs.StringVar(&flags.Endpoint, "endpoint", defaults.Endpoint, "order endpoint URL (derived from -api-addr when empty)")
	fs.StringVar(&flags.DatabaseURL, "database-url", defaults.DatabaseURL, "Postgres DSN (memory store when empty)")
	fs.StringVar(&origins, "allowed-origins", "", "comma separated CORS origins for the order API")
	fs.StringVar(&flags.Theme, "theme", defaults.Theme, "theme name")
	fs.StringVar(&flags.Variant, "variant", defaults.Variant, "theme variant")
	fs.StringVar(&flags.TemplatesDir, "templates", defaults.TemplatesDir, "template directory overriding the embedded templates")
	fs.StringVar(&flags.UISchemaDir, "ui", defaults.UISchemaDir, "UI schema directory overriding the embedded copy")
	fs.DurationVar(&flags.SessionTTL, "session-ttl", defaults.SessionTTL, "idle session lifetime")
	fs.DurationVar(&flags.ClientTimeout, "client-timeout", defaults.ClientTimeout, "order submission timeout")
	fs.DurationVar(&flags.ShutdownGrace, "grace", defaults.ShutdownGrace, "shutdown grace period")
	fs.BoolVar(&flags.SecureCookies, "secure-cookies", defaults.SecureCookies, "mark session cookies Secure")
	fs.BoolVar(&flags.Quiet, "quiet", defaults.Quiet, "disable request logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := defaults
	if *configPath != "" {
		loaded, err := LoadFile(*configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = flags.Addr
		case "api-addr":
			cfg.APIAddr = flags.APIAddr
		case "endpoint":
			cfg.Endpoint = flags.Endpoint
		case "database-url":
			cfg.DatabaseURL = flags.DatabaseURL
		case "allowed-origins":
			cfg.AllowedOrigins = splitList(origins)
		case "theme":
			cfg.Theme = flags.Theme
		case "variant":
			cfg.Variant = flags.Variant
		case "templates":
			cfg.TemplatesDir = flags.TemplatesDir
		case "ui":
			cfg.UISchemaDir = flags.UISchemaDir
		case "session-ttl":
			cfg.SessionTTL = flags.SessionTTL
		case "client-timeout":
			cfg.ClientTimeout = flags.ClientTimeout
		case "grace":
			cfg.ShutdownGrace = flags.ShutdownGrace
		case "secure-cookies":
			cfg.SecureCookies = flags.SecureCookies
		case "quiet":
			cfg.Quiet = flags.Quiet
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required values and fills the derived endpoint.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "addr is required")
	}
	if strings.TrimSpace(c.APIAddr) == "" {
		problems = append(problems, "api_addr is required")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "session_ttl must be positive")
	}
	if c.ClientTimeout <= 0 {
		problems = append(problems, "client_timeout must be positive")
	}
	if c.ShutdownGrace < 0 {
		problems = append(problems, "shutdown_grace must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		c.Endpoint = EndpointFor(c.APIAddr)
	}
	return nil
}

// EndpointFor builds the order URL served on addr. A bare ":port" is
// resolved against localhost.
func EndpointFor(addr string) string {
	host := strings.TrimSpace(addr)
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	return "http://" + host + "/api/order"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
