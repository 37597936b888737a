// Package config resolves generator settings from defaults, a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mtiwari1/docseed/internal/output"
)

// AutoCustomerID asks for a fresh UUID as the customer identifier of the run.
const AutoCustomerID = "auto"

// Config holds everything a generation run needs.
type Config struct {
	SourceDir  string `yaml:"source_dir"`
	CustomerID string `yaml:"customer_id"`
	Format     string `yaml:"format"`
	OutputName string `yaml:"output_name"`
	Seed       uint64 `yaml:"seed"`
}

// Default returns the baseline settings.
func Default() Config {
	return Config{
		SourceDir:  ".",
		CustomerID: "CUST-0001",
		Format:     output.FormatJS,
		OutputName: output.DefaultName,
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("DOCSEED_SOURCE_DIR"); v != "" {
		c.SourceDir = v
	}
	if v := os.Getenv("DOCSEED_CUSTOMER_ID"); v != "" {
		c.CustomerID = v
	}
	if v := os.Getenv("DOCSEED_FORMAT"); v != "" {
		c.Format = strings.ToLower(v)
	}
	if v := os.Getenv("DOCSEED_OUTPUT_NAME"); v != "" {
		c.OutputName = v
	}
	if v := os.Getenv("DOCSEED_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: DOCSEED_SEED: %w", err)
		}
		c.Seed = seed
	}
	return nil
}

// ResolveCustomerID replaces AutoCustomerID with a generated UUID.
func (c *Config) ResolveCustomerID() {
	if strings.EqualFold(c.CustomerID, AutoCustomerID) {
		c.CustomerID = uuid.NewString()
	}
}

// Validate reports every setting that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if c.SourceDir == "" {
		errs = append(errs, errors.New("source dir must be set"))
	}
	if c.CustomerID == "" {
		errs = append(errs, errors.New("customer id must be set"))
	}
	if c.OutputName == "" {
		errs = append(errs, errors.New("output name must be set"))
	}
	if c.Format != output.FormatJS && c.Format != output.FormatJSON {
		errs = append(errs, fmt.Errorf("format %q must be %q or %q", c.Format, output.FormatJS, output.FormatJSON))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
