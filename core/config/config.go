package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nic-paul/sqlbind/core/logger"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Language       string         `yaml:"language"`
	Template       string         `yaml:"template"`
	Package        Package        `yaml:"package"`
	Feed           Feed           `yaml:"feed"`
	BindingService BindingService `yaml:"binding_service"`
}

type Package struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type BindingService struct {
	URL string `yaml:"url"`
}

func Default() *Config {
	return &Config{
		Language: "C#",
		Template: "HttpTrigger",
		Package: Package{
			Name:    "Microsoft.Azure.WebJobs.Extensions.Sql",
			Version: "0.1.131-preview",
		},
		Feed: Feed{
			Name: "SqlBindingsPreview",
			URL:  "https://pkgs.dev.azure.com/AzureSQLDB/serverless/_packaging/preview/nuget/v3/index.json",
		},
		BindingService: BindingService{
			URL: "http://localhost:5008/sqlbinding",
		},
	}
}

func Load() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working dir: %w", err)
	}

	paths := []string{
		filepath.Join(wd, "sqlbind.yaml"),
	}

	var filePath string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			filePath = p
			break
		}
	}

	if filePath == "" {
		logger.Debug("No config file found, using default config")
		return Default(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	logger.Debug("Config file found: %s", filePath)
	logger.Debug("Config: %+v", cfg)

	return cfg, nil
}
