package nuget

import (
	"context"
	"fmt"
	"strings"

	"github.com/nic-paul/sqlbind/core/config"
	"github.com/nic-paul/sqlbind/core/logger"
	"github.com/nic-paul/sqlbind/core/runner"
)

// Client adds the SQL bindings package reference to a project through the
// dotnet CLI.
type Client struct {
	runner     runner.Runner
	feedName   string
	feedURL    string
	pkgName    string
	pkgVersion string
}

func NewClient(r runner.Runner, cfg *config.Config) *Client {
	return &Client{
		runner:     r,
		feedName:   cfg.Feed.Name,
		feedURL:    cfg.Feed.URL,
		pkgName:    cfg.Package.Name,
		pkgVersion: cfg.Package.Version,
	}
}

// AddReference makes sure the package feed is registered, then adds the
// bindings package to the project in projectDir. Both halves are
// idempotent from the dotnet CLI's point of view, so re-running a failed
// flow is safe.
func (c *Client) AddReference(ctx context.Context, projectDir string) error {
	if err := c.EnsureSource(ctx, projectDir); err != nil {
		return err
	}
	return c.AddPackage(ctx, projectDir)
}

// EnsureSource registers the package feed only when the current source
// list does not already carry its URL.
func (c *Client) EnsureSource(ctx context.Context, dir string) error {
	out, err := c.runner.Run(ctx, dir, "dotnet", "nuget", "list", "source", "--format", "Short")
	if err != nil {
		return fmt.Errorf("failed to list package sources: %w", err)
	}

	if strings.Contains(out, c.feedURL) {
		logger.Debug("Package source %s already registered", c.feedURL)
		return nil
	}

	logger.Info("Registering package source %s", c.feedName)
	if _, err := c.runner.Run(ctx, dir, "dotnet", "nuget", "add", "source", c.feedURL, "--name", c.feedName); err != nil {
		return fmt.Errorf("failed to add package source: %w", err)
	}
	return nil
}

// AddPackage adds the pinned bindings package to the project file in dir.
func (c *Client) AddPackage(ctx context.Context, dir string) error {
	logger.Info("Adding package %s %s", c.pkgName, c.pkgVersion)
	if _, err := c.runner.Run(ctx, dir, "dotnet", "add", "package", c.pkgName, "--version", c.pkgVersion); err != nil {
		return fmt.Errorf("failed to add package %s: %w", c.pkgName, err)
	}
	return nil
}
