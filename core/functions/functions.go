package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"

	"github.com/nic-paul/sqlbind/core/config"
	"github.com/nic-paul/sqlbind/core/logger"
	"github.com/nic-paul/sqlbind/core/models"
	"github.com/nic-paul/sqlbind/core/runner"
)

// ErrUnavailable reports that the functions tooling cannot be resolved on
// this machine. Callers show a user-facing message and abort.
var ErrUnavailable = errors.New("functions tooling unavailable")

// Api is the capability surface of the external functions tooling:
// scaffolding a new function and injecting a SQL binding into one.
type Api interface {
	CreateFunction(ctx context.Context, dir string, req models.CreateFunctionRequest) error
	AddSqlBinding(ctx context.Context, req models.SqlBindingRequest) error
}

// Provider resolves the Api. Injected rather than looked up globally so
// tests can substitute a fake.
type Provider interface {
	Functions() (Api, error)
}

// CoreToolsProvider resolves the Azure Functions Core Tools binary and
// hands out an Api backed by it.
type CoreToolsProvider struct {
	runner   runner.Runner
	cfg      *config.Config
	client   *http.Client
	lookPath func(string) (string, error)
}

func NewCoreToolsProvider(r runner.Runner, cfg *config.Config) *CoreToolsProvider {
	return &CoreToolsProvider{
		runner:   r,
		cfg:      cfg,
		client:   http.DefaultClient,
		lookPath: exec.LookPath,
	}
}

func (p *CoreToolsProvider) Functions() (Api, error) {
	path, err := p.lookPath("func")
	if err != nil {
		return nil, fmt.Errorf("%w: func binary not found on PATH", ErrUnavailable)
	}
	logger.Debug("Resolved functions core tools: %s", path)

	return &coreToolsApi{
		runner:     p.runner,
		client:     p.client,
		serviceURL: p.cfg.BindingService.URL,
	}, nil
}

type coreToolsApi struct {
	runner     runner.Runner
	client     *http.Client
	serviceURL string
}

func (a *coreToolsApi) CreateFunction(ctx context.Context, dir string, req models.CreateFunctionRequest) error {
	logger.Info("Scaffolding function %s (%s/%s)", req.FunctionName, req.Language, req.Template)
	_, err := a.runner.Run(ctx, dir, "func", "new",
		"--language", req.Language,
		"--template", req.Template,
		"--name", req.FunctionName,
	)
	if err != nil {
		return fmt.Errorf("failed to scaffold function %s: %w", req.FunctionName, err)
	}
	return nil
}

func (a *coreToolsApi) AddSqlBinding(ctx context.Context, req models.SqlBindingRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode binding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.serviceURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build binding request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger.Debug("Requesting SQL binding for %s from %s", req.FunctionName, a.serviceURL)
	resp, err := a.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("binding service call failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("binding service returned status %d", resp.StatusCode)
	}
	return nil
}
