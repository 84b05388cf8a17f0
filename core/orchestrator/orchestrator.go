package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nic-paul/sqlbind/core/config"
	"github.com/nic-paul/sqlbind/core/functions"
	"github.com/nic-paul/sqlbind/core/logger"
	"github.com/nic-paul/sqlbind/core/models"
	"github.com/nic-paul/sqlbind/core/nuget"
	"github.com/nic-paul/sqlbind/core/prompt"
	"github.com/nic-paul/sqlbind/core/rewrite"
	"github.com/nic-paul/sqlbind/core/settings"
	"github.com/nic-paul/sqlbind/core/shared"
	"github.com/nic-paul/sqlbind/core/watcher"
	"github.com/nic-paul/sqlbind/core/workspace"
)

const sourceFileExtension = ".cs"

// Binder sequences one binding-generation run: scaffold a function,
// reference the bindings package, write the connection string, then
// rewrite the scaffolded source once it materializes.
//
// There is no rollback. A failure after the scaffolding step leaves the
// package reference and the settings entry in place; both are idempotent
// on retry, while scaffolding may create a duplicate function.
type Binder struct {
	Workspace workspace.Context
	Provider  functions.Provider
	Packages  *nuget.Client
	Prompter  prompt.Prompter
	Config    *config.Config
	Rewrite   rewrite.Options
}

func NewBinder(ws workspace.Context, provider functions.Provider, packages *nuget.Client, prompter prompt.Prompter, cfg *config.Config) *Binder {
	return &Binder{
		Workspace: ws,
		Provider:  provider,
		Packages:  packages,
		Prompter:  prompter,
		Config:    cfg,
		Rewrite:   rewrite.DefaultOptions(),
	}
}

// Generate runs the full sequence for one request. The context bounds the
// materialized-file wait; with a background context the wait is unbounded.
func (b *Binder) Generate(ctx context.Context, req models.GenerationRequest) error {
	runID := uuid.NewString()
	logger.Debug("[%s] starting binding generation for %s", runID, req.QualifiedTable())

	api, err := b.Provider.Functions()
	if err != nil {
		return err
	}

	pc, ok, err := workspace.Resolve(b.Workspace)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace: %w", err)
	}
	if !ok {
		return workspace.ErrNotOpen
	}
	logger.Debug("[%s] resolved project dir %s", runID, pc.ProjectFileDir)

	hostDir := filepath.Dir(pc.HostFilePath)

	// The watch must exist before the scaffolding call that produces the
	// file, or the creation event could fire with nobody listening.
	awaiter, err := watcher.NewFileAwaiter(hostDir, sourceFileExtension)
	if err != nil {
		return fmt.Errorf("failed to watch for generated file: %w", err)
	}
	defer awaiter.Close()

	functionName := req.FunctionName
	if functionName == "" {
		defaultName := shared.FunctionNameFromTable(req.Table)
		functionName, err = b.Prompter.FunctionName(defaultName)
		if err != nil {
			return err
		}
	}
	logger.Debug("[%s] function name: %s", runID, functionName)

	createReq := models.CreateFunctionRequest{
		Language:     b.Config.Language,
		Template:     b.Config.Template,
		FunctionName: functionName,
	}
	if err := api.CreateFunction(ctx, hostDir, createReq); err != nil {
		return err
	}

	if err := b.Packages.AddReference(ctx, pc.ProjectFileDir); err != nil {
		return err
	}

	if err := settings.MergeConnectionString(pc.SettingsFilePath, settings.ConnectionStringKey, req.ConnectionString); err != nil {
		return err
	}

	generatedPath, err := awaiter.Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed waiting for generated file: %w", err)
	}
	logger.Info("Function file created: %s", generatedPath)

	bindingReq := models.SqlBindingRequest{
		BindingType:             "input",
		FilePath:                generatedPath,
		FunctionName:            functionName,
		ObjectName:              req.QualifiedTable(),
		ConnectionStringSetting: settings.ConnectionStringKey,
	}
	if err := api.AddSqlBinding(ctx, bindingReq); err != nil {
		return err
	}

	if err := b.rewriteGeneratedFile(generatedPath); err != nil {
		return err
	}

	logger.Info("SQL input binding installed for %s", functionName)
	return nil
}

func (b *Binder) rewriteGeneratedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read generated file %s: %w", path, err)
	}

	rewritten := rewrite.Rewrite(string(data), b.Rewrite)

	if err := os.WriteFile(path, []byte(rewritten), 0644); err != nil {
		return fmt.Errorf("failed to write generated file %s: %w", path, err)
	}
	return nil
}
