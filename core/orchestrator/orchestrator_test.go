package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nic-paul/sqlbind/core/config"
	"github.com/nic-paul/sqlbind/core/functions"
	"github.com/nic-paul/sqlbind/core/models"
	"github.com/nic-paul/sqlbind/core/nuget"
	"github.com/nic-paul/sqlbind/core/prompt"
	"github.com/nic-paul/sqlbind/core/runner"
	"github.com/nic-paul/sqlbind/core/settings"
	"github.com/nic-paul/sqlbind/core/workspace"
)

const scaffoldedSource = `public static class Fn
{
    log.LogInformation("C# HTTP trigger function processed a request.");
    string name = req.Query["name"];
    return new OkObjectResult(responseMessage);
}
`

// newProjectDir lays out a complete functions project on disk.
func newProjectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"App.csproj":          "<Project />",
		"host.json":           `{"version": "2.0"}`,
		"local.settings.json": `{"IsEncrypted": false, "Values": {}}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newTestBinder(ws workspace.Context, provider functions.Provider, fakeRunner *runner.Fake) *Binder {
	cfg := config.Default()
	return NewBinder(ws, provider, nuget.NewClient(fakeRunner, cfg), &prompt.Static{}, cfg)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestGenerate_FullSequence(t *testing.T) {
	dir := newProjectDir(t)

	api := &functions.FakeApi{
		OnCreate: func(hostDir string, req models.CreateFunctionRequest) {
			path := filepath.Join(hostDir, req.FunctionName+".cs")
			if err := os.WriteFile(path, []byte(scaffoldedSource), 0644); err != nil {
				t.Errorf("failed to materialize file: %v", err)
			}
		},
	}
	fakeRunner := &runner.Fake{}
	b := newTestBinder(workspace.NewDirContext(dir), &functions.FakeProvider{Api: api}, fakeRunner)

	req := models.GenerationRequest{
		ConnectionString: "Server=.;Database=db",
		Schema:           "dbo",
		Table:            "Employees",
		FunctionName:     "GetEmployees",
	}
	if err := b.Generate(testContext(t), req); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Scaffolding request.
	if len(api.Created) != 1 || api.Created[0].FunctionName != "GetEmployees" {
		t.Errorf("unexpected scaffolding calls %+v", api.Created)
	}

	// Package reference went through the dotnet CLI in the project dir.
	var sawPackageAdd bool
	for _, call := range fakeRunner.Calls {
		if strings.HasPrefix(call.String(), "dotnet add package") {
			sawPackageAdd = true
			if call.Dir != dir {
				t.Errorf("package add ran in %q, want %q", call.Dir, dir)
			}
		}
	}
	if !sawPackageAdd {
		t.Error("package reference was never added")
	}

	// Connection string landed in settings.
	data, err := os.ReadFile(filepath.Join(dir, "local.settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"SqlConnectionString": "Server=.;Database=db"`) {
		t.Errorf("connection string missing from settings:\n%s", data)
	}

	// Binding injection request.
	if len(api.Bindings) != 1 {
		t.Fatalf("expected one binding request, got %d", len(api.Bindings))
	}
	binding := api.Bindings[0]
	if binding.BindingType != "input" {
		t.Errorf("unexpected binding type %q", binding.BindingType)
	}
	if binding.ObjectName != "dbo.Employees" {
		t.Errorf("unexpected object name %q", binding.ObjectName)
	}
	if binding.ConnectionStringSetting != settings.ConnectionStringKey {
		t.Errorf("unexpected setting key %q", binding.ConnectionStringSetting)
	}
	if binding.FilePath != filepath.Join(dir, "GetEmployees.cs") {
		t.Errorf("unexpected file path %q", binding.FilePath)
	}

	// Generated source was rewritten.
	source, err := os.ReadFile(binding.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	text := string(source)
	if !strings.HasPrefix(text, "using Microsoft.Azure.WebJobs.Extensions.Sql;") {
		t.Errorf("import line missing:\n%s", text)
	}
	if strings.Contains(text, "log.LogInformation") {
		t.Errorf("boilerplate survived:\n%s", text)
	}
	if !strings.Contains(text, "    return new OkObjectResult(result);") {
		t.Errorf("result line not substituted:\n%s", text)
	}
}

func TestGenerate_PromptsWhenNameMissing(t *testing.T) {
	dir := newProjectDir(t)

	api := &functions.FakeApi{
		OnCreate: func(hostDir string, req models.CreateFunctionRequest) {
			os.WriteFile(filepath.Join(hostDir, req.FunctionName+".cs"), []byte(scaffoldedSource), 0644)
		},
	}
	b := newTestBinder(workspace.NewDirContext(dir), &functions.FakeProvider{Api: api}, &runner.Fake{})

	req := models.GenerationRequest{
		ConnectionString: "cs",
		Schema:           "dbo",
		Table:            "employee_records",
	}
	if err := b.Generate(testContext(t), req); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(api.Created) != 1 || api.Created[0].FunctionName != "GetEmployeeRecords" {
		t.Errorf("expected derived default name, got %+v", api.Created)
	}
}

func TestGenerate_ProjectNotOpenMakesNoExternalCalls(t *testing.T) {
	api := &functions.FakeApi{}
	fakeRunner := &runner.Fake{}
	ws := &workspace.FakeContext{}
	b := newTestBinder(ws, &functions.FakeProvider{Api: api}, fakeRunner)

	err := b.Generate(testContext(t), models.GenerationRequest{Schema: "dbo", Table: "T"})
	if !errors.Is(err, workspace.ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}

	if len(api.Created) != 0 || len(api.Bindings) != 0 {
		t.Errorf("external API was called: %+v %+v", api.Created, api.Bindings)
	}
	if len(fakeRunner.Calls) != 0 {
		t.Errorf("commands ran: %+v", fakeRunner.Calls)
	}
}

func TestGenerate_ProviderUnavailableAborts(t *testing.T) {
	fakeRunner := &runner.Fake{}
	b := newTestBinder(&workspace.FakeContext{}, &functions.FakeProvider{Err: functions.ErrUnavailable}, fakeRunner)

	err := b.Generate(testContext(t), models.GenerationRequest{Schema: "dbo", Table: "T"})
	if !errors.Is(err, functions.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if len(fakeRunner.Calls) != 0 {
		t.Errorf("commands ran: %+v", fakeRunner.Calls)
	}
}

func TestGenerate_ScaffoldFailureLeavesSettingsUntouched(t *testing.T) {
	dir := newProjectDir(t)

	api := &functions.FakeApi{CreateErr: errors.New("scaffolding blew up")}
	fakeRunner := &runner.Fake{}
	b := newTestBinder(workspace.NewDirContext(dir), &functions.FakeProvider{Api: api}, fakeRunner)

	req := models.GenerationRequest{
		ConnectionString: "cs",
		Schema:           "dbo",
		Table:            "T",
		FunctionName:     "Fn",
	}
	err := b.Generate(testContext(t), req)
	if err == nil {
		t.Fatal("expected scaffolding error")
	}

	data, readErr := os.ReadFile(filepath.Join(dir, "local.settings.json"))
	if readErr != nil {
		t.Fatal(readErr)
	}
	if strings.Contains(string(data), settings.ConnectionStringKey) {
		t.Errorf("settings were written despite earlier failure:\n%s", data)
	}
	if len(fakeRunner.Calls) != 0 {
		t.Errorf("package commands ran despite scaffolding failure: %+v", fakeRunner.Calls)
	}
}
