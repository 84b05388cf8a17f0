package nuget

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nic-paul/sqlbind/core/config"
	"github.com/nic-paul/sqlbind/core/runner"
)

func newTestClient(fake *runner.Fake) *Client {
	return NewClient(fake, config.Default())
}

func TestEnsureSource_SkipsAddWhenFeedListed(t *testing.T) {
	cfg := config.Default()
	fake := &runner.Fake{
		Outputs: map[string]string{
			"dotnet nuget list": "E nuget.org\nE " + cfg.Feed.URL + "\n",
		},
	}
	c := newTestClient(fake)

	if err := c.EnsureSource(context.Background(), "/proj"); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	for _, call := range fake.Calls {
		if strings.HasPrefix(call.String(), "dotnet nuget add") {
			t.Errorf("source was re-added even though it is already listed: %s", call)
		}
	}
}

func TestEnsureSource_AddsMissingFeed(t *testing.T) {
	fake := &runner.Fake{
		Outputs: map[string]string{
			"dotnet nuget list": "E nuget.org\n",
		},
	}
	c := newTestClient(fake)

	if err := c.EnsureSource(context.Background(), "/proj"); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	var added bool
	for _, call := range fake.Calls {
		if strings.HasPrefix(call.String(), "dotnet nuget add source") {
			added = true
		}
	}
	if !added {
		t.Error("expected the missing feed to be registered")
	}
}

func TestAddReference_RunsInProjectDir(t *testing.T) {
	fake := &runner.Fake{}
	c := newTestClient(fake)

	if err := c.AddReference(context.Background(), "/work/app"); err != nil {
		t.Fatalf("add reference failed: %v", err)
	}

	if len(fake.Calls) == 0 {
		t.Fatal("expected commands to run")
	}
	last := fake.Calls[len(fake.Calls)-1]
	if last.Dir != "/work/app" {
		t.Errorf("package add must run in the project dir, got %q", last.Dir)
	}
	if !strings.HasPrefix(last.String(), "dotnet add package") {
		t.Errorf("unexpected final command %s", last)
	}
}

func TestAddReference_PropagatesListFailure(t *testing.T) {
	execErr := &runner.ExecError{Command: "dotnet nuget list source", Stderr: "boom"}
	fake := &runner.Fake{
		Fail: map[string]error{"dotnet nuget list": execErr},
	}
	c := newTestClient(fake)

	err := c.AddReference(context.Background(), "/proj")

	var got *runner.ExecError
	if !errors.As(err, &got) {
		t.Fatalf("expected ExecError to propagate, got %v", err)
	}
	for _, call := range fake.Calls {
		if strings.HasPrefix(call.String(), "dotnet add package") {
			t.Error("package add must not run after a source-list failure")
		}
	}
}
