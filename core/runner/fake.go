package runner

import (
	"context"
	"strings"
)

// FakeCall records one command handed to a Fake runner.
type FakeCall struct {
	Dir  string
	Name string
	Args []string
}

func (c FakeCall) String() string {
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Fake is a recording Runner for tests. Outputs maps a command prefix
// (e.g. "dotnet nuget list") to the stdout it should return; Fail maps a
// prefix to an error.
type Fake struct {
	Calls   []FakeCall
	Outputs map[string]string
	Fail    map[string]error
}

func (f *Fake) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	call := FakeCall{Dir: dir, Name: name, Args: args}
	f.Calls = append(f.Calls, call)

	display := call.String()
	for prefix, err := range f.Fail {
		if strings.HasPrefix(display, prefix) {
			return "", err
		}
	}
	for prefix, out := range f.Outputs {
		if strings.HasPrefix(display, prefix) {
			return out, nil
		}
	}
	return "", nil
}
