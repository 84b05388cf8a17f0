package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nic-paul/sqlbind/core/logger"
	"github.com/nic-paul/sqlbind/core/models"
)

// ErrNotOpen reports that no complete functions project is open in the
// workspace. A clean precondition failure: nothing has happened yet.
var ErrNotOpen = errors.New("a functions project must be opened")

const (
	projectFilePattern = "*.csproj"
	hostFileName       = "host.json"
	settingsFileName   = "local.settings.json"
)

// Context is the ambient workspace surface the tool operates on. Passed
// explicitly into every component so tests can substitute an in-memory
// implementation.
type Context interface {
	// Roots returns the open workspace root directories, possibly empty.
	Roots() []string
	// FindFiles returns up to limit paths under the roots whose base name
	// matches the glob pattern.
	FindFiles(pattern string, limit int) ([]string, error)
}

// DirContext is a Context over real directories on disk.
type DirContext struct {
	roots []string
}

func NewDirContext(roots ...string) *DirContext {
	existing := make([]string, 0, len(roots))
	for _, root := range roots {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			existing = append(existing, root)
		} else {
			logger.Debug("Ignoring workspace root %s: not a directory", root)
		}
	}
	return &DirContext{roots: existing}
}

func (c *DirContext) Roots() []string {
	return c.roots
}

func (c *DirContext) FindFiles(pattern string, limit int) ([]string, error) {
	var matches []string
	for _, root := range c.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ok, err := filepath.Match(pattern, d.Name())
			if err != nil {
				return err
			}
			if ok {
				matches = append(matches, path)
				if limit > 0 && len(matches) >= limit {
					return fs.SkipAll
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search workspace root %s: %w", root, err)
		}
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

// Resolve locates the project file and host file in the workspace. A
// missing file is not an error: the second return reports whether the
// workspace holds a complete project. First match wins when several
// project files exist.
func Resolve(ws Context) (*models.ProjectContext, bool, error) {
	if len(ws.Roots()) == 0 {
		return nil, false, nil
	}

	projectFiles, err := ws.FindFiles(projectFilePattern, 1)
	if err != nil {
		return nil, false, fmt.Errorf("failed to search for project file: %w", err)
	}
	if len(projectFiles) == 0 {
		logger.Debug("No project file found in workspace")
		return nil, false, nil
	}

	hostFiles, err := ws.FindFiles(hostFileName, 1)
	if err != nil {
		return nil, false, fmt.Errorf("failed to search for host file: %w", err)
	}
	if len(hostFiles) == 0 {
		logger.Debug("No host file found in workspace")
		return nil, false, nil
	}

	hostDir := filepath.Dir(hostFiles[0])
	return &models.ProjectContext{
		ProjectFileDir:   filepath.Dir(projectFiles[0]),
		HostFilePath:     hostFiles[0],
		SettingsFilePath: filepath.Join(hostDir, settingsFileName),
	}, true, nil
}

// IsProjectOpen reports whether the workspace holds an open functions
// project. False is a clean abort signal, never an error.
func IsProjectOpen(ws Context) bool {
	_, ok, err := Resolve(ws)
	if err != nil {
		logger.Debug("Workspace resolution failed: %v", err)
		return false
	}
	return ok
}
