package workspace

import "path/filepath"

// FakeContext is an in-memory Context for tests.
type FakeContext struct {
	WorkspaceRoots []string
	Files          []string
}

func (c *FakeContext) Roots() []string {
	return c.WorkspaceRoots
}

func (c *FakeContext) FindFiles(pattern string, limit int) ([]string, error) {
	var matches []string
	for _, f := range c.Files {
		ok, err := filepath.Match(pattern, filepath.Base(f))
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, f)
			if limit > 0 && len(matches) >= limit {
				break
			}
		}
	}
	return matches, nil
}
