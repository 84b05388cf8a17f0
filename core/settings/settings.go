package settings

import (
	"encoding/json"
	"fmt"
	"os"
)

// ConnectionStringKey is the only key this tool ever writes into the
// settings file.
const ConnectionStringKey = "SqlConnectionString"

// MalformedError reports a settings file that is not JSON or is missing
// the Values member.
type MalformedError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed settings file %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed settings file %s: %s", e.Path, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// MergeConnectionString inserts key=value under the Values member of the
// settings file at path. An already-present key makes the call a no-op;
// the file is not rewritten and the existing value is never overwritten.
// All other members of the document round-trip untouched.
func MergeConnectionString(path, key, value string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return &MalformedError{Path: path, Reason: "not a JSON object", Err: err}
	}

	rawValues, ok := doc["Values"]
	if !ok {
		return &MalformedError{Path: path, Reason: "missing Values member"}
	}

	var values map[string]string
	if err := json.Unmarshal(rawValues, &values); err != nil {
		return &MalformedError{Path: path, Reason: "Values is not a string map", Err: err}
	}

	if _, exists := values[key]; exists {
		return nil
	}

	values[key] = value
	newValues, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to serialize settings values: %w", err)
	}
	doc["Values"] = newValues

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize settings file: %w", err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", path, err)
	}

	return nil
}
