package models

// GenerationRequest describes one binding-generation run. Built by the
// caller, consumed once, never persisted.
type GenerationRequest struct {
	ConnectionString string
	Schema           string
	Table            string
	FunctionName     string
}

// QualifiedTable returns the "schema.table" form used by the binding
// injection service.
func (r GenerationRequest) QualifiedTable() string {
	return r.Schema + "." + r.Table
}

// ProjectContext holds the paths resolved from the open workspace.
// Recomputed on every run, never cached.
type ProjectContext struct {
	ProjectFileDir   string
	HostFilePath     string
	SettingsFilePath string
}

// CreateFunctionRequest is the payload handed to the external scaffolding
// tooling. The collaborator is expected to asynchronously create exactly
// one new source file under the workspace.
type CreateFunctionRequest struct {
	Language     string
	Template     string
	FunctionName string
}

// SqlBindingRequest is the payload for the binding injection service.
type SqlBindingRequest struct {
	BindingType             string `json:"bindingType"`
	FilePath                string `json:"filePath"`
	FunctionName            string `json:"functionName"`
	ObjectName              string `json:"objectName"`
	ConnectionStringSetting string `json:"connectionStringSetting"`
}
