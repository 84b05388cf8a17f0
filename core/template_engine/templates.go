package template_engine

import "embed"

//go:embed all:templates
var TemplateFS embed.FS

type initRefs struct {
	Ref TemplateRef
}

// TEMPLATES names the embedded template roots.
var TEMPLATES = struct {
	INIT initRefs
}{
	INIT: initRefs{
		Ref: TemplateRef{Path: "init", IsDir: true},
	},
}
