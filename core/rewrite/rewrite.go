package rewrite

import "strings"

// Options drives one rewriting pass over a generated source file.
type Options struct {
	// ImportLine is prepended to the text, followed by a newline.
	ImportLine string
	// BoilerplateLines are dropped wherever a line's whitespace-stripped
	// form matches one of them.
	BoilerplateLines []string
	// Marker is the whitespace-stripped form of the single line whose
	// marker substring gets substituted with Replacement.
	Marker string
	// Replacement is the text substituted for Marker.
	Replacement string
}

// DefaultOptions returns the rewriting options for the C# HttpTrigger
// template emitted by the functions scaffolding tooling.
func DefaultOptions() Options {
	return Options{
		ImportLine: "using Microsoft.Azure.WebJobs.Extensions.Sql;",
		BoilerplateLines: []string{
			`log.LogInformation("C# HTTP trigger function processed a request.");`,
			`string name = req.Query["name"];`,
			`string requestBody = await new StreamReader(req.Body).ReadToEndAsync();`,
			`dynamic data = JsonConvert.DeserializeObject(requestBody);`,
			`name = name ?? data?.name;`,
			`string responseMessage = string.IsNullOrEmpty(name)`,
			`? "This HTTP triggered function executed successfully. Pass a name in the query string or in the request body for a personalized response."`,
			`: $"Hello, {name}. This HTTP triggered function executed successfully.";`,
		},
		Marker:      "return new OkObjectResult(responseMessage);",
		Replacement: "return new OkObjectResult(result);",
	}
}

// Rewrite transforms the text of a freshly scaffolded source file: the
// import line is prepended, known template boilerplate lines are dropped,
// and the default result line is swapped for the binding-aware one. The
// transform is total: text without any boilerplate or marker comes back
// unchanged apart from the prepended import.
func Rewrite(original string, opts Options) string {
	boilerplate := make(map[string]struct{}, len(opts.BoilerplateLines))
	for _, line := range opts.BoilerplateLines {
		boilerplate[strings.TrimSpace(line)] = struct{}{}
	}

	working := opts.ImportLine + "\n" + original
	lines := strings.Split(working, "\n")

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if _, ok := boilerplate[stripped]; ok {
			continue
		}

		if opts.Marker != "" && stripped == opts.Marker {
			out = append(out, strings.Replace(line, opts.Marker, opts.Replacement, 1))
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
