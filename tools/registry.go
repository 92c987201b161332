// Package tools provides a metadata-driven registry for MCP tool
// definitions. Tools are declared as specs and registered through
// type-safe handlers, keeping main.go free of per-tool boilerplate.
package tools

// ToolSpec defines a tool's metadata for declarative registration.
// Each spec maps to a workspace client method with matching Args type.
type ToolSpec struct {
	// Name is the MCP tool name (e.g., "databricks_list_jobs")
	Name string

	// Method is the client method key (e.g., "JobsList")
	Method string

	// Description is the tool description shown to LLMs
	Description string

	// Title is the human-readable tool title for annotations
	Title string

	// Group is the capability group (jobs, sql, compute, ...) the tool
	// filter operates on
	Group string

	// ReadOnly indicates the tool doesn't modify workspace state
	ReadOnly bool

	// Destructive indicates the tool can delete or overwrite data
	Destructive bool

	// Idempotent indicates repeated calls have the same effect
	Idempotent bool

	// OpenWorld indicates the tool accesses external resources
	OpenWorld bool
}

// Groups returns the distinct capability groups in declaration order.
func Groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, spec := range AllTools {
		if !seen[spec.Group] {
			seen[spec.Group] = true
			out = append(out, spec.Group)
		}
	}
	return out
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}
