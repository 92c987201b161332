package tools

import (
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestExploreCatalogPromptWithCatalog(t *testing.T) {
	text := exploreCatalogPrompt("main")

	if !strings.Contains(text, `databricks_get_catalog(name="main")`) {
		t.Errorf("Prompt should target the named catalog:\n%s", text)
	}
	if !strings.Contains(text, "databricks_list_schemas") {
		t.Errorf("Prompt should walk schemas:\n%s", text)
	}
}

func TestExploreCatalogPromptWithoutCatalog(t *testing.T) {
	text := exploreCatalogPrompt("")

	if !strings.Contains(text, "databricks_list_catalogs()") {
		t.Errorf("Prompt should start from the catalog listing:\n%s", text)
	}
}

func TestDebugJobPrompt(t *testing.T) {
	text := debugJobPrompt("42")

	for _, tool := range []string{
		"databricks_get_job(job_id=42)",
		"databricks_list_runs(job_id=42)",
		"databricks_get_run",
		"databricks_get_run_output",
	} {
		if !strings.Contains(text, tool) {
			t.Errorf("Prompt missing %q:\n%s", tool, text)
		}
	}
}

func TestManagePermissionsPrompt(t *testing.T) {
	text := managePermissionsPrompt("table", "main.sales.orders")

	if !strings.Contains(text, `databricks_get_grants(securable_type="table", full_name="main.sales.orders")`) {
		t.Errorf("Prompt should inspect grants on the securable:\n%s", text)
	}
	if !strings.Contains(text, "databricks_update_grants") {
		t.Errorf("Prompt should offer to apply changes:\n%s", text)
	}
}

func TestQueryDataPromptQuotesQuestion(t *testing.T) {
	text := queryDataPrompt("how many orders shipped last week")

	if !strings.Contains(text, `"how many orders shipped last week"`) {
		t.Errorf("Prompt should embed the question:\n%s", text)
	}
	if !strings.Contains(text, "databricks_execute_sql") {
		t.Errorf("Prompt should run SQL:\n%s", text)
	}
}

func TestPromptToolReferencesExist(t *testing.T) {
	known := make(map[string]bool)
	for _, spec := range AllTools {
		known[spec.Name] = true
	}

	prompts := []string{
		exploreCatalogPrompt(""),
		exploreCatalogPrompt("main"),
		debugJobPrompt("1"),
		setupPipelinePrompt("main.sales.orders"),
		healthCheckPrompt(),
		queryDataPrompt("q"),
		managePermissionsPrompt("table", "main.sales.orders"),
	}

	for _, text := range prompts {
		for _, word := range strings.FieldsFunc(text, func(r rune) bool {
			return !(r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
		}) {
			if strings.HasPrefix(word, "databricks_") && !known[word] {
				t.Errorf("Prompt references unknown tool %q", word)
			}
		}
	}
}

func TestRegisterPromptsDoesNotPanic(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0.0.0"}, nil)
	RegisterPrompts(server)
}
