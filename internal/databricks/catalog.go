package databricks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/lakeware/databricks-mcp-server/internal/errors"
	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// CatalogAPI covers Unity Catalog metadata: catalogs, schemas, and
// tables.
type CatalogAPI struct {
	c *Client
}

// CatalogInfo is a Unity Catalog catalog.
type CatalogInfo struct {
	Name        string `json:"name"`
	Comment     string `json:"comment,omitempty"`
	Owner       string `json:"owner,omitempty"`
	CatalogType string `json:"catalog_type,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
	UpdatedAt   int64  `json:"updated_at,omitempty"`
}

type catalogListResponse struct {
	Catalogs      []CatalogInfo `json:"catalogs"`
	NextPageToken string        `json:"next_page_token"`
}

// ListCatalogsArgs bounds a catalog listing.
type ListCatalogsArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of catalogs to return (1-100, default 100)"`
}

// CatalogListing is the rendered result of a catalog listing.
type CatalogListing struct {
	Catalogs []any `json:"catalogs"`
	Count    int   `json:"count"`
}

// ListCatalogs returns catalogs visible to the current principal.
func (a CatalogAPI) ListCatalogs(ctx context.Context, args ListCatalogsArgs) (*CatalogListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]CatalogInfo, string, error) {
		resp, err := apiGetCached[catalogListResponse](ctx, a.c, "unity_catalog", "list_catalogs",
			pathWithQuery("/api/2.1/unity-catalog/catalogs", withToken(url.Values{}, token)), listCacheTTL)
		if err != nil {
			return nil, "", err
		}
		return resp.Catalogs, resp.NextPageToken, nil
	})
	catalogs, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &CatalogListing{Catalogs: catalogs, Count: len(catalogs)}, nil
}

// GetCatalogArgs identifies a single catalog.
type GetCatalogArgs struct {
	Name string `json:"name" jsonschema:"required" jsonschema_description:"The name of the catalog"`
}

// GetCatalog returns details for one catalog.
func (a CatalogAPI) GetCatalog(ctx context.Context, args GetCatalogArgs) (*CatalogInfo, error) {
	return apiGet[CatalogInfo](ctx, a.c, "unity_catalog", "get_catalog",
		"/api/2.1/unity-catalog/catalogs/"+url.PathEscape(args.Name))
}

// CreateCatalogArgs describes a new catalog.
type CreateCatalogArgs struct {
	Name    string `json:"name" jsonschema:"required" jsonschema_description:"Name of the catalog to create"`
	Comment string `json:"comment,omitempty" jsonschema_description:"Optional user-provided free-form text description"`
}

// CreateCatalog creates a catalog in the metastore.
func (a CatalogAPI) CreateCatalog(ctx context.Context, args CreateCatalogArgs) (*CatalogInfo, error) {
	payload := map[string]any{"name": args.Name}
	if args.Comment != "" {
		payload["comment"] = args.Comment
	}
	created, err := apiPost[CatalogInfo](ctx, a.c, "unity_catalog", "create_catalog",
		"/api/2.1/unity-catalog/catalogs", payload)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("unity_catalog")
	return created, nil
}

// DeleteCatalogArgs identifies the catalog to delete.
type DeleteCatalogArgs struct {
	Name  string `json:"name" jsonschema:"required" jsonschema_description:"The name of the catalog to delete"`
	Force bool   `json:"force,omitempty" jsonschema_description:"Force deletion even if the catalog is not empty"`
}

// DeleteCatalog removes a catalog from the metastore.
func (a CatalogAPI) DeleteCatalog(ctx context.Context, args DeleteCatalogArgs) (*ActionStatus, error) {
	path := "/api/2.1/unity-catalog/catalogs/" + url.PathEscape(args.Name)
	if args.Force {
		path += "?force=true"
	}
	_, err := apiDelete[struct{}](ctx, a.c, "unity_catalog", "delete_catalog", path, nil)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("unity_catalog")
	return &ActionStatus{
		Status:  "deleted",
		Message: fmt.Sprintf("Catalog %q deleted successfully.", args.Name),
	}, nil
}

// SchemaInfo is a Unity Catalog schema.
type SchemaInfo struct {
	Name        string `json:"name"`
	CatalogName string `json:"catalog_name,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Comment     string `json:"comment,omitempty"`
	Owner       string `json:"owner,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

type schemaListResponse struct {
	Schemas       []SchemaInfo `json:"schemas"`
	NextPageToken string       `json:"next_page_token"`
}

// ListSchemasArgs scopes a schema listing to one catalog.
type ListSchemasArgs struct {
	CatalogName string `json:"catalog_name" jsonschema:"required" jsonschema_description:"Parent catalog to list schemas from"`
	Limit       int    `json:"limit,omitempty" jsonschema_description:"Maximum number of schemas to return (1-100, default 100)"`
}

// SchemaListing is the rendered result of a schema listing.
type SchemaListing struct {
	Schemas []any `json:"schemas"`
	Count   int   `json:"count"`
}

// ListSchemas returns schemas in a catalog.
func (a CatalogAPI) ListSchemas(ctx context.Context, args ListSchemasArgs) (*SchemaListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]SchemaInfo, string, error) {
		q := url.Values{}
		q.Set("catalog_name", args.CatalogName)
		resp, err := apiGetCached[schemaListResponse](ctx, a.c, "unity_catalog", "list_schemas",
			pathWithQuery("/api/2.1/unity-catalog/schemas", withToken(q, token)), listCacheTTL)
		if err != nil {
			return nil, "", err
		}
		return resp.Schemas, resp.NextPageToken, nil
	})
	schemas, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &SchemaListing{Schemas: schemas, Count: len(schemas)}, nil
}

// CreateSchemaArgs describes a new schema.
type CreateSchemaArgs struct {
	Name        string `json:"name" jsonschema:"required" jsonschema_description:"Name of the schema to create"`
	CatalogName string `json:"catalog_name" jsonschema:"required" jsonschema_description:"Parent catalog for the schema"`
	Comment     string `json:"comment,omitempty" jsonschema_description:"Optional user-provided free-form text description"`
}

// CreateSchema creates a schema in a catalog.
func (a CatalogAPI) CreateSchema(ctx context.Context, args CreateSchemaArgs) (*SchemaInfo, error) {
	payload := map[string]any{
		"name":         args.Name,
		"catalog_name": args.CatalogName,
	}
	if args.Comment != "" {
		payload["comment"] = args.Comment
	}
	created, err := apiPost[SchemaInfo](ctx, a.c, "unity_catalog", "create_schema",
		"/api/2.1/unity-catalog/schemas", payload)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("unity_catalog")
	return created, nil
}

// TableInfo is a Unity Catalog table.
type TableInfo struct {
	Name        string `json:"name"`
	CatalogName string `json:"catalog_name,omitempty"`
	SchemaName  string `json:"schema_name,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	TableType   string `json:"table_type,omitempty"`
	DataSource  string `json:"data_source_format,omitempty"`
	Comment     string `json:"comment,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Columns     []struct {
		Name     string `json:"name,omitempty"`
		TypeName string `json:"type_name,omitempty"`
		TypeText string `json:"type_text,omitempty"`
		Nullable bool   `json:"nullable,omitempty"`
		Comment  string `json:"comment,omitempty"`
	} `json:"columns,omitempty"`
	CreatedAt int64 `json:"created_at,omitempty"`
}

type tableListResponse struct {
	Tables        []TableInfo `json:"tables"`
	NextPageToken string      `json:"next_page_token"`
}

// ListTablesArgs scopes a table listing to one schema.
type ListTablesArgs struct {
	CatalogName string `json:"catalog_name" jsonschema:"required" jsonschema_description:"Parent catalog to list tables from"`
	SchemaName  string `json:"schema_name" jsonschema:"required" jsonschema_description:"Parent schema to list tables from"`
	Limit       int    `json:"limit,omitempty" jsonschema_description:"Maximum number of tables to return (1-100, default 100)"`
}

// TableListing is the rendered result of a table listing.
type TableListing struct {
	Tables []any `json:"tables"`
	Count  int   `json:"count"`
}

// ListTables returns tables in a schema, including column metadata.
func (a CatalogAPI) ListTables(ctx context.Context, args ListTablesArgs) (*TableListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]TableInfo, string, error) {
		q := url.Values{}
		q.Set("catalog_name", args.CatalogName)
		q.Set("schema_name", args.SchemaName)
		resp, err := apiGetCached[tableListResponse](ctx, a.c, "unity_catalog", "list_tables",
			pathWithQuery("/api/2.1/unity-catalog/tables", withToken(q, token)), listCacheTTL)
		if err != nil {
			return nil, "", err
		}
		return resp.Tables, resp.NextPageToken, nil
	})
	tables, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &TableListing{Tables: tables, Count: len(tables)}, nil
}

// GetTableArgs identifies a single table by its three-level name.
type GetTableArgs struct {
	FullName string `json:"full_name" jsonschema:"required" jsonschema_description:"Three-level table name: catalog.schema.table"`
}

// GetTable returns details for one table, including its columns.
func (a CatalogAPI) GetTable(ctx context.Context, args GetTableArgs) (*TableInfo, error) {
	return apiGet[TableInfo](ctx, a.c, "unity_catalog", "get_table",
		"/api/2.1/unity-catalog/tables/"+url.PathEscape(args.FullName))
}

// securableTypes are the object kinds the permissions API accepts.
var securableTypes = map[string]bool{
	"catalog":            true,
	"schema":             true,
	"table":              true,
	"volume":             true,
	"function":           true,
	"external_location":  true,
	"storage_credential": true,
	"metastore":          true,
}

// PrivilegeAssignment pairs a principal with its privileges on one
// securable.
type PrivilegeAssignment struct {
	Principal  string   `json:"principal"`
	Privileges []string `json:"privileges"`
}

// GrantsResult lists who holds what on a securable.
type GrantsResult struct {
	PrivilegeAssignments []PrivilegeAssignment `json:"privilege_assignments"`
}

// GetGrantsArgs identifies the securable to inspect.
type GetGrantsArgs struct {
	SecurableType string `json:"securable_type" jsonschema:"required" jsonschema_description:"Kind of object: catalog, schema, table, volume, function, external_location, storage_credential, or metastore"`
	FullName      string `json:"full_name" jsonschema:"required" jsonschema_description:"Full name of the securable, e.g. main or main.sales.orders"`
}

// GetGrants returns the privileges granted directly on a securable.
func (a CatalogAPI) GetGrants(ctx context.Context, args GetGrantsArgs) (*GrantsResult, error) {
	if !securableTypes[args.SecurableType] {
		return nil, errors.NewValidationError("securable_type", args.SecurableType,
			"must be one of catalog, schema, table, volume, function, external_location, storage_credential, metastore")
	}
	return apiGet[GrantsResult](ctx, a.c, "unity_catalog", "get_grants",
		"/api/2.1/unity-catalog/permissions/"+url.PathEscape(args.SecurableType)+"/"+url.PathEscape(args.FullName))
}

// GetEffectiveGrants returns direct plus inherited privileges on a
// securable.
func (a CatalogAPI) GetEffectiveGrants(ctx context.Context, args GetGrantsArgs) (*GrantsResult, error) {
	if !securableTypes[args.SecurableType] {
		return nil, errors.NewValidationError("securable_type", args.SecurableType,
			"must be one of catalog, schema, table, volume, function, external_location, storage_credential, metastore")
	}
	return apiGet[GrantsResult](ctx, a.c, "unity_catalog", "get_effective_grants",
		"/api/2.1/unity-catalog/effective-permissions/"+url.PathEscape(args.SecurableType)+"/"+url.PathEscape(args.FullName))
}

// UpdateGrantsArgs adds and removes privileges for one principal.
type UpdateGrantsArgs struct {
	SecurableType string   `json:"securable_type" jsonschema:"required" jsonschema_description:"Kind of object: catalog, schema, table, volume, function, external_location, storage_credential, or metastore"`
	FullName      string   `json:"full_name" jsonschema:"required" jsonschema_description:"Full name of the securable, e.g. main or main.sales.orders"`
	Principal     string   `json:"principal" jsonschema:"required" jsonschema_description:"User email, group name, or service principal application ID"`
	Add           []string `json:"add,omitempty" jsonschema_description:"Privileges to grant, e.g. SELECT, MODIFY, USE_CATALOG"`
	Remove        []string `json:"remove,omitempty" jsonschema_description:"Privileges to revoke"`
}

// UpdateGrants applies a privilege change for one principal and
// returns the resulting assignments.
func (a CatalogAPI) UpdateGrants(ctx context.Context, args UpdateGrantsArgs) (*GrantsResult, error) {
	if !securableTypes[args.SecurableType] {
		return nil, errors.NewValidationError("securable_type", args.SecurableType,
			"must be one of catalog, schema, table, volume, function, external_location, storage_credential, metastore")
	}
	if len(args.Add) == 0 && len(args.Remove) == 0 {
		return nil, errors.NewValidationError("add", "", "provide privileges to add and/or remove")
	}
	change := map[string]any{"principal": args.Principal}
	if len(args.Add) > 0 {
		change["add"] = args.Add
	}
	if len(args.Remove) > 0 {
		change["remove"] = args.Remove
	}
	return apiCall[GrantsResult](ctx, a.c, "unity_catalog", "update_grants", http.MethodPatch,
		"/api/2.1/unity-catalog/permissions/"+url.PathEscape(args.SecurableType)+"/"+url.PathEscape(args.FullName),
		map[string]any{"changes": []any{change}})
}

// MetastoreInfo describes a Unity Catalog metastore.
type MetastoreInfo struct {
	MetastoreID string `json:"metastore_id"`
	Name        string `json:"name,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Cloud       string `json:"cloud,omitempty"`
	Region      string `json:"region,omitempty"`
	StorageRoot string `json:"storage_root,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

type metastoreListResponse struct {
	Metastores []MetastoreInfo `json:"metastores"`
}

// ListMetastoresArgs bounds a metastore listing.
type ListMetastoresArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of metastores to return (1-100, default 100)"`
}

// MetastoreListing is the rendered result of a metastore listing.
type MetastoreListing struct {
	Metastores []any `json:"metastores"`
	Count      int   `json:"count"`
}

// ListMetastores returns metastores visible to the account.
func (a CatalogAPI) ListMetastores(ctx context.Context, args ListMetastoresArgs) (*MetastoreListing, error) {
	resp, err := apiGet[metastoreListResponse](ctx, a.c, "unity_catalog", "list_metastores",
		"/api/2.1/unity-catalog/metastores")
	if err != nil {
		return nil, err
	}
	metastores, err := render.Collect(sliceSeq(resp.Metastores), render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &MetastoreListing{Metastores: metastores, Count: len(metastores)}, nil
}

// MetastoreSummaryArgs takes no parameters.
type MetastoreSummaryArgs struct{}

// MetastoreSummary returns the metastore assigned to this workspace.
func (a CatalogAPI) MetastoreSummary(ctx context.Context, _ MetastoreSummaryArgs) (*MetastoreInfo, error) {
	return apiGet[MetastoreInfo](ctx, a.c, "unity_catalog", "metastore_summary",
		"/api/2.1/unity-catalog/metastore_summary")
}
