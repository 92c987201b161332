package databricks

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lakeware/databricks-mcp-server/internal/render"
)

// ClustersAPI covers all-purpose compute clusters, instance pools, and
// cluster policies.
type ClustersAPI struct {
	c *Client
}

// Cluster is a compute cluster as returned by clusters/get.
type Cluster struct {
	ClusterID        string            `json:"cluster_id"`
	ClusterName      string            `json:"cluster_name,omitempty"`
	State            string            `json:"state,omitempty"`
	StateMessage     string            `json:"state_message,omitempty"`
	SparkVersion     string            `json:"spark_version,omitempty"`
	NodeTypeID       string            `json:"node_type_id,omitempty"`
	DriverNodeTypeID string            `json:"driver_node_type_id,omitempty"`
	NumWorkers       int               `json:"num_workers,omitempty"`
	Autoscale        *Autoscale        `json:"autoscale,omitempty"`
	SparkConf        map[string]string `json:"spark_conf,omitempty"`
	CreatorUserName  string            `json:"creator_user_name,omitempty"`
	StartTime        int64             `json:"start_time,omitempty"`
	TerminatedTime   int64             `json:"terminated_time,omitempty"`
}

// Autoscale bounds a cluster's worker count.
type Autoscale struct {
	MinWorkers int `json:"min_workers"`
	MaxWorkers int `json:"max_workers"`
}

type clusterListResponse struct {
	Clusters      []Cluster `json:"clusters"`
	NextPageToken string    `json:"next_page_token"`
}

// ListClustersArgs bounds a cluster listing.
type ListClustersArgs struct {
	Limit int `json:"limit,omitempty" jsonschema_description:"Maximum number of clusters to return (1-100, default 100)"`
}

// ClusterListing is the rendered result of a cluster listing.
type ClusterListing struct {
	Clusters []any `json:"clusters"`
	Count    int   `json:"count"`
}

// List returns both running and terminated clusters, including
// all-purpose and job clusters.
func (a ClustersAPI) List(ctx context.Context, args ListClustersArgs) (*ClusterListing, error) {
	seq := pages(ctx, func(ctx context.Context, token string) ([]Cluster, string, error) {
		resp, err := apiGetCached[clusterListResponse](ctx, a.c, "clusters", "list",
			pathWithQuery("/api/2.1/clusters/list", withToken(url.Values{}, token)), listCacheTTL)
		if err != nil {
			return nil, "", err
		}
		return resp.Clusters, resp.NextPageToken, nil
	})
	clusters, err := render.Collect(seq, render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &ClusterListing{Clusters: clusters, Count: len(clusters)}, nil
}

// GetClusterArgs identifies a single cluster.
type GetClusterArgs struct {
	ClusterID string `json:"cluster_id" jsonschema:"required" jsonschema_description:"The unique identifier of the cluster"`
}

// Get returns full details for one cluster, including lifecycle state.
func (a ClustersAPI) Get(ctx context.Context, args GetClusterArgs) (*Cluster, error) {
	return apiGet[Cluster](ctx, a.c, "clusters", "get",
		"/api/2.1/clusters/get?cluster_id="+url.QueryEscape(args.ClusterID))
}

// CreateClusterArgs describes a new all-purpose cluster. When both
// AutoscaleMin and AutoscaleMax are positive, autoscaling is enabled
// and NumWorkers is ignored.
type CreateClusterArgs struct {
	ClusterName  string `json:"cluster_name" jsonschema:"required" jsonschema_description:"Display name for the cluster"`
	SparkVersion string `json:"spark_version" jsonschema:"required" jsonschema_description:"Spark runtime version key (e.g. 15.0.x-scala2.12)"`
	NodeTypeID   string `json:"node_type_id" jsonschema:"required" jsonschema_description:"Instance type for worker nodes (e.g. i3.xlarge, Standard_DS3_v2)"`
	NumWorkers   int    `json:"num_workers,omitempty" jsonschema_description:"Worker count for a fixed-size cluster. 0 means single-node. Ignored when autoscaling is set"`
	AutoscaleMin int    `json:"autoscale_min,omitempty" jsonschema_description:"Minimum workers when autoscaling. Set both autoscale_min and autoscale_max > 0 to enable"`
	AutoscaleMax int    `json:"autoscale_max,omitempty" jsonschema_description:"Maximum workers when autoscaling. Set both autoscale_min and autoscale_max > 0 to enable"`
}

// Create creates an all-purpose cluster and returns its id.
func (a ClustersAPI) Create(ctx context.Context, args CreateClusterArgs) (*Cluster, error) {
	payload := map[string]any{
		"cluster_name":  args.ClusterName,
		"spark_version": args.SparkVersion,
		"node_type_id":  args.NodeTypeID,
	}
	if args.AutoscaleMin > 0 && args.AutoscaleMax > 0 {
		payload["autoscale"] = Autoscale{MinWorkers: args.AutoscaleMin, MaxWorkers: args.AutoscaleMax}
	} else {
		payload["num_workers"] = args.NumWorkers
	}

	created, err := apiPost[Cluster](ctx, a.c, "clusters", "create", "/api/2.1/clusters/create", payload)
	if err != nil {
		return nil, err
	}
	a.c.invalidate("clusters")
	return created, nil
}

// Start initiates startup of a terminated cluster and returns without
// waiting.
func (a ClustersAPI) Start(ctx context.Context, args GetClusterArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "clusters", "start", "/api/2.1/clusters/start",
		map[string]any{"cluster_id": args.ClusterID})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("clusters")
	return &ActionStatus{
		Status:  "starting",
		Message: fmt.Sprintf("Cluster %q start initiated. It may take several minutes to become running.", args.ClusterID),
	}, nil
}

// Restart restarts the Spark driver and all workers of a running
// cluster.
func (a ClustersAPI) Restart(ctx context.Context, args GetClusterArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "clusters", "restart", "/api/2.1/clusters/restart",
		map[string]any{"cluster_id": args.ClusterID})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("clusters")
	return &ActionStatus{
		Status:  "restarting",
		Message: fmt.Sprintf("Cluster %q restart initiated. It may take a few minutes to become running again.", args.ClusterID),
	}, nil
}

// Terminate stops a running cluster, releasing its cloud resources. The
// configuration is preserved and the cluster can be restarted later.
func (a ClustersAPI) Terminate(ctx context.Context, args GetClusterArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "clusters", "terminate", "/api/2.1/clusters/delete",
		map[string]any{"cluster_id": args.ClusterID})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("clusters")
	return &ActionStatus{
		Status:  "terminating",
		Message: fmt.Sprintf("Cluster %q termination initiated.", args.ClusterID),
	}, nil
}

// ResizeClusterArgs describes a cluster resize.
type ResizeClusterArgs struct {
	ClusterID  string `json:"cluster_id" jsonschema:"required" jsonschema_description:"The unique identifier of the cluster to resize"`
	NumWorkers int    `json:"num_workers" jsonschema:"required" jsonschema_description:"The new number of worker nodes. 0 means single-node (driver only)"`
}

// Resize changes the worker count of a running cluster without
// interrupting existing tasks.
func (a ClustersAPI) Resize(ctx context.Context, args ResizeClusterArgs) (*ActionStatus, error) {
	_, err := apiPost[struct{}](ctx, a.c, "clusters", "resize", "/api/2.1/clusters/resize",
		map[string]any{"cluster_id": args.ClusterID, "num_workers": args.NumWorkers})
	if err != nil {
		return nil, err
	}
	a.c.invalidate("clusters")
	return &ActionStatus{
		Status:  "resizing",
		Message: fmt.Sprintf("Cluster %q resize to %d workers initiated.", args.ClusterID, args.NumWorkers),
	}, nil
}

// InstancePool is a set of idle, ready-to-use cloud instances.
type InstancePool struct {
	InstancePoolID   string `json:"instance_pool_id"`
	InstancePoolName string `json:"instance_pool_name,omitempty"`
	NodeTypeID       string `json:"node_type_id,omitempty"`
	MinIdleInstances int    `json:"min_idle_instances,omitempty"`
	MaxCapacity      int    `json:"max_capacity,omitempty"`
	State            string `json:"state,omitempty"`
}

type instancePoolListResponse struct {
	InstancePools []InstancePool `json:"instance_pools"`
}

// InstancePoolListing is the rendered result of a pool listing.
type InstancePoolListing struct {
	InstancePools []any `json:"instance_pools"`
	Count         int   `json:"count"`
}

// ListInstancePools returns every instance pool in the workspace.
func (a ClustersAPI) ListInstancePools(ctx context.Context, args ListClustersArgs) (*InstancePoolListing, error) {
	resp, err := apiGetCached[instancePoolListResponse](ctx, a.c, "clusters", "list_instance_pools",
		"/api/2.0/instance-pools/list", listCacheTTL)
	if err != nil {
		return nil, err
	}
	pools, err := render.Collect(sliceSeq(resp.InstancePools), render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &InstancePoolListing{InstancePools: pools, Count: len(pools)}, nil
}

// ClusterPolicy constrains the attributes available during cluster
// creation.
type ClusterPolicy struct {
	PolicyID    string `json:"policy_id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Definition  string `json:"definition,omitempty"`
	CreatorName string `json:"creator_user_name,omitempty"`
}

type clusterPolicyListResponse struct {
	Policies []ClusterPolicy `json:"policies"`
}

// ClusterPolicyListing is the rendered result of a policy listing.
type ClusterPolicyListing struct {
	Policies []any `json:"policies"`
	Count    int   `json:"count"`
}

// ListPolicies returns every cluster policy in the workspace.
func (a ClustersAPI) ListPolicies(ctx context.Context, args ListClustersArgs) (*ClusterPolicyListing, error) {
	resp, err := apiGetCached[clusterPolicyListResponse](ctx, a.c, "clusters", "list_policies",
		"/api/2.0/policies/clusters/list", listCacheTTL)
	if err != nil {
		return nil, err
	}
	policies, err := render.Collect(sliceSeq(resp.Policies), render.Clamp(args.Limit))
	if err != nil {
		return nil, err
	}
	return &ClusterPolicyListing{Policies: policies, Count: len(policies)}, nil
}
