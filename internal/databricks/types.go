package databricks

// ActionStatus is the uniform result for fire-and-forget operations:
// starts, stops, cancellations, and deletions that the workspace
// performs asynchronously.
type ActionStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
