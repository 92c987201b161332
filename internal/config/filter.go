package config

import "strings"

// ToolFilter decides which capability groups (jobs, sql, compute, ...)
// are registered. At most one of Include/Exclude is non-nil: when both
// sources are supplied, include wins and the exclude list is discarded
// entirely rather than merged.
type ToolFilter struct {
	Include map[string]struct{}
	Exclude map[string]struct{}
}

// ParseToolFilter builds a ToolFilter from the raw comma-separated
// include and exclude lists. Entries are trimmed and empty entries
// dropped, so trailing commas and stray whitespace never produce
// phantom group names. A blank source counts as absent, not as an
// empty set.
func ParseToolFilter(include, exclude string) ToolFilter {
	f := ToolFilter{
		Include: parseGroupList(include),
		Exclude: parseGroupList(exclude),
	}
	if f.Include != nil {
		f.Exclude = nil
	}
	return f
}

// Enabled reports whether a capability group should be registered:
// membership when an include list exists, non-membership when an
// exclude list exists, true when neither is set.
func (f ToolFilter) Enabled(group string) bool {
	if f.Include != nil {
		_, ok := f.Include[group]
		return ok
	}
	if f.Exclude != nil {
		_, ok := f.Exclude[group]
		return !ok
	}
	return true
}

// parseGroupList splits a comma-separated list into a set, returning
// nil for a blank or whitespace-only source.
func parseGroupList(raw string) map[string]struct{} {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	set := make(map[string]struct{})
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			set[entry] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}
