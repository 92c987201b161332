package render

import (
	"reflect"
)

// Coder is implemented by errors carrying an upstream error code, such
// as the Databricks API's RESOURCE_DOES_NOT_EXIST or PERMISSION_DENIED.
type Coder interface {
	ErrorCode() string
}

// FormatError renders any failure as a single deterministic string:
//
//	<KindName>: <message>
//	<KindName>: [<code>] <message>   (when the error carries a code)
//
// The kind name is the error's concrete type name, mirroring how the
// upstream platform reports failure classes. FormatError never panics
// and always returns a string, so it is safe at the tool boundary.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	kind := errorKind(err)
	msg := err.Error()
	if c, ok := err.(Coder); ok {
		if code := c.ErrorCode(); code != "" {
			return kind + ": [" + code + "] " + msg
		}
	}
	return kind + ": " + msg
}

// errorKind returns the concrete type name of err, without package
// qualifier or pointer marker.
func errorKind(err error) string {
	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "Error"
	}
	return t.Name()
}
