package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// ctxTraceKey is the context key for the request trace id (used by mylog).
type ctxTraceKey struct{}

func ContextFromHTTPRequest(r *http.Request) context.Context {
	var trace string

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	traceContext := r.Header.Get("X-Cloud-Trace-Context")
	traceParts := strings.Split(traceContext, "/")

	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		trace = fmt.Sprintf("projects/%s/traces/%s", projectID, traceParts[0])
	}

	return context.WithValue(r.Context(), ctxTraceKey{}, trace)
}

func TraceFromContext(c context.Context) string {
	trace, ok := c.Value(ctxTraceKey{}).(string)
	if !ok {
		return ""
	}
	return trace
}
