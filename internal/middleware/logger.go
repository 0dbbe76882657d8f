package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// maxLoggedBody caps how much of an unparsable body ends up in the log.
	maxLoggedBody = 1000
	// maxCapturedBody caps how much of a request or response is held for logging.
	maxCapturedBody = 64 << 10
)

// sensitiveFields contains patterns for fields that should be redacted
var sensitiveFields = []string{
	"password",
	"token",
	"secret",
	"authorization",
	"cookie",
}

// responseWriter captures the response body alongside writing it
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write keeps a copy of JSON responses only, at most maxCapturedBody bytes.
func (w *responseWriter) Write(b []byte) (int, error) {
	if isJSON(w.Header().Get("Content-Type")) {
		if room := maxCapturedBody - w.body.Len(); room > 0 {
			w.body.Write(b[:min(len(b), room)])
		}
	}
	return w.ResponseWriter.Write(b)
}

// readCloser replays the captured prefix of a request body ahead of the rest.
type readCloser struct {
	io.Reader
	io.Closer
}

// LoggerConfig holds configuration for the logger middleware
type LoggerConfig struct {
	Format string // "json" or "pretty"
	// Output defaults to the standard logger's writer.
	Output io.Writer
}

// LogEntry represents a structured log entry
type LogEntry struct {
	Timestamp    string              `json:"timestamp"`
	Method       string              `json:"method"`
	Path         string              `json:"path"`
	StatusCode   int                 `json:"status_code"`
	Latency      string              `json:"latency"`
	ClientIP     string              `json:"client_ip"`
	QueryParams  map[string][]string `json:"query_params,omitempty"`
	RequestBody  any                 `json:"request_body,omitempty"`
	ResponseBody any                 `json:"response_body,omitempty"`
	Error        string              `json:"error,omitempty"`
}

// RequestResponseLogger logs every request with its JSON request and response
// bodies. Multipart uploads and spreadsheet downloads are logged without bodies.
func RequestResponseLogger(config LoggerConfig) gin.HandlerFunc {
	out := config.Output
	if out == nil {
		out = log.Writer()
	}

	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		if c.Request.Body != nil && isJSON(c.ContentType()) {
			requestBody, _ = io.ReadAll(io.LimitReader(c.Request.Body, maxCapturedBody))
			c.Request.Body = readCloser{
				Reader: io.MultiReader(bytes.NewReader(requestBody), c.Request.Body),
				Closer: c.Request.Body,
			}
		}

		bodyWriter := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = bodyWriter

		c.Next()

		entry := LogEntry{
			Timestamp:   startTime.Format(time.RFC3339),
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			StatusCode:  c.Writer.Status(),
			Latency:     time.Since(startTime).String(),
			ClientIP:    c.ClientIP(),
			QueryParams: c.Request.URL.Query(),
		}
		if len(requestBody) > 0 {
			entry.RequestBody = parseAndRedactBody(requestBody)
		}
		if isJSON(c.Writer.Header().Get("Content-Type")) && bodyWriter.body.Len() > 0 {
			entry.ResponseBody = parseAndRedactBody(bodyWriter.body.Bytes())
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.String()
		}

		if config.Format == "pretty" {
			printPrettyLog(out, entry)
		} else {
			printJSONLog(out, entry)
		}
	}
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

// parseAndRedactBody parses JSON body and redacts sensitive fields
func parseAndRedactBody(body []byte) any {
	var jsonBody any
	if err := json.Unmarshal(body, &jsonBody); err != nil {
		bodyStr := string(body)
		if len(bodyStr) > maxLoggedBody {
			bodyStr = bodyStr[:maxLoggedBody] + "... (truncated)"
		}
		return bodyStr
	}

	redactSensitiveFields(jsonBody)
	return jsonBody
}

// redactSensitiveFields recursively redacts sensitive fields in JSON data
func redactSensitiveFields(data any) {
	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			if isSensitiveField(key) {
				v[key] = "[REDACTED]"
			} else {
				redactSensitiveFields(value)
			}
		}
	case []any:
		for _, item := range v {
			redactSensitiveFields(item)
		}
	}
}

func isSensitiveField(fieldName string) bool {
	lowerField := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(lowerField, sensitive) {
			return true
		}
	}
	return false
}

func printJSONLog(out io.Writer, entry LogEntry) {
	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(out, "{\"error\": \"failed to marshal log entry: %v\"}\n", err)
		return
	}
	fmt.Fprintln(out, string(jsonBytes))
}

func printPrettyLog(out io.Writer, entry LogEntry) {
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintf(out, "%s %s %s\n", entry.Timestamp, entry.Method, entry.Path)
	fmt.Fprintf(out, "Status: %d | Latency: %s | Client IP: %s\n", entry.StatusCode, entry.Latency, entry.ClientIP)

	if len(entry.QueryParams) > 0 {
		fmt.Fprintln(out, "Query Parameters:")
		for key, values := range entry.QueryParams {
			fmt.Fprintf(out, "  %s: %v\n", key, values)
		}
	}
	if entry.RequestBody != nil {
		fmt.Fprintln(out, "Request Body:")
		prettyPrintJSON(out, entry.RequestBody)
	}
	if entry.ResponseBody != nil {
		fmt.Fprintln(out, "Response Body:")
		prettyPrintJSON(out, entry.ResponseBody)
	}
	if entry.Error != "" {
		fmt.Fprintf(out, "Error: %s\n", entry.Error)
	}
	fmt.Fprintln(out, strings.Repeat("=", 80))
}

func prettyPrintJSON(out io.Writer, data any) {
	jsonBytes, err := json.MarshalIndent(data, "  ", "  ")
	if err != nil {
		fmt.Fprintf(out, "  %v\n", data)
		return
	}
	fmt.Fprintf(out, "  %s\n", jsonBytes)
}
