package tables

import (
	"errors"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// Partition keys per entity kind. Row keys carry the entity id.
const (
	taskPartition = "task"
	userPartition = "user"
)

// escapeFilterValue doubles single quotes so user-supplied strings are safe
// inside an OData filter literal.
func escapeFilterValue(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

// isNotFound reports whether the table service rejected the operation
// because the entity does not exist.
func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == 404
}

func isConflict(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == 409
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
