// Package report turns a loaded stats.Aggregate into the figures shown by
// the report command and renders them as narrative text or go-pretty tables.
package report
