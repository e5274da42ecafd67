package models

import (
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// DefaultTag is assigned to operations that declare no tags
const DefaultTag = "default"

// Operation represents a single method+path entry of an OpenAPI document
type Operation struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
	Description string
	Parameters  []*v3.Parameter
	RequestBody *v3.RequestBody
	Responses   *v3.Responses
	Tags        []string
}

// Key returns the endpoint key used in selection sets ("METHOD:path")
func (o Operation) Key() string {
	return EndpointKey(o.Method, o.Path)
}

// EndpointKey builds the unique identifier of an operation within a catalog
func EndpointKey(method, path string) string {
	return method + ":" + path
}

// EndpointGroup is a derived view of all operations sharing a tag.
// An operation with several tags appears in several groups.
type EndpointGroup struct {
	Tag        string
	Operations []Operation
}
