package parser

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pb33f/libopenapi"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"

	"github.com/moamenhredeen/oastester/internal/logger"
	"github.com/moamenhredeen/oastester/internal/models"
)

// Parser handles parsing OpenAPI specification documents
type Parser struct {
	model *v3.Document
}

// ParseFile parses an OpenAPI specification file and returns a Parser instance
func ParseFile(filePath string) (*Parser, error) {
	specBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI file: %w", err)
	}
	return Parse(specBytes)
}

// Parse parses a JSON or YAML OpenAPI document. Documents without a version key
// are treated as OpenAPI 3.0.
func Parse(specBytes []byte) (*Parser, error) {
	normalized, err := normalize(specBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	document, err := libopenapi.NewDocument(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	model, errs := document.BuildV3Model()
	if model == nil {
		return nil, fmt.Errorf("failed to build v3 model: %v", errs)
	}
	if errs != nil {
		// Circular references and similar issues still leave a usable model
		logger.L().Warn("parser.model_warnings", "errors", fmt.Sprintf("%v", errs))
	}

	return &Parser{model: &model.Model}, nil
}

// Info returns the document title and version
func (p *Parser) Info() (title, version string) {
	if p.model.Info == nil {
		return "", ""
	}
	return p.model.Info.Title, p.model.Info.Version
}

// ServerURLs returns the server URLs declared in the spec
func (p *Parser) ServerURLs() []string {
	urls := make([]string, 0, len(p.model.Servers))
	for _, server := range p.model.Servers {
		if server != nil && server.URL != "" {
			urls = append(urls, server.URL)
		}
	}
	return urls
}

// BaseURL returns the first declared server URL, or "" when none is declared
func (p *Parser) BaseURL() string {
	urls := p.ServerURLs()
	if len(urls) == 0 {
		return ""
	}
	return strings.TrimRight(urls[0], "/")
}

// Operations extracts all operations from the spec, paths and methods in declaration order.
// A spec without paths yields no operations.
func (p *Parser) Operations() []models.Operation {
	operations := []models.Operation{}
	paths := p.model.Paths

	if paths == nil || paths.PathItems == nil {
		return operations
	}

	// Iterate over ordered map
	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		path := pair.Key()
		item := pair.Value()
		if item == nil {
			continue
		}

		// methods come back in the order they are written under the path
		for op := item.GetOperations().First(); op != nil; op = op.Next() {
			if op.Value() == nil {
				continue
			}
			operations = append(operations, newOperation(path, strings.ToUpper(op.Key()), op.Value()))
		}
	}

	logger.L().Debug("parser.operations", "count", len(operations))
	return operations
}

// Operation returns the operation registered under method and path
func (p *Parser) Operation(method, path string) (models.Operation, error) {
	method = strings.ToUpper(method)
	for _, op := range p.Operations() {
		if op.Method == method && op.Path == path {
			return op, nil
		}
	}
	return models.Operation{}, fmt.Errorf("operation not found: %s %s", method, path)
}

func newOperation(path, method string, op *v3.Operation) models.Operation {
	tags := []string{}
	if len(op.Tags) > 0 {
		tags = append(tags, op.Tags...)
	} else {
		tags = append(tags, models.DefaultTag)
	}

	var parameters []*v3.Parameter
	if op.Parameters != nil {
		parameters = append(parameters, op.Parameters...)
	}

	return models.Operation{
		Path:        path,
		Method:      strings.ToUpper(method),
		OperationID: op.OperationId,
		Summary:     op.Summary,
		Description: op.Description,
		Parameters:  parameters,
		RequestBody: op.RequestBody,
		Responses:   op.Responses,
		Tags:        tags,
	}
}

// GroupByTag builds the tag -> operations multimap. Groups appear in the order their tag
// is first seen; an operation with several tags is appended to each of them.
func GroupByTag(operations []models.Operation) []models.EndpointGroup {
	groups := []models.EndpointGroup{}
	index := make(map[string]int)

	for _, op := range operations {
		for _, tag := range op.Tags {
			i, ok := index[tag]
			if !ok {
				i = len(groups)
				index[tag] = i
				groups = append(groups, models.EndpointGroup{Tag: tag})
			}
			groups[i].Operations = append(groups[i].Operations, op)
		}
	}

	return groups
}

// successCodes are preferred in this order when choosing an expected status
var successCodes = []string{"200", "201", "202", "204"}

// ExpectedStatus picks the status a generated test should expect: the first of
// 200/201/202/204 that is declared, else the first declared numeric code, else 200.
func ExpectedStatus(responses *v3.Responses) int {
	if responses == nil || responses.Codes == nil || responses.Codes.Len() == 0 {
		return 200
	}

	for _, code := range successCodes {
		if _, ok := responses.Codes.Get(code); ok {
			status, _ := strconv.Atoi(code)
			return status
		}
	}

	for pair := responses.Codes.First(); pair != nil; pair = pair.Next() {
		if status, err := strconv.Atoi(pair.Key()); err == nil {
			return status
		}
	}

	return 200
}
