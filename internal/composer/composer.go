package composer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/moamenhredeen/oastester/internal/generator"
	"github.com/moamenhredeen/oastester/internal/logger"
	"github.com/moamenhredeen/oastester/internal/models"
	"github.com/moamenhredeen/oastester/internal/parser"
)

// bodyMethods are the only methods that get a generated request body
var bodyMethods = []string{"POST", "PUT", "PATCH"}

// Composer turns catalog operations into executable test cases
type Composer struct {
	synth      *generator.Synthesizer
	fillParams bool
}

type Option func(*Composer)

// WithSynthesizer replaces the default sample synthesizer
func WithSynthesizer(s *generator.Synthesizer) Option {
	return func(c *Composer) { c.synth = s }
}

// WithPathParams substitutes {param} placeholders in endpoints with generated values.
// Off by default: endpoints keep the raw path template.
func WithPathParams(enabled bool) Option {
	return func(c *Composer) { c.fillParams = enabled }
}

// NewComposer creates a new composer
func NewComposer(opts ...Option) *Composer {
	c := &Composer{synth: generator.NewSynthesizer()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromSelectedEndpoints builds one test case per selected operation, walking groups in order.
// An operation listed under several tags is emitted once.
func (c *Composer) FromSelectedEndpoints(groups []models.EndpointGroup, selected map[string]bool) []models.TestCase {
	cases := []models.TestCase{}
	seen := make(map[string]bool)

	for _, group := range groups {
		for _, op := range group.Operations {
			key := op.Key()
			if !selected[key] || seen[key] {
				continue
			}
			seen[key] = true
			cases = append(cases, c.FromOperation(op))
		}
	}

	logger.L().Debug("composer.generated", "selected", len(selected), "cases", len(cases))
	return cases
}

// FromOperation derives a single test case from an operation
func (c *Composer) FromOperation(op models.Operation) models.TestCase {
	name := op.Summary
	if name == "" {
		name = fmt.Sprintf("%s %s", op.Method, op.Path)
	}
	description := op.Description
	if description == "" {
		description = fmt.Sprintf("Test %s %s", op.Method, op.Path)
	}

	tc := models.TestCase{
		Name:           name,
		Description:    description,
		Method:         op.Method,
		Endpoint:       op.Path,
		ExpectedStatus: parser.ExpectedStatus(op.Responses),
	}

	// Add request body for POST/PUT/PATCH methods
	if slices.Contains(bodyMethods, op.Method) && op.RequestBody != nil {
		tc.Body = c.synth.RequestBody(op.RequestBody)
	}

	if c.fillParams {
		tc.Endpoint = c.fillPath(op)
	}

	return tc
}

// fillPath replaces {name} segments with values generated from path parameters
func (c *Composer) fillPath(op models.Operation) string {
	path := op.Path
	for _, param := range op.Parameters {
		if param == nil || param.In != "path" {
			continue
		}
		val, err := c.synth.ParameterValue(param)
		if err != nil {
			logger.L().Debug("composer.path_param", "name", param.Name, "error", err)
			continue
		}
		path = strings.ReplaceAll(path, "{"+param.Name+"}", val)
	}
	return path
}

// SelectAll returns the selection set containing every endpoint of groups
func SelectAll(groups []models.EndpointGroup) map[string]bool {
	selected := make(map[string]bool)
	for _, group := range groups {
		for _, op := range group.Operations {
			selected[op.Key()] = true
		}
	}
	return selected
}

// ParseSelection builds a selection set from endpoint keys such as "get:/pets".
// The method part is upper-cased so keys match Operation.Key.
func ParseSelection(keys []string) (map[string]bool, error) {
	selected := make(map[string]bool, len(keys))
	for _, raw := range keys {
		method, path, ok := strings.Cut(strings.TrimSpace(raw), ":")
		if !ok || method == "" || path == "" {
			return nil, fmt.Errorf("invalid endpoint key '%s': expected METHOD:/path", raw)
		}
		selected[models.EndpointKey(strings.ToUpper(method), path)] = true
	}
	return selected, nil
}

// BuiltInSamples returns the fixed baseline used when no spec is loaded
func BuiltInSamples() []models.TestCase {
	return []models.TestCase{
		{
			Name:           "Get User Profile",
			Description:    "Fetch user profile information",
			Method:         "GET",
			Endpoint:       "/api/user/profile",
			ExpectedStatus: 200,
		},
		{
			Name:        "Create New User",
			Description: "Create a new user account",
			Method:      "POST",
			Endpoint:    "/api/users",
			Body: map[string]any{
				"name":  "John Doe",
				"email": "john@example.com",
			},
			ExpectedStatus: 201,
		},
		{
			Name:        "Update User",
			Description: "Update existing user information",
			Method:      "PUT",
			Endpoint:    "/api/users/123",
			Body: map[string]any{
				"name": "John Smith",
			},
			ExpectedStatus: 200,
		},
	}
}
