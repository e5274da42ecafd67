package models

// TestCase is a fully specified request plus its expected outcome
type TestCase struct {
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Method           string            `json:"method"`
	Endpoint         string            `json:"endpoint"`
	Headers          map[string]string `json:"headers,omitempty"`
	Body             any               `json:"body,omitempty"`
	ExpectedStatus   int               `json:"expectedStatus"`
	ExpectedResponse any               `json:"expectedResponse,omitempty"`
}

// HasBody reports whether the test case carries a request body.
// A JSON null body is treated as absent.
func (tc TestCase) HasBody() bool {
	return tc.Body != nil
}
