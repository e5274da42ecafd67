package output

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moamenhredeen/oastester/internal/models"
)

func TestCurlCommandGET(t *testing.T) {
	tc := models.TestCase{Method: "get", Endpoint: "/pets"}
	assert.Equal(t,
		"curl -X GET -H 'Content-Type: application/json' http://localhost:8080/pets",
		CurlCommand(tc, "http://localhost:8080", nil))
}

func TestCurlCommandWithBodyAndToken(t *testing.T) {
	tc := models.TestCase{
		Method:   "POST",
		Endpoint: "/pets",
		Body:     map[string]any{"name": "O'Malley"},
	}
	token := &models.AuthToken{Kind: models.TokenBearer, Secret: "abc"}

	assert.Equal(t,
		`curl -X POST -H 'Authorization: Bearer abc' -H 'Content-Type: application/json' -d '{"name":"O'"'"'Malley"}' http://localhost/pets`,
		CurlCommand(tc, "http://localhost", token))
}
