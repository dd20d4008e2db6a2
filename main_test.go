package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/gofiber/contrib/swagger"
	"github.com/stretchr/testify/require"
)

// Конструктор middleware паникует при отсутствии файла документации,
// файл должен лежать в репозитории и быть валидным json
func TestSwaggerFileServed(t *testing.T) {
	require.NotPanics(t, func() {
		swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: "./docs/swagger.json",
		})
	})

	raw, err := os.ReadFile("./docs/swagger.json")
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, "2.0", doc["swagger"])
	require.NotEmpty(t, doc["paths"])
}
