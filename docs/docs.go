// Package docs registra en swag la especificación OpenAPI de la API (docs/swagger.json).
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

// SwaggerInfo metadatos de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PLM API",
	Description:      "API de gestión del ciclo de vida de productos (PLM).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  swaggerJSON,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// JSON devuelve la especificación registrada.
func JSON() string {
	return SwaggerInfo.ReadDoc()
}
