// Package docs registra la especificación OpenAPI del servicio para /swagger.
// Mantener en sync con las anotaciones godoc de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/_dash/initial": {
            "post": {
                "description": "Ejecuta todos los callbacks en orden topológico con el estado recibido.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Evaluación inicial",
                "parameters": [
                    {
                        "description": "Estado actual (changed se ignora)",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dashboard.updateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.updateResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "500": {"description": "callback failed", "schema": {"type": "string"}}
                }
            }
        },
        "/_dash/layout": {
            "get": {
                "description": "Árbol declarativo de componentes (header, filtros, tabla, gráficos, mapa). Incluye los datos iniciales de la tabla.",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Layout del dashboard",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}}
                }
            }
        },
        "/_dash/update": {
            "post": {
                "description": "Re-evalúa los callbacks que dependen de los slots en ` + "`" + `changed` + "`" + ` y devuelve los slots actualizados. Un error del store corta el request (500).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dispatch de callbacks",
                "parameters": [
                    {
                        "description": "Slots cambiados y estado actual",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dashboard.updateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.updateResponse"}},
                    "400": {"description": "invalid json / changed required", "schema": {"type": "string"}},
                    "500": {"description": "callback failed", "schema": {"type": "string"}}
                }
            }
        },
        "/api/records": {
            "get": {
                "description": "Devuelve los registros que cumplen el filtro de tipo y grupo de edad. Sin parámetros devuelve toda la colección. El identificador interno no se expone.",
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Listar registros",
                "parameters": [
                    {"type": "string", "description": "Tipo de animal (Dog, Cat, ...)", "name": "animal_type", "in": "query"},
                    {"enum": ["young", "adult", "senior"], "type": "string", "description": "Grupo de edad", "name": "age", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "object"}}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Inserta un documento en la colección. Requiere ` + "`" + `Authorization: Bearer <operator key>` + "`" + ` si está configurada.",
                "consumes": ["application/json"],
                "tags": ["records"],
                "summary": "Crear registro",
                "parameters": [
                    {"type": "string", "description": "Bearer operator key", "name": "Authorization", "in": "header"},
                    {"description": "Documento", "name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "created", "schema": {"type": "string"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "description": "Borra los documentos que cumplen ` + "`" + `filter` + "`" + `. Un filtro vacío se rechaza para evitar vaciar la colección por error.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Borrar registros",
                "parameters": [
                    {"type": "string", "description": "Bearer operator key", "name": "Authorization", "in": "header"},
                    {"description": "Filtro", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.deleteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.countResponse"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "description": "Aplica ` + "`" + `set` + "`" + ` (semántica $set) a todos los documentos que cumplen ` + "`" + `filter` + "`" + `. Operadores: $eq, $gte, $lt.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["records"],
                "summary": "Actualizar registros",
                "parameters": [
                    {"type": "string", "description": "Bearer operator key", "name": "Authorization", "in": "header"},
                    {"description": "Filtro y campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.updateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.countResponse"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "animals.countResponse": {
            "type": "object",
            "properties": {"count": {"type": "integer"}}
        },
        "animals.deleteRequest": {
            "type": "object",
            "properties": {"filter": {"type": "object", "additionalProperties": true}}
        },
        "animals.updateRequest": {
            "type": "object",
            "properties": {
                "filter": {"type": "object", "additionalProperties": true},
                "set": {"type": "object", "additionalProperties": true}
            }
        },
        "dashboard.updateRequest": {
            "type": "object",
            "properties": {
                "changed": {"type": "array", "items": {"type": "string"}},
                "state": {"type": "object", "additionalProperties": true}
            }
        },
        "dashboard.updateResponse": {
            "type": "object",
            "properties": {"outputs": {"type": "object", "additionalProperties": true}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Animal Shelter Dashboard API",
	Description:      "Dashboard de egresos del refugio y API de registros.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
