// Package docs provides API documentation
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
        "/paises": {
            "get": {
                "description": "Returns every stored country",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "paises"
                ],
                "summary": "List countries",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/Country"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "Validates and stores each country independently; failures do not block siblings",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "paises"
                ],
                "summary": "Create countries",
                "parameters": [
                    {
                        "description": "Countries to create",
                        "name": "paises",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/Country"
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/BatchResponse"
                        }
                    },
                    "400": {
                        "description": "Every element failed",
                        "schema": {
                            "$ref": "#/definitions/BatchResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/paises/nombre/{nombre}": {
            "get": {
                "description": "Returns the first country whose nombre matches exactly, or an empty body",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "paises"
                ],
                "summary": "Find country by nombre",
                "parameters": [
                    {
                        "type": "string",
                        "description": "nombre",
                        "name": "nombre",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Country"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/paises/continente/{continente}": {
            "get": {
                "description": "Returns the first country whose continente matches exactly, or an empty body",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "paises"
                ],
                "summary": "Find country by continente",
                "parameters": [
                    {
                        "type": "string",
                        "description": "continente",
                        "name": "continente",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Country"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/paises/idioma/{idioma}": {
            "get": {
                "description": "Returns the first country whose idioma matches exactly, or an empty body",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "paises"
                ],
                "summary": "Find country by idioma",
                "parameters": [
                    {
                        "type": "string",
                        "description": "idioma",
                        "name": "idioma",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Country"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/paises/codigo/{codigo}": {
            "get": {
                "description": "Returns the first country whose codigo matches exactly, or an empty body",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "paises"
                ],
                "summary": "Find country by codigo",
                "parameters": [
                    {
                        "type": "string",
                        "description": "codigo",
                        "name": "codigo",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Country"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/paises/actualizar/{id}": {
            "put": {
                "description": "Replaces nombre, codigo and capital; continente and idioma are kept",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "paises"
                ],
                "summary": "Update country",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Country id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "New values",
                        "name": "pais",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Country"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/Country"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ValidationErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/paises/eliminar/{id}": {
            "get": {
                "description": "Deletes the country with the given id",
                "tags": [
                    "paises"
                ],
                "summary": "Delete country",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "id",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ValidationErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/paises/eliminar/nombre/{nombre}": {
            "get": {
                "description": "Deletes the country with the given name",
                "tags": [
                    "paises"
                ],
                "summary": "Delete country by name",
                "parameters": [
                    {
                        "type": "string",
                        "description": "nombre",
                        "name": "nombre",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ValidationErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/paises/eliminar/continente/{continente}": {
            "get": {
                "description": "Deletes every country of a continent in one transaction",
                "tags": [
                    "paises"
                ],
                "summary": "Delete countries by continent",
                "parameters": [
                    {
                        "type": "string",
                        "description": "continente",
                        "name": "continente",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/ValidationErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/paises/estado": {
            "get": {
                "description": "Total and per-continent counts",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "status"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/StatusResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        },
        "/paises/resumen/imagen": {
            "get": {
                "description": "PNG summary regenerated after every write",
                "produces": [
                    "image/png"
                ],
                "tags": [
                    "status"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "Country": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer",
                    "example": 1
                },
                "nombre": {
                    "type": "string",
                    "example": "Peru"
                },
                "capital": {
                    "type": "string",
                    "example": "Lima"
                },
                "continente": {
                    "type": "string",
                    "example": "America"
                },
                "idioma": {
                    "type": "string",
                    "example": "Español"
                },
                "codigo": {
                    "type": "string",
                    "example": "PE"
                }
            }
        },
        "ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "timestamp": {
                    "type": "string",
                    "example": "2025-10-26T14:30:00Z"
                },
                "error": {
                    "type": "string",
                    "example": "Error de validación"
                },
                "message": {
                    "type": "string",
                    "example": "Ya existe un país con el nombre: Peru"
                },
                "status": {
                    "type": "integer",
                    "example": 400
                }
            }
        },
        "BatchError": {
            "type": "object",
            "properties": {
                "indice": {
                    "type": "integer",
                    "example": 1
                },
                "timestamp": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer",
                    "example": 400
                }
            }
        },
        "BatchResponse": {
            "type": "object",
            "properties": {
                "paises": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Country"
                    }
                },
                "errores": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/BatchError"
                    }
                }
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "details": {
                    "type": "object"
                }
            }
        },
        "StatusResponse": {
            "type": "object",
            "properties": {
                "total_paises": {
                    "type": "integer",
                    "example": 195
                },
                "por_continente": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "", // This will be set from environment
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Paises API",
	Description:      "CRUD service for country records: nombre, capital, continente, idioma and codigo.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
