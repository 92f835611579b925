// Package identity holds the Swagger document served at /swagger/. It is
// produced from the handler annotations with:
//
//	swag init -g router.go -d internal/identity/http,pkg/identitysdk -o api/identity
package identity

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {
			"name": "AussieBroadWAN Team",
			"url": "https://github.com/aussiebroadwan/identity"
		},
		"license": {
			"name": "MIT",
			"url": "https://opensource.org/licenses/MIT"
		},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/auth/login": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Log in",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/identitysdk.LoginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Envelope result: token",
						"schema": {
							"$ref": "#/definitions/identitysdk.TokenResponse"
						}
					},
					"400": {
						"description": "Malformed body",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"401": {
						"description": "Invalid credentials",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"429": {
						"description": "Too many attempts",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/auth/introspect": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Introspect a token",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/identitysdk.TokenRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Envelope result: valid",
						"schema": {
							"$ref": "#/definitions/identitysdk.IntrospectResponse"
						}
					},
					"400": {
						"description": "Malformed body",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"500": {
						"description": "Store failure",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/auth/logout": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Log out",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/identitysdk.TokenRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Envelope with code 1000",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"400": {
						"description": "Malformed body",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"500": {
						"description": "Store failure",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/auth/refresh": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Refresh a token",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/identitysdk.TokenRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Envelope result: token",
						"schema": {
							"$ref": "#/definitions/identitysdk.TokenResponse"
						}
					},
					"400": {
						"description": "Malformed body",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"401": {
						"description": "Token cannot be refreshed",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"429": {
						"description": "Too many attempts",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/users": {
			"post": {
				"tags": [
					"Users"
				],
				"summary": "Register a user",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/identitysdk.CreateUserRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Envelope result: user",
						"schema": {
							"$ref": "#/definitions/identitysdk.UserResponse"
						}
					},
					"400": {
						"description": "Validation failed or user exists",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			},
			"get": {
				"tags": [
					"Users"
				],
				"summary": "List users",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "Envelope result: users",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/identitysdk.UserResponse"
							}
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"403": {
						"description": "Not an admin",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/users/myInfo": {
			"get": {
				"tags": [
					"Users"
				],
				"summary": "Current user",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "Envelope result: user",
						"schema": {
							"$ref": "#/definitions/identitysdk.UserResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"404": {
						"description": "User was deleted",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/users/{userId}": {
			"get": {
				"tags": [
					"Users"
				],
				"summary": "Get a user",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "Envelope result: user",
						"schema": {
							"$ref": "#/definitions/identitysdk.UserResponse"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"403": {
						"description": "Not this user or an admin",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"404": {
						"description": "User not found",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			},
			"put": {
				"tags": [
					"Users"
				],
				"summary": "Update a user",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "userId",
						"in": "path",
						"required": true
					},
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/identitysdk.UpdateUserRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "Envelope result: user",
						"schema": {
							"$ref": "#/definitions/identitysdk.UserResponse"
						}
					},
					"400": {
						"description": "Validation failed",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"403": {
						"description": "Not permitted",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"404": {
						"description": "User or role not found",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"Users"
				],
				"summary": "Delete a user",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "Envelope with code 1000",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"403": {
						"description": "Not an admin",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"404": {
						"description": "User not found",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/roles": {
			"post": {
				"tags": [
					"Roles"
				],
				"summary": "Create a role",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/identitysdk.RoleRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"201": {
						"description": "Envelope result: role",
						"schema": {
							"$ref": "#/definitions/identitysdk.RoleResponse"
						}
					},
					"400": {
						"description": "Role exists or name empty",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"403": {
						"description": "Not an admin",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"404": {
						"description": "Permission not found",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			},
			"get": {
				"tags": [
					"Roles"
				],
				"summary": "List roles",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "Envelope result: roles",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/identitysdk.RoleResponse"
							}
						}
					},
					"401": {
						"description": "Missing or invalid token",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"403": {
						"description": "Not an admin",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/roles/{role}": {
			"delete": {
				"tags": [
					"Roles"
				],
				"summary": "Delete a role",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Role name",
						"name": "role",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "Envelope with code 1000",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"403": {
						"description": "Not an admin",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/permissions": {
			"post": {
				"tags": [
					"Permissions"
				],
				"summary": "Create a permission",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Request body",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/identitysdk.PermissionRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"201": {
						"description": "Envelope result: permission",
						"schema": {
							"$ref": "#/definitions/identitysdk.PermissionResponse"
						}
					},
					"400": {
						"description": "Permission exists or name empty",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"403": {
						"description": "Not an admin",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			},
			"get": {
				"tags": [
					"Permissions"
				],
				"summary": "List permissions",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "Envelope result: permissions",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/identitysdk.PermissionResponse"
							}
						}
					},
					"403": {
						"description": "Not an admin",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/permissions/{permission}": {
			"delete": {
				"tags": [
					"Permissions"
				],
				"summary": "Delete a permission",
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Permission name",
						"name": "permission",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "Envelope with code 1000",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					},
					"403": {
						"description": "Not an admin",
						"schema": {
							"$ref": "#/definitions/identitysdk.APIError"
						}
					}
				}
			}
		},
		"/livez": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Health Check Endpoint",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "status, uptime, version",
						"schema": {
							"$ref": "#/definitions/identitysdk.HealthResponse"
						}
					}
				}
			}
		},
		"/readyz": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Readiness Check Endpoint",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "status, uptime, version, checks",
						"schema": {
							"$ref": "#/definitions/identitysdk.HealthResponse"
						}
					},
					"503": {
						"description": "service not ready",
						"schema": {
							"$ref": "#/definitions/identitysdk.HealthResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"identitysdk.APIError": {
			"type": "object",
			"properties": {
				"code": {
					"type": "integer"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"identitysdk.LoginRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"identitysdk.TokenRequest": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				}
			}
		},
		"identitysdk.TokenResponse": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				},
				"authenticated": {
					"type": "boolean"
				}
			}
		},
		"identitysdk.IntrospectResponse": {
			"type": "object",
			"properties": {
				"valid": {
					"type": "boolean"
				}
			}
		},
		"identitysdk.CreateUserRequest": {
			"type": "object",
			"properties": {
				"username": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				},
				"dob": {
					"type": "string",
					"example": "1990-01-31"
				}
			}
		},
		"identitysdk.UpdateUserRequest": {
			"type": "object",
			"properties": {
				"password": {
					"type": "string"
				},
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				},
				"dob": {
					"type": "string"
				},
				"roles": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"identitysdk.UserResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"username": {
					"type": "string"
				},
				"firstName": {
					"type": "string"
				},
				"lastName": {
					"type": "string"
				},
				"dob": {
					"type": "string"
				},
				"roles": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/identitysdk.RoleResponse"
					}
				}
			}
		},
		"identitysdk.RoleRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"permissions": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"identitysdk.RoleResponse": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"permissions": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/identitysdk.PermissionResponse"
					}
				}
			}
		},
		"identitysdk.PermissionRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				}
			}
		},
		"identitysdk.PermissionResponse": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"description": {
					"type": "string"
				}
			}
		},
		"identitysdk.HealthChecks": {
			"type": "object",
			"properties": {
				"database": {
					"type": "string"
				},
				"revocation": {
					"type": "string"
				}
			}
		},
		"identitysdk.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"uptime": {
					"type": "string"
				},
				"version": {
					"type": "string"
				},
				"checks": {
					"$ref": "#/definitions/identitysdk.HealthChecks"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Session token. Format: \"Bearer {token}\".",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Identity Service API",
	Description:      "User, role and permission management with HS512 session tokens.\n\nTokens can be introspected, refreshed within their refreshable window and revoked on logout.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
