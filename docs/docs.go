// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

// Package docs holds the Swagger document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/recommendation/": {
            "post": {
                "description": "Ranks authors by topical similarity to a concept vector, by proximity to a seed author in the co-authorship graph, or by a weighted blend of both.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Recommendation"
                ],
                "summary": "Recommend collaborators",
                "parameters": [
                    {
                        "description": "Concept vector and/or seed author",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/recommend.Request"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/recommend.Response"
                        }
                    },
                    "400": {
                        "description": "Invalid request",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "503": {
                        "description": "No snapshot loaded",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "504": {
                        "description": "Scoring timed out",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/concept/": {
            "get": {
                "description": "Prefix matches first, then names containing the query. An empty query returns an empty list.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Catalog"
                ],
                "summary": "Search concepts",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Name fragment",
                        "name": "search",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Maximum results (default 20, max 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.ConceptResult"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/authorsearch/": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Catalog"
                ],
                "summary": "Search authors",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Name fragment",
                        "name": "search",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Maximum results (default 20, max 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.AuthorSummary"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/authors/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Catalog"
                ],
                "summary": "Get author profile",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Author ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.AuthorProfile"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/authors/{id}/concepts/": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Catalog"
                ],
                "summary": "Get author concepts",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Author ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Maximum concepts (default 10, 0 for all)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/models.AuthorConcept"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/institution/": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Catalog"
                ],
                "summary": "Get institution",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Institution ID",
                        "name": "id",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.InstitutionView"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Core"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.HealthStatus"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Core"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/snapshot": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Core"
                ],
                "summary": "Snapshot status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.SnapshotInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/admin/snapshot/refresh": {
            "post": {
                "description": "Triggered refreshes share a rate limit with NATS and file-watch triggers.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Refresh snapshot",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/models.SnapshotInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "429": {
                        "description": "Refresh throttled",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/models.APIResponse"
                        }
                    }
                }
            }
        },
        "/admin/performance": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin"
                ],
                "summary": "Request performance",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/models.APIResponse"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/middleware.EndpointStats"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "details": {
                    "type": "object",
                    "additionalProperties": true
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {
                    "$ref": "#/definitions/models.APIError"
                },
                "metadata": {
                    "$ref": "#/definitions/models.Metadata"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer"
                },
                "query_time_ms": {
                    "type": "integer"
                },
                "request_id": {
                    "type": "string"
                },
                "snapshot_version": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "models.ConceptResult": {
            "type": "object",
            "properties": {
                "display_name": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "level": {
                    "type": "integer"
                }
            }
        },
        "models.AuthorSummary": {
            "type": "object",
            "properties": {
                "country_code": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "institution_name": {
                    "type": "string"
                }
            }
        },
        "models.AuthorConcept": {
            "type": "object",
            "properties": {
                "concept_id": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "score": {
                    "type": "number"
                }
            }
        },
        "models.InstitutionView": {
            "type": "object",
            "properties": {
                "country_code": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                }
            }
        },
        "models.AuthorProfile": {
            "type": "object",
            "properties": {
                "cited_by_count": {
                    "type": "integer"
                },
                "collaborators": {
                    "type": "integer"
                },
                "country_code": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "display_name_alternatives": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "id": {
                    "type": "string"
                },
                "institution": {
                    "$ref": "#/definitions/models.InstitutionView"
                },
                "orcid": {
                    "type": "string"
                },
                "top_concepts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.AuthorConcept"
                    }
                },
                "works_count": {
                    "type": "integer"
                }
            }
        },
        "models.HealthStatus": {
            "type": "object",
            "properties": {
                "snapshot_loaded": {
                    "type": "boolean"
                },
                "snapshot_version": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "uptime_seconds": {
                    "type": "number"
                },
                "version": {
                    "type": "string"
                }
            }
        },
        "models.SnapshotInfo": {
            "type": "object",
            "properties": {
                "authors": {
                    "type": "integer"
                },
                "built_at": {
                    "type": "string"
                },
                "concepts": {
                    "type": "integer"
                },
                "edges": {
                    "type": "integer"
                },
                "institutions": {
                    "type": "integer"
                },
                "loaded": {
                    "type": "boolean"
                },
                "refresh": {},
                "version": {
                    "type": "string"
                }
            }
        },
        "middleware.EndpointStats": {
            "type": "object",
            "properties": {
                "avg_duration_ms": {
                    "type": "number"
                },
                "endpoint": {
                    "type": "string"
                },
                "max_duration_ms": {
                    "type": "integer"
                },
                "p50_duration_ms": {
                    "type": "integer"
                },
                "p95_duration_ms": {
                    "type": "integer"
                },
                "p99_duration_ms": {
                    "type": "integer"
                },
                "request_count": {
                    "type": "integer"
                }
            }
        },
        "recommend.ConceptWeight": {
            "type": "object",
            "properties": {
                "display_name": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "weight": {
                    "type": "number"
                }
            }
        },
        "recommend.Request": {
            "type": "object",
            "properties": {
                "alpha": {
                    "type": "number"
                },
                "author_id": {
                    "type": "string",
                    "maxLength": 128
                },
                "beta": {
                    "type": "number"
                },
                "concept_vector": {
                    "type": "array",
                    "maxItems": 200,
                    "items": {
                        "$ref": "#/definitions/recommend.ConceptWeight"
                    }
                },
                "country_code": {
                    "type": "string"
                },
                "limit": {
                    "type": "integer"
                },
                "order_by": {
                    "type": "string",
                    "enum": [
                        "similarity",
                        "citation_count",
                        "work_count"
                    ]
                }
            }
        },
        "recommend.TopConcept": {
            "type": "object",
            "properties": {
                "concept_id": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "score": {
                    "type": "number"
                }
            }
        },
        "recommend.Recommendation": {
            "type": "object",
            "properties": {
                "author_id": {
                    "type": "string"
                },
                "cb_score": {
                    "type": "number"
                },
                "cb_zscore": {
                    "type": "number"
                },
                "cf_score": {
                    "type": "number"
                },
                "cf_zscore": {
                    "type": "number"
                },
                "cited_by_count": {
                    "type": "integer"
                },
                "country_code": {
                    "type": "string"
                },
                "display_name": {
                    "type": "string"
                },
                "institution_name": {
                    "type": "string"
                },
                "orcid": {
                    "type": "string"
                },
                "similarity_score": {
                    "type": "number"
                },
                "top_concepts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/recommend.TopConcept"
                    }
                },
                "works_count": {
                    "type": "integer"
                }
            }
        },
        "recommend.ResponseMetadata": {
            "type": "object",
            "properties": {
                "alpha": {
                    "type": "number"
                },
                "beta": {
                    "type": "number"
                },
                "cache_hit": {
                    "type": "boolean"
                },
                "ignored_concepts": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "latency_ms": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                },
                "mode": {
                    "type": "string"
                },
                "order_by": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                },
                "snapshot_version": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "recommend.Response": {
            "type": "object",
            "properties": {
                "metadata": {
                    "$ref": "#/definitions/recommend.ResponseMetadata"
                },
                "recommendations": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/recommend.Recommendation"
                    }
                },
                "total_recommendations": {
                    "type": "integer"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Colaborador IA API",
	Description:      "Hybrid author recommendation engine for Latin American research collaboration.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
