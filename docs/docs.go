// Package docs registers the Swagger 2.0 document served under /docs.
// It mirrors the swag annotations on the handlers and is kept in sync by hand.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Comeback Scout"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Returns a fixed greeting.",
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "API root info",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handler.MessageResponse"}
                    }
                }
            }
        },
        "/alerts": {
            "get": {
                "description": "Returns persisted comeback alerts ordered by creation time, newest first.",
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "List alerts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/model.ComebackAlert"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/respond.ErrorResponse"}
                    }
                }
            }
        },
        "/alerts/mark-read/{id}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "Mark alert read",
                "parameters": [
                    {"type": "string", "description": "Alert ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handler.SuccessResponse"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/respond.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/respond.ErrorResponse"}
                    }
                }
            }
        },
        "/matches/check-comebacks": {
            "post": {
                "description": "Draws a new batch and creates an alert for every comeback scenario above 60%, at most one per (match, team).",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Trigger alert evaluation",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handler.CheckComebacksResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/respond.ErrorResponse"}
                    }
                }
            }
        },
        "/matches/live": {
            "get": {
                "description": "Draws a new batch of simulated superteam matches with comeback probabilities. Every call is an independent draw.",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "List live matches",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/model.MatchSnapshot"}}
                    }
                }
            }
        },
        "/matches/{id}": {
            "get": {
                "description": "Draws a new batch and returns the match with the given id. Ids change on every draw, so earlier ids are normally not found.",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Get one match",
                "parameters": [
                    {"type": "string", "description": "Match ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/model.MatchSnapshot"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/respond.ErrorResponse"}
                    }
                }
            }
        },
        "/superteams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["superteams"],
                "summary": "List monitored superteams",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/model.SuperteamProfile"}}
                    },
                    "304": {
                        "description": "Not Modified"
                    }
                }
            }
        },
        "/superteams/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["superteams"],
                "summary": "Get one superteam",
                "parameters": [
                    {"type": "string", "description": "Team name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/model.SuperteamProfile"}
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/respond.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "handler.CheckComebacksResponse": {
            "type": "object",
            "properties": {
                "alerts_created": {"type": "integer"}
            }
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handler.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        },
        "model.ComebackAlert": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "match_id": {"type": "string"},
                "team_name": {"type": "string"},
                "opponent": {"type": "string"},
                "score": {"type": "string"},
                "probability": {"type": "number"},
                "minute": {"type": "integer"},
                "reason": {"type": "string"},
                "timestamp": {"type": "string"},
                "read": {"type": "boolean"}
            }
        },
        "model.MatchSnapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "home_team": {"$ref": "#/definitions/model.TeamStats"},
                "away_team": {"$ref": "#/definitions/model.TeamStats"},
                "minute": {"type": "integer"},
                "status": {"type": "string", "enum": ["live", "halftime", "finished"]},
                "comeback_probability": {"type": "number"},
                "is_comeback_scenario": {"type": "boolean"},
                "losing_team": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "model.SuperteamProfile": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "logo": {"type": "string"},
                "comeback_rate": {"type": "number"}
            }
        },
        "model.TeamStats": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "logo": {"type": "string"},
                "score": {"type": "integer"},
                "xg": {"type": "number"},
                "possession": {"type": "integer"},
                "shots": {"type": "integer"},
                "shots_on_target": {"type": "integer"},
                "corners": {"type": "integer"},
                "dangerous_attacks": {"type": "integer"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Comeback Scout API",
	Description:      "Simulated live matches for superteams, comeback probability scoring and deduplicated comeback alerts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
