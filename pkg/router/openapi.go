package router

import (
	"chat-session-demo/backend/pkg/validator"
)

// AddOpenAPIValidation enables request validation against an OpenAPI schema.
// Must be called before SetupRoutes so the middleware covers the routes.
func (r *Router) AddOpenAPIValidation(schemaPath string) {
	v, err := validator.NewOpenAPIValidator(schemaPath)
	if err != nil {
		r.Logger.Warn("OpenAPI validation disabled",
			"schema", schemaPath,
			"error", err.Error(),
		)
		return
	}

	r.Engine.Use(v.Middleware())
	r.Logger.Info("OpenAPI request validation enabled", "schema", schemaPath)
}
