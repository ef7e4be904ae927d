package graphql

import (
	"net/http"

	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	graphqlpkg "forum.GO/graphql"
	"forum.GO/graphqlserver"
	"forum.GO/hooks"
)

// RegisterGraphQLRoutes binds the contribution points, builds the schema
// and registers /graphql with the hook-driven context middleware.
func RegisterGraphQLRoutes(e *echo.Echo, db *gorm.DB, h *hooks.Hooks) {
	graphqlserver.BindContributions(h)
	schema, err := graphqlserver.NewSchema(db, h)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	registerRoutes(e, schema, h)
}

// RegisterGraphQLRoutesWithSchema registers /graphql with a custom schema
// (for tests with mocks).
func RegisterGraphQLRoutesWithSchema(e *echo.Echo, schema *graphql.Schema, h *hooks.Hooks) {
	registerRoutes(e, schema, h)
}

func registerRoutes(e *echo.Echo, schema *graphql.Schema, h *hooks.Hooks) {
	handler := requestContextMiddleware(h, graphqlserver.Handler(schema))
	e.POST("/graphql", echo.WrapHandler(handler))
	e.GET("/graphql", echo.WrapHandler(handler))
	e.GET("/playground", echo.WrapHandler(playgroundHandler()))
}

// requestContextMiddleware runs the graphql-context chain for every request
// and attaches the resulting mapping for resolvers.
func requestContextMiddleware(h *hooks.Hooks, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc, err := h.GraphQLContext.Invoke(r.Context(), r)
		if err != nil {
			http.Error(w, "request context: "+err.Error(), http.StatusInternalServerError)
			return
		}
		ctx := graphqlpkg.WithRequestContext(r.Context(), rc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playgroundHandler() http.Handler {
	html := `<!DOCTYPE html>
<html>
<head>
	<title>GraphQL Playground</title>
	<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css"/>
</head>
<body>
	<div id="root"/>
	<script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
	<script>window.addEventListener('load', function() {
		GraphQLPlayground.init({ endpoint: '/graphql' });
	})</script>
</body>
</html>`
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	})
}
