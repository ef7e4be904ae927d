package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// GraphQL resolves its own user through the request context chain
	return []string{"/graphql", "/playground", "/health"}
}
