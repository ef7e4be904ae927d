package registry

// Core keys for GlobalRegistry.
const (
	// Extension registries (cmd, cron, api, graphql, hooks) — stored in GlobalRegistry
	KeyRegistryCmd     = "registry:cmd"
	KeyRegistryCron    = "registry:cron"
	KeyRegistryAPI     = "registry:api"
	KeyRegistryRoutes  = "registry:routes"
	KeyRegistryGraphQL = "registry:graphql"
	KeyRegistryHooks   = "registry:hooks"
)
