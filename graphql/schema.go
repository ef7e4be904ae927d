package graphql

import (
	"strings"
	"sync"

	_ "embed"
)

//go:embed schema.graphqls
var schemaBase string

var (
	schemaExtensions []string
	schemaMu         sync.Mutex
)

// RegisterSchemaExtension appends SDL to the schema. Call from init() in
// custom packages.
func RegisterSchemaExtension(schema string) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	schemaExtensions = append(schemaExtensions, strings.TrimSpace(schema))
}

// Schema returns base schema + registered extensions + hook-contributed
// type def fragments (passed in by the server at schema-build time).
func Schema(typeDefs ...string) string {
	schemaMu.Lock()
	ext := make([]string, 0, len(schemaExtensions)+len(typeDefs))
	ext = append(ext, schemaExtensions...)
	schemaMu.Unlock()
	for _, td := range typeDefs {
		if td = strings.TrimSpace(td); td != "" {
			ext = append(ext, td)
		}
	}
	if len(ext) == 0 {
		return schemaBase
	}
	return schemaBase + "\n\n" + strings.Join(ext, "\n\n")
}
