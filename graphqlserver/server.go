package graphqlserver

import (
	"context"
	"encoding/json"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"forum.GO/graphql"
	gqlmodels "forum.GO/graphql/models"
	"forum.GO/graphql/registry"
	"forum.GO/graphql/resolvers"
	"forum.GO/hooks"
)

// RootResolver is the root for graphql-go. Field resolution delegates to
// the resolvers package, which runs everything through the hook chains.
type RootResolver struct {
	res *resolvers.Resolver
}

func NewRootResolver(db *gorm.DB, h *hooks.Hooks) *RootResolver {
	return &RootResolver{res: resolvers.NewResolver(db, h)}
}

func (r *RootResolver) Me(ctx context.Context) (*gqlmodels.User, error) {
	return r.res.Me(ctx)
}

// UserArgs matches the user query arguments.
type UserArgs struct {
	ID gql.ID
}

func (r *RootResolver) User(ctx context.Context, args UserArgs) (*gqlmodels.User, error) {
	id, err := strconv.ParseUint(string(args.ID), 10, 32)
	if err != nil {
		return nil, nil
	}
	return r.res.User(ctx, uint(id))
}

func (r *RootResolver) ActiveTheme(ctx context.Context) (*gqlmodels.Theme, error) {
	return r.res.ActiveTheme(ctx)
}

// LoginArgs matches the login mutation arguments.
type LoginArgs struct {
	Username string
	Password string
}

func (r *RootResolver) Login(ctx context.Context, args LoginArgs) (*gqlmodels.LoginPayload, error) {
	return r.res.Login(ctx, args.Username, args.Password)
}

// RegisterUserInput matches the RegisterUserInput schema type.
type RegisterUserInput struct {
	Username string
	Email    string
	Password string
}

// RegisterArgs matches the register mutation arguments.
type RegisterArgs struct {
	Input RegisterUserInput
}

func (r *RootResolver) Register(ctx context.Context, args RegisterArgs) (*gqlmodels.RegisterPayload, error) {
	return r.res.Register(ctx, hooks.NewUser{
		Username: args.Input.Username,
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *RootResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// BindContributions applies the schema-bindable and directive contribution
// points to the extension resolver registry. Call once at startup, before
// the first request.
func BindContributions(h *hooks.Hooks) {
	for _, b := range h.Bindables.All() {
		for name, fn := range b.BindResolvers() {
			registry.Register(name, registry.ResolverFunc(fn))
		}
	}
	dirs := h.Directives.All()
	wrapped := make(map[string]registry.Middleware, len(dirs))
	for name, d := range dirs {
		d := d
		wrapped[name] = func(next registry.ResolverFunc) registry.ResolverFunc {
			return registry.ResolverFunc(d(hooks.ResolverFunc(next)))
		}
	}
	registry.ApplyDirectives(wrapped)
}

// NewSchema parses the base schema plus every contributed type def fragment.
func NewSchema(db *gorm.DB, h *hooks.Hooks) (*gql.Schema, error) {
	sdl := graphql.Schema(h.TypeDefs.All()...)
	return gql.ParseSchema(sdl, NewRootResolver(db, h), gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
