package hooks

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"forum.GO/core/auth"
	corehooks "forum.GO/core/hooks"
	entity "forum.GO/model/entity"
	userRepo "forum.GO/model/repository/user"
)

// Credentials is the authenticate-user input.
type Credentials struct {
	Username string
	Password string
}

// RequestContext is the per-request context mapping the GraphQL layer builds
// through the graphql-context hook and hands to resolvers.
type RequestContext map[string]interface{}

// Well-known RequestContext keys.
const (
	CtxRemoteAddr    = "remote_addr"
	CtxUserAgent     = "user_agent"
	CtxAuthorization = "authorization"
)

// NewUser is the validated create-user input.
type NewUser struct {
	Username string
	Email    string
	Password string
}

// InputErrors accumulates validation errors per field.
type InputErrors map[string][]string

// Add appends a message under a field.
func (e InputErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// HasErrors reports whether any field failed validation.
func (e InputErrors) HasErrors() bool {
	return len(e) > 0
}

// RegisterInputData flows through the registration write-path hooks: the raw
// input plus the errors accumulated so far.
type RegisterInputData struct {
	Input  NewUser
	Errors InputErrors
}

// ResolverFunc is the signature of GraphQL extension resolvers.
type ResolverFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// SchemaDirective wraps extension resolvers that declared the directive.
type SchemaDirective func(next ResolverFunc) ResolverFunc

// SchemaBindable contributes named extension resolvers at schema-build time.
type SchemaBindable interface {
	BindResolvers() map[string]ResolverFunc
}

// Hooks is the process-wide set of typed hook instances, one per extension
// point. Core code and plugins register into them during startup (see
// RegisterPlugin); Load builds the set and seals it before serving starts.
type Hooks struct {
	AuthenticateUser        *corehooks.Filter[Credentials, *entity.User]
	CreateUser              *corehooks.Filter[NewUser, *entity.User]
	CreateUserToken         *corehooks.Filter[*entity.User, string]
	CreateUserTokenPayload  *corehooks.Filter[*entity.User, map[string]interface{}]
	GetAuthUser             *corehooks.Filter[uint, *entity.User]
	GetUserFromContext      *corehooks.Filter[RequestContext, *entity.User]
	GetUserFromToken        *corehooks.Filter[string, *entity.User]
	GetUserFromTokenPayload *corehooks.Filter[map[string]interface{}, *entity.User]
	GraphQLContext          *corehooks.Filter[*http.Request, RequestContext]
	RegisterInput           *corehooks.Filter[RegisterInputData, RegisterInputData]
	RegisterInputModel      *corehooks.Filter[struct{}, auth.InputModel]
	RegisterUser            *corehooks.Filter[RegisterInputData, *entity.User]

	// UserRegistered notifies observers after a successful registration.
	// Listeners cannot change the outcome.
	UserRegistered *corehooks.Action[*entity.User]

	// Open contribution points, consumed once at schema-build time.
	Directives *corehooks.KeyedSet[SchemaDirective]
	TypeDefs   *corehooks.List[string]
	Bindables  *corehooks.List[SchemaBindable]

	registry *corehooks.Registry
}

// New constructs the hook set with the un-extended defaults wired in.
// The returned set is still open for registration; call Build (or use Load)
// before serving.
func New(db *gorm.DB) *Hooks {
	svc := auth.NewService(db)
	h := &Hooks{registry: corehooks.NewRegistry()}

	h.AuthenticateUser = corehooks.NewFilter("authenticate_user",
		func(ctx context.Context, creds Credentials) (*entity.User, error) {
			return svc.VerifyCredentials(ctx, creds.Username, creds.Password)
		})

	h.CreateUser = corehooks.NewFilter("create_user",
		func(ctx context.Context, in NewUser) (*entity.User, error) {
			return svc.CreateUser(ctx, in.Username, in.Email, in.Password)
		})

	h.CreateUserTokenPayload = corehooks.NewFilter("create_user_token_payload",
		func(ctx context.Context, u *entity.User) (map[string]interface{}, error) {
			return svc.TokenPayload(u), nil
		})

	h.CreateUserToken = corehooks.NewFilter("create_user_token",
		func(ctx context.Context, u *entity.User) (string, error) {
			payload, err := h.CreateUserTokenPayload.Invoke(ctx, u)
			if err != nil {
				return "", err
			}
			return svc.SignPayload(payload)
		})

	h.GetAuthUser = corehooks.NewFilter("get_auth_user",
		func(ctx context.Context, id uint) (*entity.User, error) {
			u, err := svc.Users().FindByID(id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil
				}
				return nil, err
			}
			return u, nil
		})

	h.GetUserFromTokenPayload = corehooks.NewFilter("get_user_from_token_payload",
		func(ctx context.Context, payload map[string]interface{}) (*entity.User, error) {
			return svc.UserFromPayload(ctx, payload)
		})

	h.GetUserFromToken = corehooks.NewFilter("get_user_from_token",
		func(ctx context.Context, token string) (*entity.User, error) {
			payload, err := svc.ParseToken(token)
			if err != nil {
				return nil, err
			}
			if payload == nil {
				return nil, nil
			}
			return h.GetUserFromTokenPayload.Invoke(ctx, payload)
		})

	h.GetUserFromContext = corehooks.NewFilter("get_user_from_context",
		func(ctx context.Context, rc RequestContext) (*entity.User, error) {
			token, _ := rc[CtxAuthorization].(string)
			if token == "" {
				return nil, nil
			}
			return h.GetUserFromToken.Invoke(ctx, token)
		})

	h.GraphQLContext = corehooks.NewFilter("graphql_context",
		func(ctx context.Context, r *http.Request) (RequestContext, error) {
			rc := RequestContext{
				CtxRemoteAddr: r.RemoteAddr,
				CtxUserAgent:  r.UserAgent(),
			}
			if header := r.Header.Get("Authorization"); header != "" {
				rc[CtxAuthorization] = strings.TrimPrefix(header, "Bearer ")
			}
			return rc, nil
		})

	h.RegisterInputModel = corehooks.NewFilter("register_input_model",
		func(ctx context.Context, _ struct{}) (auth.InputModel, error) {
			return auth.DefaultInputModel(), nil
		})

	h.RegisterInput = corehooks.NewFilter("register_input",
		func(ctx context.Context, data RegisterInputData) (RegisterInputData, error) {
			model, err := h.RegisterInputModel.Invoke(ctx, struct{}{})
			if err != nil {
				return data, err
			}
			for _, msg := range auth.ValidateUsername(model, data.Input.Username) {
				data.Errors.Add("username", msg)
			}
			for _, msg := range auth.ValidateEmail(data.Input.Email) {
				data.Errors.Add("email", msg)
			}
			for _, msg := range auth.ValidatePassword(model, data.Input.Password) {
				data.Errors.Add("password", msg)
			}
			if taken, err := svc.Users().SlugTaken(userRepo.Slugify(data.Input.Username)); err == nil && taken {
				data.Errors.Add("username", "username is not available")
			}
			if taken, err := svc.Users().EmailTaken(data.Input.Email); err == nil && taken {
				data.Errors.Add("email", "e-mail is not available")
			}
			return data, nil
		})

	h.RegisterUser = corehooks.NewFilter("register_user",
		func(ctx context.Context, data RegisterInputData) (*entity.User, error) {
			return h.CreateUser.Invoke(ctx, data.Input)
		})

	h.UserRegistered = corehooks.NewAction[*entity.User]("user_registered")

	h.Directives = corehooks.NewKeyedSet[SchemaDirective]("graphql_directives")
	h.TypeDefs = corehooks.NewList[string]("graphql_type_defs")
	h.Bindables = corehooks.NewList[SchemaBindable]("graphql_types")

	for _, hook := range []corehooks.Hook{
		h.AuthenticateUser, h.CreateUser, h.CreateUserToken,
		h.CreateUserTokenPayload, h.GetAuthUser, h.GetUserFromContext,
		h.GetUserFromToken, h.GetUserFromTokenPayload, h.GraphQLContext,
		h.RegisterInput, h.RegisterInputModel, h.RegisterUser,
		h.UserRegistered, h.Directives, h.TypeDefs, h.Bindables,
	} {
		h.registry.Add(hook)
	}
	return h
}

// Build seals every hook instance. Registration panics afterwards.
func (h *Hooks) Build() *Hooks {
	h.registry.Build()
	return h
}

// Built reports whether the set has been sealed.
func (h *Hooks) Built() bool {
	return h.registry.Built()
}

// Names returns the extension-point names, for diagnostics.
func (h *Hooks) Names() []string {
	return h.registry.Names()
}
