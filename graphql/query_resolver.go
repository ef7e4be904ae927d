package graphql

import (
	"context"

	gqlmodels "forum.GO/graphql/models"
	"forum.GO/hooks"
)

// QueryResolver is the contract the serving layer resolves fields through
// (implemented by the resolvers package; tests substitute mocks).
type QueryResolver interface {
	Me(ctx context.Context) (*gqlmodels.User, error)
	User(ctx context.Context, id uint) (*gqlmodels.User, error)
	ActiveTheme(ctx context.Context) (*gqlmodels.Theme, error)
	Login(ctx context.Context, username, password string) (*gqlmodels.LoginPayload, error)
	Register(ctx context.Context, input hooks.NewUser) (*gqlmodels.RegisterPayload, error)
}
