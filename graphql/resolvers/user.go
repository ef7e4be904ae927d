package resolvers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	graphqlpkg "forum.GO/graphql"
	gqlmodels "forum.GO/graphql/models"
	"forum.GO/hooks"
)

// Me resolves the authenticated user from the hook-built request context.
// Anonymous requests resolve to nil, not an error.
func (r *Resolver) Me(ctx context.Context) (*gqlmodels.User, error) {
	rc := graphqlpkg.RequestContextFrom(ctx)
	if rc == nil {
		return nil, nil
	}
	u, err := r.hooks.GetUserFromContext.Invoke(ctx, rc)
	if err != nil {
		return nil, err
	}
	return gqlmodels.NewUser(u), nil
}

// User resolves a user by ID through the get-auth-user chain.
func (r *Resolver) User(ctx context.Context, id uint) (*gqlmodels.User, error) {
	u, err := r.hooks.GetAuthUser.Invoke(ctx, id)
	if err != nil {
		return nil, err
	}
	return gqlmodels.NewUser(u), nil
}

// Login runs the authenticate-user chain and, on success, the
// create-user-token chain. Failed credentials yield a payload error; the
// chain error convention is "nil user", never a resolver crash.
func (r *Resolver) Login(ctx context.Context, username, password string) (*gqlmodels.LoginPayload, error) {
	u, err := r.hooks.AuthenticateUser.Invoke(ctx, hooks.Credentials{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		msg := "invalid credentials"
		return &gqlmodels.LoginPayload{Error: &msg}, nil
	}
	token, err := r.hooks.CreateUserToken.Invoke(ctx, u)
	if err != nil {
		return nil, err
	}
	if err := r.users.TouchLastLogin(u.UserID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &gqlmodels.LoginPayload{User: gqlmodels.NewUser(u), Token: &token}, nil
}

// Register runs the registration write path: input model, input validation,
// user creation, then the user-registered notification.
func (r *Resolver) Register(ctx context.Context, input hooks.NewUser) (*gqlmodels.RegisterPayload, error) {
	data, err := r.hooks.RegisterInput.Invoke(ctx, hooks.RegisterInputData{
		Input:  input,
		Errors: hooks.InputErrors{},
	})
	if err != nil {
		return nil, err
	}
	if data.Errors.HasErrors() {
		errs := make([]gqlmodels.ValidationError, 0, len(data.Errors))
		for field, messages := range data.Errors {
			errs = append(errs, gqlmodels.ValidationError{Field: field, Messages: messages})
		}
		return &gqlmodels.RegisterPayload{Errors: &errs}, nil
	}
	u, err := r.hooks.RegisterUser.Invoke(ctx, data)
	if err != nil {
		return nil, err
	}
	if err := r.hooks.UserRegistered.Invoke(ctx, u); err != nil {
		return nil, err
	}
	return &gqlmodels.RegisterPayload{User: gqlmodels.NewUser(u)}, nil
}
