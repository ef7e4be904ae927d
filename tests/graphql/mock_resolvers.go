package graphqltest

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	gql "github.com/graph-gophers/graphql-go"
	"gorm.io/gorm"

	"forum.GO/graphql"
	gqlmodels "forum.GO/graphql/models"
	"forum.GO/hooks"
)

// MockRootResolver is the root for graphql-go tests (no DB).
type MockRootResolver struct{}

func (m *MockRootResolver) Me(ctx context.Context) (*gqlmodels.User, error) {
	return &gqlmodels.User{ID: "1", Username: "MockUser", Slug: "mockuser", Email: "mock@example.com", JoinedAt: "2024-01-01T00:00:00Z"}, nil
}

type mockUserArgs struct {
	ID gql.ID
}

func (m *MockRootResolver) User(ctx context.Context, args mockUserArgs) (*gqlmodels.User, error) {
	if args.ID != "1" {
		return nil, nil
	}
	return &gqlmodels.User{ID: "1", Username: "MockUser", Slug: "mockuser", Email: "mock@example.com", JoinedAt: "2024-01-01T00:00:00Z"}, nil
}

func (m *MockRootResolver) ActiveTheme(ctx context.Context) (*gqlmodels.Theme, error) {
	return &gqlmodels.Theme{
		ID:   "1",
		Name: "Mock Theme",
		Stylesheets: []gqlmodels.ThemeCss{
			{ID: "1", Name: "index.css", Size: 120, Order: 1},
		},
	}, nil
}

type mockLoginArgs struct {
	Username string
	Password string
}

func (m *MockRootResolver) Login(ctx context.Context, args mockLoginArgs) (*gqlmodels.LoginPayload, error) {
	if args.Password != "mock-password" {
		errMsg := "invalid credentials"
		return &gqlmodels.LoginPayload{Error: &errMsg}, nil
	}
	token := "mock-token"
	u, _ := m.Me(ctx)
	return &gqlmodels.LoginPayload{User: u, Token: &token}, nil
}

type mockRegisterArgs struct {
	Input struct {
		Username string
		Email    string
		Password string
	}
}

func (m *MockRootResolver) Register(ctx context.Context, args mockRegisterArgs) (*gqlmodels.RegisterPayload, error) {
	if args.Input.Username == "" {
		errs := []gqlmodels.ValidationError{{Field: "username", Messages: []string{"required"}}}
		return &gqlmodels.RegisterPayload{Errors: &errs}, nil
	}
	return &gqlmodels.RegisterPayload{
		User: &gqlmodels.User{ID: "2", Username: args.Input.Username, Slug: "new", Email: args.Input.Email, JoinedAt: "2024-01-01T00:00:00Z"},
	}, nil
}

type mockExtensionArgs struct {
	Name string
	Args *string
}

func (m *MockRootResolver) Extension(ctx context.Context, args mockExtensionArgs) (*string, error) {
	s := `{"mock":"ok"}`
	return &s, nil
}

// NewMockSchema creates a schema with mock resolvers for tests.
func NewMockSchema() *gql.Schema {
	schema, err := gql.ParseSchema(graphql.Schema(), &MockRootResolver{}, gql.UseFieldResolvers())
	if err != nil {
		panic("mock schema: " + err.Error())
	}
	return schema
}

// testHooks builds a sealed hook set over an in-memory DB for route wiring.
func testHooks(t *testing.T) *hooks.Hooks {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return hooks.New(db).Build()
}
