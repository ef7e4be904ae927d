package hooks

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	corehooks "forum.GO/core/hooks"
	entity "forum.GO/model/entity"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func registerTestUser(t *testing.T, h *Hooks, username, email, password string) *entity.User {
	ctx := context.Background()
	data, err := h.RegisterInput.Invoke(ctx, RegisterInputData{
		Input:  NewUser{Username: username, Email: email, Password: password},
		Errors: InputErrors{},
	})
	if err != nil {
		t.Fatalf("RegisterInput: %v", err)
	}
	if data.Errors.HasErrors() {
		t.Fatalf("validation errors: %v", data.Errors)
	}
	u, err := h.RegisterUser.Invoke(ctx, data)
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	return u
}

func TestHooks_RegisterAndAuthenticate(t *testing.T) {
	h := New(testDB(t))
	u := registerTestUser(t, h, "Alice", "alice@example.com", "secret12345")
	if u.UserID == 0 {
		t.Fatal("UserID not set after registration")
	}
	if u.Slug != "alice" {
		t.Errorf("Slug = %q, want alice", u.Slug)
	}

	got, err := h.AuthenticateUser.Invoke(context.Background(), Credentials{
		Username: "alice", Password: "secret12345",
	})
	if err != nil {
		t.Fatalf("AuthenticateUser: %v", err)
	}
	if got == nil || got.UserID != u.UserID {
		t.Fatalf("authenticated user = %v, want %d", got, u.UserID)
	}

	got, err = h.AuthenticateUser.Invoke(context.Background(), Credentials{
		Username: "alice", Password: "wrong",
	})
	if err != nil {
		t.Fatalf("AuthenticateUser: %v", err)
	}
	if got != nil {
		t.Error("wrong password authenticated")
	}
}

func TestHooks_RegisterInput_ValidationErrors(t *testing.T) {
	h := New(testDB(t))
	registerTestUser(t, h, "Bob", "bob@example.com", "secret12345")

	data, err := h.RegisterInput.Invoke(context.Background(), RegisterInputData{
		Input:  NewUser{Username: "Bob", Email: "not-an-email", Password: "short"},
		Errors: InputErrors{},
	})
	if err != nil {
		t.Fatalf("RegisterInput: %v", err)
	}
	if !data.Errors.HasErrors() {
		t.Fatal("expected validation errors")
	}
	if len(data.Errors["username"]) == 0 {
		t.Error("no error for taken username")
	}
	if len(data.Errors["email"]) == 0 {
		t.Error("no error for bad e-mail")
	}
	if len(data.Errors["password"]) == 0 {
		t.Error("no error for short password")
	}
}

func TestHooks_TokenRoundTrip(t *testing.T) {
	h := New(testDB(t))
	u := registerTestUser(t, h, "Carol", "carol@example.com", "secret12345")
	ctx := context.Background()

	token, err := h.CreateUserToken.Invoke(ctx, u)
	if err != nil {
		t.Fatalf("CreateUserToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	got, err := h.GetUserFromToken.Invoke(ctx, token)
	if err != nil {
		t.Fatalf("GetUserFromToken: %v", err)
	}
	if got == nil || got.UserID != u.UserID {
		t.Fatalf("user from token = %v, want %d", got, u.UserID)
	}

	got, err = h.GetUserFromToken.Invoke(ctx, "garbage.token.value")
	if err != nil {
		t.Fatalf("GetUserFromToken(garbage): %v", err)
	}
	if got != nil {
		t.Error("garbage token resolved a user")
	}
}

func TestHooks_GraphQLContextAndUserLookup(t *testing.T) {
	h := New(testDB(t))
	u := registerTestUser(t, h, "Dave", "dave@example.com", "secret12345")
	ctx := context.Background()

	token, err := h.CreateUserToken.Invoke(ctx, u)
	if err != nil {
		t.Fatalf("CreateUserToken: %v", err)
	}

	req := httptest.NewRequest("POST", "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "test-agent")

	rc, err := h.GraphQLContext.Invoke(ctx, req)
	if err != nil {
		t.Fatalf("GraphQLContext: %v", err)
	}
	if rc[CtxAuthorization] != token {
		t.Errorf("authorization = %v, want bearer token", rc[CtxAuthorization])
	}
	if rc[CtxUserAgent] != "test-agent" {
		t.Errorf("user_agent = %v", rc[CtxUserAgent])
	}

	got, err := h.GetUserFromContext.Invoke(ctx, rc)
	if err != nil {
		t.Fatalf("GetUserFromContext: %v", err)
	}
	if got == nil || got.UserID != u.UserID {
		t.Fatalf("user from context = %v, want %d", got, u.UserID)
	}

	anon, err := h.GetUserFromContext.Invoke(ctx, RequestContext{})
	if err != nil {
		t.Fatalf("GetUserFromContext(anon): %v", err)
	}
	if anon != nil {
		t.Error("anonymous context resolved a user")
	}
}

// Interceptors see sibling-chain composition: intercepting the payload chain
// changes what tokens carry without touching the signing default.
func TestHooks_InterceptTokenPayload(t *testing.T) {
	h := New(testDB(t))
	u := registerTestUser(t, h, "Erin", "erin@example.com", "secret12345")

	h.CreateUserTokenPayload.Register(func(ctx context.Context, u *entity.User,
		next corehooks.Next[*entity.User, map[string]interface{}]) (map[string]interface{}, error) {
		payload, err := next(ctx, u)
		if err != nil {
			return nil, err
		}
		payload["plugin"] = "marker"
		return payload, nil
	})

	ctx := context.Background()
	token, err := h.CreateUserToken.Invoke(ctx, u)
	if err != nil {
		t.Fatalf("CreateUserToken: %v", err)
	}
	got, err := h.GetUserFromToken.Invoke(ctx, token)
	if err != nil || got == nil {
		t.Fatalf("token with plugin claim did not resolve: %v, %v", got, err)
	}
}

func TestHooks_InterceptAuthenticate_ShortCircuit(t *testing.T) {
	db := testDB(t)
	h := New(db)
	u := registerTestUser(t, h, "Frank", "frank@example.com", "secret12345")

	// Master-password style plugin: never reaches the default.
	h.AuthenticateUser.Register(func(ctx context.Context, creds Credentials,
		next corehooks.Next[Credentials, *entity.User]) (*entity.User, error) {
		if creds.Password == "master" {
			return u, nil
		}
		return next(ctx, creds)
	}, corehooks.WithPriority(1))

	got, err := h.AuthenticateUser.Invoke(context.Background(), Credentials{
		Username: "anything", Password: "master",
	})
	if err != nil {
		t.Fatalf("AuthenticateUser: %v", err)
	}
	if got == nil || got.UserID != u.UserID {
		t.Fatal("master password interceptor did not short-circuit")
	}
}

func TestHooks_UserRegisteredNotification(t *testing.T) {
	h := New(testDB(t))
	var seen []uint
	h.UserRegistered.Register(func(ctx context.Context, u *entity.User) error {
		seen = append(seen, u.UserID)
		return nil
	})

	u := registerTestUser(t, h, "Grace", "grace@example.com", "secret12345")
	if err := h.UserRegistered.Invoke(context.Background(), u); err != nil {
		t.Fatalf("UserRegistered: %v", err)
	}
	if len(seen) != 1 || seen[0] != u.UserID {
		t.Errorf("seen = %v, want [%d]", seen, u.UserID)
	}
}

func TestLoad_AppliesPluginsAndSeals(t *testing.T) {
	defer UnregisterPlugins()
	applied := false
	RegisterPlugin(func(h *Hooks) {
		applied = true
		h.TypeDefs.Append("extend type Query { pluginField: String }")
	})

	h := Load(testDB(t))
	if !applied {
		t.Fatal("plugin func not applied")
	}
	if !h.Built() {
		t.Fatal("hook set not sealed by Load")
	}
	if h.TypeDefs.Len() != 1 {
		t.Errorf("TypeDefs.Len = %d, want 1", h.TypeDefs.Len())
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on RegisterPlugin after Load")
		}
	}()
	RegisterPlugin(func(h *Hooks) {})
}

func TestHooks_Names(t *testing.T) {
	h := New(testDB(t))
	names := h.Names()
	if len(names) != 16 {
		t.Fatalf("len(Names) = %d, want 16", len(names))
	}
	want := map[string]bool{
		"authenticate_user": false, "graphql_context": false,
		"graphql_directives": false, "user_registered": false,
	}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("hook %q missing from Names", n)
		}
	}
}
