package graphqltest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	graphqlApi "forum.GO/api/graphql"
)

func runQuery(t *testing.T, query string, variables map[string]interface{}) *httptest.ResponseRecorder {
	e := echo.New()
	graphqlApi.RegisterGraphQLRoutesWithSchema(e, NewMockSchema(), testHooks(t))

	body := map[string]interface{}{"query": query}
	if variables != nil {
		body["variables"] = variables
	}
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) (map[string]interface{}, []struct{ Message string }) {
	t.Helper()
	var resp struct {
		Data   map[string]interface{}
		Errors []struct{ Message string }
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Data, resp.Errors
}

func TestExecuteQuery_Me(t *testing.T) {
	rec := runQuery(t, `query { me { id username email } }`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, errs := decode(t, rec)
	if len(errs) > 0 {
		t.Fatalf("errors: %v", errs)
	}
	me, ok := data["me"].(map[string]interface{})
	if !ok {
		t.Fatal("data.me missing")
	}
	if me["username"] != "MockUser" {
		t.Errorf("username = %v", me["username"])
	}
}

func TestExecuteQuery_User(t *testing.T) {
	rec := runQuery(t, `query { user(id: "1") { id username } }`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, errs := decode(t, rec)
	if len(errs) > 0 {
		t.Fatalf("errors: %v", errs)
	}
	user := data["user"].(map[string]interface{})
	if user["id"] != "1" {
		t.Errorf("id = %v", user["id"])
	}
}

func TestExecuteQuery_User_Unknown(t *testing.T) {
	rec := runQuery(t, `query { user(id: "999") { id } }`, nil)
	data, errs := decode(t, rec)
	if len(errs) > 0 {
		t.Fatalf("errors: %v", errs)
	}
	if data["user"] != nil {
		t.Errorf("user = %v, want null", data["user"])
	}
}

func TestExecuteQuery_ActiveTheme(t *testing.T) {
	rec := runQuery(t, `{ activeTheme { id name stylesheets { name order } } }`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data, errs := decode(t, rec)
	if len(errs) > 0 {
		t.Fatalf("errors: %v", errs)
	}
	theme := data["activeTheme"].(map[string]interface{})
	if theme["name"] != "Mock Theme" {
		t.Errorf("name = %v", theme["name"])
	}
	css := theme["stylesheets"].([]interface{})
	if len(css) != 1 {
		t.Fatalf("len(stylesheets) = %d", len(css))
	}
	if css[0].(map[string]interface{})["name"] != "index.css" {
		t.Error("stylesheet name mismatch")
	}
}

func TestExecuteMutation_Login(t *testing.T) {
	rec := runQuery(t, `mutation { login(username: "MockUser", password: "mock-password") { token user { username } error } }`, nil)
	data, errs := decode(t, rec)
	if len(errs) > 0 {
		t.Fatalf("errors: %v", errs)
	}
	login := data["login"].(map[string]interface{})
	if login["token"] != "mock-token" {
		t.Errorf("token = %v", login["token"])
	}
	if login["error"] != nil {
		t.Errorf("error = %v, want null", login["error"])
	}
}

func TestExecuteMutation_Login_BadPassword(t *testing.T) {
	rec := runQuery(t, `mutation { login(username: "MockUser", password: "nope") { token error } }`, nil)
	data, errs := decode(t, rec)
	if len(errs) > 0 {
		t.Fatalf("errors: %v", errs)
	}
	login := data["login"].(map[string]interface{})
	if login["error"] != "invalid credentials" {
		t.Errorf("error = %v", login["error"])
	}
	if login["token"] != nil {
		t.Errorf("token = %v, want null", login["token"])
	}
}

func TestExecuteMutation_Register_Validation(t *testing.T) {
	rec := runQuery(t, `mutation { register(input: {username: "", email: "a@b.com", password: "x"}) { user { id } errors { field messages } } }`, nil)
	data, errs := decode(t, rec)
	if len(errs) > 0 {
		t.Fatalf("errors: %v", errs)
	}
	reg := data["register"].(map[string]interface{})
	if reg["user"] != nil {
		t.Errorf("user = %v, want null", reg["user"])
	}
	vErrs := reg["errors"].([]interface{})
	if len(vErrs) != 1 || vErrs[0].(map[string]interface{})["field"] != "username" {
		t.Errorf("errors = %v", vErrs)
	}
}

func TestExecuteQuery_UnknownField(t *testing.T) {
	rec := runQuery(t, `{ unknownField { x } }`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	_, errs := decode(t, rec)
	if len(errs) == 0 {
		t.Error("expected errors for unknown field")
	}
}
