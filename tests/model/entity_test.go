package modeltest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	entity "forum.GO/model/entity"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	entities := []interface{}{
		&entity.User{},
		&entity.Theme{},
		&entity.Css{},
		&entity.Media{},
	}
	for _, e := range entities {
		if err := db.AutoMigrate(e); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return db
}

func TestEntity_TableNames(t *testing.T) {
	cases := map[string]string{
		entity.User{}.TableName():  "forum_user",
		entity.Theme{}.TableName(): "forum_theme",
		entity.Css{}.TableName():   "forum_theme_css",
		entity.Media{}.TableName(): "forum_theme_media",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("table name = %q, want %q", got, want)
		}
	}
}

func TestEntity_CssIsLink(t *testing.T) {
	var c entity.Css
	if c.IsLink() {
		t.Error("empty css should not be a link")
	}
	url := "https://cdn.example.com/site.css"
	c.URL = &url
	if !c.IsLink() {
		t.Error("css with url should be a link")
	}
	empty := ""
	c.URL = &empty
	if c.IsLink() {
		t.Error("blank url should not be a link")
	}
}

func TestEntity_UserRoundTrip(t *testing.T) {
	db := testDB(t)
	u := entity.User{
		Username:  "Alice",
		Slug:      "alice",
		Email:     "alice@example.com",
		EmailHash: "hash",
		Password:  "bcrypt-hash",
		IsActive:  true,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.UserID == 0 {
		t.Fatal("no user_id assigned")
	}
	var got entity.User
	if err := db.First(&got, "slug = ?", "alice").Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Username != "Alice" || got.JoinedAt.IsZero() {
		t.Errorf("got = %+v", got)
	}
}

func TestEntity_UserSlugUnique(t *testing.T) {
	db := testDB(t)
	a := entity.User{Username: "Dup", Slug: "dup", Email: "a@x.com", EmailHash: "h1", Password: "p"}
	b := entity.User{Username: "Dup2", Slug: "dup", Email: "b@x.com", EmailHash: "h2", Password: "p"}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Create(&b).Error; err == nil {
		t.Error("expected unique constraint error on slug")
	}
}
