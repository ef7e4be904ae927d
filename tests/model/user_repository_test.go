package modeltest

import (
	"testing"

	entity "forum.GO/model/entity"
	userRepo "forum.GO/model/repository/user"
)

func seedUser(t *testing.T, repo *userRepo.UserRepository, username, email string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Email: email, Password: "hash", IsActive: true}
	if err := repo.Create(u); err != nil {
		t.Fatalf("create %s: %v", username, err)
	}
	return u
}

func TestUserRepository_CreateDerivesSlugAndHash(t *testing.T) {
	repo := userRepo.NewUserRepository(testDB(t))
	u := seedUser(t, repo, "Alice", "Alice@Example.com")

	if u.Slug != "alice" {
		t.Errorf("slug = %q, want alice", u.Slug)
	}
	if u.EmailHash != userRepo.EmailHash("alice@example.com") {
		t.Errorf("email hash not normalized: %q", u.EmailHash)
	}
}

func TestUserRepository_FindByIdentifier(t *testing.T) {
	repo := userRepo.NewUserRepository(testDB(t))
	seedUser(t, repo, "Alice", "alice@example.com")

	byName, err := repo.FindByIdentifier("ALICE")
	if err != nil {
		t.Fatalf("by name: %v", err)
	}
	byEmail, err := repo.FindByIdentifier("Alice@example.com")
	if err != nil {
		t.Fatalf("by email: %v", err)
	}
	if byName.UserID != byEmail.UserID {
		t.Errorf("lookups disagree: %d vs %d", byName.UserID, byEmail.UserID)
	}
}

func TestUserRepository_FindByID_InactiveHidden(t *testing.T) {
	db := testDB(t)
	repo := userRepo.NewUserRepository(db)
	u := seedUser(t, repo, "Gone", "gone@example.com")

	if err := db.Model(u).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := repo.FindByID(u.UserID); err == nil {
		t.Error("expected not-found for inactive user")
	}
}

func TestUserRepository_TakenChecks(t *testing.T) {
	repo := userRepo.NewUserRepository(testDB(t))
	seedUser(t, repo, "Alice", "alice@example.com")

	if taken, _ := repo.SlugTaken("alice"); !taken {
		t.Error("slug alice should be taken")
	}
	if taken, _ := repo.SlugTaken("bob"); taken {
		t.Error("slug bob should be free")
	}
	if taken, _ := repo.EmailTaken("ALICE@EXAMPLE.COM"); !taken {
		t.Error("email should be taken regardless of case")
	}
}

func TestUserRepository_TouchLastLogin(t *testing.T) {
	db := testDB(t)
	repo := userRepo.NewUserRepository(db)
	u := seedUser(t, repo, "Alice", "alice@example.com")

	if u.LastLoginAt != nil {
		t.Fatal("last_login_at should start null")
	}
	if err := repo.TouchLastLogin(u.UserID); err != nil {
		t.Fatalf("touch: %v", err)
	}
	got, err := repo.FindByID(u.UserID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.LastLoginAt == nil {
		t.Error("last_login_at not set")
	}
}
