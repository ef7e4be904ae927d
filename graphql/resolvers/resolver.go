package resolvers

import (
	"gorm.io/gorm"

	graphqlpkg "forum.GO/graphql"
	"forum.GO/hooks"
	themeRepo "forum.GO/model/repository/theme"
	userRepo "forum.GO/model/repository/user"
)

var _ graphqlpkg.QueryResolver = (*Resolver)(nil)

// Resolver implements the query and mutation fields against the DB and the
// built hook set.
type Resolver struct {
	db     *gorm.DB
	hooks  *hooks.Hooks
	users  *userRepo.UserRepository
	themes *themeRepo.ThemeRepository
}

func NewResolver(db *gorm.DB, h *hooks.Hooks) *Resolver {
	return &Resolver{
		db:     db,
		hooks:  h,
		users:  userRepo.NewUserRepository(db),
		themes: themeRepo.NewThemeRepository(db),
	}
}
