package resolvers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	gqlmodels "forum.GO/graphql/models"
)

// ActiveTheme resolves the active theme with its stylesheets in sort order.
func (r *Resolver) ActiveTheme(ctx context.Context) (*gqlmodels.Theme, error) {
	t, err := r.themes.Active()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	css, err := r.themes.ThemeCss(t.ThemeID)
	if err != nil {
		return nil, err
	}
	return gqlmodels.NewTheme(t, css), nil
}
