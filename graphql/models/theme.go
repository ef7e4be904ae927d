package models

import (
	"strconv"

	gql "github.com/graph-gophers/graphql-go"

	entity "forum.GO/model/entity"
)

// --- Theme ---

type Theme struct {
	ID          gql.ID
	Name        string
	Version     *string
	Author      *string
	Stylesheets []ThemeCss
}

type ThemeCss struct {
	ID    gql.ID
	Name  string
	URL   *string
	Size  int32
	Order int32
}

// NewTheme maps a theme row and its stylesheets to the GraphQL shape.
func NewTheme(t *entity.Theme, css []entity.Css) *Theme {
	if t == nil {
		return nil
	}
	out := &Theme{
		ID:          gql.ID(strconv.FormatUint(uint64(t.ThemeID), 10)),
		Name:        t.Name,
		Version:     t.Version,
		Author:      t.Author,
		Stylesheets: make([]ThemeCss, 0, len(css)),
	}
	for _, c := range css {
		out.Stylesheets = append(out.Stylesheets, ThemeCss{
			ID:    gql.ID(strconv.FormatUint(uint64(c.CssID), 10)),
			Name:  c.Name,
			URL:   c.URL,
			Size:  int32(c.Size),
			Order: int32(c.SortOrder),
		})
	}
	return out
}
