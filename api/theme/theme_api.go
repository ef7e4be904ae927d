package theme

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"forum.GO/api"
	"forum.GO/config"
	"forum.GO/core/cache"
	entity "forum.GO/model/entity"
	themeRepo "forum.GO/model/repository/theme"
	themeService "forum.GO/service/theme"
)

func init() {
	api.RegisterModule(RegisterThemeRoutes)
}

// CacheTag groups all in-process cache entries derived from theme data.
const CacheTag = "theme"

// CacheVersionKey is the redis counter bumped on every theme mutation so
// that other processes drop their cached theme assets.
const CacheVersionKey = "theme:cache-version"

// invalidateCache flushes local theme cache entries and bumps the shared
// redis version.
func invalidateCache() {
	cache.GetInstance().DeleteByTag(CacheTag)
	if config.RedisClient != nil {
		config.RedisClient.Incr(config.RedisCtx(), CacheVersionKey)
	}
}

type themeInput struct {
	Name     string  `json:"name"`
	ParentID *uint   `json:"parent_id"`
	Version  *string `json:"version"`
	Author   *string `json:"author"`
	URL      *string `json:"url"`
}

type cssInput struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type cssLinkInput struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type idsInput struct {
	IDs []uint `json:"ids"`
}

func themeID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// RegisterThemeRoutes sets up the theme administration API under /api/themes.
func RegisterThemeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := themeRepo.NewThemeRepository(db)
	g := apiGroup.Group("/themes")

	// GET /api/themes – all themes, default first
	g.GET("", func(c echo.Context) error {
		themes, err := repo.All()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"themes": themes})
	})

	// POST /api/themes – create a theme
	g.POST("", func(c echo.Context) error {
		var in themeInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
		}
		if in.ParentID != nil {
			if _, err := repo.FindByID(*in.ParentID); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "parent theme not found"})
			}
		}
		t := entity.Theme{
			Name:     in.Name,
			ParentID: in.ParentID,
			Version:  in.Version,
			Author:   in.Author,
			URL:      in.URL,
		}
		if err := repo.Create(&t); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateCache()
		return c.JSON(http.StatusCreated, t)
	})

	// PUT /api/themes/:id – edit a theme (default themes are read-only)
	g.PUT("/:id", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		t, err := findTheme(c, repo, id)
		if t == nil {
			return err
		}
		if t.IsDefault {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "default themes can not be edited"})
		}
		var in themeInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
		}
		t.Name = in.Name
		t.Version = in.Version
		t.Author = in.Author
		t.URL = in.URL
		if err := repo.Update(t); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateCache()
		return c.JSON(http.StatusOK, t)
	})

	// DELETE /api/themes/:id – remove a theme with its assets
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		t, err := findTheme(c, repo, id)
		if t == nil {
			return err
		}
		if t.IsDefault {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "default themes can not be deleted"})
		}
		if err := repo.Delete(id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateCache()
		return c.JSON(http.StatusOK, echo.Map{"deleted": id})
	})

	// POST /api/themes/:id/activate – make a theme the active one
	g.POST("/:id/activate", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		t, err := findTheme(c, repo, id)
		if t == nil {
			return err
		}
		if err := repo.SetActive(id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateCache()
		return c.JSON(http.StatusOK, echo.Map{"active": id})
	})

	registerCssRoutes(g, repo, db)
	registerMediaRoutes(g, repo)
}

func registerCssRoutes(g *echo.Group, repo *themeRepo.ThemeRepository, db *gorm.DB) {
	// GET /api/themes/:id/css – ordered stylesheets
	g.GET("/:id/css", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		css, err := repo.ThemeCss(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"css": css})
	})

	// POST /api/themes/:id/css – create or replace an editor stylesheet
	g.POST("/:id/css", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		t, err := findTheme(c, repo, id)
		if t == nil {
			return err
		}
		if t.IsDefault {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "default themes can not be edited"})
		}
		var in cssInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
		}
		css := entity.Css{ThemeID: id, Name: in.Name, Source: in.Source}
		themeService.BuildCss(&css)
		if err := repo.CreateCss(&css); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateCache()
		return c.JSON(http.StatusCreated, css)
	})

	// PUT /api/themes/:id/css/:cssId – update stylesheet source
	g.PUT("/:id/css/:cssId", func(c echo.Context) error {
		id, cssID, ok := cssIDs(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		css, err := repo.FindCss(id, cssID)
		if err != nil {
			return cssLookupError(c, err)
		}
		if css.IsLink() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "linked stylesheets have no editable source"})
		}
		var in cssInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Name != "" {
			css.Name = in.Name
		}
		css.Source = in.Source
		themeService.BuildCss(css)
		if err := repo.UpdateCss(css); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateCache()
		return c.JSON(http.StatusOK, css)
	})

	// POST /api/themes/:id/css/upload – multipart stylesheet upload
	g.POST("/:id/css/upload", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		file, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
		}
		source, err := readFormFile(file)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		css := entity.Css{ThemeID: id, Name: file.Filename, Source: source}
		themeService.BuildCss(&css)
		if err := repo.CreateCss(&css); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateCache()
		return c.JSON(http.StatusCreated, css)
	})

	// POST /api/themes/:id/css/link – register a remote stylesheet
	g.POST("/:id/css/link", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		var in cssLinkInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if in.Name == "" || in.URL == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and url are required"})
		}
		css := entity.Css{ThemeID: id, Name: in.Name, URL: &in.URL}
		if err := repo.CreateCss(&css); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		// Size refresh is best-effort; the link works without it.
		_ = themeService.RefreshLinkSize(c.Request().Context(), db, &css)
		invalidateCache()
		return c.JSON(http.StatusCreated, css)
	})

	// DELETE /api/themes/:id/css – bulk delete, capped per request
	g.DELETE("/:id/css", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		var in idsInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(in.IDs) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids array is required"})
		}
		if len(in.IDs) > themeRepo.DeleteAssetsLimit {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "too many items, limit is " + strconv.Itoa(themeRepo.DeleteAssetsLimit),
			})
		}
		if err := repo.DeleteCss(id, in.IDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateCache()
		return c.JSON(http.StatusOK, echo.Map{"deleted": in.IDs})
	})

	// POST /api/themes/:id/css/:cssId/move-up
	g.POST("/:id/css/:cssId/move-up", moveCssHandler(repo, repo.MoveCssUp))

	// POST /api/themes/:id/css/:cssId/move-down
	g.POST("/:id/css/:cssId/move-down", moveCssHandler(repo, repo.MoveCssDown))
}

func registerMediaRoutes(g *echo.Group, repo *themeRepo.ThemeRepository) {
	// GET /api/themes/:id/media
	g.GET("/:id/media", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		media, err := repo.ThemeMedia(id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"media": media})
	})

	// POST /api/themes/:id/media – multipart upload with thumbnailing
	g.POST("/:id/media", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		t, err := findTheme(c, repo, id)
		if t == nil {
			return err
		}
		file, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
		}
		m, err := themeService.SaveMedia(id, file)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if err := repo.CreateMedia(m); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateCache()
		return c.JSON(http.StatusCreated, m)
	})

	// DELETE /api/themes/:id/media – bulk delete, capped per request
	g.DELETE("/:id/media", func(c echo.Context) error {
		id, err := themeID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theme id"})
		}
		var in idsInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(in.IDs) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "ids array is required"})
		}
		if len(in.IDs) > themeRepo.DeleteAssetsLimit {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "too many items, limit is " + strconv.Itoa(themeRepo.DeleteAssetsLimit),
			})
		}
		if err := repo.DeleteMedia(id, in.IDs); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		invalidateCache()
		return c.JSON(http.StatusOK, echo.Map{"deleted": in.IDs})
	})
}

func moveCssHandler(repo *themeRepo.ThemeRepository, move func(uint, uint) (bool, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, cssID, ok := cssIDs(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		}
		moved, err := move(id, cssID)
		if err != nil {
			return cssLookupError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"moved": moved})
	}
}

// findTheme loads a theme or writes the error response. A nil theme means
// the response has been sent.
func findTheme(c echo.Context, repo *themeRepo.ThemeRepository, id uint) (*entity.Theme, error) {
	t, err := repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "theme not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return t, nil
}

func cssIDs(c echo.Context) (uint, uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, 0, false
	}
	cssID, err := strconv.ParseUint(c.Param("cssId"), 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return uint(id), uint(cssID), true
}

func readFormFile(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func cssLookupError(c echo.Context, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "stylesheet not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
