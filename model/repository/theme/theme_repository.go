package theme

import (
	"gorm.io/gorm"

	entity "forum.GO/model/entity"
)

// DeleteAssetsLimit caps how many assets one delete request may remove.
const DeleteAssetsLimit = 20

type ThemeRepository struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

func (r *ThemeRepository) All() ([]entity.Theme, error) {
	var themes []entity.Theme
	err := r.db.Order("is_default DESC, name ASC").Find(&themes).Error
	return themes, err
}

func (r *ThemeRepository) FindByID(id uint) (*entity.Theme, error) {
	var t entity.Theme
	if err := r.db.First(&t, "theme_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ThemeRepository) Active() (*entity.Theme, error) {
	var t entity.Theme
	if err := r.db.First(&t, "is_active = ?", true).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ThemeRepository) Create(t *entity.Theme) error {
	return r.db.Create(t).Error
}

func (r *ThemeRepository) Update(t *entity.Theme) error {
	return r.db.Save(t).Error
}

// Delete removes a theme with its css and media rows.
func (r *ThemeRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.Css{}, "theme_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.Media{}, "theme_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Theme{}, "theme_id = ?", id).Error
	})
}

// SetActive makes one theme active and deactivates the rest.
func (r *ThemeRepository) SetActive(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Theme{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Theme{}).Where("theme_id = ?", id).
			Update("is_active", true).Error
	})
}

// --- CSS assets ---

func (r *ThemeRepository) ThemeCss(themeID uint) ([]entity.Css, error) {
	var css []entity.Css
	err := r.db.Where("theme_id = ?", themeID).Order("sort_order ASC, css_id ASC").Find(&css).Error
	return css, err
}

// FindCss returns one stylesheet scoped to a theme.
func (r *ThemeRepository) FindCss(themeID, cssID uint) (*entity.Css, error) {
	var c entity.Css
	err := r.db.Where("theme_id = ? AND css_id = ?", themeID, cssID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ThemeRepository) CreateCss(c *entity.Css) error {
	if c.SortOrder == 0 {
		var max int
		r.db.Model(&entity.Css{}).Where("theme_id = ?", c.ThemeID).
			Select("COALESCE(MAX(sort_order), 0)").Scan(&max)
		c.SortOrder = max + 1
	}
	return r.db.Create(c).Error
}

func (r *ThemeRepository) UpdateCss(c *entity.Css) error {
	return r.db.Save(c).Error
}

// DeleteCss removes up to DeleteAssetsLimit stylesheets of one theme.
// Unknown IDs are ignored.
func (r *ThemeRepository) DeleteCss(themeID uint, ids []uint) error {
	if len(ids) > DeleteAssetsLimit {
		ids = ids[:DeleteAssetsLimit]
	}
	return r.db.Delete(&entity.Css{}, "theme_id = ? AND css_id IN ?", themeID, ids).Error
}

// MoveCssUp swaps a stylesheet with its predecessor. Returns false if it is
// already first.
func (r *ThemeRepository) MoveCssUp(themeID, cssID uint) (bool, error) {
	return r.swapCss(themeID, cssID, true)
}

// MoveCssDown swaps a stylesheet with its successor. Returns false if it is
// already last.
func (r *ThemeRepository) MoveCssDown(themeID, cssID uint) (bool, error) {
	return r.swapCss(themeID, cssID, false)
}

func (r *ThemeRepository) swapCss(themeID, cssID uint, up bool) (bool, error) {
	css, err := r.ThemeCss(themeID)
	if err != nil {
		return false, err
	}
	idx := -1
	for i := range css {
		if css[i].CssID == cssID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, gorm.ErrRecordNotFound
	}
	other := idx - 1
	if !up {
		other = idx + 1
	}
	if other < 0 || other >= len(css) {
		return false, nil
	}
	a, b := css[idx], css[other]
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Css{}).Where("css_id = ?", a.CssID).
			Update("sort_order", b.SortOrder).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Css{}).Where("css_id = ?", b.CssID).
			Update("sort_order", a.SortOrder).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// PendingBuilds returns stylesheets whose source still needs building.
func (r *ThemeRepository) PendingBuilds() ([]entity.Css, error) {
	var css []entity.Css
	err := r.db.Where("source_needs_building = ?", true).Find(&css).Error
	return css, err
}

// --- Media assets ---

func (r *ThemeRepository) ThemeMedia(themeID uint) ([]entity.Media, error) {
	var media []entity.Media
	err := r.db.Where("theme_id = ?", themeID).Order("media_id ASC").Find(&media).Error
	return media, err
}

func (r *ThemeRepository) CreateMedia(m *entity.Media) error {
	return r.db.Create(m).Error
}

// DeleteMedia removes up to DeleteAssetsLimit media files of one theme.
func (r *ThemeRepository) DeleteMedia(themeID uint, ids []uint) error {
	if len(ids) > DeleteAssetsLimit {
		ids = ids[:DeleteAssetsLimit]
	}
	return r.db.Delete(&entity.Media{}, "theme_id = ? AND media_id IN ?", themeID, ids).Error
}
