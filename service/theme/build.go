package theme

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	entity "forum.GO/model/entity"
	themeRepo "forum.GO/model/repository/theme"
)

// BuildCss computes the built hash and size for an editor-managed stylesheet
// and clears its pending flag. Link stylesheets are never built.
func BuildCss(c *entity.Css) {
	sum := sha256.Sum256([]byte(c.Source))
	h := hex.EncodeToString(sum[:8])
	c.BuiltHash = &h
	c.Size = int64(len(c.Source))
	c.SourceNeedsBuilding = false
}

// BuildPending rebuilds every stylesheet flagged for building, at most four
// at a time. Returns how many stylesheets were processed.
func BuildPending(db *gorm.DB) (int, error) {
	repo := themeRepo.NewThemeRepository(db)
	pending, err := repo.PendingBuilds()
	if err != nil {
		return 0, err
	}

	eg := new(errgroup.Group)
	eg.SetLimit(4)
	for i := range pending {
		c := pending[i]
		eg.Go(func() error {
			if c.IsLink() {
				return nil
			}
			BuildCss(&c)
			return repo.UpdateCss(&c)
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	return len(pending), nil
}

// RefreshLinkSize asks the remote server for the linked stylesheet's size
// and stores it. Missing Content-Length leaves the recorded size untouched.
func RefreshLinkSize(ctx context.Context, db *gorm.DB, c *entity.Css) error {
	if !c.IsLink() {
		return fmt.Errorf("css %d is not a link", c.CssID)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, *c.URL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.ContentLength > 0 {
		c.Size = resp.ContentLength
	}
	return themeRepo.NewThemeRepository(db).UpdateCss(c)
}
