package theme

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	entity "forum.GO/model/entity"
)

const thumbnailSize = 128

// MediaDir returns the directory theme media files are stored under.
func MediaDir() string {
	if dir := os.Getenv("THEME_MEDIA_DIR"); dir != "" {
		return dir
	}
	return "media/themes"
}

// SaveMedia stores an uploaded file under the theme's media directory and,
// for images, records dimensions and writes a webp thumbnail.
func SaveMedia(themeID uint, file *multipart.FileHeader) (*entity.Media, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dir := filepath.Join(MediaDir(), fmt.Sprintf("%d", themeID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	name := filepath.Base(file.Filename)
	dst := filepath.Join(dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return nil, err
	}
	size, err := io.Copy(out, src)
	out.Close()
	if err != nil {
		return nil, err
	}

	m := &entity.Media{
		ThemeID: themeID,
		Name:    name,
		Type:    file.Header.Get("Content-Type"),
		Path:    dst,
		Size:    size,
	}

	if strings.HasPrefix(m.Type, "image/") {
		if img, err := imaging.Open(dst); err == nil {
			m.Width = img.Bounds().Dx()
			m.Height = img.Bounds().Dy()
			if thumb, err := writeThumbnail(img, dst); err == nil {
				m.Thumbnail = &thumb
			}
		}
	}
	return m, nil
}

// writeThumbnail saves a webp thumbnail next to the original file and
// returns its path.
func writeThumbnail(img image.Image, path string) (string, error) {
	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	thumbPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_thumb.webp"

	f, err := os.Create(thumbPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := webp.Encode(f, thumb, &webp.Options{Quality: 80}); err != nil {
		return "", err
	}
	return thumbPath, nil
}
