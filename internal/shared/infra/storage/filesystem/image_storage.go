package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedImage = errors.New("only JPEG and PNG images are allowed")
	ErrImageTooLarge    = errors.New("image exceeds the maximum upload size")
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ImageStorage guarda imágenes subidas en un directorio local como {nombre}_{uuid}{ext}.
type ImageStorage struct {
	dir        string
	publicPath string // prefijo de la URL pública, ej. "/uploads"
	maxSize    int64
}

// NewImageStorage crea el directorio si no existe.
func NewImageStorage(dir, publicPath string, maxSize int64) (*ImageStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create upload dir: %w", err)
	}
	return &ImageStorage{dir: dir, publicPath: strings.TrimRight(publicPath, "/"), maxSize: maxSize}, nil
}

// Dir devuelve el directorio local (para servirlo como estático).
func (s *ImageStorage) Dir() string {
	return s.dir
}

// Save valida tamaño y tipo real del contenido y devuelve la URL pública.
func (s *ImageStorage) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(content, s.maxSize+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrImageTooLarge
	}

	mime := mimetype.Detect(data)
	if !mime.Is("image/jpeg") && !mime.Is("image/png") {
		return "", fmt.Errorf("%w: got %s", ErrUnsupportedImage, mime.String())
	}

	name := fmt.Sprintf("%s_%s%s", baseName(filename), uuid.NewString(), mime.Extension())
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(s.dir, name), data); err != nil {
		return "", err
	}
	return s.publicPath + "/" + name, nil
}

// Delete borra la imagen de una URL pública. Si ya no existe no es un error.
func (s *ImageStorage) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, path.Base(url)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func baseName(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name = unsafeChars.ReplaceAllString(name, "-")
	if name == "" || name == "-" {
		return "image"
	}
	return name
}

func writeFile(dst string, data []byte) error {
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
