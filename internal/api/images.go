package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/pribylovaa/opensource-sharing/internal/models"
)

// UploadImage загружает файл изображения полем формы "file".
// Изображение остаётся непривязанным, пока проект не отправлен с его id.
func (c *Client) UploadImage(ctx context.Context, name string, r io.Reader) (models.Image, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return models.Image{}, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return models.Image{}, fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return models.Image{}, fmt.Errorf("build form: %w", err)
	}

	var out models.Image
	err = c.send(ctx, http.MethodPost, "/images/upload", nil, &buf, mw.FormDataContentType(), &out)
	return out, err
}

func (c *Client) DeleteImage(ctx context.Context, id int64) error {
	return del(ctx, c, "/images/"+strconv.FormatInt(id, 10))
}

// CleanImages удаляет непривязанные загрузки текущего пользователя.
func (c *Client) CleanImages(ctx context.Context) error {
	return del(ctx, c, "/images/clean")
}
