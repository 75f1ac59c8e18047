package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"

	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/domain"
)

var (
	ErrNoPhotos = errors.New("no photos to upload")
	ErrUpload   = errors.New("failed to upload pet photos")
)

// UploadPetPhotos sends photos as a GraphQL multipart request
// (operations + map + one part per file) and returns the created assets
// together with any session token the API issued.
func (c *Client) UploadPetPhotos(ctx context.Context, token string, photos []domain.Photo) ([]domain.UploadedAsset, string, error) {
	if len(photos) == 0 {
		return nil, "", ErrNoPhotos
	}

	body, contentType, err := multipartBody(photos)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	env, newToken, fail := c.exchange(ctx, token, opUploadPetPhotos, body, contentType)
	if fail != nil {
		return nil, newToken, fmt.Errorf("%w: %w", ErrUpload, fail)
	}
	raw, fail := env.payload(opUploadPetPhotos.field)
	if fail != nil {
		c.logger.Error("upload errors", zap.String("message", fail.Message))
		return nil, newToken, fmt.Errorf("%w: %w", ErrUpload, fail)
	}

	var assets []domain.UploadedAsset
	if err := json.Unmarshal(raw, &assets); err != nil {
		return nil, newToken, fmt.Errorf("%w: decode assets: %v", ErrUpload, err)
	}
	return assets, newToken, nil
}

func multipartBody(photos []domain.Photo) (io.Reader, string, error) {
	files := make([]any, len(photos))
	fileMap := make(map[string][]string, len(photos))
	for i := range photos {
		fileMap[strconv.Itoa(i)] = []string{"variables.files." + strconv.Itoa(i)}
	}

	operations, err := json.Marshal(gqlRequest{
		Query:     opUploadPetPhotos.query,
		Variables: map[string]any{"files": files},
	})
	if err != nil {
		return nil, "", err
	}
	mapping, err := json.Marshal(fileMap)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("operations", string(operations)); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("map", string(mapping)); err != nil {
		return nil, "", err
	}
	for i, p := range photos {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%d"; filename=%q`, i, p.Filename))
		ct := p.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, p.Body); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
