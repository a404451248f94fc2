// Package uploadsvc pushes images to the hosted media service using its
// unsigned upload endpoint.
package uploadsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"

	"github.com/ecobirla/ecopoints/core"
)

type cloudinaryService struct {
	url    string
	preset string
	client *http.Client
}

func NewCloudinaryService(conf *core.Config) *cloudinaryService {
	return &cloudinaryService{
		url:    conf.Upload.URL,
		preset: conf.Upload.Preset,
		client: &http.Client{Timeout: conf.Upload.Timeout},
	}
}

// Upload posts the file unsigned with the configured preset and returns the
// hosted secure URL.
func (svc cloudinaryService) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	body, contentType, err := svc.encode(filename, file)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.url, body)
	if err != nil {
		return "", errors.Wrap(err, "building upload request")
	}
	req.Header.Set("Content-Type", contentType)

	res, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "uploading image")
	}
	//goland:noinspection GoUnhandledErrorResult
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		resBody, _ := io.ReadAll(res.Body)
		return "", errors.Errorf("uploading image - status: %d - Body: %s", res.StatusCode, resBody)
	}

	var payload struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", errors.Wrap(err, "decoding upload response")
	}
	if payload.SecureURL == "" {
		return "", errors.New("upload response missing secure_url")
	}
	return payload.SecureURL, nil
}

func (svc cloudinaryService) encode(filename string, file io.Reader) (io.Reader, string, error) {
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)

	if err := w.WriteField("upload_preset", svc.preset); err != nil {
		return nil, "", errors.Wrap(err, "writing upload preset")
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", errors.Wrap(err, "creating file part")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", errors.Wrap(err, "copying file")
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "closing multipart writer")
	}
	return body, w.FormDataContentType(), nil
}
