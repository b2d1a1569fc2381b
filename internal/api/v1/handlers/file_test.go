package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"h2o-bounty/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadApp(t *testing.T) *fiber.App {
	t.Helper()
	prevDir, prevURL := config.UploadDir, config.PublicURL
	config.UploadDir = t.TempDir()
	config.PublicURL = "http://bounty.test/"
	t.Cleanup(func() { config.UploadDir, config.PublicURL = prevDir, prevURL })

	app := fiber.New()
	app.Post("/upload/board_image", UploadBoardImage)
	app.Get("/upload/:filename", GetFile)
	return app
}

func imageRequest(t *testing.T, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload/board_image", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadBoardImage(t *testing.T) {
	app := newUploadApp(t)

	resp, err := app.Test(imageRequest(t, "Logo.PNG", "image/png", []byte("\x89PNG fake")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	data := result["data"].(map[string]interface{})
	filename := data["filename"].(string)
	assert.True(t, strings.HasSuffix(filename, ".png"))
	assert.Equal(t, "http://bounty.test/api/v1/upload/"+filename, data["img_url"])

	_, err = os.Stat(filepath.Join(config.UploadDir, filename))
	assert.NoError(t, err)

	getResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/upload/"+filename, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
}

func TestUploadBoardImageRejectsNonImages(t *testing.T) {
	app := newUploadApp(t)

	resp, err := app.Test(imageRequest(t, "notes.txt", "text/plain", []byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(imageRequest(t, "fake.png", "text/plain", []byte("hello")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateImageSizeLimit(t *testing.T) {
	file := &multipart.FileHeader{Filename: "big.jpg", Size: maxImageSize + 1, Header: textproto.MIMEHeader{"Content-Type": {"image/jpeg"}}}
	assert.Error(t, validateImage(file))

	file.Size = maxImageSize
	assert.NoError(t, validateImage(file))
}

func TestGetFileMissing(t *testing.T) {
	app := newUploadApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/upload/nope.png", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
