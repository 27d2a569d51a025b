package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingImageStore struct{}

func (failingImageStore) UploadUserImage(ctx context.Context, image io.Reader) (string, error) {
	return "", errors.New("bucket unavailable")
}

func (s *testServer) upload(field string, content []byte) *httptest.ResponseRecorder {
	s.t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "avatar.jpeg")
	require.NoError(s.t, err)
	_, err = part.Write(content)
	require.NoError(s.t, err)
	require.NoError(s.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/images/user", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestUploadUserImage(t *testing.T) {
	s := newTestServer(t)

	rec := s.upload("file", []byte("jpeg bytes"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"url":"/users/fake.jpeg"}`, rec.Body.String())
	require.Len(t, s.images.uploaded, 1)
	assert.Equal(t, []byte("jpeg bytes"), s.images.uploaded[0])

	rec = s.upload("image", []byte("jpeg bytes"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/images/user", map[string]any{"file": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadUserImageStoreError(t *testing.T) {
	s := newTestServer(t, func(deps *Dependencies) {
		deps.Images = failingImageStore{}
	})

	rec := s.upload("file", []byte("jpeg bytes"))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
