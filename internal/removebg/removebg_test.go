package removebg_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"minimalist-backend/internal/removebg"
)

func TestClient_Remove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/removebg", r.URL.Path)
		assert.Equal(t, "rb-key", r.Header.Get("X-Api-Key"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "auto", r.FormValue("size"))

		file, header, err := r.FormFile("image_file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "cat.jpg", header.Filename)
		assert.Equal(t, []byte("photo"), data)

		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("cutout"))
	}))
	defer server.Close()

	client := removebg.NewClient(server.URL+"/v1.0/", "rb-key", 5*time.Second)
	img, err := client.Remove(context.Background(), "cat.jpg", []byte("photo"))

	require.NoError(t, err)
	assert.Equal(t, []byte("cutout"), img.Data)
	assert.Equal(t, "image/png", img.MIMEType)
}

func TestClient_RemoveAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"errors":[{"title":"Insufficient credits"}]}`))
	}))
	defer server.Close()

	client := removebg.NewClient(server.URL, "rb-key", 5*time.Second)
	_, err := client.Remove(context.Background(), "cat.jpg", []byte("photo"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 402")
}

func TestClient_RemoveResponseTooLarge(t *testing.T) {
	defer removebg.SetMaxResponseSize(16)()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(bytes.Repeat([]byte("x"), 64))
	}))
	defer server.Close()

	client := removebg.NewClient(server.URL, "rb-key", 5*time.Second)
	img, err := client.Remove(context.Background(), "cat.jpg", []byte("photo"))

	assert.ErrorIs(t, err, removebg.ErrResponseTooLarge)
	assert.Nil(t, img)
}

func TestRemove_EmptyImage(t *testing.T) {
	_, err := removebg.NewClient("http://unused", "k", time.Second).Remove(context.Background(), "a.png", nil)
	assert.ErrorIs(t, err, removebg.ErrEmptyImage)

	_, err = removebg.NewPlaceholderClient("http://unused", time.Second).Remove(context.Background(), "a.png", nil)
	assert.ErrorIs(t, err, removebg.ErrEmptyImage)
}

func TestPlaceholderClient_Remove(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("transparent"))
	}))
	defer server.Close()

	client := removebg.NewPlaceholderClient(server.URL+"/transparent.png", 5*time.Second)
	client.SetBackoffs(time.Millisecond)
	img, err := client.Remove(context.Background(), "cat.jpg", []byte("photo"))

	require.NoError(t, err)
	assert.Equal(t, []byte("transparent"), img.Data)
	assert.Equal(t, 2, calls)
}

func TestPlaceholderClient_RetryExhausted(t *testing.T) {
	client := removebg.NewPlaceholderClient("http://unused", time.Second)
	client.SetBackoffs(time.Millisecond, time.Millisecond)

	err := client.RetryWithBackoff(context.Background(), func() error { return assert.AnError }, 3)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed after 3 retries")
}
