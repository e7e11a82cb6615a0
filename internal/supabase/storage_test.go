package supabase

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedUpload struct {
	path        string
	data        []byte
	contentType string
}

func newFakeStorageClient(t *testing.T) (*StorageClient, *[]recordedUpload, *[]string) {
	t.Helper()
	client, err := NewStorageClient("https://proj.supabase.co/", "service-key", "assets", nil)
	require.NoError(t, err)

	uploads := []recordedUpload{}
	removed := []string{}
	client.upload = func(path string, data io.Reader, contentType string) error {
		body, err := io.ReadAll(data)
		if err != nil {
			return err
		}
		uploads = append(uploads, recordedUpload{path: path, data: body, contentType: contentType})
		return nil
	}
	client.remove = func(paths []string) error {
		removed = append(removed, paths...)
		return nil
	}
	return client, &uploads, &removed
}

func TestNewStorageClient_RequiresSettings(t *testing.T) {
	_, err := NewStorageClient("", "key", "bucket", nil)
	assert.Error(t, err)
}

func TestObjectPath(t *testing.T) {
	assert.Equal(t, "users/u1/generated_image/abc", ObjectPath("u1", "generated_image", "abc"))
}

func TestStorageClient_GetPublicURL(t *testing.T) {
	client, _, _ := newFakeStorageClient(t)

	assert.Equal(t,
		"https://proj.supabase.co/storage/v1/object/public/assets/users/u1/generated_image/abc",
		client.GetPublicURL("users/u1/generated_image/abc"))
}

func TestStorageClient_Upload(t *testing.T) {
	client, uploads, _ := newFakeStorageClient(t)

	url, err := client.Upload(context.Background(), "u1", "background_removal", "rec1", []byte("png"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/assets/users/u1/background_removal/rec1", url)
	require.Len(t, *uploads, 1)
	assert.Equal(t, recordedUpload{
		path:        "users/u1/background_removal/rec1",
		data:        []byte("png"),
		contentType: "image/png",
	}, (*uploads)[0])
}

func TestStorageClient_UploadError(t *testing.T) {
	client, _, _ := newFakeStorageClient(t)
	client.upload = func(string, io.Reader, string) error { return errors.New("bucket not found") }

	_, err := client.Upload(context.Background(), "u1", "generated_image", "rec1", []byte("x"), "image/png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket not found")
}

func TestStorageClient_Delete(t *testing.T) {
	client, _, removed := newFakeStorageClient(t)

	require.NoError(t, client.Delete(context.Background(), "u1", "generated_image", "rec1"))
	assert.Equal(t, []string{"users/u1/generated_image/rec1"}, *removed)
}

func TestStorageClient_CanceledContext(t *testing.T) {
	client, uploads, _ := newFakeStorageClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Upload(ctx, "u1", "generated_image", "rec1", []byte("x"), "image/png")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *uploads)
}
