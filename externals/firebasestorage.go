package externals

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
)

const (
	userImagesFolder  = "users"
	imageCacheControl = "max-age=172800"
)

type ImageStore interface {
	// UploadUserImage stores a jpeg image and returns its path, e.g. /users/<uuid>.jpeg
	UploadUserImage(ctx context.Context, image io.Reader) (string, error)
}

type FirebaseImageStore struct {
	bucket *storage.BucketHandle
}

// NewFirebaseImageStore uses the default bucket of the Firebase app
func NewFirebaseImageStore(ctx context.Context, app *firebase.App) (*FirebaseImageStore, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting storage client: %w", err)
	}
	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting default bucket: %w", err)
	}
	return &FirebaseImageStore{bucket: bucket}, nil
}

func (imageStore *FirebaseImageStore) UploadUserImage(ctx context.Context, image io.Reader) (string, error) {
	key := userImageKey(uuid.NewString())

	writer := imageStore.bucket.Object(key).NewWriter(ctx)
	writer.ContentType = "image/jpeg"
	writer.CacheControl = imageCacheControl

	if _, err := io.Copy(writer, image); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("error uploading image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("error uploading image: %w", err)
	}

	return "/" + key, nil
}

func userImageKey(name string) string {
	return fmt.Sprintf("%s/%s.jpeg", userImagesFolder, name)
}
