package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/community-news-api/internal/models"
)

type fakeObjectAPI struct {
	puts    []*s3.PutObjectInput
	bodies  [][]byte
	deletes []string
	putErr  error
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, _ := io.ReadAll(in.Body)
	f.puts = append(f.puts, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1709290800123)

	assert.Equal(t, "1709290800123.png", ObjectKey(now, "photo.PNG"))
	assert.Equal(t, "1709290800123.jpeg", ObjectKey(now, "my.holiday.jpeg"))
	assert.Equal(t, "1709290800123.bin", ObjectKey(now, "noextension"))
}

func TestPublicURL(t *testing.T) {
	got := PublicURL("https://proj.supabase.co/storage/v1/object/public/", "article-images", "1.png")
	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/article-images/1.png", got)
}

func TestS3ImageStore_Upload(t *testing.T) {
	api := &fakeObjectAPI{}
	store := newS3ImageStore(api, "article-images", "https://cdn.example", "3600", zerolog.Nop())

	url, err := store.Upload(context.Background(), "42.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/article-images/42.png", url)

	require.Len(t, api.puts, 1)
	in := api.puts[0]
	assert.Equal(t, "article-images", aws.ToString(in.Bucket))
	assert.Equal(t, "42.png", aws.ToString(in.Key))
	assert.Equal(t, "max-age=3600", aws.ToString(in.CacheControl))
	assert.Equal(t, "*", aws.ToString(in.IfNoneMatch))
	assert.Equal(t, "image/png", aws.ToString(in.ContentType))
	assert.Equal(t, []byte("png-bytes"), api.bodies[0])
}

func TestS3ImageStore_UploadFailure(t *testing.T) {
	api := &fakeObjectAPI{putErr: errors.New("PreconditionFailed")}
	store := newS3ImageStore(api, "article-images", "https://cdn.example", "max-age=60", zerolog.Nop())

	_, err := store.Upload(context.Background(), "42.png", "image/png", []byte("x"))
	require.Error(t, err)

	var uploadErr *models.UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, "42.png", uploadErr.Key)
}

func TestS3ImageStore_Delete(t *testing.T) {
	api := &fakeObjectAPI{}
	store := newS3ImageStore(api, "article-images", "", "", zerolog.Nop())

	require.NoError(t, store.Delete(context.Background(), "42.png"))
	assert.Equal(t, []string{"42.png"}, api.deletes)
}
