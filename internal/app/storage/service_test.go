package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	keys []string
	err  error
}

func (f *fakePresigner) PresignDownload(_ context.Context, key string, d time.Duration) (string, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return "", f.err
	}
	return "https://bucket.example/" + key + "?X-Amz-Expires=" + d.String(), nil
}

func TestStaticResolver(t *testing.T) {
	r := NewStaticResolver("https://cdn.lancini.tn/")
	ctx := context.Background()

	assert.Equal(t, "", r.URL(ctx, "  "))
	assert.Equal(t, "https://cdn.lancini.tn/avatars/u1.png", r.URL(ctx, "/avatars/u1.png"))
	assert.Equal(t, "https://img.host/a.jpg", r.URL(ctx, "https://img.host/a.jpg"))
	assert.Equal(t, "", r.URL(ctx, "data:image/png;base64,AA"))
	assert.Equal(t, "", r.URL(ctx, "javascript:alert(1)"))

	assert.Equal(t, "/uploads/x.png", NewStaticResolver("").URL(ctx, "uploads/x.png"))
}

func TestPresignedResolver(t *testing.T) {
	p := &fakePresigner{}
	r := NewStaticResolver("https://cdn.lancini.tn").WithPresigner(p)
	ctx := context.Background()

	assert.Equal(t, "https://bucket.example/projects/p1.png?X-Amz-Expires=15m0s", r.URL(ctx, "projects/p1.png"))
	assert.Equal(t, "https://img.host/a.jpg", r.URL(ctx, "https://img.host/a.jpg"))
	require.Equal(t, []string{"projects/p1.png"}, p.keys)

	p.err = errors.New("signing failed")
	assert.Equal(t, "", r.URL(ctx, "projects/p2.png"))
}

func TestNewResolverWithoutBucket(t *testing.T) {
	r, err := NewResolver(context.Background(), ServiceConfig{AssetBaseURL: "https://cdn.lancini.tn"})
	require.NoError(t, err)
	assert.Nil(t, r.presigner)
	assert.Equal(t, "https://cdn.lancini.tn/a.png", r.URL(context.Background(), "a.png"))
}

func TestNewResolverWithBucket(t *testing.T) {
	r, err := NewResolver(context.Background(), ServiceConfig{
		S3BucketName:      "assets",
		S3Endpoint:        "https://s3.example.com",
		S3AccessKeyID:     "AKIDEXAMPLE",
		S3SecretAccessKey: "secret",
	})
	require.NoError(t, err)

	got := r.URL(context.Background(), "avatars/u1.png")
	assert.Contains(t, got, "https://s3.example.com/assets/avatars/u1.png")
	assert.Contains(t, got, "X-Amz-Signature=")
}
