package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shopapi/internal/models"
	"shopapi/internal/storage"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockS3 struct {
	mock.Mock
}

func (m *MockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func (m *MockS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestS3Store_Put(t *testing.T) {
	client := new(MockS3)
	store := storage.NewS3Store(client, "assets")

	client.On("PutObject", mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "assets" &&
			strings.HasPrefix(*in.Key, "images/") &&
			strings.HasSuffix(*in.Key, ".png") &&
			*in.ContentType == "image/png"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	key, err := store.Put(context.Background(), "images", &models.Upload{Filename: "x.png", Data: pngHeader})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "images/"))
	client.AssertExpectations(t)
}

func TestS3Store_PutError(t *testing.T) {
	client := new(MockS3)
	store := storage.NewS3Store(client, "assets")
	client.On("PutObject", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := store.Put(context.Background(), "images", &models.Upload{Filename: "x.png", Data: pngHeader})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestS3Store_ExistsAndDelete(t *testing.T) {
	client := new(MockS3)
	store := storage.NewS3Store(client, "assets")

	client.On("HeadObject", mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Key == "images/a.png"
	})).Return(&s3.HeadObjectOutput{}, nil).Once()
	client.On("HeadObject", mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return *in.Key == "images/missing.png"
	})).Return(nil, &types.NotFound{}).Once()
	client.On("DeleteObject", mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return *in.Bucket == "assets" && *in.Key == "images/a.png"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	ok, err := store.Exists(context.Background(), "images/a.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Exists(context.Background(), "images/missing.png")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(context.Background(), "images/a.png"))
	client.AssertExpectations(t)
}
