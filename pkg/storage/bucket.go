// Package storage 提供了与对象存储服务（如 MinIO）交互的功能。
package storage

import (
	"context"
	"io"
)

// BucketStore 绑定一个存储桶，提供对象写入能力。
type BucketStore struct {
	bucketName string
}

// NewBucketStore 创建一个绑定到指定存储桶的 BucketStore。
func NewBucketStore(bucketName string) *BucketStore {
	return &BucketStore{bucketName: bucketName}
}

// Put 将对象写入绑定的存储桶。
func (s *BucketStore) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	return PutObject(ctx, s.bucketName, objectName, reader, size, contentType)
}
