// Package manifeststore uploads rendered manifests to S3.
package manifeststore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/samsarahq/go/oops"
	"github.com/santiago-labs/apphost/lib/awssess"
)

const KeyPrefix = "apphost"

type Store struct {
	client s3iface.S3API
	bucket string
}

func New(bucket string) (*Store, error) {
	sess, err := awssess.DefaultSession()
	if err != nil {
		return nil, err
	}
	return NewWithClient(s3.New(sess), bucket), nil
}

func NewWithClient(client s3iface.S3API, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// Key returns the object key a manifest with the given extension is stored at.
func Key(ext string) string {
	return fmt.Sprintf("%s/manifest.%s", KeyPrefix, ext)
}

// Put uploads body and returns the s3:// URI it was written to.
func (s *Store) Put(ctx context.Context, ext string, body []byte) (string, error) {
	if s.bucket == "" {
		return "", oops.Errorf("no bucket configured")
	}

	key := Key(ext)
	contentType := "application/json"
	if ext == "yaml" {
		contentType = "application/yaml"
	}

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", oops.Wrapf(err, "put s3://%s/%s", s.bucket, key)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
