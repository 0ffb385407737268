package imagestore

import (
	"bytes"
	"context"
	"os"
	"strings"

	Logger "github.com/featherdev/chirp/utils/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultRegion = "us-west-1"

// S3ImageStore hosts images in an S3 bucket fronted by a CDN prefix.
type S3ImageStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

// NewS3ImageStore builds a store over IMAGE_BUCKET / IMAGE_URL_PREFIX from the
// environment.
func NewS3ImageStore() (*S3ImageStore, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = defaultRegion
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating aws session")
	}

	bucket := os.Getenv("IMAGE_BUCKET")
	prefix := os.Getenv("IMAGE_URL_PREFIX")
	if !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}
	return &S3ImageStore{
		bucket:    bucket,
		urlPrefix: prefix,
		uploader:  s3manager.NewUploader(sess),
		svc:       s3.New(sess),
	}, nil
}

func (s *S3ImageStore) Upload(ctx context.Context, dataURI string) (string, error) {
	data, ext, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	key := uuid.New().String() + ext
	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", errors.Wrap(err, "error uploading image")
	}
	return s.urlPrefix + key, nil
}

// Delete derives the object key from the trailing path segment of the hosted
// URL, the same way the previous host's public ids were recovered.
func (s *S3ImageStore) Delete(ctx context.Context, url string) error {
	parts := strings.Split(url, "/")
	key := parts[len(parts)-1]
	if key == "" {
		return nil
	}
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		Logger.Log.Warn("fail to delete hosted image, url: ", url, " err: ", err)
		return errors.Wrap(err, "error deleting image")
	}
	return nil
}
