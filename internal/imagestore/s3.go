package imagestore

import (
	"bytes"
	"context"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store uploads image bytes to an S3-compatible bucket and hands the
// public object URL to the embed. Useful when inlined data URLs would
// bloat drafts beyond what the key-value store tolerates.
type S3Store struct { // implements Store
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Store(accessKeyID, accessKeySecret, baseEndpoint, bucket, publicURL string) *S3Store {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, accessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		imageLogger.Fatal().Err(err).Msg("Error initializing S3 client")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(baseEndpoint)
	})

	return &S3Store{
		client:    client,
		bucket:    bucket,
		publicURL: publicURL,
	}
}

func (s *S3Store) Put(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}

	key := uuid.New().String() + path.Ext(name)
	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return "", err
	}

	imageLogger.Info().Str("key", key).Str("name", name).Msg("Uploaded image")
	return s.publicURL + "/" + key, nil
}
