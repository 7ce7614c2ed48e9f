package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	appconfig "konfeksiyon-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStore: model görseli yükleme. Testlerde sahte implementasyonla
// değiştirilir, handler S3'e doğrudan bağımlı değildir.
type ImageStore interface {
	Upload(ctx context.Context, fileName, contentType string, body io.Reader) (string, error)
}

// S3Store: görselleri bir S3 bucket'ına yazar ve public URL döner
type S3Store struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
}

func NewS3Store(cfg *appconfig.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("AWS konfigürasyonu yüklenemedi: %w", err)
	}

	return &S3Store{
		client:        s3.NewFromConfig(awsCfg),
		bucket:        cfg.S3Bucket,
		region:        cfg.AWSRegion,
		publicBaseURL: strings.TrimRight(cfg.S3PublicBaseURL, "/"),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, fileName, contentType string, body io.Reader) (string, error) {
	key := "model-images/" + fileName

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("S3 yüklemesi başarısız: %w", err)
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
