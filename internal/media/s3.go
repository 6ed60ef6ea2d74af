package media

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"shree-admin/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

const (
	emptyAWSSessionToken         = ""
	defaultS3Region              = "us-east-1"
	objectPrefix                 = "uploads/"
	errFailedCreateAWSSessionFmt = "failed to create AWS session: %w"
	errFailedUploadFmt           = "failed to upload asset: %w"
	errFailedDeleteObjectFmt     = "failed to delete object: %w"
	errForeignURLFmt             = "url %q is not in bucket %s"
)

// S3Uploader puts assets in a bucket under random keys.
type S3Uploader struct {
	svc           *s3.S3
	uploader      *s3manager.Uploader
	bucket        string
	publicBaseURL string
}

func NewS3Uploader(cfg config.AssetConfig) (*S3Uploader, error) {
	region := cfg.Region
	if region == "" {
		region = defaultS3Region
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			emptyAWSSessionToken,
		),
	})
	if err != nil {
		return nil, fmt.Errorf(errFailedCreateAWSSessionFmt, err)
	}

	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
	}

	return &S3Uploader{
		svc:           s3.New(sess),
		uploader:      s3manager.NewUploader(sess),
		bucket:        cfg.Bucket,
		publicBaseURL: base,
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, asset Asset) (string, error) {
	key := BuildObjectKey(asset)
	input := &s3manager.UploadInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(asset.Data),
	}
	if asset.ContentType != "" {
		input.ContentType = aws.String(asset.ContentType)
	}

	if _, err := u.uploader.UploadWithContext(ctx, input); err != nil {
		return "", fmt.Errorf(errFailedUploadFmt, err)
	}
	return u.publicBaseURL + "/" + key, nil
}

// Delete removes an object previously returned by Upload.
func (u *S3Uploader) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, u.publicBaseURL+"/")
	if !ok {
		return fmt.Errorf(errForeignURLFmt, url, u.bucket)
	}
	_, err := u.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf(errFailedDeleteObjectFmt, err)
	}
	return nil
}

// BuildObjectKey names an asset by a random id, keeping its extension.
func BuildObjectKey(asset Asset) string {
	return objectPrefix + uuid.NewString() + asset.Ext()
}
