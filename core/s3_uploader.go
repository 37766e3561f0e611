package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// XLSXContentType is the media type of merged workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// S3PutObjectAPI is the part of the S3 client the uploader needs.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader handles uploading files to S3.
type S3Uploader struct {
	Client S3PutObjectAPI
	Bucket string
	Prefix string
}

// NewS3Uploader creates a new uploader.
func NewS3Uploader(cfg aws.Config, bucket, prefix string) *S3Uploader {
	return &S3Uploader{
		Client: s3.NewFromConfig(cfg),
		Bucket: bucket,
		Prefix: prefix,
	}
}

// Key joins the uploader prefix and a relative name into an S3 object key.
func (u *S3Uploader) Key(rel string) string {
	key := path.Join(u.Prefix, filepath.ToSlash(rel))
	return strings.TrimPrefix(key, "/")
}

// UploadDirectory walks the local directory and uploads all files to S3.
func (u *S3Uploader) UploadDirectory(localDir string) error {
	return filepath.Walk(localDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(localDir, p)
		if err != nil {
			return err
		}
		return u.UploadFile(p, u.Key(rel))
	})
}

// UploadFile uploads a single file to S3.
func (u *S3Uploader) UploadFile(localPath, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", localPath, err)
	}
	defer file.Close()

	slog.Info("Uploading to S3", "local", localPath, "bucket", u.Bucket, "key", key)
	return u.put(key, file, "")
}

// UploadBytes uploads an in-memory object.
func (u *S3Uploader) UploadBytes(key string, data []byte, contentType string) error {
	slog.Info("Uploading to S3", "bucket", u.Bucket, "key", key, "bytes", len(data))
	return u.put(key, bytes.NewReader(data), contentType)
}

func (u *S3Uploader) put(key string, body io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(u.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := u.Client.PutObject(context.TODO(), input); err != nil {
		return fmt.Errorf("failed to upload to s3: %w", err)
	}
	return nil
}

// S3Sink saves the merged workbook straight to S3 under Name.
type S3Sink struct {
	Uploader *S3Uploader
	Name     string
}

func (s *S3Sink) Save(f ExcelFile) (string, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", fmt.Errorf("failed to serialise workbook: %w", err)
	}
	key := s.Uploader.Key(s.Name)
	if err := s.Uploader.UploadBytes(key, buf.Bytes(), XLSXContentType); err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", s.Uploader.Bucket, key), nil
}
