package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"obra_flow_app_go/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// StorageProvider defines the interface for file storage operations
type StorageProvider interface {
	Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error)
	UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error)
	Delete(ctx context.Context, key string) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error) // Returns reader, content-type, error
	GetSignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
	GetPublicURL(key string) string
	IsConfigured() bool
}

// StorageResult contains information about the stored file
type StorageResult struct {
	Key              string // Storage key/path
	FileName         string // Generated safe filename
	FileOriginalName string // Original filename
	FileSize         int64
	MimeType         string
	URL              string // Public or signed URL
}

// Storage is the global storage instance
var Storage StorageProvider

// InitializeStorage sets up the storage provider based on configuration
func InitializeStorage(cfg *config.Config) {
	if cfg.StorageEndpoint != "" && cfg.StorageAccessKey != "" && cfg.StorageSecretKey != "" && cfg.StorageBucket != "" {
		s3Store, err := NewS3Storage(cfg)
		if err != nil {
			log.Printf("[WARNING] Failed to initialize object storage: %v. Falling back to local storage.", err)
			Storage = NewLocalStorage(cfg.UploadDir)
			log.Println("Storage connection established (Local filesystem - fallback)")
			return
		}

		// Test the bucket connection (HeadBucket)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err = s3Store.client.HeadBucket(ctx, &s3.HeadBucketInput{
			Bucket: &cfg.StorageBucket,
		})
		if err != nil {
			log.Printf("[WARNING] Bucket connection test failed: %v. Falling back to local storage.", err)
			Storage = NewLocalStorage(cfg.UploadDir)
			log.Println("Storage connection established (Local filesystem - fallback)")
			return
		}

		Storage = s3Store
		log.Printf("Storage connection established (S3-compatible - bucket: %s)", cfg.StorageBucket)
	} else {
		Storage = NewLocalStorage(cfg.UploadDir)
		log.Printf("Storage connection established (Local filesystem - path: %s)", cfg.UploadDir)
	}
}

// S3Storage implements StorageProvider against any S3-compatible endpoint
// (Supabase storage, MinIO, AWS itself)
type S3Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

// NewS3Storage creates a new S3-compatible storage provider
func NewS3Storage(cfg *config.Config) (*S3Storage, error) {
	creds := credentials.NewStaticCredentialsProvider(
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		"",
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion(cfg.StorageRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
		o.UsePathStyle = true
	})

	presigner := s3.NewPresignClient(client)

	return &S3Storage{
		client:    client,
		presigner: presigner,
		bucket:    cfg.StorageBucket,
		publicURL: cfg.StoragePublicURL,
	}, nil
}

// IsConfigured returns true if the provider is properly configured
func (r *S3Storage) IsConfigured() bool {
	return r.client != nil && r.bucket != ""
}

// Upload uploads a file to the bucket
func (r *S3Storage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := r.UploadReader(ctx, src, key, contentType, file.Size)
	if err != nil {
		return nil, err
	}
	result.FileOriginalName = file.Filename
	return result, nil
}

// UploadReader uploads content from a reader to the bucket
func (r *S3Storage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}

	_, err := r.client.PutObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &StorageResult{
		Key:      key,
		FileName: filepath.Base(key),
		FileSize: size,
		MimeType: contentType,
		URL:      r.GetPublicURL(key),
	}, nil
}

// Delete removes a file from the bucket
func (r *S3Storage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}

	_, err := r.client.DeleteObject(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// Get retrieves a file from the bucket and returns a reader
func (r *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}

	result, err := r.client.GetObject(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get object: %w", err)
	}

	contentType := "application/octet-stream"
	if result.ContentType != nil {
		contentType = *result.ContentType
	}

	return result.Body, contentType, nil
}

// GetSignedURL generates a presigned URL for temporary access
func (r *S3Storage) GetSignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}

	presignedReq, err := r.presigner.PresignGetObject(ctx, input, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}

	return presignedReq.URL, nil
}

// GetPublicURL returns the public URL for a file (if public URL is configured)
func (r *S3Storage) GetPublicURL(key string) string {
	if r.publicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(r.publicURL, "/"), key)
	}
	// If no public URL, return empty - caller should use GetSignedURL
	return ""
}

// LocalStorage implements StorageProvider for local filesystem
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage creates a new local storage provider
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir}
}

// IsConfigured returns true (local storage is always available)
func (l *LocalStorage) IsConfigured() bool {
	return true
}

// Upload saves a file to local filesystem
func (l *LocalStorage) Upload(ctx context.Context, file *multipart.FileHeader, key string) (*StorageResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := l.UploadReader(ctx, src, key, contentType, file.Size)
	if err != nil {
		return nil, err
	}
	result.FileOriginalName = file.Filename
	return result, nil
}

// UploadReader saves content from a reader to local filesystem
func (l *LocalStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) (*StorageResult, error) {
	fullPath := filepath.Join(l.baseDir, key)

	// Create directory structure
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Create destination file
	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	// Copy content
	written, err := io.Copy(dst, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StorageResult{
		Key:      key,
		FileName: filepath.Base(key),
		FileSize: written,
		MimeType: contentType,
		URL:      "/" + filepath.Join(l.baseDir, key),
	}, nil
}

// Delete removes a file from local filesystem
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath := filepath.Join(l.baseDir, key)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Get retrieves a file from local filesystem and returns a reader
func (l *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	fullPath := filepath.Join(l.baseDir, key)

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	// Detect content type from extension
	contentType := "application/octet-stream"
	ext := strings.ToLower(filepath.Ext(key))
	switch ext {
	case ".pdf":
		contentType = "application/pdf"
	case ".png":
		contentType = "image/png"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".doc":
		contentType = "application/msword"
	case ".docx":
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}

	return file, contentType, nil
}

// GetSignedURL for local storage just returns the file path (no signing needed)
func (l *LocalStorage) GetSignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return "/" + filepath.Join(l.baseDir, key), nil
}

// GetPublicURL returns the local file path
func (l *LocalStorage) GetPublicURL(key string) string {
	return "/" + filepath.Join(l.baseDir, key)
}

// Helper functions for generating storage keys

// GenerateStorageKey creates a unique storage key for files
func GenerateStorageKey(prefix string, originalFilename string) string {
	ext := filepath.Ext(originalFilename)
	uniqueID := uuid.New().String()
	timestamp := time.Now().Unix()
	filename := fmt.Sprintf("%s_%d%s", uniqueID, timestamp, ext)
	return filepath.Join(prefix, filename)
}

// GenerateServiceDocumentKey creates a storage key for service documents
func GenerateServiceDocumentKey(constructionID, serviceID int, originalFilename string) string {
	prefix := fmt.Sprintf("constructions/%d/services/%d", constructionID, serviceID)
	return GenerateStorageKey(prefix, originalFilename)
}

// GenerateIncidenceDocumentKey creates a storage key for incidence responses
func GenerateIncidenceDocumentKey(constructionID, serviceID int, originalFilename string) string {
	prefix := fmt.Sprintf("constructions/%d/services/%d/incidences", constructionID, serviceID)
	return GenerateStorageKey(prefix, originalFilename)
}
