package services

import (
	"context"
	"fmt"
	"path"
	"time"

	"ride-compare-backend/internal/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ProfileService handles profile picture uploads via S3 pre-signed URLs
type ProfileService struct {
	store    storage.Storage
	s3Client *s3.Client
	s3Bucket string
	region   string
}

// NewProfileService creates a new profile service
func NewProfileService(
	store storage.Storage,
	awsRegion, s3Bucket, accessKey, secretKey, endpoint string,
) (*ProfileService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(awsRegion),
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &ProfileService{
		store:    store,
		s3Client: s3Client,
		s3Bucket: s3Bucket,
		region:   awsRegion,
	}, nil
}

// UploadResponse carries the pre-signed URL the client PUTs the picture to
// and the public URL recorded on the user row.
type UploadResponse struct {
	UploadURL  string `json:"upload_url"`
	PictureURL string `json:"picture_url"`
	ExpiresIn  int    `json:"expires_in"`
}

// PictureUploadURL generates a pre-signed PUT URL for a profile picture and
// records the resulting object URL on the user.
func (s *ProfileService) PictureUploadURL(ctx context.Context, userID int, filename, contentType string) (*UploadResponse, error) {
	ext := path.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	s3Key := fmt.Sprintf("profiles/%d/%s%s", userID, uuid.New().String(), ext)

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Bucket),
		Key:         aws.String(s3Key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 5 * time.Minute
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	pictureURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Bucket, s.region, s3Key)
	if err := s.store.UpdateProfilePic(ctx, userID, pictureURL); err != nil {
		return nil, fmt.Errorf("failed to record profile picture: %w", err)
	}

	return &UploadResponse{
		UploadURL:  request.URL,
		PictureURL: pictureURL,
		ExpiresIn:  300,
	}, nil
}
