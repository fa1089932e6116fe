package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/postline/api-go/config"
	"github.com/postline/api-go/utils"
)

// MediaStorage is the post-image store. Posts keep only the public URL;
// clients upload the bytes directly with a presigned PUT.
type MediaStorage interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	PublicURL(key string) string
}

// S3MediaStorage implements MediaStorage on any S3-compatible bucket.
type S3MediaStorage struct {
	client *s3.Client
	cfg    *config.MediaConfig
}

func NewS3MediaStorage(cfg *config.MediaConfig) *S3MediaStorage {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})
	return &S3MediaStorage{client: client, cfg: cfg}
}

func (s *S3MediaStorage) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}
	return request.URL, nil
}

func (s *S3MediaStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *S3MediaStorage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", s.cfg.PublicURL, key)
}

type UploadController struct {
	Storage MediaStorage
}

type ImageUploadRequest struct {
	FileName    string `form:"fileName" json:"fileName" binding:"required"`
	ContentType string `form:"contentType" json:"contentType" binding:"required"`
	FileSize    int64  `form:"fileSize" json:"fileSize" binding:"required"`
}

type ImageUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

const maxImageSize = 10 << 20 // 10 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func NewUploadController(storage MediaStorage) *UploadController {
	return &UploadController{Storage: storage}
}

// GetImageUploadURL hands the client a presigned PUT for a post image.
// The returned key goes into the post form's image field, where it is
// verified against the bucket before the post is saved.
func (uc *UploadController) GetImageUploadURL(c *gin.Context) {
	user := utils.GetUser(c)

	var req ImageUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !allowedImageTypes[req.ContentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type"})
		return
	}
	if req.FileSize <= 0 || req.FileSize > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit"})
		return
	}

	key := generateImageKey(user.UserID, req.FileName)
	uploadURL, err := uc.Storage.PresignPut(c.Request.Context(), key, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: ImageUploadResponse{
			UploadURL: uploadURL,
			FileURL:   uc.Storage.PublicURL(key),
			Key:       key,
			ExpiresIn: int((15 * time.Minute).Seconds()),
		},
	})
}

func generateImageKey(userID uint, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("posts/%d/%s%s", userID, uuid.New().String(), ext)
}
