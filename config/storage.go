package config

import (
	"os"
)

// MediaConfig points at the S3-compatible bucket holding post images.
// Posts store only the public URL; the bytes never pass through this
// service.
type MediaConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetMediaConfig() *MediaConfig {
	region := os.Getenv("MEDIA_S3_REGION")
	if region == "" {
		region = "auto"
	}
	return &MediaConfig{
		Endpoint:        os.Getenv("MEDIA_S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("MEDIA_S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("MEDIA_S3_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("MEDIA_S3_BUCKET"),
		PublicURL:       os.Getenv("MEDIA_PUBLIC_URL"),
		Region:          region,
	}
}
