package initializers

import (
	"context"

	"bim-collab-backend/config"
	s3client "bim-collab-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

func InitS3() {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV2(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("failed to init S3 client")
		return
	}

	s3client.Client = minioClient
	if err = s3client.EnsureBucket(context.Background()); err != nil {
		log.WithError(err).Error("S3 connection check failed")
		return
	}
	log.Info("S3 client initialized")
}
