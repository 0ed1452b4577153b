package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"bim-collab-backend/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// UploadContractPDF archives a rendered contract; every upload gets a
	// unique object name so earlier renders are never overwritten.
	UploadContractPDF(ctx context.Context, contractID string, body []byte) error
	GetContractPDF(ctx context.Context, objectName string) ([]byte, error)
	ListContractPDFs(ctx context.Context, contractID string) ([]string, error)
}

var Instance Provider

func NewHandler(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) UploadContractPDF(ctx context.Context, contractID string, body []byte) error {
	objectName := fmt.Sprintf("contracts/%s/%s.pdf", contractID, uuid.NewString())
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectName,
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return err
	}
	log.
		WithField("contract_id", contractID).
		WithField("object_name", objectName).
		Info("contract PDF archived")
	return nil
}

func (i impl) GetContractPDF(ctx context.Context, objectName string) ([]byte, error) {
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()
	return io.ReadAll(object)
}

func (i impl) ListContractPDFs(ctx context.Context, contractID string) ([]string, error) {
	prefix := fmt.Sprintf("contracts/%s/", contractID)
	names := []string{}
	for object := range i.s3client.ListObjects(ctx, config.Conf.S3.BucketName,
		minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if object.Err != nil {
			return nil, object.Err
		}
		names = append(names, object.Key)
	}
	return names, nil
}
