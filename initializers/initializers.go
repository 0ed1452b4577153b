package initializers

import (
	"context"

	"bim-collab-backend/config"
	"bim-collab-backend/fiberlog"
	"bim-collab-backend/lib/application"
	"bim-collab-backend/lib/contract"
	contractgenerator "bim-collab-backend/lib/contract/generator"
	xlsexport "bim-collab-backend/lib/export/xls"
	filestorage "bim-collab-backend/lib/file-storage"
	"bim-collab-backend/lib/notification"
	s3client "bim-collab-backend/s3"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	filestorage.NewHandler(s3client.Client)
	notification.NewHandler()
	contractgenerator.NewHandler()
	application.NewHandler()
	contract.NewHandler()
	xlsexport.NewHandler()
}
