package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	filestorage "github.com/rain-knows/approval-system/lib/file-storage"
	s3client "github.com/rain-knows/approval-system/s3"
)

func InitS3() {
	err := s3client.Connect()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	err = s3client.MakeBucket(context.Background())
	if err != nil {
		log.WithError(err).Error("Ошибка создания бакета для вложений")
	}

	filestorage.NewHandler(s3client.Client)
	log.Info("S3 клиент успешно инициализирован")
}
