package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/rain-knows/approval-system/config"
	"github.com/rain-knows/approval-system/db"
	filestore "github.com/rain-knows/approval-system/lib/file-storage/store"
	filesapimodels "github.com/rain-knows/approval-system/models/api/files"
	dbmodels "github.com/rain-knows/approval-system/models/db"
)

type Provider interface {
	Upload(ctx context.Context, userID, fileName, contentType string, file []byte) (view filesapimodels.FileView, err error)
	Download(ctx context.Context, id string) (view filesapimodels.FileView, data []byte, hMsg string, err error)
	ListByApproval(approvalID string) (list []filesapimodels.FileView, err error)
	Delete(ctx context.Context, id, userID string) (hMsg string, err error)
}

var Instance Provider

func NewHandler(s3client *minio.Client) {
	Instance = impl{
		s3client: s3client,
		store:    filestore.NewInstance(db.DB),
	}
}

type impl struct {
	s3client *minio.Client
	store    filestore.Provider
}

func (i impl) Upload(ctx context.Context, userID, fileName, contentType string, file []byte) (view filesapimodels.FileView, err error) {
	logger := log.
		WithField("user_id", userID).
		WithField("file_name", fileName)
	if len(file) == 0 {
		return filesapimodels.FileView{}, errors.New("передан пустой файл")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	rec := dbmodels.Attachment{
		Name:        fileName,
		ContentType: contentType,
		Size:        int64(len(file)),
		UploadedBy:  userID,
	}
	rec.ObjectKey = fmt.Sprintf("attachments/%v", uuid.NewString())
	_, err = i.s3client.PutObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey,
		bytes.NewReader(file), rec.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logger.WithError(err).Error("ошибка загрузки файла в хранилище")
		return filesapimodels.FileView{}, err
	}
	id, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения вложения")
		return filesapimodels.FileView{}, err
	}
	rec.ID = id
	logger.WithField("rec_id", id).Info("загружено вложение")
	return filesapimodels.FileConvert(rec), nil
}

func (i impl) Download(ctx context.Context, id string) (view filesapimodels.FileView, data []byte, hMsg string, err error) {
	logger := log.WithField("rec_id", id)
	rec, err := i.store.GetByID(id)
	if err != nil {
		logger.WithError(err).Error("ошибка получения вложения")
		return filesapimodels.FileView{}, nil, "", err
	}
	if rec == nil {
		return filesapimodels.FileView{}, nil, "вложение не найдено", nil
	}
	object, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		logger.WithError(err).Error("ошибка чтения файла из хранилища")
		return filesapimodels.FileView{}, nil, "", err
	}
	defer object.Close()
	data, err = io.ReadAll(object)
	if err != nil {
		logger.WithError(err).Error("ошибка чтения файла из хранилища")
		return filesapimodels.FileView{}, nil, "", err
	}
	return filesapimodels.FileConvert(*rec), data, "", nil
}

func (i impl) ListByApproval(approvalID string) (list []filesapimodels.FileView, err error) {
	recList, err := i.store.ListByApproval(approvalID)
	if err != nil {
		return nil, err
	}
	list = make([]filesapimodels.FileView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, filesapimodels.FileConvert(rec))
	}
	return list, nil
}

// Delete удаляет только свободные вложения, привязанные к согласованию не трогаем
func (i impl) Delete(ctx context.Context, id, userID string) (hMsg string, err error) {
	logger := log.
		WithField("rec_id", id).
		WithField("user_id", userID)
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "вложение не найдено", nil
	}
	if rec.UploadedBy != userID {
		return "удалить вложение может только загрузивший его пользователь", nil
	}
	if rec.ApprovalID != "" {
		return "вложение уже привязано к согласованию", nil
	}
	err = i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, rec.ObjectKey, minio.RemoveObjectOptions{})
	if err != nil {
		logger.WithError(err).Error("ошибка удаления файла из хранилища")
		return "", err
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("ошибка удаления вложения")
		return "", err
	}
	logger.Info("удалено вложение")
	return "", nil
}
