package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/delivery/http/middleware"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrHealthRecordNotFound = errors.New("health record not found")
	ErrHealthRecordNotOwned = errors.New("health record does not belong to you")
	errNoSubject            = errors.New("session subject not found in context")
)

type HealthRecordUsecase interface {
	UploadRecord(ctx context.Context, req *dto.UploadHealthRecordRequest) (*entity.HealthRecord, error)
	GetMyRecords(ctx context.Context) (*dto.HealthRecordListResponse, error)
	DeleteRecord(ctx context.Context, id string) error
	CountRecords(ctx context.Context, ownerID string) (int, error)
}

type healthRecordUsecase struct {
	log   *logrus.Logger
	store repository.DocumentStore
	blobs repository.BlobStore
	now   func() time.Time
}

func NewHealthRecordUsecase(
	log *logrus.Logger,
	store repository.DocumentStore,
	blobs repository.BlobStore,
) HealthRecordUsecase {
	return &healthRecordUsecase{
		log:   log,
		store: store,
		blobs: blobs,
		now:   time.Now,
	}
}

// UploadRecord uploads the file and then stores its record. Nothing is
// written when the upload fails.
func (u *healthRecordUsecase) UploadRecord(ctx context.Context, req *dto.UploadHealthRecordRequest) (*entity.HealthRecord, error) {
	ownerID, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, errNoSubject
	}

	mtype, content, err := inspectUpload(req.File)
	if err != nil {
		return nil, err
	}

	url, err := u.blobs.Upload(ctx, req.File.Name, content)
	if err != nil {
		u.log.Warnf("Failed to upload health record %s for %s: %+v", req.File.Name, ownerID, err)
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	recordType := entity.HealthRecordTypeImage
	if mtype.Is("application/pdf") {
		recordType = entity.HealthRecordTypeDocument
	}

	record := entity.HealthRecord{
		Name:        req.File.Name,
		Type:        recordType,
		ContentType: mtype.String(),
		Date:        u.now().Format(time.DateOnly),
		URL:         url,
		OwnerID:     ownerID,
	}

	id, err := u.store.Create(ctx, entity.CollectionHealthRecords, converter.HealthRecordToFields(&record))
	if err != nil {
		u.log.Errorf("Failed to store health record for %s: %+v", ownerID, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	record.ID = id

	u.log.Infof("Health record stored: id=%s, owner=%s, type=%s", id, ownerID, recordType)
	return &record, nil
}

// GetMyRecords returns the session owner's records, newest first
func (u *healthRecordUsecase) GetMyRecords(ctx context.Context) (*dto.HealthRecordListResponse, error) {
	ownerID, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, errNoSubject
	}

	records, err := u.listOwned(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &dto.HealthRecordListResponse{
		Records: records,
		Total:   len(records),
	}, nil
}

func (u *healthRecordUsecase) DeleteRecord(ctx context.Context, id string) error {
	ownerID, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return errNoSubject
	}

	doc, err := u.store.Get(ctx, entity.CollectionHealthRecords, id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return ErrHealthRecordNotFound
		}
		u.log.Warnf("Failed to find health record %s: %+v", id, err)
		return err
	}

	if doc.Fields.String("ownerId") != ownerID {
		return ErrHealthRecordNotOwned
	}

	if err := u.store.Delete(ctx, entity.CollectionHealthRecords, id); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return ErrHealthRecordNotFound
		}
		u.log.Warnf("Failed to delete health record %s: %+v", id, err)
		return err
	}

	u.log.Infof("Health record deleted: id=%s, owner=%s", id, ownerID)
	return nil
}

func (u *healthRecordUsecase) CountRecords(ctx context.Context, ownerID string) (int, error) {
	records, err := u.listOwned(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (u *healthRecordUsecase) listOwned(ctx context.Context, ownerID string) ([]entity.HealthRecord, error) {
	query := repository.Query{
		Collection: entity.CollectionHealthRecords,
		OrderBy:    entity.FieldCreatedAt,
		Descending: true,
	}
	docs, err := u.store.List(ctx, query, entity.JSON{"ownerId": ownerID})
	if err != nil {
		u.log.Warnf("Failed to list health records for %s: %+v", ownerID, err)
		return nil, err
	}
	return converter.DocumentsToHealthRecords(docs), nil
}
