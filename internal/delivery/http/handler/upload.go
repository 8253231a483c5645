package handler

import (
	"errors"
	"net/http"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
)

// Multipart bodies carry one file of at most MaxUploadSize plus the form fields.
const (
	maxMultipartBody   = entity.MaxUploadSize + 1<<20
	maxMultipartMemory = 8 << 20
)

var errMissingFile = errors.New("file is required")

// formFile opens the named multipart file. release must be called once the
// content has been consumed.
func formFile(r *http.Request, field string) (file *dto.UploadedFile, release func(), err error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, errMissingFile
		}
		return nil, func() {}, err
	}

	return &dto.UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     f,
	}, func() { f.Close() }, nil
}
