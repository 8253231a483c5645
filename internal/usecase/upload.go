package usecase

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrFileTooLarge        = errors.New("file exceeds the 5 MB limit")
	ErrUnsupportedFileType = errors.New("only PDF, JPEG and PNG files are accepted")
	ErrUploadFailed        = errors.New("file upload failed")
	ErrStoreWrite          = errors.New("failed to save record")
)

// sniffLen is how much of a file mimetype needs to recognise PDF and images.
const sniffLen = 3072

var acceptedUploadTypes = []string{"application/pdf", "image/jpeg", "image/png"}

// inspectUpload checks the size and sniffed type of file. The returned reader
// yields the complete content again.
func inspectUpload(file *dto.UploadedFile) (*mimetype.MIME, io.Reader, error) {
	if file.Size > entity.MaxUploadSize {
		return nil, nil, ErrFileTooLarge
	}

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Content, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, nil, fmt.Errorf("read upload %s: %w", file.Name, err)
	}
	header = header[:n]

	mtype := mimetype.Detect(header)
	accepted := false
	for _, t := range acceptedUploadTypes {
		if mtype.Is(t) {
			accepted = true
			break
		}
	}
	if !accepted {
		return nil, nil, ErrUnsupportedFileType
	}

	return mtype, io.MultiReader(bytes.NewReader(header), file.Content), nil
}

// displaySeconds rounds the confirmation display duration for responses.
func displaySeconds(d time.Duration) int {
	return int(d.Round(time.Second) / time.Second)
}
