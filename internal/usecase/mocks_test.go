package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// --- MockDocumentStore ---
var _ repository.DocumentStore = (*MockDocumentStore)(nil)

type MockDocumentStore struct {
	CreateFunc func(ctx context.Context, collection string, fields entity.JSON) (string, error)
	DeleteFunc func(ctx context.Context, collection, id string) error
	GetFunc    func(ctx context.Context, collection, id string) (*entity.Document, error)
	ListFunc   func(ctx context.Context, query repository.Query, filters entity.JSON) ([]entity.Document, error)

	CreateCallCount int32
	DeleteCallCount int32

	mu      sync.Mutex
	created []entity.JSON
}

func (m *MockDocumentStore) Create(ctx context.Context, collection string, fields entity.JSON) (string, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	m.mu.Lock()
	m.created = append(m.created, fields)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, collection, fields)
	}
	return "doc-1", nil
}

func (m *MockDocumentStore) Update(ctx context.Context, collection, id string, fields entity.JSON) error {
	return nil
}

func (m *MockDocumentStore) Delete(ctx context.Context, collection, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, collection, id)
	}
	return nil
}

func (m *MockDocumentStore) Get(ctx context.Context, collection, id string) (*entity.Document, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, collection, id)
	}
	return nil, repository.ErrDocumentNotFound
}

func (m *MockDocumentStore) List(ctx context.Context, query repository.Query, filters entity.JSON) ([]entity.Document, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, query, filters)
	}
	return nil, nil
}

func (m *MockDocumentStore) Subscribe(ctx context.Context, query repository.Query, onSnapshot repository.SnapshotFunc, onError repository.ErrorFunc) (repository.Subscription, error) {
	return repository.SubscriptionFunc(func() {}), nil
}

// lastCreated returns the fields of the most recent Create call.
func (m *MockDocumentStore) lastCreated() entity.JSON {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.created) == 0 {
		return nil
	}
	return m.created[len(m.created)-1]
}

// --- MockBlobStore ---
var _ repository.BlobStore = (*MockBlobStore)(nil)

type MockBlobStore struct {
	UploadFunc func(ctx context.Context, name string, content []byte) (string, error)

	UploadCallCount int32
	LastName        string
	LastContent     []byte
}

func (m *MockBlobStore) Upload(ctx context.Context, name string, file io.Reader) (string, error) {
	atomic.AddInt32(&m.UploadCallCount, 1)
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.LastName = name
	m.LastContent = content
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, name, content)
	}
	return "https://res.cloudinary.com/demo/raw/upload/" + name, nil
}

// --- MockNotifier ---
var _ BookingNotifier = (*MockNotifier)(nil)

type MockNotifier struct {
	CallCount int32
	Last      entity.Appointment
}

func (m *MockNotifier) SendBookingAcknowledgement(appointment entity.Appointment) {
	atomic.AddInt32(&m.CallCount, 1)
	m.Last = appointment
}

const (
	pngHeader = "\x89PNG\r\n\x1a\n"
	pdfHeader = "%PDF-1.4\n"
)

func uploadedFile(name, content string) *dto.UploadedFile {
	return &dto.UploadedFile{
		Name:    name,
		Size:    int64(len(content)),
		Content: strings.NewReader(content),
	}
}

var errBackendDown = errors.New("backend unavailable")

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
