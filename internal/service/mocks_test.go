package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// --- MockDocumentStore ---
var _ repository.DocumentStore = (*MockDocumentStore)(nil)

type MockDocumentStore struct {
	CreateFunc    func(ctx context.Context, collection string, fields entity.JSON) (string, error)
	UpdateFunc    func(ctx context.Context, collection, id string, fields entity.JSON) error
	DeleteFunc    func(ctx context.Context, collection, id string) error
	GetFunc       func(ctx context.Context, collection, id string) (*entity.Document, error)
	ListFunc      func(ctx context.Context, query repository.Query, filters entity.JSON) ([]entity.Document, error)
	SubscribeFunc func(ctx context.Context, query repository.Query, onSnapshot repository.SnapshotFunc, onError repository.ErrorFunc) (repository.Subscription, error)

	CreateCallCount    int32
	UpdateCallCount    int32
	DeleteCallCount    int32
	SubscribeCallCount int32
}

func (m *MockDocumentStore) Create(ctx context.Context, collection string, fields entity.JSON) (string, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, collection, fields)
	}
	return "doc-1", nil
}

func (m *MockDocumentStore) Update(ctx context.Context, collection, id string, fields entity.JSON) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, collection, id, fields)
	}
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
	atomic.AddInt32(&m.SubscribeCallCount, 1)
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, query, onSnapshot, onError)
	}
	return repository.SubscriptionFunc(func() {}), nil
}

// listener is one captured live query.
type listener struct {
	query        repository.Query
	onSnapshot   repository.SnapshotFunc
	onError      repository.ErrorFunc
	unsubscribed int32
}

// listenerSet captures every Subscribe call so tests can push snapshots by hand.
type listenerSet struct {
	mu       sync.Mutex
	byName   map[string]*listener
	failOpen map[string]error
}

func newListenerSet() *listenerSet {
	return &listenerSet{
		byName:   map[string]*listener{},
		failOpen: map[string]error{},
	}
}

func (s *listenerSet) subscribe(_ context.Context, query repository.Query, onSnapshot repository.SnapshotFunc, onError repository.ErrorFunc) (repository.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failOpen[query.Collection]; err != nil {
		return nil, err
	}
	l := &listener{query: query, onSnapshot: onSnapshot, onError: onError}
	s.byName[query.Collection] = l
	return repository.SubscriptionFunc(func() {
		atomic.AddInt32(&l.unsubscribed, 1)
	}), nil
}

func (s *listenerSet) get(collection string) *listener {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byName[collection]
}

func (s *listenerSet) push(collection string, docs ...entity.Document) {
	l := s.get(collection)
	if l == nil {
		panic("no listener for " + collection)
	}
	l.onSnapshot(entity.Snapshot{Collection: collection, Documents: docs})
}

// --- MockAuditService ---
var _ AuditService = (*MockAuditService)(nil)

type MockAuditService struct {
	LogCreateCallCount int32
	LogUpdateCallCount int32
	LogDeleteCallCount int32

	mu           sync.Mutex
	LastOldValue interface{}
	LastNewValue interface{}
}

func (m *MockAuditService) LogCreate(ctx context.Context, actor, action, entityName, entityID string, newValue interface{}) error {
	atomic.AddInt32(&m.LogCreateCallCount, 1)
	m.remember(nil, newValue)
	return nil
}

func (m *MockAuditService) LogUpdate(ctx context.Context, actor, action, entityName, entityID string, oldValue, newValue interface{}) error {
	atomic.AddInt32(&m.LogUpdateCallCount, 1)
	m.remember(oldValue, newValue)
	return nil
}

func (m *MockAuditService) LogDelete(ctx context.Context, actor, action, entityName, entityID string, oldValue interface{}) error {
	atomic.AddInt32(&m.LogDeleteCallCount, 1)
	m.remember(oldValue, nil)
	return nil
}

func (m *MockAuditService) remember(oldValue, newValue interface{}) {
	m.mu.Lock()
	m.LastOldValue, m.LastNewValue = oldValue, newValue
	m.mu.Unlock()
}

// --- MockMailer ---
var _ Mailer = (*MockMailer)(nil)

type MockMailer struct {
	EnabledValue bool
	SendFunc     func(to, subject, body string) error

	mu            sync.Mutex
	Sent          []string
	SendCallCount int32
}

func (m *MockMailer) Enabled() bool {
	return m.EnabledValue
}

func (m *MockMailer) Send(to, subject, body string) error {
	atomic.AddInt32(&m.SendCallCount, 1)
	m.mu.Lock()
	m.Sent = append(m.Sent, to)
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, body)
	}
	return nil
}

var errStoreDown = errors.New("store unavailable")

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
