package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChangeChannelPrefix prefixes the Redis channel that announces writes to a collection.
const ChangeChannelPrefix = "docs:changes:"

var errChangeFeedClosed = errors.New("change feed closed")

// DocumentStore keeps documents in PostgreSQL and drives live queries from
// Redis pub/sub change notifications. Every notification triggers a full
// ordered re-query, so listeners always receive complete result sets.
type DocumentStore struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	now         func() time.Time

	nextID  atomic.Int64
	live    sync.Map // map[int64]*liveQuery
	stopped atomic.Bool
}

func NewDocumentStore(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *DocumentStore {
	return &DocumentStore{
		db:          db,
		redisClient: redisClient,
		log:         log,
		now:         time.Now,
	}
}

var _ domainRepo.DocumentStore = (*DocumentStore)(nil)

func (s *DocumentStore) Create(ctx context.Context, collection string, fields entity.JSON) (string, error) {
	stamp := s.timestamp()
	doc := entity.JSON{}
	for k, v := range fields {
		doc[k] = v
	}
	doc[entity.FieldCreatedAt] = stamp
	doc[entity.FieldUpdatedAt] = stamp

	row := &entity.StoredDocument{
		Collection: collection,
		Fields:     doc,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", fmt.Errorf("create %s document: %w", collection, err)
	}

	s.publish(ctx, collection, row.ID.String())
	return row.ID.String(), nil
}

// Update merges fields into the stored document.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields entity.JSON) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return domainRepo.ErrDocumentNotFound
	}

	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s patch: %w", collection, err)
	}

	result := s.db.WithContext(ctx).Model(&entity.StoredDocument{}).
		Where("id = ? AND collection = ?", docID, collection).
		Updates(map[string]interface{}{
			"fields":     gorm.Expr("fields || ?::jsonb", string(patch)),
			"updated_at": s.now(),
		})
	if result.Error != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrDocumentNotFound
	}

	s.publish(ctx, collection, id)
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return domainRepo.ErrDocumentNotFound
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND collection = ?", docID, collection).
		Delete(&entity.StoredDocument{})
	if result.Error != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrDocumentNotFound
	}

	s.publish(ctx, collection, id)
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*entity.Document, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainRepo.ErrDocumentNotFound
	}

	var row entity.StoredDocument
	err = s.db.WithContext(ctx).Where("id = ? AND collection = ?", docID, collection).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainRepo.ErrDocumentNotFound
		}
		return nil, err
	}
	return &entity.Document{ID: row.ID.String(), Fields: row.Fields}, nil
}

// List returns the collection ordered by query.OrderBy. Filters are matched by jsonb containment.
func (s *DocumentStore) List(ctx context.Context, query domainRepo.Query, filters entity.JSON) ([]entity.Document, error) {
	tx := s.db.WithContext(ctx).Where("collection = ?", query.Collection)

	if len(filters) > 0 {
		encoded, err := json.Marshal(filters)
		if err != nil {
			return nil, fmt.Errorf("encode %s filters: %w", query.Collection, err)
		}
		tx = tx.Where("fields @> ?::jsonb", string(encoded))
	}

	if query.OrderBy != "" {
		direction := "ASC"
		if query.Descending {
			direction = "DESC"
		}
		tx = tx.Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "fields->>? " + direction + ", id " + direction,
			Vars: []interface{}{query.OrderBy},
		}})
	}

	var rows []entity.StoredDocument
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", query.Collection, err)
	}

	docs := make([]entity.Document, len(rows))
	for i, row := range rows {
		docs[i] = entity.Document{ID: row.ID.String(), Fields: row.Fields}
	}
	return docs, nil
}

// Subscribe opens a live query. The first snapshot is delivered right away,
// then one per change notification. Snapshots are delivered sequentially from
// a single goroutine; Unsubscribe must not be called from inside a callback.
func (s *DocumentStore) Subscribe(ctx context.Context, query domainRepo.Query, onSnapshot domainRepo.SnapshotFunc, onError domainRepo.ErrorFunc) (domainRepo.Subscription, error) {
	if s.stopped.Load() {
		return nil, errors.New("document store is closed")
	}

	channel := ChangeChannelPrefix + query.Collection
	pubsub := s.redisClient.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", channel, err)
	}

	lq := s.startLive(ctx, query, pubsub, func(ctx context.Context) ([]entity.Document, error) {
		return s.List(ctx, query, nil)
	}, onSnapshot, onError)

	s.log.Debugf("Live query opened: collection=%s order=%s desc=%t", query.Collection, query.OrderBy, query.Descending)
	return lq, nil
}

// Close detaches every open live query. Safe to call multiple times.
func (s *DocumentStore) Close() {
	if s.stopped.CompareAndSwap(false, true) {
		s.live.Range(func(_, value any) bool {
			value.(*liveQuery).Unsubscribe()
			return true
		})
		s.log.Info("DocumentStore live queries stopped")
	}
}

// startLive registers a live query over feed and starts its delivery goroutine.
func (s *DocumentStore) startLive(ctx context.Context, query domainRepo.Query, feed changeFeed, load loadFunc, onSnapshot domainRepo.SnapshotFunc, onError domainRepo.ErrorFunc) *liveQuery {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	lq := &liveQuery{
		id:         s.nextID.Add(1),
		store:      s,
		query:      query,
		feed:       feed,
		load:       load,
		onSnapshot: onSnapshot,
		onError:    onError,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	s.live.Store(lq.id, lq)

	go lq.run(runCtx)
	return lq
}

func (s *DocumentStore) publish(ctx context.Context, collection, id string) {
	if err := s.redisClient.Publish(ctx, ChangeChannelPrefix+collection, id).Err(); err != nil {
		// The write itself succeeded; listeners catch up on the next change.
		s.log.Warnf("Failed to publish change for %s/%s: %+v", collection, id, err)
	}
}

func (s *DocumentStore) timestamp() string {
	return s.now().UTC().Format(entity.TimestampLayout)
}

// changeFeed is the notification side of a Redis subscription.
type changeFeed interface {
	Channel(opts ...redis.ChannelOption) <-chan *redis.Message
	Close() error
}

type loadFunc func(ctx context.Context) ([]entity.Document, error)

type liveQuery struct {
	id         int64
	store      *DocumentStore
	query      domainRepo.Query
	feed       changeFeed
	load       loadFunc
	onSnapshot domainRepo.SnapshotFunc
	onError    domainRepo.ErrorFunc

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (q *liveQuery) Unsubscribe() {
	q.once.Do(func() {
		q.cancel()
		q.feed.Close()
		<-q.done
		q.store.live.Delete(q.id)
		q.store.log.Debugf("Live query closed: collection=%s", q.query.Collection)
	})
}

func (q *liveQuery) run(ctx context.Context) {
	defer close(q.done)

	if !q.deliver(ctx) {
		return
	}

	changes := q.feed.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				if ctx.Err() == nil {
					q.fail(errChangeFeedClosed)
				}
				return
			}
			// Coalesce a burst of notifications into one re-query.
			drained := false
			for !drained {
				select {
				case _, ok := <-changes:
					if !ok {
						drained = true
					}
				default:
					drained = true
				}
			}
			if !q.deliver(ctx) {
				return
			}
		}
	}
}

func (q *liveQuery) deliver(ctx context.Context) bool {
	docs, err := q.load(ctx)
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		q.fail(err)
		return false
	}
	q.onSnapshot(entity.Snapshot{Collection: q.query.Collection, Documents: docs})
	return true
}

func (q *liveQuery) fail(err error) {
	if q.onError != nil {
		q.onError(fmt.Errorf("live query %s: %w", q.query.Collection, err))
	}
}
