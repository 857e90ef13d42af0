package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/repository/contract"
	"faq-chatbot-be/internal/repository/specification"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/pkg/embedding"
	"faq-chatbot-be/pkg/events"

	"github.com/google/uuid"
)

// memDB is an in-memory stand-in for postgres. It understands the
// specifications the services use.
type memDB struct {
	mu       sync.Mutex
	users    []*entity.User
	files    []*entity.File
	messages []*entity.ChatMessage
	chunks   []*entity.KnowledgeChunk

	failMessageCreateAt int // 1-based; 0 disables
	messageCreates      int
	statusUpdateErr     error
}

func newMemDB() *memDB {
	return &memDB{}
}

type memFactory struct {
	db *memDB
}

func (f *memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUoW{db: f.db}
}

// memUoW buffers chat messages and chunks while a transaction is open.
type memUoW struct {
	db            *memDB
	inTx          bool
	pendingMsgs   []*entity.ChatMessage
	pendingChunks []*entity.KnowledgeChunk
}

func (u *memUoW) Begin(ctx context.Context) error {
	if u.inTx {
		return errors.New("transaction already started")
	}
	u.inTx = true
	return nil
}

func (u *memUoW) Commit() error {
	if !u.inTx {
		return errors.New("no transaction to commit")
	}
	u.db.mu.Lock()
	u.db.messages = append(u.db.messages, u.pendingMsgs...)
	u.db.chunks = append(u.db.chunks, u.pendingChunks...)
	u.db.mu.Unlock()
	u.pendingMsgs, u.pendingChunks, u.inTx = nil, nil, false
	return nil
}

func (u *memUoW) Rollback() error {
	if !u.inTx {
		return nil
	}
	u.pendingMsgs, u.pendingChunks, u.inTx = nil, nil, false
	return nil
}

func (u *memUoW) UserRepository() contract.UserRepository {
	return &memUserRepo{db: u.db}
}

func (u *memUoW) FileRepository() contract.FileRepository {
	return &memFileRepo{db: u.db}
}

func (u *memUoW) ChatMessageRepository() contract.ChatMessageRepository {
	return &memMessageRepo{uow: u}
}

func (u *memUoW) KnowledgeChunkRepository() contract.KnowledgeChunkRepository {
	return &memChunkRepo{uow: u}
}

type query struct {
	id        uuid.UUID
	userID    uuid.UUID
	fileID    uuid.UUID
	username  *string
	namespace *string
	desc      bool
	ordered   bool
	limit     int
}

func parseSpecs(specs []specification.Specification) query {
	var q query
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			q.id = v.ID
		case specification.UserOwnedBy:
			q.userID = v.UserID
		case specification.ByFileID:
			q.fileID = v.FileID
		case specification.ByUsername:
			name := v.Username
			q.username = &name
		case specification.ByNamespace:
			ns := v.Namespace
			q.namespace = &ns
		case specification.OrderBy:
			q.ordered = true
			q.desc = v.Desc
		case specification.InFragmentOrder:
			q.ordered = true
		case specification.Pagination:
			q.limit = v.Limit
		}
	}
	return q
}

type memUserRepo struct{ db *memDB }

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *user
	r.db.users = append(r.db.users, &cp)
	return nil
}

func (r *memUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	q := parseSpecs(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if q.username != nil && u.Username != *q.username {
			continue
		}
		if q.id != uuid.Nil && u.Id != q.id {
			continue
		}
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	q := parseSpecs(specs)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, u := range r.db.users {
		if q.username != nil && u.Username != *q.username {
			continue
		}
		n++
	}
	return n, nil
}

type memFileRepo struct{ db *memDB }

func (r *memFileRepo) Create(ctx context.Context, file *entity.File) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *file
	r.db.files = append(r.db.files, &cp)
	return nil
}

func (r *memFileRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.FileStatus, chunkCount int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.statusUpdateErr != nil {
		return r.db.statusUpdateErr
	}
	for _, f := range r.db.files {
		if f.Id == id {
			f.Status = status
			f.ChunkCount = chunkCount
		}
	}
	return nil
}

func (r *memFileRepo) matching(specs []specification.Specification) []*entity.File {
	q := parseSpecs(specs)
	var out []*entity.File
	for _, f := range r.db.files {
		if q.id != uuid.Nil && f.Id != q.id {
			continue
		}
		if q.userID != uuid.Nil && f.UserId != q.userID {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	if q.ordered {
		sort.SliceStable(out, func(i, j int) bool {
			if q.desc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return out
}

func (r *memFileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if found := r.matching(specs); len(found) > 0 {
		return found[0], nil
	}
	return nil, nil
}

func (r *memFileRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.File, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.matching(specs), nil
}

type memMessageRepo struct{ uow *memUoW }

func (r *memMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	db := r.uow.db
	db.mu.Lock()
	db.messageCreates++
	fail := db.failMessageCreateAt > 0 && db.messageCreates == db.failMessageCreateAt
	db.mu.Unlock()
	if fail {
		return errors.New("insert chat_messages: connection reset")
	}

	cp := *message
	if r.uow.inTx {
		r.uow.pendingMsgs = append(r.uow.pendingMsgs, &cp)
		return nil
	}
	db.mu.Lock()
	db.messages = append(db.messages, &cp)
	db.mu.Unlock()
	return nil
}

func (r *memMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	q := parseSpecs(specs)
	db := r.uow.db
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []*entity.ChatMessage
	for _, m := range db.messages {
		if q.userID != uuid.Nil && m.UserId != q.userID {
			continue
		}
		if q.fileID != uuid.Nil && m.FileId != q.fileID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if q.limit > 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out, nil
}

type memChunkRepo struct{ uow *memUoW }

func (r *memChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.KnowledgeChunk) error {
	for _, c := range chunks {
		cp := *c
		if r.uow.inTx {
			r.uow.pendingChunks = append(r.uow.pendingChunks, &cp)
			continue
		}
		r.uow.db.mu.Lock()
		r.uow.db.chunks = append(r.uow.db.chunks, &cp)
		r.uow.db.mu.Unlock()
	}
	return nil
}

func (r *memChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeChunk, error) {
	q := parseSpecs(specs)
	db := r.uow.db
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []*entity.KnowledgeChunk
	for _, c := range db.chunks {
		if q.namespace != nil && c.Namespace != *q.namespace {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	if q.limit > 0 && len(out) > q.limit {
		out = out[:q.limit]
	}
	return out, nil
}

func (r *memChunkRepo) SearchSimilarWithScore(ctx context.Context, vec []float32, namespace string, limit int, threshold float64) ([]*contract.ScoredKnowledgeChunk, error) {
	chunks, _ := r.FindAll(ctx, specification.ByNamespace{Namespace: namespace})
	var out []*contract.ScoredKnowledgeChunk
	for _, c := range chunks {
		score := dot(vec, c.EmbeddingValue)
		if score >= threshold {
			out = append(out, &contract.ScoredKnowledgeChunk{Chunk: c, Similarity: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		if i < len(b) {
			sum += float64(a[i]) * float64(b[i])
		}
	}
	return sum
}

// keywordEmbedder maps text onto a tiny fixed vocabulary.
type keywordEmbedder struct {
	vocabulary []string
	calls      int
	err        error
}

func (e *keywordEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	vec := make([]float32, len(e.vocabulary))
	for i, word := range e.vocabulary {
		if containsFold(text, word) {
			vec[i] = 1
		}
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: vec}}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type insertCall struct {
	texts     []string
	namespace string
}

type recordingStore struct {
	inserts   []insertCall
	documents map[string]string
	err       error
}

func (s *recordingStore) Insert(ctx context.Context, texts []string, namespace string) error {
	if s.err != nil {
		return s.err
	}
	s.inserts = append(s.inserts, insertCall{texts: texts, namespace: namespace})
	return nil
}

func (s *recordingStore) RetrieveAllText(ctx context.Context, indexID string) (string, error) {
	return s.documents[indexID], nil
}

func containsFold(text, word string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(word))
}
