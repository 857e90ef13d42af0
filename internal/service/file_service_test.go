package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/entity"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/pkg/document"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingJobs struct {
	payloads [][]byte
	err      error
}

func (r *recordingJobs) Publish(ctx context.Context, payload []byte) error {
	r.payloads = append(r.payloads, payload)
	return r.err
}

func newFileFixture() (IFileService, *memDB, *recordingJobs, *keywordEmbedder) {
	db := newMemDB()
	jobs := &recordingJobs{}
	embedder := &keywordEmbedder{vocabulary: []string{"refund", "shipping", "warranty"}}
	svc := NewFileService(&memFactory{db: db}, jobs, embedder, 0.5, logger.NewNopLogger())
	return svc, db, jobs, embedder
}

func TestUploadPersistsAndEnqueues(t *testing.T) {
	svc, db, jobs, _ := newFileFixture()
	userId := uuid.New()

	res, err := svc.Upload(context.Background(), userId, &dto.UploadFileRequest{
		FileName: "faq.md",
		Content:  []byte("# Refunds\n\nRefunds take 14 days."),
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", res.Status)

	require.Len(t, db.files, 1)
	stored := db.files[0]
	assert.Equal(t, res.Id.String(), stored.IndexId)
	assert.Equal(t, userId, stored.UserId)
	assert.Contains(t, stored.Content, "Refunds take 14 days.")

	require.Len(t, jobs.payloads, 1)
	var job dto.PublishEmbedFileMessage
	require.NoError(t, json.Unmarshal(jobs.payloads[0], &job))
	assert.Equal(t, res.Id, job.FileId)
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	svc, db, jobs, _ := newFileFixture()

	_, err := svc.Upload(context.Background(), uuid.New(), &dto.UploadFileRequest{FileName: "slides.pptx", Content: []byte("PK..")})
	assert.ErrorIs(t, err, document.ErrUnsupportedFormat)
	assert.Empty(t, db.files)
	assert.Empty(t, jobs.payloads)
}

func TestUploadMarksFileFailedWhenQueueIsDown(t *testing.T) {
	svc, db, jobs, _ := newFileFixture()
	jobs.err = errors.New("closed")

	_, err := svc.Upload(context.Background(), uuid.New(), &dto.UploadFileRequest{FileName: "faq.txt", Content: []byte("hello")})
	require.Error(t, err)
	require.Len(t, db.files, 1)
	assert.Equal(t, entity.FileStatusFailed, db.files[0].Status)
}

func TestUploadLogsFailedStatusUpdate(t *testing.T) {
	db := newMemDB()
	db.statusUpdateErr = errors.New("connection refused")
	jobs := &recordingJobs{err: errors.New("closed")}
	core, logs := observer.New(zap.ErrorLevel)
	svc := NewFileService(&memFactory{db: db}, jobs, &keywordEmbedder{}, 0.5, logger.NewZapLoggerFromCore(core))

	_, err := svc.Upload(context.Background(), uuid.New(), &dto.UploadFileRequest{FileName: "faq.txt", Content: []byte("hello")})
	require.Error(t, err)

	entries := logs.FilterMessage("Failed to mark file failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "connection refused", entries[0].ContextMap()["details"].(map[string]interface{})["error"])
}

func TestGetAllListsOwnFilesNewestFirst(t *testing.T) {
	svc, db, _, _ := newFileFixture()
	owner := uuid.New()
	now := time.Now()
	db.files = append(db.files,
		&entity.File{Id: uuid.New(), UserId: owner, FileName: "old.txt", CreatedAt: now.Add(-time.Hour)},
		&entity.File{Id: uuid.New(), UserId: uuid.New(), FileName: "theirs.txt", CreatedAt: now},
		&entity.File{Id: uuid.New(), UserId: owner, FileName: "new.txt", CreatedAt: now},
	)

	files, err := svc.GetAll(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "new.txt", files[0].FileName)
	assert.Equal(t, "old.txt", files[1].FileName)
}

func TestShowHidesOtherUsersFiles(t *testing.T) {
	svc, db, _, _ := newFileFixture()
	file := &entity.File{Id: uuid.New(), UserId: uuid.New(), FileName: "a.txt", Content: "secret"}
	db.files = append(db.files, file)

	res, err := svc.Show(context.Background(), file.UserId, file.Id)
	require.NoError(t, err)
	assert.Equal(t, "secret", res.FileContent)

	_, err = svc.Show(context.Background(), uuid.New(), file.Id)
	var httpErr *serverutils.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
}

func TestSearchRanksFragmentsOfOneFile(t *testing.T) {
	svc, db, _, embedder := newFileFixture()
	file := &entity.File{Id: uuid.New(), UserId: uuid.New(), IndexId: "idx-1"}
	db.files = append(db.files, file)

	store := NewKnowledgeStore(&memFactory{db: db}, embedder, 0, logger.NewNopLogger())
	require.NoError(t, store.Insert(context.Background(), []string{"refund window", "shipping cost", "warranty terms"}, "idx-1"))
	require.NoError(t, store.Insert(context.Background(), []string{"refund elsewhere"}, "idx-2"))

	results, err := svc.Search(context.Background(), file.UserId, file.Id, &dto.SearchFileRequest{Query: "refund?"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "refund window", results[0].Content)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
}
