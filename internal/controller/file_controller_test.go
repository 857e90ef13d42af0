package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/pkg/document"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFileService struct {
	gotUser   uuid.UUID
	gotId     uuid.UUID
	gotUpload *dto.UploadFileRequest
	gotSearch *dto.SearchFileRequest
	err       error
}

func (s *stubFileService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadFileRequest) (*dto.UploadFileResponse, error) {
	s.gotUser, s.gotUpload = userId, req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UploadFileResponse{Id: uuid.New(), FileName: req.FileName, Status: "pending"}, nil
}

func (s *stubFileService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.FileSummaryResponse, error) {
	s.gotUser = userId
	return []*dto.FileSummaryResponse{
		{Id: uuid.New(), FileName: "faq.md", Status: "indexed", ChunkCount: 3, CreatedAt: time.Now()},
	}, nil
}

func (s *stubFileService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.ShowFileResponse, error) {
	s.gotUser, s.gotId = userId, id
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ShowFileResponse{Id: id, FileName: "faq.md", FileContent: "Refunds take 14 days.", Status: "indexed"}, nil
}

func (s *stubFileService) Search(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.SearchFileRequest) ([]*dto.SearchFileResult, error) {
	s.gotUser, s.gotId, s.gotSearch = userId, id, req
	return []*dto.SearchFileResult{{Content: "Refunds take 14 days.", Similarity: 0.91}}, nil
}

// newFileTestApp mounts the controller like the server does: under /api and at the root.
func newFileTestApp(files *stubFileService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.NewErrorHandler(logger.NewNopLogger())})
	c := NewFileController(files, serverutils.NewJwtMiddleware(testSecret))
	c.RegisterRoutes(app.Group("/api"))
	c.RegisterRoutes(app)
	return app
}

func uploadRequest(t *testing.T, path, fileName, formName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if formName != "" {
		require.NoError(t, w.WriteField("file_name", formName))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestFileUpload(t *testing.T) {
	tests := []struct {
		name         string
		fileName     string
		formName     string
		serviceErr   error
		wantStatus   int
		wantFileName string
		wantMsg      string
	}{
		{name: "file name from header", fileName: "faq.md", wantStatus: http.StatusCreated, wantFileName: "faq.md"},
		{name: "file name from form", fileName: "upload.txt", formName: "Store FAQ", wantStatus: http.StatusCreated, wantFileName: "Store FAQ"},
		{name: "missing file", formName: "faq", wantStatus: http.StatusBadRequest, wantMsg: "file is required"},
		{name: "unsupported format", fileName: "slides.pptx", serviceErr: document.ErrUnsupportedFormat, wantStatus: http.StatusBadRequest, wantMsg: "unsupported document format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := &stubFileService{err: tt.serviceErr}
			app := newFileTestApp(files)
			userId := uuid.New()

			req := uploadRequest(t, "/api/files/upload", tt.fileName, tt.formName, []byte("Refunds take 14 days."))
			req.Header.Set("Authorization", bearer(t, userId))

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			raw, _ := io.ReadAll(resp.Body)
			if tt.wantMsg != "" {
				assert.Contains(t, string(raw), tt.wantMsg)
			}
			if tt.wantFileName != "" {
				require.NotNil(t, files.gotUpload)
				assert.Equal(t, tt.wantFileName, files.gotUpload.FileName)
				assert.Equal(t, []byte("Refunds take 14 days."), files.gotUpload.Content)
				assert.Equal(t, userId, files.gotUser)
			}
		})
	}
}

func TestFileListIsBareArrayForCaller(t *testing.T) {
	for _, path := range []string{"/files", "/api/files"} {
		t.Run(path, func(t *testing.T) {
			files := &stubFileService{}
			app := newFileTestApp(files)
			userId := uuid.New()

			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Authorization", bearer(t, userId))

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			var list []dto.FileSummaryResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
			require.Len(t, list, 1)
			assert.Equal(t, "faq.md", list[0].FileName)
			assert.Equal(t, userId, files.gotUser)
		})
	}
}

func TestFileListRequiresToken(t *testing.T) {
	app := newFileTestApp(&stubFileService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/files", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFileShow(t *testing.T) {
	fileId := uuid.New()

	tests := []struct {
		name       string
		path       string
		serviceErr error
		wantStatus int
	}{
		{"returns content", "/files/" + fileId.String(), nil, http.StatusOK},
		{"bad id", "/files/not-a-uuid", nil, http.StatusBadRequest},
		{"other user's file", "/files/" + fileId.String(), serverutils.NewNotFoundError("file not found"), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newFileTestApp(&stubFileService{err: tt.serviceErr})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", bearer(t, uuid.New()))

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusOK {
				var body map[string]interface{}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, "Refunds take 14 days.", body["file_content"])
				assert.NotContains(t, body, "data")
			}
		})
	}
}

func TestFileSearch(t *testing.T) {
	fileId := uuid.New()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantLimit  int
	}{
		{"query and limit", "?q=refund&limit=3", http.StatusOK, 3},
		{"default limit", "?q=refund", http.StatusOK, 0},
		{"missing q", "?limit=3", http.StatusBadRequest, 0},
		{"limit too large", "?q=refund&limit=500", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := &stubFileService{}
			app := newFileTestApp(files)

			req := httptest.NewRequest(http.MethodGet, "/api/files/"+fileId.String()+"/search"+tt.query, nil)
			req.Header.Set("Authorization", bearer(t, uuid.New()))

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, files.gotSearch)
				assert.Equal(t, "refund", files.gotSearch.Query)
				assert.Equal(t, tt.wantLimit, files.gotSearch.Limit)
				assert.Equal(t, fileId, files.gotId)
			} else {
				assert.Nil(t, files.gotSearch)
			}
		})
	}
}
