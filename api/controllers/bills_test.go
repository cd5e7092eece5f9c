package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/smartspend-ai/smartspend-backend/api/middleware"
	"github.com/smartspend-ai/smartspend-backend/pkg/config"
	"github.com/smartspend-ai/smartspend-backend/pkg/db/models"
	pkgerrors "github.com/smartspend-ai/smartspend-backend/pkg/errors"
)

type stubBillService struct {
	bill       *models.Bill
	list       []models.Bill
	err        error
	gotUser    uuid.UUID
	gotPayload []byte
	gotType    string
}

func (s *stubBillService) Upload(_ context.Context, userID uuid.UUID, payload []byte, contentType string) (*models.Bill, error) {
	s.gotUser = userID
	s.gotPayload = payload
	s.gotType = contentType
	return s.bill, s.err
}

func (s *stubBillService) List(context.Context, uuid.UUID) ([]models.Bill, error) {
	return s.list, s.err
}

func (s *stubBillService) Get(_ context.Context, _ uuid.UUID, billID uuid.UUID) (*models.Bill, error) {
	if s.bill != nil && s.bill.ID == billID {
		return s.bill, s.err
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bill not found")
}

func multipartBody(t *testing.T, field string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "bill.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestBillUploadSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &stubBillService{bill: &models.Bill{ID: uuid.New(), UserID: userID, TotalAmount: 100}}
	handler := BillUpload(svc, config.UploadConfig{MaxUploadMB: 5}, nil)

	body, contentType := multipartBody(t, "file", []byte("image-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/bills/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotUser != userID {
		t.Fatalf("expected user %s got %s", userID, svc.gotUser)
	}
	if string(svc.gotPayload) != "image-bytes" {
		t.Fatalf("unexpected payload %q", svc.gotPayload)
	}

	var envelope struct {
		Data models.Bill `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalAmount != 100 {
		t.Fatalf("unexpected total %v", envelope.Data.TotalAmount)
	}
}

func TestBillUploadMissingFileField(t *testing.T) {
	svc := &stubBillService{bill: &models.Bill{}}
	handler := BillUpload(svc, config.UploadConfig{MaxUploadMB: 5}, nil)

	body, contentType := multipartBody(t, "attachment", []byte("image-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/bills/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestBillUploadRequiresUserContext(t *testing.T) {
	handler := BillUpload(&stubBillService{}, config.UploadConfig{MaxUploadMB: 5}, nil)

	body, contentType := multipartBody(t, "file", []byte("image-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/bills/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestBillGetInvalidID(t *testing.T) {
	handler := BillGet(&stubBillService{}, nil)

	router := chi.NewRouter()
	router.Get("/api/bills/{billId}", handler)

	req := httptest.NewRequest(http.MethodGet, "/api/bills/not-a-uuid", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestBillGetByID(t *testing.T) {
	billID := uuid.New()
	svc := &stubBillService{bill: &models.Bill{ID: billID}}
	router := chi.NewRouter()
	router.Get("/api/bills/{billId}", BillGet(svc, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/bills/"+billID.String(), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}
