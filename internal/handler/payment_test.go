package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/magicdancearts/server/internal/handler"
	"github.com/magicdancearts/server/internal/model"
	"github.com/magicdancearts/server/internal/repository"
	"github.com/magicdancearts/server/internal/service"
)

type fakePaymentStore struct {
	payments []model.Payment
}

func (f *fakePaymentStore) ListByEmail(_ context.Context, email string) ([]model.Payment, error) {
	out := []model.Payment{}
	for _, p := range f.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeIntents struct {
	lastPrice float64
	secret    string
}

func (f *fakeIntents) CreateIntent(price float64) (string, error) {
	f.lastPrice = price
	return f.secret, nil
}

type fakeCompleter struct {
	result service.CompletedPayment
	err    error
	got    model.Payment
}

func (f *fakeCompleter) CompletePayment(_ context.Context, p model.Payment) (service.CompletedPayment, error) {
	f.got = p
	return f.result, f.err
}

func TestCreateIntent_ReturnsClientSecret(t *testing.T) {
	e := echo.New()
	intents := &fakeIntents{secret: "pi_123_secret_456"}
	h := handler.NewPaymentHandler(&fakePaymentStore{}, intents, &fakeCompleter{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/create-payment-intent", `{"price":19.99}`), rec)
	if err := h.CreateIntent(c); err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp["clientSecret"] != "pi_123_secret_456" {
		t.Errorf("clientSecret: got %q", resp["clientSecret"])
	}
	if intents.lastPrice != 19.99 {
		t.Errorf("price passed to gateway: got %v, want 19.99", intents.lastPrice)
	}
}

func TestCreateIntent_RejectsNonPositivePrice(t *testing.T) {
	e := echo.New()
	h := handler.NewPaymentHandler(&fakePaymentStore{}, &fakeIntents{}, &fakeCompleter{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/create-payment-intent", `{"price":0}`), rec)
	if err := h.CreateIntent(c); err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreatePayment_Success(t *testing.T) {
	e := echo.New()
	completer := &fakeCompleter{
		result: service.CompletedPayment{
			InsertedID:   primitive.NewObjectID(),
			DeletedCount: 1,
			UpdatedClass: model.Class{AvailableSeats: 9, EnrolledStudents: 1},
		},
	}
	h := handler.NewPaymentHandler(&fakePaymentStore{}, &fakeIntents{}, completer)

	body := `{"email":"a@x.com","price":25,"classId":"` + primitive.NewObjectID().Hex() +
		`","selectionId":"` + primitive.NewObjectID().Hex() + `","transactionId":"pi_123"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/payments", body), rec)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var resp struct {
		DeletedCount int64       `json:"deletedCount"`
		UpdatedClass model.Class `json:"updatedClass"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.DeletedCount != 1 {
		t.Errorf("deletedCount: got %d, want 1", resp.DeletedCount)
	}
	if resp.UpdatedClass.AvailableSeats != 9 || resp.UpdatedClass.EnrolledStudents != 1 {
		t.Errorf("updated class counters: got %+v", resp.UpdatedClass)
	}
	if completer.got.TransactionID != "pi_123" {
		t.Errorf("transaction id passed through: got %q", completer.got.TransactionID)
	}
}

func TestCreatePayment_DuplicateTransaction(t *testing.T) {
	e := echo.New()
	completer := &fakeCompleter{err: repository.ErrDuplicatePayment}
	h := handler.NewPaymentHandler(&fakePaymentStore{}, &fakeIntents{}, completer)

	body := `{"email":"a@x.com","price":25,"classId":"` + primitive.NewObjectID().Hex() +
		`","selectionId":"` + primitive.NewObjectID().Hex() + `","transactionId":"pi_123"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/payments", body), rec)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestListPayments(t *testing.T) {
	e := echo.New()
	store := &fakePaymentStore{payments: []model.Payment{
		{Email: "a@x.com", TransactionID: "pi_1"},
		{Email: "b@x.com", TransactionID: "pi_2"},
	}}
	h := handler.NewPaymentHandler(store, &fakeIntents{}, &fakeCompleter{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetPath("/payments/:email")
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	var out []model.Payment
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(out) != 1 || out[0].TransactionID != "pi_1" {
		t.Errorf("payments: got %+v, want only a@x.com's payment", out)
	}
}
