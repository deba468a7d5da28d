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
)

type fakeClassStore struct {
	classes map[primitive.ObjectID]model.Class
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{classes: map[primitive.ObjectID]model.Class{}}
}

func (f *fakeClassStore) List(context.Context) ([]model.Class, error) {
	out := []model.Class{}
	for _, cls := range f.classes {
		out = append(out, cls)
	}
	return out, nil
}

func (f *fakeClassStore) ListApproved(context.Context) ([]model.Class, error) {
	out := []model.Class{}
	for _, cls := range f.classes {
		if cls.Status == model.StatusApproved {
			out = append(out, cls)
		}
	}
	return out, nil
}

func (f *fakeClassStore) ListByEmail(_ context.Context, email string) ([]model.Class, error) {
	out := []model.Class{}
	for _, cls := range f.classes {
		if cls.Email == email {
			out = append(out, cls)
		}
	}
	return out, nil
}

func (f *fakeClassStore) Insert(_ context.Context, cls model.Class) (model.Class, error) {
	cls.ID = primitive.NewObjectID()
	if cls.Status == "" {
		cls.Status = model.StatusPending
	}
	f.classes[cls.ID] = cls
	return cls, nil
}

func (f *fakeClassStore) UpdateFields(_ context.Context, id primitive.ObjectID, upd model.ClassUpdate) error {
	cls, ok := f.classes[id]
	if !ok {
		return repository.ErrNotFound
	}
	cls.Name = upd.Name
	cls.Image = upd.Image
	cls.AvailableSeats = upd.AvailableSeats
	cls.Price = upd.Price
	cls.Details = upd.Details
	cls.Status = upd.Status
	f.classes[id] = cls
	return nil
}

func (f *fakeClassStore) SetStatus(_ context.Context, id primitive.ObjectID, status model.ClassStatus) (int64, error) {
	cls, ok := f.classes[id]
	if !ok {
		return 0, nil
	}
	cls.Status = status
	f.classes[id] = cls
	return 1, nil
}

func (f *fakeClassStore) SetFeedback(_ context.Context, id primitive.ObjectID, feedback string) (int64, error) {
	cls, ok := f.classes[id]
	if !ok {
		return 0, nil
	}
	cls.Feedback = feedback
	f.classes[id] = cls
	return 1, nil
}

func TestCreateClass_DefaultsToPending(t *testing.T) {
	e := echo.New()
	store := newFakeClassStore()
	h := handler.NewClassHandler(store)

	rec := httptest.NewRecorder()
	body := `{"class_name":"Salsa Basics","email":"i@x.com","price":25,"available_seats":10}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/classes", body), rec)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	var created model.Class
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if created.Status != model.StatusPending {
		t.Errorf("status: got %q, want %q", created.Status, model.StatusPending)
	}
}

func TestApproveClass_AppearsInApprovedListing(t *testing.T) {
	e := echo.New()
	store := newFakeClassStore()
	cls, _ := store.Insert(context.Background(), model.Class{Name: "Ballet", Email: "i@x.com"})
	h := handler.NewClassHandler(store)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPatch, "/", nil), rec)
	c.SetPath("/classes/approved/:id")
	c.SetParamNames("id")
	c.SetParamValues(cls.ID.Hex())
	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/approvedClasses", nil), rec)
	if err := h.ListApproved(c); err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	var out []model.Class
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if len(out) != 1 || out[0].ID != cls.ID {
		t.Errorf("approved listing: got %+v, want the approved class", out)
	}
}

func TestUpdateClass_MissingIsNotFound(t *testing.T) {
	e := echo.New()
	h := handler.NewClassHandler(newFakeClassStore())

	rec := httptest.NewRecorder()
	body := `{"class_name":"Salsa","available_seats":5,"price":20}`
	c := e.NewContext(jsonRequest(http.MethodPatch, "/", body), rec)
	c.SetPath("/classes/:id")
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())
	if err := h.Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestFeedback_SetsField(t *testing.T) {
	e := echo.New()
	store := newFakeClassStore()
	cls, _ := store.Insert(context.Background(), model.Class{Name: "Tap", Email: "i@x.com"})
	h := handler.NewClassHandler(store)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/", `{"feedback":"needs a syllabus"}`), rec)
	c.SetPath("/classes/feedback/:id")
	c.SetParamNames("id")
	c.SetParamValues(cls.ID.Hex())
	if err := h.Feedback(c); err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if got := store.classes[cls.ID].Feedback; got != "needs a syllabus" {
		t.Errorf("feedback: got %q, want %q", got, "needs a syllabus")
	}
}
