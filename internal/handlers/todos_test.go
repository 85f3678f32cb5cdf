package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/novaos-app/novaos-api/internal/models"
)

func newTodoRouter(repo *mockTodoRepo) *mux.Router {
	h := NewTodoHandler(repo)
	r := mux.NewRouter()
	h.RegisterRoutes(r.PathPrefix("/todos").Subrouter())
	return r
}

func TestCreateTodo(t *testing.T) {
	t.Parallel()

	repo := newMockTodoRepo()
	router := newTodoRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"text":"buy milk"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var todo models.Todo
	decodeData(t, rec.Body.Bytes(), &todo)
	if todo.Text != "buy milk" || todo.Done {
		t.Errorf("todo = %+v, want pending 'buy milk'", todo)
	}
}

func TestCreateTodoEmptyText(t *testing.T) {
	t.Parallel()

	router := newTodoRouter(newMockTodoRepo())

	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"text":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateTodoOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	repo := newMockTodoRepo()
	router := newTodoRouter(repo)

	id := uuid.New()
	_ = repo.Create(nil, &models.Todo{ID: id, Text: "call dentist"})

	req := httptest.NewRequest(http.MethodPatch, "/todos/"+id.String(), strings.NewReader(`{"done":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	stored, _ := repo.GetByID(nil, id)
	if !stored.Done {
		t.Error("Done = false, want true")
	}
	if stored.Text != "call dentist" {
		t.Errorf("Text = %q, want unchanged", stored.Text)
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	t.Parallel()

	router := newTodoRouter(newMockTodoRepo())

	req := httptest.NewRequest(http.MethodPatch, "/todos/"+uuid.NewString(), strings.NewReader(`{"done":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteTodo(t *testing.T) {
	t.Parallel()

	repo := newMockTodoRepo()
	router := newTodoRouter(repo)

	id := uuid.New()
	_ = repo.Create(nil, &models.Todo{ID: id, Text: "old task"})

	req := httptest.NewRequest(http.MethodDelete, "/todos/"+id.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	stored, _ := repo.GetByID(nil, id)
	if stored != nil {
		t.Error("todo still present after delete")
	}
}

func TestInvalidTodoID(t *testing.T) {
	t.Parallel()

	router := newTodoRouter(newMockTodoRepo())

	req := httptest.NewRequest(http.MethodGet, "/todos/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
