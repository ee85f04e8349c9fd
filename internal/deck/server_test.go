package deck

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/ytget/deck-mobile/internal/model"
)

const testToken = "Basic dGVzdDp0ZXN0"

// fakeDeck is an in-memory Deck server for client tests
type fakeDeck struct {
	mu       sync.Mutex
	boards   []model.Board
	stacks   map[int][]model.Stack
	requests []*http.Request
	bodies   []map[string]any
	nextID   int

	appPasswordDeleted bool
	failStatus         int // when set every Deck route answers with it
}

func newFakeDeck(t *testing.T) (*fakeDeck, *httptest.Server) {
	t.Helper()

	fd := &fakeDeck{
		stacks: make(map[int][]model.Stack),
		nextID: 1000,
	}

	r := mux.NewRouter()
	r.Use(fd.record)

	api := r.PathPrefix(DeckAPIPath).Subrouter()
	api.Use(fd.requireToken)
	api.HandleFunc("/boards", fd.listBoards).Methods(http.MethodGet)
	api.HandleFunc("/boards", fd.createBoard).Methods(http.MethodPost)
	api.HandleFunc("/boards/{boardId:[0-9]+}/stacks", fd.listStacks).Methods(http.MethodGet)
	api.HandleFunc("/boards/{boardId:[0-9]+}/stacks", fd.createStack).Methods(http.MethodPost)
	api.HandleFunc("/boards/{boardId:[0-9]+}/stacks/{stackId:[0-9]+}/cards", fd.createCard).Methods(http.MethodPost)
	api.HandleFunc("/boards/{boardId:[0-9]+}/stacks/{stackId:[0-9]+}/cards/{cardId:[0-9]+}/reorder", fd.reorderCard).Methods(http.MethodPut)

	r.HandleFunc(AppPasswordPath, fd.deleteAppPassword).Methods(http.MethodDelete)
	r.HandleFunc(GetAppPasswordPath, fd.getAppPassword).Methods(http.MethodGet)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return fd, server
}

func (fd *fakeDeck) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil && r.ContentLength != 0 {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		fd.mu.Lock()
		fd.requests = append(fd.requests, r)
		fd.bodies = append(fd.bodies, body)
		fd.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (fd *fakeDeck) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != testToken {
			http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		if fd.failStatus != 0 {
			http.Error(w, `{"message":"failure"}`, fd.failStatus)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (fd *fakeDeck) lastRequest() (*http.Request, map[string]any) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	if len(fd.requests) == 0 {
		return nil, nil
	}
	return fd.requests[len(fd.requests)-1], fd.bodies[len(fd.bodies)-1]
}

func (fd *fakeDeck) id() int {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.nextID++
	return fd.nextID
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func pathInt(r *http.Request, key string) int {
	v, _ := strconv.Atoi(mux.Vars(r)[key])
	return v
}

func (fd *fakeDeck) listBoards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, fd.boards)
}

func (fd *fakeDeck) createBoard(w http.ResponseWriter, r *http.Request) {
	_, body := fd.lastRequest()
	board := model.Board{ID: fd.id(), Title: body["title"].(string), Color: body["color"].(string)}
	writeJSON(w, board)
}

func (fd *fakeDeck) listStacks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, fd.stacks[pathInt(r, "boardId")])
}

func (fd *fakeDeck) createStack(w http.ResponseWriter, r *http.Request) {
	_, body := fd.lastRequest()
	stack := model.Stack{
		ID:      fd.id(),
		BoardID: pathInt(r, "boardId"),
		Title:   body["title"].(string),
		Order:   int(body["order"].(float64)),
	}
	writeJSON(w, stack)
}

func (fd *fakeDeck) createCard(w http.ResponseWriter, r *http.Request) {
	_, body := fd.lastRequest()
	card := model.Card{
		ID:      fd.id(),
		StackID: pathInt(r, "stackId"),
		Title:   body["title"].(string),
		Type:    body["type"].(string),
	}
	if description, ok := body["description"].(string); ok {
		card.Description = description
	}
	writeJSON(w, card)
}

func (fd *fakeDeck) reorderCard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, []model.Card{{ID: pathInt(r, "cardId")}})
}

func (fd *fakeDeck) deleteAppPassword(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != testToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	fd.mu.Lock()
	fd.appPasswordDeleted = true
	fd.mu.Unlock()
	writeJSON(w, map[string]any{"ocs": map[string]any{"meta": map[string]any{"status": "ok"}}})
}

func (fd *fakeDeck) getAppPassword(w http.ResponseWriter, r *http.Request) {
	user, password, ok := r.BasicAuth()
	switch {
	case !ok || user != "alice":
		w.WriteHeader(http.StatusUnauthorized)
	case password == "app-password":
		// already an app-password
		w.WriteHeader(http.StatusForbidden)
	case password == "secret":
		writeJSON(w, map[string]any{"ocs": map[string]any{"data": map[string]any{"apppassword": "generated"}}})
	default:
		w.WriteHeader(http.StatusUnauthorized)
	}
}
