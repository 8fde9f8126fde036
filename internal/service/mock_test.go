package service

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sakif/book-requests/internal/apperror"
	"github.com/sakif/book-requests/internal/model"
)

// =========================================================================
// MOCK REPOSITORY
// =========================================================================
//
// mockStore implements all three repository interfaces in memory, the same
// way *sqlite.DB does on disk. Setting failWith makes every call return that
// error, which lets tests exercise the service's failure paths.

type pairKey struct{ userID, bookID int64 }

type mockStore struct {
	books    []model.Book
	users    map[string]*model.User
	requests map[int64]*model.BookRequest
	byPair   map[pairKey]int64
	nextID   int64
	failWith error
}

func newMockStore(titles ...string) *mockStore {
	m := &mockStore{
		users:    make(map[string]*model.User),
		requests: make(map[int64]*model.BookRequest),
		byPair:   make(map[pairKey]int64),
	}
	for i, title := range titles {
		m.books = append(m.books, model.Book{ID: int64(i + 1), Title: title})
	}
	return m
}

func (m *mockStore) FindByTitle(_ context.Context, title string) (*model.Book, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, b := range m.books {
		if strings.EqualFold(b.Title, title) {
			found := b
			return &found, nil
		}
	}
	return nil, apperror.NotFound("book", title)
}

func (m *mockStore) ListBooks(_ context.Context) ([]model.Book, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return append([]model.Book{}, m.books...), nil
}

func (m *mockStore) InsertBooks(_ context.Context, titles []string) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	inserted := 0
outer:
	for _, title := range titles {
		for _, b := range m.books {
			if b.Title == title {
				continue outer
			}
		}
		m.books = append(m.books, model.Book{ID: int64(len(m.books) + 1), Title: title})
		inserted++
	}
	return inserted, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	found := *u
	return &found, nil
}

func (m *mockStore) GetOrCreateUser(ctx context.Context, email string) (*model.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if _, ok := m.users[email]; !ok {
		m.nextID++
		m.users[email] = &model.User{ID: m.nextID, Email: email}
	}
	return m.GetUserByEmail(ctx, email)
}

func (m *mockStore) GetOrCreateRequest(_ context.Context, userID, bookID int64, now time.Time) (*model.BookRequest, bool, error) {
	if m.failWith != nil {
		return nil, false, m.failWith
	}
	key := pairKey{userID, bookID}
	if id, ok := m.byPair[key]; ok {
		found := *m.requests[id]
		return &found, false, nil
	}
	m.nextID++
	req := &model.BookRequest{ID: m.nextID, UserID: userID, BookID: bookID, Timestamp: now.UTC()}
	m.requests[req.ID] = req
	m.byPair[key] = req.ID
	created := *req
	return &created, true, nil
}

func (m *mockStore) view(req *model.BookRequest) model.RequestView {
	v := model.RequestView{ID: req.ID, Timestamp: req.Timestamp}
	for _, u := range m.users {
		if u.ID == req.UserID {
			v.Email = u.Email
		}
	}
	for _, b := range m.books {
		if b.ID == req.BookID {
			v.Title = b.Title
		}
	}
	return v
}

func (m *mockStore) GetRequestView(_ context.Context, id int64) (*model.RequestView, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	req, ok := m.requests[id]
	if !ok {
		return nil, apperror.NotFound("book request", strconv.FormatInt(id, 10))
	}
	v := m.view(req)
	return &v, nil
}

func (m *mockStore) ListRequestViewsByUser(_ context.Context, userID int64) ([]model.RequestView, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	views := []model.RequestView{}
	for id := int64(1); id <= m.nextID; id++ {
		if req, ok := m.requests[id]; ok && req.UserID == userID {
			views = append(views, m.view(req))
		}
	}
	return views, nil
}

func (m *mockStore) DeleteRequest(_ context.Context, id int64) error {
	if m.failWith != nil {
		return m.failWith
	}
	req, ok := m.requests[id]
	if !ok {
		return apperror.NotFound("book request", strconv.FormatInt(id, 10))
	}
	delete(m.byPair, pairKey{req.UserID, req.BookID})
	delete(m.requests, id)
	return nil
}

// =========================================================================
// TEST HELPERS
// =========================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestRequestService wires a RequestService to a mock store and a fixed clock.
func newTestRequestService(t *testing.T, titles ...string) (*RequestService, *mockStore) {
	t.Helper()
	store := newMockStore(titles...)
	svc := NewRequestService(store, store, store, testLogger())
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return svc, store
}
