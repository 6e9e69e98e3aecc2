package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskvault/internal/common"
	"github.com/dmitrijs2005/taskvault/internal/logging"
	"github.com/dmitrijs2005/taskvault/internal/server/models"
	"github.com/dmitrijs2005/taskvault/internal/server/services"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

// fakeAccounts resolves sessions from an in-memory token map, so revocation
// behaves like the real thing.
type fakeAccounts struct {
	registerOut *models.User
	registerErr error

	loginOut *models.User
	loginErr error

	issueOut string
	issueErr error

	sessions map[string]*models.User

	resolveCalls int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{sessions: map[string]*models.User{}}
}

func (f *fakeAccounts) Register(ctx context.Context, email, password string) (*models.User, error) {
	return f.registerOut, f.registerErr
}

func (f *fakeAccounts) Login(ctx context.Context, email, password string) (*models.User, error) {
	return f.loginOut, f.loginErr
}

func (f *fakeAccounts) IssueSession(ctx context.Context, user *models.User) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.sessions[f.issueOut] = user
	return f.issueOut, nil
}

func (f *fakeAccounts) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	f.resolveCalls++
	if user, ok := f.sessions[token]; ok {
		return user, nil
	}
	return nil, common.ErrorUnauthenticated
}

func (f *fakeAccounts) RevokeSession(ctx context.Context, user *models.User, token string) error {
	delete(f.sessions, token)
	return nil
}

type fakeTasks struct {
	createOut *models.Task
	createErr error

	listOut []*models.Task
	listErr error

	getOut *models.Task
	getErr error

	updateOut *models.Task
	updateErr error

	deleteOut *models.Task
	deleteErr error
}

func (f *fakeTasks) Create(ctx context.Context, userID, text string) (*models.Task, error) {
	return f.createOut, f.createErr
}

func (f *fakeTasks) List(ctx context.Context, userID string) ([]*models.Task, error) {
	return f.listOut, f.listErr
}

func (f *fakeTasks) GetByID(ctx context.Context, id, userID string) (*models.Task, error) {
	return f.getOut, f.getErr
}

func (f *fakeTasks) Update(ctx context.Context, id, userID string, patch services.TaskPatch) (*models.Task, error) {
	return f.updateOut, f.updateErr
}

func (f *fakeTasks) Delete(ctx context.Context, id, userID string) (*models.Task, error) {
	return f.deleteOut, f.deleteErr
}

// ---- helpers ----

func testUser() *models.User {
	return &models.User{ID: "user-1", Email: "user@example.com", PasswordHash: "hash"}
}

func newTestServer(t *testing.T, accounts *fakeAccounts, tasks *fakeTasks) http.Handler {
	t.Helper()
	srv, err := NewHTTPServer(":0", nopLogger{}, accounts, tasks)
	if err != nil {
		t.Fatalf("NewHTTPServer error: %v", err)
	}
	return srv.Router()
}

func doRequest(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set(common.SessionTokenHeaderName, token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
