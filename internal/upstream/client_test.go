package upstream

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"hostel-portal/internal/domain/portal"
	"hostel-portal/internal/pkg/session"

	"go.uber.org/zap"
)

func mintToken(role string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"` + role + `"}`))
	return "h." + payload + ".s"
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Manager, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sessions := session.NewManager(session.NewMemoryStorage(), zap.NewNop())
	client := NewClient(srv.URL, sessions, zap.NewNop())
	return client, sessions, srv
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:5000", "http://localhost:5000/api"},
		{"http://localhost:5000/", "http://localhost:5000/api"},
		{"http://localhost:5000/api", "http://localhost:5000/api"},
		{"http://localhost:5000/api/", "http://localhost:5000/api"},
	}
	for _, tt := range tests {
		if got := normalizeBaseURL(tt.in); got != tt.want {
			t.Errorf("normalizeBaseURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, sessions, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"ok"}`))
	}))

	tok := mintToken("student")
	if _, err := sessions.Login(context.Background(), "sid1", tok, ""); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := client.Get(context.Background(), "sid1", "/students/profile"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer "+tok {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestDoWithoutSessionSendsNoToken(t *testing.T) {
	var gotAuth string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))

	if _, err := client.Get(context.Background(), "anon", "/health"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestDoNormalizesVariantKeys(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"found","complaints":[{"id":1},{"id":2}]}`))
	}))

	res, err := client.Get(context.Background(), "anon", "/complaints")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(res.Data) != `[{"id":1},{"id":2}]` {
		t.Errorf("Data = %s, want complaints folded into data", res.Data)
	}
	if res.Message != "found" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestDoLoginEnvelope(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"token":"jwt123","forcePasswordChange":true,"user":{"name":"s"}}`))
	}))

	res, err := client.Post(context.Background(), "anon", "/auth/login", map[string]string{"email": "e"})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if res.Token != "jwt123" {
		t.Errorf("Token = %q", res.Token)
	}
	if !res.RequiresPasswordChange {
		t.Error("forcePasswordChange must fold into RequiresPasswordChange")
	}
	if string(res.User) != `{"name":"s"}` {
		t.Errorf("User = %s", res.User)
	}
}

func TestDoFailureStatusMessages(t *testing.T) {
	tests := []struct {
		status      int
		wantMessage string
		wantCat     Category
	}{
		{400, "Invalid request. Please check your input.", CategoryBadRequest},
		{401, "Invalid email or password. Please check your credentials.", CategoryUnauthorized},
		{404, "Resource not found.", CategoryNotFound},
		{500, "Server error. Please try again later.", CategoryServer},
		{418, "Request failed with status 418", CategoryUnexpected},
	}

	for _, tt := range tests {
		status := tt.status
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := client.Get(context.Background(), "anon", "/x")
		apiErr, ok := AsError(err)
		if !ok {
			t.Fatalf("status %d: error %v is not *Error", tt.status, err)
		}
		if apiErr.Message != tt.wantMessage {
			t.Errorf("status %d: Message = %q, want %q", tt.status, apiErr.Message, tt.wantMessage)
		}
		if apiErr.Category != tt.wantCat {
			t.Errorf("status %d: Category = %v, want %v", tt.status, apiErr.Category, tt.wantCat)
		}
		if apiErr.Status != tt.status {
			t.Errorf("status %d: Status = %d", tt.status, apiErr.Status)
		}
	}
}

func TestDoPrefersUpstreamMessage(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(400)
		w.Write([]byte(`{"success":false,"message":"room is full"}`))
	}))

	_, err := client.Get(context.Background(), "anon", "/x")
	apiErr, _ := AsError(err)
	if apiErr == nil || apiErr.Message != "room is full" {
		t.Errorf("err = %v, want upstream message preserved", err)
	}
}

func TestDoSuccessFalseOn2xx(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"nothing here"}`))
	}))

	_, err := client.Get(context.Background(), "anon", "/x")
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.Category != CategoryUnexpected || apiErr.Message != "nothing here" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestDoNonJSONBodyOn2xx(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>proxy error page</html>"))
	}))

	_, err := client.Get(context.Background(), "anon", "/x")
	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.Message != "Invalid response from server" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestDoNetworkFailure(t *testing.T) {
	client, _, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := client.Get(context.Background(), "anon", "/x")
	if !IsUnavailable(err) {
		t.Fatalf("err = %v, want network unavailable", err)
	}
	apiErr, _ := AsError(err)
	if apiErr.Message != "Network error. Please check if the backend server is running." {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Status != 0 {
		t.Errorf("Status = %d, want 0 for network failures", apiErr.Status)
	}
}

func TestDo403TearsDownSession(t *testing.T) {
	client, sessions, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	tok := mintToken("student")
	if _, err := sessions.Login(context.Background(), "sid1", tok, ""); err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err := client.Get(context.Background(), "sid1", "/students")
	apiErr, ok := AsError(err)
	if !ok || apiErr.Category != CategoryForbidden {
		t.Fatalf("err = %v, want forbidden", err)
	}
	// The 403 still propagates, but the session must be gone.
	sess, _ := sessions.Hydrate(context.Background(), "sid1")
	if sess.IsAuthenticated {
		t.Error("session survived a 403")
	}
}

func TestDo403SparesNewerSession(t *testing.T) {
	release := make(chan struct{})
	first := true
	client, sessions, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first {
			first = false
			<-release
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))

	oldTok := mintToken("student")
	if _, err := sessions.Login(context.Background(), "sid1", oldTok, ""); err != nil {
		t.Fatalf("Login: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := client.Get(context.Background(), "sid1", "/slow")
		done <- err
	}()

	// A fresh login lands while the doomed request is still in flight.
	newTok := mintToken("student") + "2"
	if _, err := sessions.Login(context.Background(), "sid1", newTok, ""); err != nil {
		t.Fatalf("re-Login: %v", err)
	}
	close(release)
	<-done

	sess, _ := sessions.Hydrate(context.Background(), "sid1")
	if !sess.IsAuthenticated || sess.Token != newTok {
		t.Errorf("newer session was torn down: %+v", sess)
	}
}

func TestDo403WithoutSessionNoTeardown(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	torn := false
	client.SetTeardownPolicy(func(ctx context.Context, sid, failedToken string) {
		torn = true
	})

	_, err := client.Get(context.Background(), "anon", "/x")
	if err == nil {
		t.Fatal("expected error")
	}
	if torn {
		t.Error("teardown ran for an unauthenticated request")
	}
}

func TestDoRawDownload(t *testing.T) {
	client, sessions, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="report.xlsx"`)
		w.Write([]byte{0x50, 0x4b, 0x03, 0x04})
	}))

	if _, err := sessions.Login(context.Background(), "sid1", mintToken("warden"), portal.RoleWarden); err != nil {
		t.Fatalf("Login: %v", err)
	}

	blob, name, err := client.DoRaw(context.Background(), "sid1", "/warden/outing/export")
	if err != nil {
		t.Fatalf("DoRaw: %v", err)
	}
	if name != "report.xlsx" {
		t.Errorf("filename = %q", name)
	}
	if len(blob) != 4 {
		t.Errorf("blob = %v", blob)
	}
}
