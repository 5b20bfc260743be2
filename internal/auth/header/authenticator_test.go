package header

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"authgate/internal/auth"
	"authgate/internal/contextutil"
	"authgate/internal/observability/logging"
	"authgate/internal/observability/metrics"
)

func newTestAuthenticator(t *testing.T, cfg Config) *Authenticator {
	t.Helper()
	logger, err := logging.NewLogger("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	a, err := New(cfg, logger, metrics.NewCollector())
	if err != nil {
		t.Fatalf("failed to create authenticator: %v", err)
	}
	return a
}

func TestNewRequiresSubject(t *testing.T) {
	logger, err := logging.NewLogger("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if _, err := New(Config{Enabled: true}, logger, metrics.NewCollector()); err == nil {
		t.Fatal("expected error for enabled authenticator without subject")
	}
}

func TestEvaluate(t *testing.T) {
	a := newTestAuthenticator(t, Config{
		Enabled:    true,
		HeaderName: DefaultHeaderName,
		SchemeName: DefaultSchemeName,
		Subject:    DefaultSubject,
	})

	tests := []struct {
		name      string
		headers   http.Header
		wantAuth  bool
		wantAuthn bool // identity reports authenticated
	}{
		{"no headers", http.Header{}, false, false},
		{"nil headers", nil, false, false},
		{"unrelated headers", http.Header{"Accept": {"*/*"}}, false, false},
		{"header present", http.Header{"Authentication": {"abc"}}, true, true},
		{"header present empty value", http.Header{"Authentication": {""}}, true, true},
		{"lowercase header name", http.Header{"authentication": {"abc"}}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := a.Evaluate(tt.headers)
			if v.Authenticated() != tt.wantAuth {
				t.Fatalf("Authenticated() = %v, want %v", v.Authenticated(), tt.wantAuth)
			}
			if !tt.wantAuth {
				if v.Reason != RejectReason {
					t.Errorf("reason = %q, want %q", v.Reason, RejectReason)
				}
				if v.Identity != nil {
					t.Error("rejected verdict must not carry an identity")
				}
				return
			}
			if v.Identity.IsAuthenticated() != tt.wantAuthn {
				t.Errorf("identity.IsAuthenticated() = %v, want %v", v.Identity.IsAuthenticated(), tt.wantAuthn)
			}
			if v.Identity.Subject != DefaultSubject {
				t.Errorf("subject = %q, want %q", v.Identity.Subject, DefaultSubject)
			}
			if v.Scheme != DefaultSchemeName {
				t.Errorf("scheme = %q, want %q", v.Scheme, DefaultSchemeName)
			}
		})
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	a := newTestAuthenticator(t, Config{
		Enabled:    true,
		HeaderName: DefaultHeaderName,
		SchemeName: DefaultSchemeName,
		Subject:    DefaultSubject,
	})

	headers := http.Header{"Authentication": {"abc"}}
	first := a.Evaluate(headers)
	second := a.Evaluate(headers)

	if first.Status != second.Status {
		t.Errorf("status differs across calls: %v vs %v", first.Status, second.Status)
	}
	if first.Identity.IsAuthenticated() != second.Identity.IsAuthenticated() {
		t.Error("authenticated flag differs across calls")
	}

	missing := http.Header{}
	first = a.Evaluate(missing)
	second = a.Evaluate(missing)
	if first.Status != second.Status || first.Reason != second.Reason {
		t.Error("rejected verdict differs across calls")
	}
}

func TestEvaluateDoesNotMutateHeaders(t *testing.T) {
	a := newTestAuthenticator(t, Config{
		Enabled:    true,
		HeaderName: DefaultHeaderName,
		SchemeName: DefaultSchemeName,
		Subject:    DefaultSubject,
	})

	headers := http.Header{"Authentication": {"abc"}, "Accept": {"*/*"}}
	a.Evaluate(headers)

	if len(headers) != 2 || headers.Get("Authentication") != "abc" {
		t.Errorf("headers were mutated: %#v", headers)
	}
}

func TestMiddlewareMissingHeaderContinuesWithoutIdentity(t *testing.T) {
	a := newTestAuthenticator(t, Config{
		Enabled:    true,
		HeaderName: DefaultHeaderName,
		SchemeName: DefaultSchemeName,
		Subject:    DefaultSubject,
	})

	var gotIdentity *auth.Identity
	var gotReason string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = contextutil.GetIdentity(r.Context())
		gotReason = contextutil.GetRejectReason(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	a.GetMiddleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotIdentity != nil {
		t.Error("rejected request must not carry an identity")
	}
	if gotReason != RejectReason {
		t.Errorf("reject reason = %q, want %q", gotReason, RejectReason)
	}
}

func TestMiddlewareAttachesIdentity(t *testing.T) {
	a := newTestAuthenticator(t, Config{
		Enabled:    true,
		HeaderName: DefaultHeaderName,
		SchemeName: DefaultSchemeName,
		Subject:    DefaultSubject,
	})

	var gotIdentity *auth.Identity
	var gotScheme string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = contextutil.GetIdentity(r.Context())
		gotScheme = contextutil.GetScheme(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authentication", "abc")
	a.GetMiddleware(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !gotIdentity.IsAuthenticated() {
		t.Error("identity in context should report authenticated")
	}
	if gotScheme != DefaultSchemeName {
		t.Errorf("scheme in context = %q, want %q", gotScheme, DefaultSchemeName)
	}
}

func TestMiddlewareDisabledPassesThrough(t *testing.T) {
	a := newTestAuthenticator(t, Config{Enabled: false})

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if contextutil.GetIdentity(r.Context()) != nil {
			t.Error("disabled authenticator should not attach an identity")
		}
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	a.GetMiddleware(next).ServeHTTP(rec, req)

	if !called {
		t.Error("next handler should run when authenticator is disabled")
	}
}

func TestMiddlewareSkipsWhenIdentityPresent(t *testing.T) {
	a := newTestAuthenticator(t, Config{
		Enabled:    true,
		HeaderName: DefaultHeaderName,
		SchemeName: DefaultSchemeName,
		Subject:    DefaultSubject,
	})

	existing := &auth.Identity{Subject: "someone-else", Scheme: "other"}
	var gotIdentity *auth.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = contextutil.GetIdentity(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(contextutil.WithIdentity(req.Context(), existing))
	a.GetMiddleware(next).ServeHTTP(rec, req)

	if gotIdentity != existing {
		t.Error("existing identity should be preserved")
	}
}
