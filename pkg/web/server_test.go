package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-pizzaform/internal/session"
	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/orderform"
	"github.com/goliatone/go-pizzaform/pkg/renderers/jsonview"
	"github.com/goliatone/go-pizzaform/pkg/web"
	"github.com/google/go-cmp/cmp"
)

const csrfToken = "id-2"

type recordingSubmitter struct {
	mu     sync.Mutex
	drafts []order.Draft
	err    error
}

func (s *recordingSubmitter) SubmitOrder(_ context.Context, draft order.Draft) (order.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = append(s.drafts, draft)
	if s.err != nil {
		return order.Receipt{}, s.err
	}
	return order.Receipt{ID: "receipt-1"}, nil
}

func (s *recordingSubmitter) calls() []order.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]order.Draft(nil), s.drafts...)
}

type harness struct {
	t         *testing.T
	handler   http.Handler
	submitter *recordingSubmitter
	cookie    *http.Cookie
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	submitter := &recordingSubmitter{}
	n := 0
	sessions := session.NewStore(
		func() *orderform.Form { return orderform.New(submitter) },
		session.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	server, err := web.New(web.WithSessions(sessions))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return &harness{t: t, handler: server.Routes(), submitter: submitter}
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	h.t.Helper()
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.DefaultCookieName {
			h.cookie = c
		}
	}
	return rec
}

// start opens the order page so the harness holds a session cookie.
func (h *harness) start() string {
	h.t.Helper()
	rec := h.do(httptest.NewRequest(http.MethodGet, "/order", nil))
	if rec.Code != http.StatusOK {
		h.t.Fatalf("GET /order: expected 200, got %d", rec.Code)
	}
	return rec.Body.String()
}

func (h *harness) mutate(token, body string) *httptest.ResponseRecorder {
	h.t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/order/draft", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(web.CSRFHeader, token)
	}
	return h.do(req)
}

func (h *harness) submit(values url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return h.do(req)
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) jsonview.State {
	t.Helper()
	var state jsonview.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v\n%s", err, rec.Body.String())
	}
	return state
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, output)
		}
	}
}

func TestServer_Home(t *testing.T) {
	h := newHarness(t)
	rec := h.do(httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	assertContains(t, rec.Body.String(),
		"<h1>Welcome to Bloom Pizza!</h1>",
		`<a href="/order">Order</a>`,
		`href="/order" aria-label="Order"><svg`,
	)
}

func TestServer_UnknownPathIsNotFound(t *testing.T) {
	h := newHarness(t)
	rec := h.do(httptest.NewRequest(http.MethodGet, "/menu", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestServer_OrderPageStartsSession(t *testing.T) {
	h := newHarness(t)
	html := h.start()

	if h.cookie == nil || h.cookie.Value != "id-1" {
		t.Fatalf("expected session cookie, got %+v", h.cookie)
	}
	assertContains(t, html,
		`<input type="hidden" name="_csrf" value="id-2">`,
		"Full name is required",
		"Size is required",
		`data-submit disabled>`,
	)
}

func TestServer_DraftRequiresToken(t *testing.T) {
	h := newHarness(t)
	h.start()

	for _, token := range []string{"", "wrong"} {
		rec := h.mutate(token, `{"field":"full_name","value":"Ada"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("token %q: expected 403, got %d", token, rec.Code)
		}
	}
}

func TestServer_DraftLiveValidation(t *testing.T) {
	h := newHarness(t)
	h.start()

	rec := h.mutate(csrfToken, `{"field":"full_name","value":"Al"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	state := decodeState(t, rec)
	want := map[string][]string{
		order.FieldFullName: {order.MsgFullNameTooShort},
		order.FieldSize:     {order.MsgSizeRequired},
	}
	if diff := cmp.Diff(want, state.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if state.Valid {
		t.Fatalf("draft should not be valid")
	}

	h.mutate(csrfToken, `{"field":"full_name","value":"Ada Lovelace"}`)
	h.mutate(csrfToken, `{"field":"size","value":"M"}`)
	h.mutate(csrfToken, `{"field":"toppings","value":"4","checked":true}`)
	h.mutate(csrfToken, `{"field":"toppings","value":"1","checked":true}`)
	rec = h.mutate(csrfToken, `{"field":"toppings","value":"4","checked":true}`)

	state = decodeState(t, rec)
	if !state.Valid || len(state.Errors) != 0 {
		t.Fatalf("expected valid state, got %+v", state)
	}
	if diff := cmp.Diff([]string{"4", "1"}, state.Values.Toppings); diff != "" {
		t.Fatalf("toppings mismatch (-want +got):\n%s", diff)
	}
}

func TestServer_DraftRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	h.start()

	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed json", body: `{"field":`, want: http.StatusBadRequest},
		{name: "unknown field", body: `{"field":"crust","value":"thin"}`, want: http.StatusUnprocessableEntity},
		{name: "unknown topping", body: `{"field":"toppings","value":"99","checked":true}`, want: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := h.mutate(csrfToken, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestServer_SubmitSuccessResetsDraft(t *testing.T) {
	h := newHarness(t)
	h.start()

	rec := h.submit(url.Values{
		"_csrf":     {csrfToken},
		"full_name": {"  Ada Lovelace "},
		"size":      {"M"},
		"toppings":  {"1", "4"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	assertContains(t, rec.Body.String(),
		`<div class="success" role="status" data-flash>Thank you for your order, Ada Lovelace! Your medium pizza with 2 toppings is on the way.</div>`,
		`value=""`,
		`data-submit disabled>`,
	)

	calls := h.submitter.calls()
	want := []order.Draft{{FullName: "  Ada Lovelace ", Size: order.SizeMedium, Toppings: []string{"1", "4"}}}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("submitted drafts mismatch (-want +got):\n%s", diff)
	}

	req := httptest.NewRequest(http.MethodGet, "/order", nil)
	req.Header.Set("Accept", "application/json")
	state := decodeState(t, h.do(req))
	if state.Values.FullName != "" || state.Values.Size != "" || len(state.Values.Toppings) != 0 {
		t.Fatalf("expected empty draft after success, got %+v", state.Values)
	}
}

func TestServer_SubmitFailureKeepsDraft(t *testing.T) {
	h := newHarness(t)
	h.submitter.err = errors.New("connection refused")
	h.start()

	rec := h.submit(url.Values{
		"_csrf":     {csrfToken},
		"full_name": {"Grace Hopper"},
		"size":      {"L"},
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	assertContains(t, rec.Body.String(),
		`<div class="failure" role="status" data-flash>Something went wrong</div>`,
		`value="Grace Hopper"`,
		`<option value="L" selected>Large</option>`,
	)
}

func TestServer_SubmitInvalidDraftSkipsNetwork(t *testing.T) {
	h := newHarness(t)
	h.start()

	rec := h.submit(url.Values{
		"_csrf":     {csrfToken},
		"full_name": {"Al"},
		"size":      {"XL"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	assertContains(t, rec.Body.String(), order.MsgFullNameTooShort, order.MsgSizeIncorrect)
	if calls := h.submitter.calls(); len(calls) != 0 {
		t.Fatalf("expected no submission, got %d", len(calls))
	}
}

func TestServer_SubmitRequiresToken(t *testing.T) {
	h := newHarness(t)
	h.start()

	rec := h.submit(url.Values{"full_name": {"Ada Lovelace"}, "size": {"S"}})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if calls := h.submitter.calls(); len(calls) != 0 {
		t.Fatalf("expected no submission, got %d", len(calls))
	}
}

func TestServer_AssetsAndHealth(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/assets/pizzaform.css", "/assets/pizzaform.js", "/healthz"} {
		rec := h.do(httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestServer_ThemeVariantQuery(t *testing.T) {
	h := newHarness(t)
	rec := h.do(httptest.NewRequest(http.MethodGet, "/?variant=dark", nil))
	assertContains(t, rec.Body.String(), `data-variant="dark"`)
}
