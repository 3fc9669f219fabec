package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-pizzaform/internal/session"
	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/orderform"
	"github.com/goliatone/go-pizzaform/pkg/render"
)

// draftMutation is one field change sent by the live validation script.
type draftMutation struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, mediaHTML, render.PageHome, http.StatusOK, render.RenderOptions{
		Theme: s.themeFor(r),
	})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	options := s.orderOptions(r, sess, sess.Form.State())
	if wantsJSON(r) {
		s.write(w, r, mediaJSON, render.PageOrder, http.StatusOK, options)
		return
	}
	s.write(w, r, mediaHTML, render.PageOrder, http.StatusOK, options)
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	if !sess.ValidToken(r.Header.Get(CSRFHeader)) {
		writeJSONError(w, http.StatusForbidden, "forbidden", "invalid csrf token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	var mutation draftMutation
	if err := json.NewDecoder(r.Body).Decode(&mutation); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request_body", "invalid JSON body")
		return
	}

	state, err := sess.Form.Apply(mutation.Field, mutation.Value, mutation.Checked)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "invalid_mutation", err.Error())
		return
	}
	s.write(w, r, mediaJSON, render.PageOrder, http.StatusOK, s.orderOptions(r, sess, state))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Load(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	token := r.PostForm.Get(render.CSRFFieldName)
	if token == "" {
		token = r.Header.Get(CSRFHeader)
	}
	if !sess.ValidToken(token) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	sess.Form.Replace(order.Draft{
		FullName: r.PostForm.Get(order.FieldFullName),
		Size:     order.Size(r.PostForm.Get(order.FieldSize)),
		Toppings: r.PostForm[order.FieldToppings],
	})
	outcome := sess.Form.Submit(r.Context())

	status := http.StatusOK
	switch {
	case outcome.Status == orderform.StatusSuccess:
	case errors.Is(outcome.Err, orderform.ErrSubmitInFlight):
		status = http.StatusConflict
	case errors.Is(outcome.Err, order.ErrInvalidDraft):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusBadGateway
	}

	// An in-flight rejection does not replace the stored outcome.
	options := s.orderOptions(r, sess, sess.Form.State())
	if status == http.StatusConflict {
		options.Flash = &render.Flash{Kind: render.FlashFailure, Message: orderform.FailureMessage}
	}
	if wantsJSON(r) {
		s.write(w, r, mediaJSON, render.PageOrder, status, options)
		return
	}
	s.write(w, r, mediaHTML, render.PageOrder, status, options)
}

func (s *Server) orderOptions(r *http.Request, sess *session.Session, state orderform.State) render.RenderOptions {
	options := render.RenderOptions{
		Values: map[string]any{
			order.FieldFullName: state.Draft.FullName,
			order.FieldSize:     string(state.Draft.Size),
			order.FieldToppings: state.Draft.Toppings,
		},
		Errors: state.Errors.Messages(),
		Valid:  state.CanSubmit(),
		Hidden: render.CSRFHidden(sess.CSRFToken),
		Theme:  s.themeFor(r),
	}

	switch state.Outcome.Status {
	case orderform.StatusSuccess:
		options.Flash = &render.Flash{Kind: render.FlashSuccess, Message: state.Outcome.Message()}
	case orderform.StatusFailure:
		options.Flash = &render.Flash{Kind: render.FlashFailure, Message: state.Outcome.Message()}
		var serr *order.SubmissionError
		if errors.As(state.Outcome.Err, &serr) {
			options.FormErrors = render.MergeFormErrors(nil, serr.Form...)
		}
	}
	return options
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, mediaJSON) && !strings.Contains(accept, mediaHTML)
}

func writeJSONError(w http.ResponseWriter, status int, code, msg string) {
	payload, err := json.Marshal(errorResponse{Error: msg, Code: code})
	if err != nil {
		payload = []byte(`{"error":"internal error","code":"internal_error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
