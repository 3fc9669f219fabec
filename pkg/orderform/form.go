package orderform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/goliatone/go-pizzaform/pkg/order"
)

// ErrSubmitInFlight is returned when Submit is called while another
// submission for the same form has not completed.
var ErrSubmitInFlight = errors.New("orderform: submission already in flight")

// Submitter sends a validated draft to the order endpoint.
type Submitter interface {
	SubmitOrder(ctx context.Context, draft order.Draft) (order.Receipt, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, draft order.Draft) (order.Receipt, error)

// SubmitOrder calls fn.
func (fn SubmitterFunc) SubmitOrder(ctx context.Context, draft order.Draft) (order.Receipt, error) {
	return fn(ctx, draft)
}

// Status enumerates submission outcomes.
type Status int

const (
	StatusNotAttempted Status = iota
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "not-attempted"
	}
}

// FailureMessage is the generic text shown for any failed submission.
const FailureMessage = "Something went wrong"

// Outcome is the result of the latest submission attempt.
type Outcome struct {
	Status       Status
	Confirmation *order.Confirmation
	Err          error
}

// Message returns the user facing text for the outcome.
func (o Outcome) Message() string {
	switch o.Status {
	case StatusSuccess:
		if o.Confirmation != nil {
			return o.Confirmation.Message()
		}
		return ""
	case StatusFailure:
		return FailureMessage
	default:
		return ""
	}
}

// State is a read-only snapshot of the form.
type State struct {
	Draft      order.Draft
	Errors     order.ValidationResult
	Valid      bool
	Submitting bool
	Outcome    Outcome
}

// CanSubmit reports whether the submit control should be enabled.
func (s State) CanSubmit() bool {
	return s.Valid && !s.Submitting
}

// Form holds the in-progress order and recomputes validation after every
// mutation. It is safe for concurrent use.
type Form struct {
	mu         sync.Mutex
	draft      order.Draft
	errors     order.ValidationResult
	outcome    Outcome
	submitting bool

	submitter Submitter
	catalog   order.Catalog
	logger    *log.Logger
}

// New constructs a Form backed by submitter.
func New(submitter Submitter, options ...Option) *Form {
	cfg := config{
		catalog: order.DefaultCatalog(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard, "", 0)
	}

	f := &Form{
		draft:     cfg.draft.Clone(),
		submitter: submitter,
		catalog:   cfg.catalog,
		logger:    cfg.logger,
	}
	f.errors = order.Validate(f.draft)
	return f
}

// Catalog returns the topping catalog the form accepts.
func (f *Form) Catalog() order.Catalog {
	return append(order.Catalog(nil), f.catalog...)
}

// State returns the current snapshot.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// SetFullName replaces the name as typed (untrimmed) and re-validates.
func (f *Form) SetFullName(name string) State {
	return f.mutate(func(d *order.Draft) {
		d.FullName = name
	})
}

// SetSize replaces the size code and re-validates.
func (f *Form) SetSize(size string) State {
	return f.mutate(func(d *order.Draft) {
		d.Size = order.Size(size)
	})
}

// ToggleTopping selects or clears a catalog topping and re-validates.
func (f *Form) ToggleTopping(id string, selected bool) (State, error) {
	if !f.catalog.Has(id) {
		return f.State(), fmt.Errorf("%w: %q", order.ErrUnknownTopping, id)
	}
	return f.mutate(func(d *order.Draft) {
		*d = d.ToggleTopping(strings.TrimSpace(id), selected)
	}), nil
}

// Replace swaps the whole draft, for example with a posted HTML form. Topping
// ids outside the catalog are dropped.
func (f *Form) Replace(draft order.Draft) State {
	next := order.Draft{FullName: draft.FullName, Size: draft.Size}
	for _, id := range draft.Toppings {
		if f.catalog.Has(id) {
			next = next.ToggleTopping(id, true)
		}
	}
	return f.mutate(func(d *order.Draft) {
		*d = next
	})
}

// Apply dispatches a single field mutation by name. value carries the text or
// topping id; checked is only read for toppings.
func (f *Form) Apply(field, value string, checked bool) (State, error) {
	switch strings.TrimSpace(field) {
	case order.FieldFullName:
		return f.SetFullName(value), nil
	case order.FieldSize:
		return f.SetSize(value), nil
	case order.FieldToppings:
		return f.ToggleTopping(value, checked)
	default:
		return f.State(), fmt.Errorf("orderform: unknown field %q", field)
	}
}

// Reset clears the draft and the outcome.
func (f *Form) Reset() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = order.Draft{}
	f.errors = order.Validate(f.draft)
	f.outcome = Outcome{}
	return f.snapshotLocked()
}

// Submit sends the draft when it is valid. Invalid drafts fail immediately
// without touching the network. On success the draft is cleared; on failure
// it is kept so the customer can retry.
func (f *Form) Submit(ctx context.Context) Outcome {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return Outcome{Status: StatusFailure, Err: ErrSubmitInFlight}
	}
	if !f.errors.Valid() {
		f.outcome = Outcome{
			Status: StatusFailure,
			Err:    &order.ValidationError{Result: cloneResult(f.errors)},
		}
		out := f.outcome
		f.mu.Unlock()
		return out
	}
	if f.submitter == nil {
		f.outcome = Outcome{
			Status: StatusFailure,
			Err:    &order.SubmissionError{Err: errors.New("orderform: submitter is nil")},
		}
		out := f.outcome
		f.mu.Unlock()
		return out
	}
	draft := f.draft.Clone()
	f.submitting = true
	f.mu.Unlock()

	receipt, err := f.submitter.SubmitOrder(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		var serr *order.SubmissionError
		if !errors.As(err, &serr) {
			err = &order.SubmissionError{Err: err}
		}
		f.logger.Printf("orderform: submit failed: %v", err)
		f.outcome = Outcome{Status: StatusFailure, Err: err}
		return f.outcome
	}

	confirmation := order.NewConfirmation(draft, f.catalog, receipt)
	f.outcome = Outcome{Status: StatusSuccess, Confirmation: &confirmation}
	f.draft = order.Draft{}
	f.errors = order.Validate(f.draft)
	f.logger.Printf("orderform: order placed id=%s toppings=%d", receipt.ID, len(draft.Toppings))
	return f.outcome
}

func (f *Form) mutate(fn func(*order.Draft)) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
	f.errors = order.Validate(f.draft)
	return f.snapshotLocked()
}

func (f *Form) snapshotLocked() State {
	return State{
		Draft:      f.draft.Clone(),
		Errors:     cloneResult(f.errors),
		Valid:      f.errors.Valid(),
		Submitting: f.submitting,
		Outcome:    f.outcome,
	}
}

func cloneResult(in order.ValidationResult) order.ValidationResult {
	out := make(order.ValidationResult, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
