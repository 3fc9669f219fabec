package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/orderform"
	"github.com/goliatone/go-pizzaform/pkg/uischema"
)

// Session walks a customer through an order in the terminal. All state lives
// in the wrapped orderform.Form, so validation and submission behave exactly
// as they do in the web app.
type Session struct {
	form        *orderform.Form
	driver      PromptDriver
	out         io.Writer
	theme       Theme
	page        uischema.Page
	maxAttempts int
	logger      *log.Logger
}

// NewSession constructs a session over form with the survey driver unless
// WithPromptDriver is supplied.
func NewSession(form *orderform.Form, options ...Option) (*Session, error) {
	if form == nil {
		return nil, ErrNoForm
	}
	s := &Session{
		form:        form,
		theme:       DefaultTheme,
		maxAttempts: 3,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(s.out)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	return s, nil
}

// Run prompts for the order, asks for confirmation and submits. After a
// failed submission the draft is kept and the user may retry up to the
// configured number of attempts. The final outcome is returned.
func (s *Session) Run(ctx context.Context) (orderform.Outcome, error) {
	if err := s.collect(ctx); err != nil {
		return orderform.Outcome{}, err
	}

	state := s.form.State()
	if err := s.info(ctx, s.theme.InfoPrefix, Summary(state.Draft, s.form.Catalog())); err != nil {
		return orderform.Outcome{}, err
	}

	ok, err := s.driver.Confirm(ctx, "Place this order?", true)
	if err != nil {
		return orderform.Outcome{}, err
	}
	if !ok {
		return orderform.Outcome{}, ErrCancelled
	}

	var outcome orderform.Outcome
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		outcome = s.form.Submit(ctx)
		if outcome.Status == orderform.StatusSuccess {
			return outcome, s.info(ctx, s.theme.SuccessPrefix, outcome.Message())
		}

		s.logger.Printf("tui: submission attempt %d failed: %v", attempt, outcome.Err)
		if err := s.info(ctx, s.theme.ErrorPrefix, outcome.Message()); err != nil {
			return outcome, err
		}
		if !errors.Is(outcome.Err, order.ErrSubmission) || attempt == s.maxAttempts {
			break
		}
		retry, err := s.driver.Confirm(ctx, "Try again?", true)
		if err != nil {
			return outcome, err
		}
		if !retry {
			break
		}
	}
	return outcome, nil
}

func (s *Session) collect(ctx context.Context) error {
	if err := s.promptName(ctx); err != nil {
		return err
	}
	if err := s.promptSize(ctx); err != nil {
		return err
	}
	return s.promptToppings(ctx)
}

// promptName repeats until the name passes validation. The survey driver
// validates as the user types; other drivers are checked after the fact.
func (s *Session) promptName(ctx context.Context) error {
	field := s.page.Field(order.FieldFullName)
	for {
		current := s.form.State().Draft.FullName
		name, err := s.driver.Text(ctx, TextPrompt{
			Label:   field.Label,
			Help:    field.HelpText,
			Initial: current,
			Check: func(value string) error {
				if msg := order.ValidateFullName(value); msg != "" {
					return errors.New(msg)
				}
				return nil
			},
		})
		if err != nil {
			return err
		}
		state := s.form.SetFullName(name)
		msg := state.Errors.Get(order.FieldFullName)
		if msg == "" {
			return nil
		}
		if err := s.info(ctx, s.theme.ErrorPrefix, msg); err != nil {
			return err
		}
	}
}

func (s *Session) promptSize(ctx context.Context) error {
	field := s.page.Field(order.FieldSize)
	sizes := order.Sizes()
	options := make([]string, 0, len(sizes))
	defaultIndex := 0
	current := s.form.State().Draft.Size
	for i, size := range sizes {
		options = append(options, fmt.Sprintf("%s (%s)", size.Title(), size))
		if size == current {
			defaultIndex = i
		}
	}

	for {
		idx, err := s.driver.Choose(ctx, ChoicePrompt{
			Label:   field.Label,
			Help:    field.HelpText,
			Choices: options,
			Marked:  []int{defaultIndex},
		})
		if err != nil {
			return err
		}
		value := ""
		if idx >= 0 && idx < len(sizes) {
			value = string(sizes[idx])
		}
		state := s.form.SetSize(value)
		msg := state.Errors.Get(order.FieldSize)
		if msg == "" {
			return nil
		}
		if err := s.info(ctx, s.theme.ErrorPrefix, msg); err != nil {
			return err
		}
	}
}

func (s *Session) promptToppings(ctx context.Context) error {
	field := s.page.Field(order.FieldToppings)
	catalog := s.form.Catalog()
	draft := s.form.State().Draft

	options := make([]string, 0, len(catalog))
	var defaults []int
	for i, topping := range catalog {
		options = append(options, topping.Text)
		if draft.HasTopping(topping.ID) {
			defaults = append(defaults, i)
		}
	}

	picked, err := s.driver.ChooseMany(ctx, ChoicePrompt{
		Label:   field.Label,
		Help:    field.HelpText,
		Choices: options,
		Marked:  defaults,
	})
	if err != nil {
		return err
	}

	chosen := make(map[int]struct{}, len(picked))
	for _, idx := range picked {
		chosen[idx] = struct{}{}
	}
	for i, topping := range catalog {
		_, selected := chosen[i]
		if selected == draft.HasTopping(topping.ID) {
			continue
		}
		if _, err := s.form.ToggleTopping(topping.ID, selected); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) info(ctx context.Context, prefix, msg string) error {
	if strings.TrimSpace(msg) == "" {
		return nil
	}
	return s.driver.Say(ctx, prefix+msg)
}

// Summary describes the pending order in one line.
func Summary(draft order.Draft, catalog order.Catalog) string {
	names := catalog.Names(draft.Toppings)
	summary := fmt.Sprintf("%s, a %s pizza %s", strings.TrimSpace(draft.FullName), draft.Size.Label(), order.ToppingSummary(len(names)))
	if len(names) > 0 {
		summary += ": " + strings.Join(names, ", ")
	}
	return summary + "."
}
