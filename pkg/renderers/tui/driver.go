package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// TextPrompt asks for a line of free text, such as the customer's name.
type TextPrompt struct {
	Label   string
	Help    string
	Initial string
	Check   func(string) error
}

// ChoicePrompt offers a list of choices. Marked holds the indices that start
// out selected; single choice prompts only look at the first one.
type ChoicePrompt struct {
	Label   string
	Help    string
	Choices []string
	Marked  []int
}

// PromptDriver is the terminal surface a Session talks to.
type PromptDriver interface {
	Text(ctx context.Context, p TextPrompt) (string, error)
	Confirm(ctx context.Context, label string, initial bool) (bool, error)
	Choose(ctx context.Context, p ChoicePrompt) (int, error)
	ChooseMany(ctx context.Context, p ChoicePrompt) ([]int, error)
	Say(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver returns the interactive driver. Messages go to out, or
// stdout when out is nil.
func NewSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

func (d *surveyDriver) Text(ctx context.Context, p TextPrompt) (string, error) {
	var answer string
	var opts []survey.AskOpt
	if p.Check != nil {
		opts = append(opts, survey.WithValidator(textValidator(p.Check)))
	}
	err := ask(ctx, &survey.Input{Message: p.Label, Help: p.Help, Default: p.Initial}, &answer, opts...)
	return answer, err
}

func (d *surveyDriver) Confirm(ctx context.Context, label string, initial bool) (bool, error) {
	var answer bool
	err := ask(ctx, &survey.Confirm{Message: label, Default: initial}, &answer)
	return answer, err
}

func (d *surveyDriver) Choose(ctx context.Context, p ChoicePrompt) (int, error) {
	prompt := &survey.Select{Message: p.Label, Help: p.Help, Options: p.Choices}
	if marked := markedChoices(p); len(marked) > 0 {
		prompt.Default = marked[0]
	}
	var answer string
	if err := ask(ctx, prompt, &answer); err != nil {
		return -1, err
	}
	if picked := choiceIndices(p.Choices, answer); len(picked) == 1 {
		return picked[0], nil
	}
	return -1, nil
}

func (d *surveyDriver) ChooseMany(ctx context.Context, p ChoicePrompt) ([]int, error) {
	prompt := &survey.MultiSelect{
		Message:  p.Label,
		Help:     p.Help,
		Options:  p.Choices,
		Default:  markedChoices(p),
		PageSize: len(p.Choices),
	}
	var answers []string
	if err := ask(ctx, prompt, &answers); err != nil {
		return nil, err
	}
	return choiceIndices(p.Choices, answers...), nil
}

func (d *surveyDriver) Say(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// ask runs a single survey prompt. Ctrl+C surfaces as ErrAborted.
func ask(ctx context.Context, prompt survey.Prompt, answer interface{}, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(prompt, answer, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// textValidator adapts a string check to survey's untyped validator.
func textValidator(check func(string) error) survey.Validator {
	return func(answer interface{}) error {
		text, _ := answer.(string)
		return check(text)
	}
}

func markedChoices(p ChoicePrompt) []string {
	var out []string
	for _, idx := range p.Marked {
		if idx >= 0 && idx < len(p.Choices) {
			out = append(out, p.Choices[idx])
		}
	}
	return out
}

// choiceIndices maps answers back to positions in choices, in choice order.
func choiceIndices(choices []string, answers ...string) []int {
	picked := make(map[string]bool, len(answers))
	for _, answer := range answers {
		picked[answer] = true
	}
	var out []int
	for i, choice := range choices {
		if picked[choice] {
			out = append(out, i)
		}
	}
	return out
}
