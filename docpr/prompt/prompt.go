package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

var (
	// ErrNoInput is returned when input ends before an
	// answer is given.
	ErrNoInput = errors.New("no more input")

	// ErrInterrupted is returned when the operator
	// aborts a prompt.
	ErrInterrupted = errors.New("prompt interrupted")
)

// Asker asks the operator for one line of text.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Console asks questions on a terminal or, when input
// is not a terminal, writes each question and reads
// one line.
type Console struct {
	in          io.Reader
	out         io.Writer
	reader      *bufio.Reader
	interactive bool
}

// NewConsole returns a Console reading from in and
// writing to out. Survey prompts are used only when
// both are terminals.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:          in,
		out:         out,
		reader:      bufio.NewReader(in),
		interactive: isTerminal(in) && isTerminal(out),
	}
}

// Ask implements Asker. Answers are trimmed of
// surrounding whitespace.
func (c *Console) Ask(
	ctx context.Context,
	question string,
) (string, error) {
	const errCtx = "asking operator"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if c.interactive {
		return c.askSurvey(question)
	}

	if _, err := fmt.Fprintln(c.out, question); err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	line, err := c.reader.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		return "", fmt.Errorf("%s: %w", errCtx, ErrNoInput)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return strings.TrimSpace(line), nil
}

func (c *Console) askSurvey(question string) (string, error) {
	const errCtx = "asking operator"

	in, _ := c.in.(*os.File)   //nolint:errcheck // checked by isTerminal
	out, _ := c.out.(*os.File) //nolint:errcheck // checked by isTerminal

	var answer string

	err := survey.AskOne(
		&survey.Input{Message: question},
		&answer,
		survey.WithStdio(in, out, out),
	)
	if errors.Is(err, terminal.InterruptErr) {
		return "", fmt.Errorf("%s: %w", errCtx, ErrInterrupted)
	}

	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return strings.TrimSpace(answer), nil
}

func isTerminal(v any) bool {
	fi, ok := v.(*os.File)
	if !ok {
		return false
	}

	fd := fi.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Confirm asks a yes/no question. Only an explicit "n"
// or "no" (any case) is a refusal.
func Confirm(
	ctx context.Context,
	asker Asker,
	question string,
) (bool, error) {
	answer, err := asker.Ask(ctx, question)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "n", "no":
		return false, nil
	default:
		return true, nil
	}
}

// Script answers questions from a fixed list, in
// order. It records the questions asked.
type Script struct {
	answers []string
	asked   []string
}

// NewScript returns a Script replaying answers.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

// Ask implements Asker.
func (s *Script) Ask(
	_ context.Context,
	question string,
) (string, error) {
	s.asked = append(s.asked, question)

	if len(s.answers) == 0 {
		return "", fmt.Errorf(
			"answering %q: %w", question, ErrNoInput,
		)
	}

	answer := s.answers[0]
	s.answers = s.answers[1:]

	return answer, nil
}

// Asked returns the questions asked so far.
func (s *Script) Asked() []string {
	return append([]string(nil), s.asked...)
}

// Remaining returns the number of unused answers.
func (s *Script) Remaining() int {
	return len(s.answers)
}
