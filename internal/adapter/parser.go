package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/mouse-blink/litrep/internal/estree"
)

// IDPlaceholder is replaced by the file identifier in parser arguments.
const IDPlaceholder = "{id}"

// DefaultParserTimeout bounds a single parser invocation.
const DefaultParserTimeout = 30 * time.Second

// ErrNoParser is returned when no parser command is configured.
var ErrNoParser = errors.New("no parser command configured")

// Parser produces the ESTree syntax tree of one source file.
type Parser interface {
	Parse(code, id string) (*estree.Node, error)
}

// ExecParser runs an external command that reads source text on stdin and
// writes an ESTree JSON document on stdout.
type ExecParser struct {
	args    []string
	timeout time.Duration
}

// NewExecParser splits command with shell quoting rules. A zero timeout uses
// DefaultParserTimeout.
func NewExecParser(command string, timeout time.Duration) (*ExecParser, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse parser command %q: %w", command, err)
	}

	if len(args) == 0 {
		return nil, ErrNoParser
	}

	if timeout <= 0 {
		timeout = DefaultParserTimeout
	}

	return &ExecParser{args: args, timeout: timeout}, nil
}

// Parse runs the command for one file.
func (p *ExecParser) Parse(code, id string) (*estree.Node, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	args := make([]string, len(p.args))
	for i, arg := range p.args {
		args[i] = strings.ReplaceAll(arg, IDPlaceholder, id)
	}

	// #nosec G204 - the command line comes from the user's own configuration
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(code)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}

		return nil, fmt.Errorf("%s: %w", args[0], err)
	}

	root, err := estree.Decode(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("decode %s output: %w", args[0], err)
	}

	return root, nil
}
