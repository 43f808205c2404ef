package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"newt/internal/evaluator"
	"newt/internal/foreign"
	"newt/internal/lexer"
	"newt/internal/object"
	"newt/internal/parser"
)

const (
	prompt             = ">> "
	continuationPrompt = ".. "
)

var errColor = color.New(color.FgRed)

// Start runs the interactive session: one persistent global environment
// with the given host modules installed, until EOF or exit. Submissions
// stay open across lines while braces or parens are unbalanced.
func Start(modules []string) error {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".newt_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to init readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "newt interactive shell (type 'exit' or ^D to quit)")

	env := evaluator.NewGlobalEnvironment(rl.Stdout())
	if err := foreign.Install(env, modules); err != nil {
		return err
	}

	var buffer strings.Builder
	depth := 0

	for {
		if depth > 0 {
			rl.SetPrompt(continuationPrompt)
		} else {
			rl.SetPrompt(prompt)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				// Drop whatever was typed so far.
				buffer.Reset()
				depth = 0
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			return nil
		}

		if depth == 0 && strings.TrimSpace(line) == "exit" {
			return nil
		}

		depth += delimiterBalance(line)
		buffer.WriteString(line)
		buffer.WriteString("\n")

		if depth > 0 {
			continue
		}
		depth = 0

		source := buffer.String()
		buffer.Reset()
		if strings.TrimSpace(source) == "" {
			continue
		}

		run(source, env, rl.Stdout(), rl.Stderr())
	}
}

// delimiterBalance returns the net brace and paren nesting of one line.
// Delimiters inside string literals or behind a // comment don't count.
// Strings cannot span lines, so no state carries across calls.
func delimiterBalance(line string) int {
	balance := 0
	inString := false
	escaped := false

	for i := 0; i < len(line); i++ {
		ch := line[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return balance
			}
		case '{', '(':
			balance++
		case '}', ')':
			balance--
		}
	}

	return balance
}

// run parses one submission and evaluates its instructions in order,
// echoing every result that is not undefined. A failure or a top-level
// return ends the submission, not the session.
func run(source string, env *object.Environment, out, errOut io.Writer) {
	l := lexer.New(source)
	p := parser.New(l)

	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		printParserErrors(errOut, p.Errors())
		return
	}

	for _, instruction := range program.Body.Instructions {
		result := evaluator.Eval(instruction, env)

		if errObj, ok := result.(*object.Error); ok {
			errColor.Fprintf(errOut, "error: %s\n", errObj.Message)
			return
		}

		returnValue, isReturn := result.(*object.ReturnValue)
		if isReturn {
			result = returnValue.Value
		}
		if result != object.UNDEFINED {
			fmt.Fprintln(out, result.Inspect())
		}
		if isReturn {
			return
		}
	}
}

func printParserErrors(out io.Writer, errors []string) {
	errColor.Fprintln(out, "parser errors:")
	for _, msg := range errors {
		errColor.Fprintf(out, "\t%s\n", msg)
	}
}
