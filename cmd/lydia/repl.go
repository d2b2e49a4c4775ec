package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/whitemech/lydia-sub000/dfa"
	"github.com/whitemech/lydia-sub000/internal/sexpr"
	"github.com/whitemech/lydia-sub000/mona"
	"github.com/whitemech/lydia-sub000/syntax"
	"github.com/whitemech/lydia-sub000/translate"
)

// runInteractive starts a readline-based REPL, modeled on
// internal/input/input.go's InteractiveCommandReader: one formula per
// line, then trace lines checked against it until a blank line or
// ":formula" asks for a new one.
func runInteractive() error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "formula> "})
	if err != nil {
		return fmt.Errorf("create readline config: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" || line == ":formula" {
			continue
		}
		if line == ":quit" {
			return nil
		}

		d, err := translateLine(line)
		if err != nil {
			fmt.Println(renderREPLError(err))
			continue
		}

		if err := readTraces(rl, d); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func translateLine(formulaText string) (*dfa.DFA, error) {
	m := syntax.NewManager()
	f, err := sexpr.Parse(m, formulaText)
	if err != nil {
		return nil, err
	}
	return translate.ToDFA(m, f)
}

// readTraces reads trace lines against d until a blank line or
// ":formula", printing one row per trace as it's entered.
func readTraces(rl *readline.Instance, d *dfa.DFA) error {
	rl.SetPrompt("trace> ")
	defer rl.SetPrompt("formula> ")

	for {
		line, err := rl.Readline()
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" || line == ":formula" {
			return nil
		}

		rows := checkTraces(d, []string{line})
		fmt.Println(renderTraceTable(rows))
	}
}

// renderREPLError formats a formula or arity error through the same
// table renderer trace results use, so REPL output has one consistent
// texture rather than bare fmt.Println(err) in some places and a table
// in others.
func renderREPLError(err error) string {
	rows := []traceRow{{trace: "(formula)", err: err}}
	return renderTraceTable(rows)
}
