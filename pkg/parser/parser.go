// Package parser turns Mini source text into the statement tree evaluated by
// pkg/interpreter.
//
// The grammar is strictly line-oriented: every statement occupies one source
// line, each line is trimmed of surrounding whitespace and matched against
// one pattern per form. Block structure (if/else, while) is recovered by a
// recursive walk over an explicit line cursor, never by matching a pattern
// across lines.
//
// The grammar is deliberately asymmetric between nesting levels. A top-level
// line that matches no form is skipped without error; a line inside an
// if/while body must be a declaration, an update, or a call. Anything else,
// including a nested if or while, fails the whole parse.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mini/interpreter-go/pkg/ast"
)

var (
	reAssign   = regexp.MustCompile(`^let (\w+) = (-?\d+);$`)
	reUpdate   = regexp.MustCompile(`^(\w+) = (\w+) \+ (-?\d+);$`)
	reIf       = regexp.MustCompile(`^if (\w+) == (-?\d+) \{$`)
	reElse     = regexp.MustCompile(`^\} else \{$`)
	reBlockEnd = regexp.MustCompile(`^\}$`)
	reWhile    = regexp.MustCompile(`^while (\w+) (==|!=|<|>|<=|>=) (-?\d+) \{$`)
	reCall     = regexp.MustCompile(`^(\w+)\(([^)]*)\);$`)
	reInt      = regexp.MustCompile(`^-?\d+$`)
	reIdent    = regexp.MustCompile(`^\w+$`)
)

// Parser walks a program's source lines with an explicit cursor.
type Parser struct {
	lines []string
	pos   int
}

// New prepares a parser over the given source text.
func New(source string) *Parser {
	return &Parser{lines: strings.Split(source, "\n")}
}

// Parse is shorthand for New(source).ParseProgram().
func Parse(source string) ([]ast.Statement, error) {
	return New(source).ParseProgram()
}

// ParseProgram consumes every source line and returns the top-level
// statement sequence in source order.
func (p *Parser) ParseProgram() ([]ast.Statement, error) {
	statements := make([]ast.Statement, 0)
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		switch {
		case reAssign.MatchString(line):
			caps := reAssign.FindStringSubmatch(line)
			value, err := p.parseInt(caps[2])
			if err != nil {
				return nil, err
			}
			statements = append(statements, ast.NewVarAssign(caps[1], value))
		case reUpdate.MatchString(line):
			// caps[2], the repeated identifier, is required surface syntax
			// but carries no meaning of its own.
			caps := reUpdate.FindStringSubmatch(line)
			value, err := p.parseInt(caps[3])
			if err != nil {
				return nil, err
			}
			statements = append(statements, ast.NewVarUpdate(caps[1], value))
		case reIf.MatchString(line):
			caps := reIf.FindStringSubmatch(line)
			stmt, err := p.parseIfBlock(caps[1], caps[2])
			if err != nil {
				return nil, err
			}
			statements = append(statements, stmt)
		case reWhile.MatchString(line):
			caps := reWhile.FindStringSubmatch(line)
			stmt, err := p.parseWhileBlock(caps[1], caps[2], caps[3])
			if err != nil {
				return nil, err
			}
			statements = append(statements, stmt)
		case reCall.MatchString(line):
			caps := reCall.FindStringSubmatch(line)
			stmt, err := p.parseCall(caps[1], caps[2])
			if err != nil {
				return nil, err
			}
			statements = append(statements, stmt)
		default:
			// Unrecognized top-level lines are dropped, not errors.
		}
		p.pos++
	}
	return statements, nil
}

// parseIfBlock collects the true branch until `} else {` or `}`, then the
// false branch (if any) until `}`. The cursor is left on the closing brace;
// the caller steps past it.
func (p *Parser) parseIfBlock(name, literal string) (*ast.IfCondition, error) {
	value, err := p.parseInt(literal)
	if err != nil {
		return nil, err
	}

	trueBranch := make([]ast.Statement, 0)
	falseBranch := make([]ast.Statement, 0)

	p.pos++
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		if reElse.MatchString(line) || reBlockEnd.MatchString(line) {
			break
		}
		stmt, err := p.parseNested(line)
		if err != nil {
			return nil, err
		}
		trueBranch = append(trueBranch, stmt)
		p.pos++
	}

	if p.pos < len(p.lines) && reElse.MatchString(strings.TrimSpace(p.lines[p.pos])) {
		p.pos++
		for p.pos < len(p.lines) {
			line := strings.TrimSpace(p.lines[p.pos])
			if reBlockEnd.MatchString(line) {
				break
			}
			stmt, err := p.parseNested(line)
			if err != nil {
				return nil, err
			}
			falseBranch = append(falseBranch, stmt)
			p.pos++
		}
	}

	return ast.NewIfCondition(name, value, trueBranch, falseBranch), nil
}

// parseWhileBlock collects the loop body until `}`. Only a bare closing
// brace ends the body; a `} else {` line inside a while is handed to
// parseNested and fails there.
func (p *Parser) parseWhileBlock(name, op, literal string) (*ast.WhileLoop, error) {
	value, err := p.parseInt(literal)
	if err != nil {
		return nil, err
	}

	body := make([]ast.Statement, 0)

	p.pos++
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		if reBlockEnd.MatchString(line) {
			break
		}
		stmt, err := p.parseNested(line)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
		p.pos++
	}

	return ast.NewWhileLoop(name, ast.CompareOp(op), value, body), nil
}

// parseNested recognizes the restricted statement forms permitted inside a
// block: declaration, update, call. Composite statements do not nest.
func (p *Parser) parseNested(line string) (ast.Statement, error) {
	switch {
	case reAssign.MatchString(line):
		caps := reAssign.FindStringSubmatch(line)
		value, err := p.parseInt(caps[2])
		if err != nil {
			return nil, err
		}
		return ast.NewVarAssign(caps[1], value), nil
	case reUpdate.MatchString(line):
		caps := reUpdate.FindStringSubmatch(line)
		value, err := p.parseInt(caps[3])
		if err != nil {
			return nil, err
		}
		return ast.NewVarUpdate(caps[1], value), nil
	case reCall.MatchString(line):
		caps := reCall.FindStringSubmatch(line)
		return p.parseCall(caps[1], caps[2])
	default:
		return nil, fmt.Errorf("parser: invalid statement %q (line %d)", line, p.pos+1)
	}
}

// parseCall splits the argument text on commas; each trimmed token is an
// integer literal or a variable reference resolved at call time. Splitting
// an empty argument list still yields one empty token, which is neither, so
// a zero-argument call like `name();` fails here: the grammar cannot
// express it.
func (p *Parser) parseCall(name, argText string) (*ast.FunctionCall, error) {
	parts := strings.Split(argText, ",")
	args := make([]ast.CallArg, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		// A digit token is always an integer literal, so overflow stays
		// fatal instead of decaying into a variable reference.
		if reInt.MatchString(token) {
			value, err := p.parseInt(token)
			if err != nil {
				return nil, err
			}
			args = append(args, ast.NewIntLiteral(value))
			continue
		}
		if reIdent.MatchString(token) {
			args = append(args, ast.NewVarRef(token))
			continue
		}
		return nil, fmt.Errorf("parser: invalid call argument %q (line %d)", token, p.pos+1)
	}
	return ast.NewFunctionCall(name, args), nil
}

func (p *Parser) parseInt(text string) (int64, error) {
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parser: invalid integer literal %q (line %d)", text, p.pos+1)
	}
	return value, nil
}
