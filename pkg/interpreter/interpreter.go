// Package interpreter executes parsed Mini statement trees.
//
// Evaluation is a single-threaded, in-order, depth-first walk. The only
// mutable state is the variable environment owned by the interpreter; the
// statement tree itself is never modified.
//
// Error handling follows the language's two-tier design. Referencing an
// unbound variable in an update, branch test, or loop condition is a silent
// no-op. Calling an unregistered function is fatal and aborts the whole run.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"fortio.org/log"

	"mini/interpreter-go/pkg/ast"
	"mini/interpreter-go/pkg/runtime"
)

// Builtin is a native function invocable from script source.
type Builtin func(args []int64) error

// Interpreter drives evaluation of Mini statements against one environment.
type Interpreter struct {
	env      *runtime.Environment
	stdout   io.Writer
	builtins map[string]Builtin
}

// New returns an interpreter with a fresh environment, writing builtin
// output to os.Stdout.
func New() *Interpreter {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput returns an interpreter whose builtin output goes to w.
func NewWithOutput(w io.Writer) *Interpreter {
	interp := &Interpreter{
		env:      runtime.NewEnvironment(),
		stdout:   w,
		builtins: make(map[string]Builtin),
	}
	interp.RegisterBuiltin("print", interp.printBuiltin)
	return interp
}

// Environment returns the interpreter's variable environment.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// RegisterBuiltin installs or replaces a native function. The default table
// contains only "print"; any name not registered is a fatal error when called.
func (i *Interpreter) RegisterBuiltin(name string, fn Builtin) {
	i.builtins[name] = fn
}

// EvaluateProgram executes a top-level statement sequence in order.
func (i *Interpreter) EvaluateProgram(statements []ast.Statement) error {
	return i.evaluateStatements(statements)
}

func (i *Interpreter) evaluateStatements(statements []ast.Statement) error {
	for _, stmt := range statements {
		if err := i.evaluateStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement) error {
	switch n := node.(type) {
	case *ast.VarAssign:
		log.LogVf("assign %s = %d", n.Var, n.Value)
		i.env.Define(n.Var, n.Value)
		return nil
	case *ast.VarUpdate:
		if !i.env.Update(n.Var, n.Value) {
			// Unbound destination: skip, don't create.
			log.LogVf("update %s skipped, not bound", n.Var)
		}
		return nil
	case *ast.IfCondition:
		return i.evaluateIfCondition(n)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n)
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n)
	default:
		return fmt.Errorf("interpreter: unsupported statement type %s", node.NodeType())
	}
}

// evaluateIfCondition runs exactly one branch when the variable is bound and
// neither branch when it is not.
func (i *Interpreter) evaluateIfCondition(stmt *ast.IfCondition) error {
	current, ok := i.env.Lookup(stmt.Var)
	if !ok {
		log.LogVf("if %s skipped, not bound", stmt.Var)
		return nil
	}
	if current == stmt.Value {
		log.LogVf("if %s == %d true, taking true branch", stmt.Var, stmt.Value)
		return i.evaluateStatements(stmt.TrueBranch)
	}
	log.LogVf("if %s == %d false, taking else branch", stmt.Var, stmt.Value)
	return i.evaluateStatements(stmt.FalseBranch)
}

// evaluateWhileLoop re-tests the condition before every iteration. There is
// no iteration cap; a condition that never turns false loops forever.
func (i *Interpreter) evaluateWhileLoop(stmt *ast.WhileLoop) error {
	for i.conditionHolds(stmt.Var, stmt.Op, stmt.Value) {
		if err := i.evaluateStatements(stmt.Body); err != nil {
			return err
		}
	}
	return nil
}

// conditionHolds evaluates `<var> <op> <value>`. An unbound variable makes
// the condition false.
func (i *Interpreter) conditionHolds(name string, op ast.CompareOp, value int64) bool {
	current, ok := i.env.Lookup(name)
	if !ok {
		return false
	}
	switch op {
	case ast.OpEq:
		return current == value
	case ast.OpNe:
		return current != value
	case ast.OpLt:
		return current < value
	case ast.OpGt:
		return current > value
	case ast.OpLe:
		return current <= value
	case ast.OpGe:
		return current >= value
	default:
		return false
	}
}

// evaluateFunctionCall resolves arguments, then dispatches by name. A
// variable-reference argument that is unbound is fatal, unlike the silent
// no-op policy for updates, branch tests, and loop conditions.
func (i *Interpreter) evaluateFunctionCall(stmt *ast.FunctionCall) error {
	fn, ok := i.builtins[stmt.Name]
	if !ok {
		return fmt.Errorf("interpreter: unknown function %q", stmt.Name)
	}
	args := make([]int64, 0, len(stmt.Args))
	for _, arg := range stmt.Args {
		switch a := arg.(type) {
		case *ast.IntLiteral:
			args = append(args, a.Value)
		case *ast.VarRef:
			value, ok := i.env.Lookup(a.Name)
			if !ok {
				return fmt.Errorf("interpreter: unbound variable %q in call to %q", a.Name, stmt.Name)
			}
			args = append(args, value)
		default:
			return fmt.Errorf("interpreter: unsupported call argument type %s", arg.NodeType())
		}
	}
	log.LogVf("call %s%v", stmt.Name, args)
	return fn(args)
}

// printBuiltin emits each argument followed by a single space, then a
// newline: print(1, 2, 3) writes "1 2 3 \n".
func (i *Interpreter) printBuiltin(args []int64) error {
	for _, arg := range args {
		if _, err := fmt.Fprintf(i.stdout, "%d ", arg); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(i.stdout)
	return err
}
