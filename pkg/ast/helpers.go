package ast

// Terse builders, used heavily in tests.

func Let(name string, value int64) *VarAssign { return NewVarAssign(name, value) }

func Update(name string, delta int64) *VarUpdate { return NewVarUpdate(name, delta) }

func If(name string, value int64, trueBranch, falseBranch []Statement) *IfCondition {
	return NewIfCondition(name, value, trueBranch, falseBranch)
}

func While(name string, op CompareOp, value int64, body ...Statement) *WhileLoop {
	return NewWhileLoop(name, op, value, body)
}

func Call(name string, args ...int64) *FunctionCall {
	callArgs := make([]CallArg, 0, len(args))
	for _, arg := range args {
		callArgs = append(callArgs, NewIntLiteral(arg))
	}
	return NewFunctionCall(name, callArgs)
}

// CallWith builds a call with mixed literal and variable arguments.
func CallWith(name string, args ...CallArg) *FunctionCall { return NewFunctionCall(name, args) }

func Int(value int64) *IntLiteral { return NewIntLiteral(value) }

func Ref(name string) *VarRef { return NewVarRef(name) }

// Body groups statements for branch arguments.
func Body(stmts ...Statement) []Statement { return stmts }
