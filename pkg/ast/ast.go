package ast

type NodeType string

const (
	NodeVarAssign    NodeType = "VarAssign"
	NodeVarUpdate    NodeType = "VarUpdate"
	NodeIfCondition  NodeType = "IfCondition"
	NodeWhileLoop    NodeType = "WhileLoop"
	NodeFunctionCall NodeType = "FunctionCall"
	NodeIntLiteral   NodeType = "IntLiteral"
	NodeVarRef       NodeType = "VarRef"
)

// Node is the common interface of every parsed Mini construct.
type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Statement is one executable unit. The variant set is closed: the five
// types below are the whole language.
type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// CompareOp is a while-loop comparison operator.
type CompareOp string

const (
	OpEq CompareOp = "=="
	OpNe CompareOp = "!="
	OpLt CompareOp = "<"
	OpGt CompareOp = ">"
	OpLe CompareOp = "<="
	OpGe CompareOp = ">="
)

// VarAssign declares or overwrites a variable: `let x = 10;`.
type VarAssign struct {
	nodeImpl
	statementMarker

	Var   string `json:"var"`
	Value int64  `json:"value"`
}

func NewVarAssign(name string, value int64) *VarAssign {
	return &VarAssign{nodeImpl: newNodeImpl(NodeVarAssign), Var: name, Value: value}
}

// VarUpdate adds a delta to an existing variable: `x = x + 5;`. Only the
// destination name and the delta carry meaning; the repeated identifier on
// the right-hand side is surface syntax.
type VarUpdate struct {
	nodeImpl
	statementMarker

	Var   string `json:"var"`
	Value int64  `json:"value"`
}

func NewVarUpdate(name string, value int64) *VarUpdate {
	return &VarUpdate{nodeImpl: newNodeImpl(NodeVarUpdate), Var: name, Value: value}
}

// IfCondition is an equality branch: `if x == 15 { ... } else { ... }`.
// Equality is the only comparison the if form admits.
type IfCondition struct {
	nodeImpl
	statementMarker

	Var         string      `json:"var"`
	Value       int64       `json:"value"`
	TrueBranch  []Statement `json:"trueBranch"`
	FalseBranch []Statement `json:"falseBranch"`
}

func NewIfCondition(name string, value int64, trueBranch, falseBranch []Statement) *IfCondition {
	return &IfCondition{
		nodeImpl:    newNodeImpl(NodeIfCondition),
		Var:         name,
		Value:       value,
		TrueBranch:  trueBranch,
		FalseBranch: falseBranch,
	}
}

// WhileLoop re-tests its condition before every iteration:
// `while x < 5 { ... }`.
type WhileLoop struct {
	nodeImpl
	statementMarker

	Var   string      `json:"var"`
	Op    CompareOp   `json:"op"`
	Value int64       `json:"value"`
	Body  []Statement `json:"body"`
}

func NewWhileLoop(name string, op CompareOp, value int64, body []Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Var: name, Op: op, Value: value, Body: body}
}

// CallArg is one argument of a FunctionCall: an integer literal or a
// variable reference resolved at call time.
type CallArg interface {
	Node
	callArgNode()
}

type callArgMarker struct{}

func (callArgMarker) callArgNode() {}

// IntLiteral is a literal call argument.
type IntLiteral struct {
	nodeImpl
	callArgMarker

	Value int64 `json:"value"`
}

func NewIntLiteral(value int64) *IntLiteral {
	return &IntLiteral{nodeImpl: newNodeImpl(NodeIntLiteral), Value: value}
}

// VarRef is a variable-reference call argument.
type VarRef struct {
	nodeImpl
	callArgMarker

	Name string `json:"name"`
}

func NewVarRef(name string) *VarRef {
	return &VarRef{nodeImpl: newNodeImpl(NodeVarRef), Name: name}
}

// FunctionCall invokes a builtin: `print(1, 2, 3);` or `print(x);`.
type FunctionCall struct {
	nodeImpl
	statementMarker

	Name string    `json:"name"`
	Args []CallArg `json:"args"`
}

func NewFunctionCall(name string, args []CallArg) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name, Args: args}
}
