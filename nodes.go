package scicalc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the number text, constant, register, or function name.
	name string
	fn   Func

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // push num
	nodeConst // push constant
	nodeName  // push register

	nodeCall // name is Func to call, right is link to nodeArg unless niladic
	nodeArg  // eval left, right is link to next arg

	nodeNeg     // evaluate left, then negate
	nodeFact    // evaluate left, then factorial
	nodeSquare  // evaluate left, then square
	nodeCube    // evaluate left, then cube
	nodeRecip   // evaluate left, then reciprocal
	nodePercent // evaluate left, then divide by 100
	nodeSqrt    // evaluate left, then square root
	nodeCbrt    // evaluate left, then cube root

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodePow // evaluate left, exp by right

	nodeStore // evaluate left, then store in register name
)

var nodeKindNames = [...]string{
	nodeNone:    "None",
	nodeNum:     "Num",
	nodeConst:   "Const",
	nodeName:    "Name",
	nodeCall:    "Call",
	nodeArg:     "Arg",
	nodeNeg:     "Neg",
	nodeFact:    "Fact",
	nodeSquare:  "Square",
	nodeCube:    "Cube",
	nodeRecip:   "Recip",
	nodePercent: "Percent",
	nodeSqrt:    "Sqrt",
	nodeCbrt:    "Cbrt",
	nodeAdd:     "Add",
	nodeSub:     "Sub",
	nodeMul:     "Mul",
	nodeDiv:     "Div",
	nodePow:     "Pow",
	nodeStore:   "Store",
}

func (k nodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeKindNames[k]
}

// postfixes maps postfix node kinds to the operator written after the
// operand.
var postfixes = map[nodeKind]string{
	nodeFact:    "!",
	nodeSquare:  "²",
	nodeCube:    "³",
	nodeRecip:   recipOp,
	nodePercent: "%",
}

// infixes maps binary node kinds to their operator.
var infixes = map[nodeKind]string{
	nodeAdd: " + ",
	nodeSub: " - ",
	nodeMul: " × ",
	nodeDiv: " ÷ ",
	nodePow: " ^ ",
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes n fully bracketed, alternating round and square brackets by
// depth.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, square)
		}
		b.WriteByte('$')
	case nodeNum, nodeConst, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.fmtargs(b, !square)
	case nodeArg:
		// Args usually only appear inside calls, which are handled by fmtargs.
		b.WriteByte(':')
		n.left.fmt(b, !square)
		if n.right != nil {
			n.right.fmt(b, !square)
		}
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, !square)
	case nodeSqrt:
		b.WriteString("√")
		n.left.fmt(b, !square)
	case nodeCbrt:
		b.WriteString("∛")
		n.left.fmt(b, !square)
	case nodeFact, nodeSquare, nodeCube, nodeRecip, nodePercent:
		n.left.fmt(b, !square)
		b.WriteString(postfixes[n.kind])
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		n.left.fmt(b, !square)
		b.WriteString(infixes[n.kind])
		n.right.fmt(b, !square)
	case nodeStore:
		n.left.fmt(b, !square)
		b.WriteString(" → ")
		b.WriteString(n.name)
	default:
		panic("scicalc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

func (n *node) fmtargs(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	if n.right == nil {
		// Niladic call.
		return
	}
	n = n.right
	n.left.fmt(b, !square)
	for n.right != nil {
		n = n.right
		b.WriteString(", ")
		n.left.fmt(b, !square)
	}
}
