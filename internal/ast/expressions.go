package ast

import "github.com/tsstack/binder/internal/token"

// PropertyAccessExpression: `expr.Property`.
type PropertyAccessExpression struct {
	Expression Expression
	Property   *Identifier
	Rng        token.Range
}

func (p *PropertyAccessExpression) Range() token.Range { return p.Rng }
func (p *PropertyAccessExpression) expressionNode()    {}

// ThisExpression: `this`.
type ThisExpression struct {
	Rng token.Range
}

func (t *ThisExpression) Range() token.Range { return t.Rng }
func (t *ThisExpression) expressionNode()    {}

// NewExpression: `new Callee<TypeArguments>(Arguments)`.
type NewExpression struct {
	Callee        Expression
	TypeArguments []*TypeNode
	Arguments     []Expression
	Rng           token.Range
}

func (n *NewExpression) Range() token.Range { return n.Rng }
func (n *NewExpression) expressionNode()    {}

// JoinRange returns the smallest range covering every supplied node's range.
// Used by the resolver's checkArity and ResolveInclTypeArguments to report an
// arity mismatch at the join of the supplied type-argument nodes.
func JoinRange(nodes ...Node) token.Range {
	var r token.Range
	for _, n := range nodes {
		if n == nil {
			continue
		}
		r = token.Join(r, n.Range())
	}
	return r
}
