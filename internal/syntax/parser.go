package syntax

import "github.com/aretw0/regula/pkg/domain"

// parser is a recursive-descent parser over explicit tokens:
//
//	union  = concat { "|" concat }
//	concat = star { "·" star }
//	star   = factor { "*" }
//	factor = symbol | "(" union ")"
type parser struct {
	tokens []Token
	pos    int
	end    int
	leaves []*Node
}

// Parse parses regex into a syntax tree with numbered leaves. Attributes are
// not computed; see Analyze.
func Parse(regex string) (*Node, []*Node, error) {
	tokens, err := Tokenize(regex)
	if err != nil {
		return nil, nil, err
	}
	p := &parser{tokens: tokens, end: len([]rune(regex))}
	root, err := p.parseUnion()
	if err != nil {
		return nil, nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, nil, unexpected(tok)
	}
	return root, p.leaves, nil
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) accept(kind TokenKind) bool {
	if tok, ok := p.peek(); ok && tok.Kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseUnion() (*Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	for p.accept(TokenUnion) {
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeUnion, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseConcat() (*Node, error) {
	left, err := p.parseStar()
	if err != nil {
		return nil, err
	}
	for p.accept(TokenConcat) {
		right, err := p.parseStar()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NodeConcat, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseStar() (*Node, error) {
	node, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.accept(TokenStar) {
		node = &Node{Kind: NodeStar, Left: node}
	}
	return node, nil
}

func (p *parser) parseFactor() (*Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, domain.NewSyntaxError("Unexpected end of expression", p.end, "")
	}
	switch tok.Kind {
	case TokenLParen:
		p.pos++
		node, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if !p.accept(TokenRParen) {
			if next, ok := p.peek(); ok {
				return nil, unexpected(next)
			}
			return nil, domain.NewSyntaxError("Expected ')'", p.end, "")
		}
		return node, nil
	case TokenSymbol:
		p.pos++
		return p.leaf(tok.Value), nil
	}
	return nil, unexpected(tok)
}

func (p *parser) leaf(symbol string) *Node {
	n := &Node{Kind: NodeSymbol, Symbol: symbol, Position: len(p.leaves) + 1}
	p.leaves = append(p.leaves, n)
	return n
}

func unexpected(tok Token) error {
	return domain.NewSyntaxError("Unexpected character", tok.Offset, tok.Value)
}
