package syntax

import (
	"unicode"

	"github.com/aretw0/regula/pkg/domain"
)

// TokenKind tags a lexical token.
type TokenKind int

const (
	TokenSymbol TokenKind = iota
	TokenUnion
	TokenStar
	TokenConcat
	TokenLParen
	TokenRParen
)

// Token is a lexeme with the rune offset it was read at. Concat tokens are
// synthetic and carry the offset of the token that follows them.
type Token struct {
	Kind   TokenKind
	Value  string
	Offset int
}

// IsSymbolRune reports whether r can be a regex symbol: a letter, a digit,
// ε or ∅.
func IsSymbolRune(r rune) bool {
	s := string(r)
	return s == domain.Epsilon || s == domain.EmptySet || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize splits regex into tokens, checks parentheses are balanced and
// makes implicit concatenation explicit.
func Tokenize(regex string) ([]Token, error) {
	runes := []rune(regex)
	if len(runes) == 0 {
		return nil, domain.NewSyntaxError("Regular expression cannot be empty", -1, "")
	}

	raw := make([]Token, 0, len(runes))
	var open []int
	for i, r := range runes {
		tok := Token{Value: string(r), Offset: i}
		switch {
		case r == '(':
			tok.Kind = TokenLParen
			open = append(open, i)
		case r == ')':
			if len(open) == 0 {
				return nil, domain.NewSyntaxError("Unbalanced parentheses", i, ")")
			}
			open = open[:len(open)-1]
			tok.Kind = TokenRParen
		case r == '|':
			tok.Kind = TokenUnion
		case r == '*':
			tok.Kind = TokenStar
		case IsSymbolRune(r):
			tok.Kind = TokenSymbol
		default:
			return nil, domain.NewSyntaxError("Unexpected character", i, string(r))
		}
		raw = append(raw, tok)
	}
	if len(open) > 0 {
		return nil, domain.NewSyntaxError("Unbalanced parentheses", open[len(open)-1], "(")
	}

	tokens := make([]Token, 0, 2*len(raw))
	for i, tok := range raw {
		if i > 0 && endsOperand(raw[i-1]) && startsOperand(tok) {
			tokens = append(tokens, Token{Kind: TokenConcat, Value: "·", Offset: tok.Offset})
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func endsOperand(t Token) bool {
	return t.Kind == TokenSymbol || t.Kind == TokenRParen || t.Kind == TokenStar
}

func startsOperand(t Token) bool {
	return t.Kind == TokenSymbol || t.Kind == TokenLParen
}
