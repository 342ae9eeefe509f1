package record

import "github.com/threatflux/statekit/internal/bitfield"

// MaxTemplateTokens is the hard limit on tokens a single template value
// record can hold — six token slots fit in the two 64-bit words; a
// source string demanding more is a parser error (§3 invariant 6).
const MaxTemplateTokens = 6

// tokenWidth is the per-token field width: is_path(1) + dynamic(16).
const tokenWidth uint = 17

// tokensPerWord0 is how many token slots word0 holds after reserving its
// top bit for is_template; the remaining tokens live in word1.
const tokensPerWord0 = 3

// Template is the 128-bit template value record: an is_template flag
// plus up to MaxTemplateTokens ordered tokens. Each token is either a
// literal dynamic-pool reference (is_path=false) or a placeholder
// path-map reference to be resolved through the engine (is_path=true).
type Template struct {
	word0 uint64
	word1 uint64
	n     int // number of tokens actually in use, 0..MaxTemplateTokens
}

const (
	offIsTemplate uint   = 63
	maskIsTemplate uint64 = 0x1
)

// Token is a single decoded template token.
type Token struct {
	IsPath  bool
	Dynamic uint16
}

// NewTemplate builds a Template from an ordered token list. It panics if
// more than MaxTemplateTokens are supplied — callers (the tokenizer) are
// expected to enforce the limit before calling this, returning a parse
// error to their own caller instead of reaching here.
func NewTemplate(tokens []Token) Template {
	if len(tokens) > MaxTemplateTokens {
		panic("record: too many template tokens")
	}

	var t Template
	t.n = len(tokens)
	t.word0 = bitfield.Set(t.word0, offIsTemplate, maskIsTemplate, 1)

	for i, tok := range tokens {
		word, offset := tokenSlot(i)
		v := uint64(0)
		if tok.IsPath {
			v = 1
		}
		v = (v << 16) | uint64(tok.Dynamic)
		if word == 0 {
			t.word0 = bitfield.Set(t.word0, offset, (1<<tokenWidth)-1, v)
		} else {
			t.word1 = bitfield.Set(t.word1, offset, (1<<tokenWidth)-1, v)
		}
	}
	return t
}

// tokenSlot returns which word a token index lives in and its bit
// offset within that word, packing tokens from the high bits down so
// is_template (word0's top bit) never collides with token 0.
func tokenSlot(i int) (word int, offset uint) {
	if i < tokensPerWord0 {
		return 0, 63 - uint(i+1)*tokenWidth
	}
	j := i - tokensPerWord0
	return 1, 64 - uint(j+1)*tokenWidth
}

// IsTemplate reports whether this record has been initialized via
// NewTemplate (as opposed to a zero Template, which callers should treat
// as absent).
func (t Template) IsTemplate() bool {
	return bitfield.Get(t.word0, offIsTemplate, maskIsTemplate) != 0
}

// NumTokens returns how many token slots are populated.
func (t Template) NumTokens() int { return t.n }

// Token returns the i'th token, 0-indexed.
func (t Template) Token(i int) Token {
	word, offset := tokenSlot(i)
	var raw uint64
	if word == 0 {
		raw = bitfield.Get(t.word0, offset, (1<<tokenWidth)-1)
	} else {
		raw = bitfield.Get(t.word1, offset, (1<<tokenWidth)-1)
	}
	return Token{
		IsPath:  raw>>16 != 0,
		Dynamic: uint16(raw & 0xFFFF),
	}
}

// Tokens decodes every populated token in order.
func (t Template) Tokens() []Token {
	out := make([]Token, t.n)
	for i := range out {
		out[i] = t.Token(i)
	}
	return out
}
