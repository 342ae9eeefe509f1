package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	kiterrors "github.com/threatflux/statekit/internal/errors"
	"github.com/threatflux/statekit/internal/pool"
)

// GetFunc is the resolution engine's get, re-entered by the evaluator
// when it encounters a placeholder token (§4.E). found=false with a nil
// error means "no value" (the template resolution then fails, since a
// placeholder must resolve to something concrete).
type GetFunc func(ctx context.Context, key string) (value any, found bool, err error)

// Evaluator renders a template value record to a concrete value by
// concatenating its tokens, resolving path tokens through get.
type Evaluator struct {
	arena *pool.Arena
	get   GetFunc
}

// NewEvaluator returns an Evaluator reading templates from arena and
// resolving placeholders via get.
func NewEvaluator(arena *pool.Arena, get GetFunc) *Evaluator {
	return &Evaluator{arena: arena, get: get}
}

// Eval renders the template at tmplIdx. A single-token path template
// (exactly one placeholder, no literal tokens) preserves the resolved
// value's native type rather than stringifying it (§4.E "special case").
// Any other shape concatenates tokens into a string.
func (e *Evaluator) Eval(ctx context.Context, tmplIdx uint16) (any, error) {
	tmpl, ok := e.arena.Templates.Get(tmplIdx)
	if !ok || !tmpl.IsTemplate() {
		return nil, fmt.Errorf("%w: no template at index %d", kiterrors.ErrKeyNotFound, tmplIdx)
	}

	n := tmpl.NumTokens()
	if n == 1 {
		tok := tmpl.Token(0)
		if !tok.IsPath {
			lit, _ := e.arena.Dynamic.Get(tok.Dynamic)
			return lit, nil
		}
		path, err := e.resolvePathString(tok.Dynamic)
		if err != nil {
			return nil, err
		}
		val, found, err := e.get(ctx, path)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: placeholder %q did not resolve", kiterrors.ErrLoadFailed, path)
		}
		return val, nil
	}

	var sb strings.Builder
	for i := 0; i < n; i++ {
		tok := tmpl.Token(i)
		if !tok.IsPath {
			lit, _ := e.arena.Dynamic.Get(tok.Dynamic)
			sb.WriteString(lit)
			continue
		}
		path, err := e.resolvePathString(tok.Dynamic)
		if err != nil {
			return nil, err
		}
		val, found, err := e.get(ctx, path)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: placeholder %q did not resolve", kiterrors.ErrLoadFailed, path)
		}
		s, err := stringify(val)
		if err != nil {
			return nil, fmt.Errorf("placeholder %q: %w", path, err)
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// resolvePathString joins a path-map entry's dynamic-pool segments with
// dots, yielding the dotted key the placeholder addresses.
func (e *Evaluator) resolvePathString(pathIdx uint16) (string, error) {
	segIdxs, ok := e.arena.Path.Get(pathIdx)
	if !ok {
		return "", fmt.Errorf("%w: no path at index %d", kiterrors.ErrKeyNotFound, pathIdx)
	}
	segs := make([]string, len(segIdxs))
	for i, si := range segIdxs {
		s, _ := e.arena.Dynamic.Get(si)
		segs[i] = s
	}
	return strings.Join(segs, "."), nil
}

// stringify renders val for template concatenation: strings as-is,
// numbers in canonical decimal, booleans as "true"/"false". null and
// composite values (maps, slices) cannot be concatenated into a string
// template and are rejected.
func stringify(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case nil:
		return "", fmt.Errorf("cannot render null in a template")
	default:
		return "", fmt.Errorf("cannot render %T in a template", v)
	}
}
