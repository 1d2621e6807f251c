package interp

import (
	"github.com/masamoto1982/Lycoris/internal/dict"
	"github.com/masamoto1982/Lycoris/internal/lycerrors"
	"github.com/masamoto1982/Lycoris/internal/value"
)

// dispatchMap implements the `@` scope modifier. A form like `[1 2 3] 2
// @mul` pushes the vector before a scalar operand, so the vector is not
// necessarily on top when the word runs: pop values off the stack as
// "extra" operands until a Vector turns up, then replay each element
// against the word with those extras supplied ahead of it, in their
// original (pre-pop) order. A word taking no extra operand (the vector
// already on top) is just the zero-extras case of the same loop.
func (e *Evaluator) dispatchMap(entry *dict.Entry) error {
	var extras []value.Value
	var vec value.Value
	for {
		v, err := e.Pop()
		if err != nil {
			return lycerrors.NewArityError("map: no vector operand found on the stack")
		}
		if v.Kind == value.KindVector {
			vec = v
			break
		}
		extras = append(extras, v)
	}

	reversed := make([]value.Value, len(extras))
	for i, v := range extras {
		reversed[len(extras)-1-i] = v
	}

	out := make([]value.Value, len(vec.Vec))
	for i, elem := range vec.Vec {
		local := append(append([]value.Value(nil), reversed...), elem)
		results, err := e.runOnLocalStack(entry, local)
		if err != nil {
			return err
		}
		if len(results) != 1 {
			return lycerrors.NewArityError("map: word must reduce each element to exactly one value")
		}
		out[i] = results[0]
	}
	e.Push(value.Vector(out))
	return nil
}

// dispatchReduce implements the `*` scope modifier: pop a non-empty
// Vector, fold left with a binary word, push the final seed.
func (e *Evaluator) dispatchReduce(entry *dict.Entry) error {
	v, err := e.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.KindVector {
		return lycerrors.NewTypeError("Vector", v.TypeName(), "reduce scope modifier")
	}
	if len(v.Vec) == 0 {
		return lycerrors.NewDomainError("reduce: empty vector")
	}

	seed := v.Vec[0]
	for _, elem := range v.Vec[1:] {
		results, err := e.runOnLocalStack(entry, []value.Value{seed, elem})
		if err != nil {
			return err
		}
		if len(results) != 1 {
			return lycerrors.NewArityError("reduce: word must be binary (consume two, produce one)")
		}
		seed = results[0]
	}
	e.Push(seed)
	return nil
}

// dispatchGlobal implements the `#` scope modifier: the entire current
// stack becomes a single Vector argument, the word runs once against it,
// and whatever remains on the local stack afterward is left on the real
// stack.
func (e *Evaluator) dispatchGlobal(entry *dict.Entry) error {
	all := append([]value.Value(nil), e.stack...)
	results, err := e.runOnLocalStack(entry, []value.Value{value.Vector(all)})
	if err != nil {
		return err
	}
	e.stack = append(e.stack[:0], results...)
	return nil
}
