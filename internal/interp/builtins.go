package interp

import (
	"github.com/masamoto1982/Lycoris/internal/dict"
	"github.com/masamoto1982/Lycoris/internal/lycerrors"
	"github.com/masamoto1982/Lycoris/internal/rational"
	"github.com/masamoto1982/Lycoris/internal/value"
)

// registerBuiltins installs the minimum complete built-in set. Scope-
// modified forms (@add, *mul, ...) are not separate entries: they fall
// out of scope dispatch over the same plain name.
func registerBuiltins(d *dict.Dict) {
	d.RegisterBuiltin("add", binaryArith("add", rationalAdd))
	d.RegisterBuiltin("sub", binaryArith("sub", rationalSub))
	d.RegisterBuiltin("mul", binaryArith("mul", rationalMul))
	d.RegisterBuiltin("div", binaryArith("div", rationalDiv))
	d.RegisterBuiltin("mod", binaryArith("mod", rationalMod))
	d.RegisterBuiltin("pow", binaryArith("pow", rationalPow))

	d.RegisterBuiltin("dup", biDup)
	d.RegisterBuiltin("drop", biDrop)
	d.RegisterBuiltin("swap", biSwap)
	d.RegisterBuiltin("over", biOver)
	d.RegisterBuiltin("rot", biRot)

	d.RegisterBuiltin("vec", biVec)
	d.RegisterBuiltin("unpack", biUnpack)
	d.RegisterBuiltin("nth", indexLookup("nth"))
	d.RegisterBuiltin("length", biLength)
	d.RegisterBuiltin("concat", biConcat)
	d.RegisterBuiltin("append", biAppend)
	d.RegisterBuiltin("get", indexLookup("get"))
	d.RegisterBuiltin("set", biSet)

	d.RegisterBuiltin("lt", comparison("lt", func(c int) bool { return c < 0 }))
	d.RegisterBuiltin("le", comparison("le", func(c int) bool { return c <= 0 }))
	d.RegisterBuiltin("gt", comparison("gt", func(c int) bool { return c > 0 }))
	d.RegisterBuiltin("ge", comparison("ge", func(c int) bool { return c >= 0 }))
	d.RegisterBuiltin("eq", biEq)
	d.RegisterBuiltin("ne", biNe)
	d.RegisterBuiltin("sign", biSign)
	d.RegisterBuiltin("not", biNot)

	d.RegisterBuiltin("run", biRun)
	d.RegisterBuiltin("quote", biQuote)

	d.RegisterBuiltin("def", biDef)
	d.RegisterBuiltin("undef", biUndef)

	d.RegisterBuiltin("print", biPrint)
	d.RegisterBuiltin("clear", biClear)
}

func asRational(v value.Value) (rational.Rational, bool) {
	if v.Kind != value.KindRational {
		return rational.Rational{}, false
	}
	return v.Rat, true
}

func rationalAdd(a, b rational.Rational) (rational.Rational, error) { return a.Add(b), nil }
func rationalSub(a, b rational.Rational) (rational.Rational, error) { return a.Sub(b), nil }
func rationalMul(a, b rational.Rational) (rational.Rational, error) { return a.Mul(b), nil }
func rationalDiv(a, b rational.Rational) (rational.Rational, error) { return a.Div(b) }
func rationalMod(a, b rational.Rational) (rational.Rational, error) { return a.Mod(b) }
func rationalPow(a, b rational.Rational) (rational.Rational, error) {
	return a.Pow(b, rational.DefaultMaxExponent)
}

// binaryArith builds a built-in consuming two Rationals (a below b, b on
// top: "5 3 add" computes add(5, 3)) and pushing one.
func binaryArith(name string, f func(a, b rational.Rational) (rational.Rational, error)) dict.BuiltinFunc {
	return func(m dict.Machine) error {
		bv, err := m.Pop()
		if err != nil {
			return err
		}
		av, err := m.Pop()
		if err != nil {
			return err
		}
		a, ok := asRational(av)
		if !ok {
			return lycerrors.NewTypeError("Rational", av.TypeName(), name)
		}
		b, ok := asRational(bv)
		if !ok {
			return lycerrors.NewTypeError("Rational", bv.TypeName(), name)
		}
		r, err := f(a, b)
		if err != nil {
			return err
		}
		m.Push(value.Rational(r))
		return nil
	}
}

func biDup(m dict.Machine) error {
	v, err := m.Peek(0)
	if err != nil {
		return err
	}
	m.Push(v)
	return nil
}

func biDrop(m dict.Machine) error {
	_, err := m.Pop()
	return err
}

func biSwap(m dict.Machine) error {
	vs, err := m.PopN(2)
	if err != nil {
		return err
	}
	m.Push(vs[1])
	m.Push(vs[0])
	return nil
}

func biOver(m dict.Machine) error {
	v, err := m.Peek(1)
	if err != nil {
		return err
	}
	m.Push(v)
	return nil
}

// biRot rotates the top three values: a b c -> b c a.
func biRot(m dict.Machine) error {
	vs, err := m.PopN(3)
	if err != nil {
		return err
	}
	m.Push(vs[1])
	m.Push(vs[2])
	m.Push(vs[0])
	return nil
}

// biVec pops an integer n >= 0, then n values, pushing a Vector of them
// in their original bottom-to-top order.
func biVec(m dict.Machine) error {
	nv, err := m.Pop()
	if err != nil {
		return err
	}
	n, ok := asNonNegInt(nv)
	if !ok {
		return lycerrors.NewTypeError("non-negative integer", nv.TypeName(), "vec")
	}
	elems, err := m.PopN(n)
	if err != nil {
		return err
	}
	m.Push(value.Vector(elems))
	return nil
}

func biUnpack(m dict.Machine) error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.KindVector {
		return lycerrors.NewTypeError("Vector", v.TypeName(), "unpack")
	}
	for _, elem := range v.Vec {
		m.Push(elem)
	}
	return nil
}

func indexLookup(name string) dict.BuiltinFunc {
	return func(m dict.Machine) error {
		iv, err := m.Pop()
		if err != nil {
			return err
		}
		vv, err := m.Pop()
		if err != nil {
			return err
		}
		if vv.Kind != value.KindVector {
			return lycerrors.NewTypeError("Vector", vv.TypeName(), name)
		}
		idx, ok := asInt(iv)
		if !ok {
			return lycerrors.NewTypeError("integer", iv.TypeName(), name)
		}
		resolved, ok := resolveIndex(idx, len(vv.Vec))
		if !ok {
			return lycerrors.NewIndexError(idx, len(vv.Vec))
		}
		m.Push(vv.Vec[resolved])
		return nil
	}
}

func biLength(m dict.Machine) error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.KindVector {
		return lycerrors.NewTypeError("Vector", v.TypeName(), "length")
	}
	m.Push(value.Rational(rational.FromInt64(int64(len(v.Vec)))))
	return nil
}

func biConcat(m dict.Machine) error {
	bv, err := m.Pop()
	if err != nil {
		return err
	}
	av, err := m.Pop()
	if err != nil {
		return err
	}
	if av.Kind != value.KindVector {
		return lycerrors.NewTypeError("Vector", av.TypeName(), "concat")
	}
	if bv.Kind != value.KindVector {
		return lycerrors.NewTypeError("Vector", bv.TypeName(), "concat")
	}
	out := make([]value.Value, 0, len(av.Vec)+len(bv.Vec))
	out = append(out, av.Vec...)
	out = append(out, bv.Vec...)
	m.Push(value.Vector(out))
	return nil
}

func biAppend(m dict.Machine) error {
	elem, err := m.Pop()
	if err != nil {
		return err
	}
	vv, err := m.Pop()
	if err != nil {
		return err
	}
	if vv.Kind != value.KindVector {
		return lycerrors.NewTypeError("Vector", vv.TypeName(), "append")
	}
	out := make([]value.Value, 0, len(vv.Vec)+1)
	out = append(out, vv.Vec...)
	out = append(out, elem)
	m.Push(value.Vector(out))
	return nil
}

func biSet(m dict.Machine) error {
	newVal, err := m.Pop()
	if err != nil {
		return err
	}
	iv, err := m.Pop()
	if err != nil {
		return err
	}
	vv, err := m.Pop()
	if err != nil {
		return err
	}
	if vv.Kind != value.KindVector {
		return lycerrors.NewTypeError("Vector", vv.TypeName(), "set")
	}
	idx, ok := asInt(iv)
	if !ok {
		return lycerrors.NewTypeError("integer", iv.TypeName(), "set")
	}
	resolved, ok := resolveIndex(idx, len(vv.Vec))
	if !ok {
		return lycerrors.NewIndexError(idx, len(vv.Vec))
	}
	out := append([]value.Value(nil), vv.Vec...)
	out[resolved] = newVal
	m.Push(value.Vector(out))
	return nil
}

// comparison builds a binary Rational predicate built-in (lt/le/gt/ge), so
// guard-clause conditions have something other than a literal true/false
// to compute.
func comparison(name string, test func(cmp int) bool) dict.BuiltinFunc {
	return func(m dict.Machine) error {
		bv, err := m.Pop()
		if err != nil {
			return err
		}
		av, err := m.Pop()
		if err != nil {
			return err
		}
		a, ok := asRational(av)
		if !ok {
			return lycerrors.NewTypeError("Rational", av.TypeName(), name)
		}
		b, ok := asRational(bv)
		if !ok {
			return lycerrors.NewTypeError("Rational", bv.TypeName(), name)
		}
		m.Push(value.BoolVal(test(a.Cmp(b))))
		return nil
	}
}

// biEq is structural equality over any Value kind, not just Rationals.
func biEq(m dict.Machine) error {
	bv, err := m.Pop()
	if err != nil {
		return err
	}
	av, err := m.Pop()
	if err != nil {
		return err
	}
	m.Push(value.BoolVal(av.Equal(bv)))
	return nil
}

func biNe(m dict.Machine) error {
	bv, err := m.Pop()
	if err != nil {
		return err
	}
	av, err := m.Pop()
	if err != nil {
		return err
	}
	m.Push(value.BoolVal(!av.Equal(bv)))
	return nil
}

// biSign pushes -1, 0, or 1 as an integer Rational, reflecting the sign of
// the popped value.
func biSign(m dict.Machine) error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	r, ok := asRational(v)
	if !ok {
		return lycerrors.NewTypeError("Rational", v.TypeName(), "sign")
	}
	m.Push(value.Rational(rational.FromInt64(int64(r.Sign()))))
	return nil
}

// biNot inverts a Bool, for negating a guard-clause condition.
func biNot(m dict.Machine) error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.KindBool {
		return lycerrors.NewTypeError("Bool", v.TypeName(), "not")
	}
	m.Push(value.BoolVal(!v.Bool))
	return nil
}

// biRun pops the top value; if it is a Vector, replays its elements
// through RunVector (literals push, word references execute). Any other
// type is a TypeError.
func biRun(m dict.Machine) error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	if v.Kind != value.KindVector {
		return lycerrors.NewTypeError("Vector", v.TypeName(), "run")
	}
	return m.RunVector(v.Vec)
}

// biQuote pops the top value and pushes a one-element Vector wrapping it.
func biQuote(m dict.Machine) error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	m.Push(value.Vector([]value.Value{v}))
	return nil
}

// biDef pops a String (name) then a Vector (body) and installs a user
// word. The body's canonical text is stored as its display source.
func biDef(m dict.Machine) error {
	nameVal, err := m.Pop()
	if err != nil {
		return err
	}
	bodyVal, err := m.Pop()
	if err != nil {
		return err
	}
	if nameVal.Kind != value.KindString {
		return lycerrors.NewTypeError("String", nameVal.TypeName(), "def")
	}
	if bodyVal.Kind != value.KindVector {
		return lycerrors.NewTypeError("Vector", bodyVal.TypeName(), "def")
	}
	if err := validateWordName(nameVal.Str); err != nil {
		return err
	}
	return m.Dictionary().Define(nameVal.Str, bodyVal.Vec, bodyVal.Canonical(), "")
}

func biUndef(m dict.Machine) error {
	nameVal, err := m.Pop()
	if err != nil {
		return err
	}
	if nameVal.Kind != value.KindString {
		return lycerrors.NewTypeError("String", nameVal.TypeName(), "undef")
	}
	return m.Dictionary().Undefine(nameVal.Str)
}

func biPrint(m dict.Machine) error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	m.Print(v.Canonical() + "\n")
	return nil
}

func biClear(m dict.Machine) error {
	m.ClearOutput()
	return nil
}

func asInt(v value.Value) (int, bool) {
	r, ok := asRational(v)
	if !ok || !r.IsInteger() {
		return 0, false
	}
	if !r.Num.IsInt64() {
		return 0, false
	}
	return int(r.Num.Int64()), true
}

func asNonNegInt(v value.Value) (int, bool) {
	n, ok := asInt(v)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

// resolveIndex turns a possibly-negative index (counting from the end)
// into a valid slice index, or reports it out of range.
func resolveIndex(idx, length int) (int, bool) {
	resolved := idx
	if resolved < 0 {
		resolved += length
	}
	if resolved < 0 || resolved >= length {
		return 0, false
	}
	return resolved, true
}

// validateWordName rejects names that would collide with literal syntax
// the tokenizer recognizes before ever reaching the dictionary: reserved
// words, number literals, and characters that have grammatical meaning.
func validateWordName(name string) error {
	if name == "" {
		return lycerrors.NewInvalidNameError(name, "name must not be empty")
	}
	if name == "true" || name == "false" || name == "nil" {
		return lycerrors.NewInvalidNameError(name, "name collides with a reserved literal")
	}
	first := name[0]
	if first >= '0' && first <= '9' {
		return lycerrors.NewInvalidNameError(name, "name would be parsed as a number")
	}
	if (first == '+' || first == '-') && len(name) > 1 && name[1] >= '0' && name[1] <= '9' {
		return lycerrors.NewInvalidNameError(name, "name would be parsed as a number")
	}
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '\'', '[', ']', ':', '@', '*', '#', ' ', '\t', '\n', '\r', '/':
			return lycerrors.NewInvalidNameError(name, "name contains a character reserved by the grammar")
		}
	}
	return nil
}
