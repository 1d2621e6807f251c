package rational

import (
	"math/big"
	"testing"
)

func mustNew(t *testing.T, num, den int64) Rational {
	t.Helper()
	r, err := New(big.NewInt(num), big.NewInt(den))
	if err != nil {
		t.Fatalf("New(%d,%d): %v", num, den, err)
	}
	return r
}

func TestNewNormalizes(t *testing.T) {
	tests := []struct {
		num, den    int64
		wantNum     int64
		wantDen     int64
	}{
		{2, 4, 1, 2},
		{-2, 4, -1, 2},
		{2, -4, -1, 2},
		{-2, -4, 1, 2},
		{0, 5, 0, 1},
		{6, 3, 2, 1},
	}
	for _, tt := range tests {
		r := mustNew(t, tt.num, tt.den)
		if r.Num.Int64() != tt.wantNum || r.Den.Int64() != tt.wantDen {
			t.Errorf("New(%d,%d) = %s/%s, want %d/%d", tt.num, tt.den, r.Num, r.Den, tt.wantNum, tt.wantDen)
		}
		if r.Den.Sign() <= 0 {
			t.Errorf("New(%d,%d): denominator not positive: %s", tt.num, tt.den, r.Den)
		}
	}
}

func TestNewDivisionByZero(t *testing.T) {
	_, err := New(big.NewInt(1), big.NewInt(0))
	if err == nil {
		t.Fatal("expected an error for a zero denominator")
	}
}

func TestArithmetic(t *testing.T) {
	half := mustNew(t, 1, 2)
	third := mustNew(t, 1, 3)

	if got := half.Add(third); got.String() != "5/6" {
		t.Errorf("1/2 + 1/3 = %s, want 5/6", got)
	}
	if got := half.Sub(third); got.String() != "1/6" {
		t.Errorf("1/2 - 1/3 = %s, want 1/6", got)
	}
	if got := half.Mul(third); got.String() != "1/6" {
		t.Errorf("1/2 * 1/3 = %s, want 1/6", got)
	}
	div, err := half.Div(third)
	if err != nil {
		t.Fatalf("1/2 / 1/3: %v", err)
	}
	if div.String() != "3/2" {
		t.Errorf("1/2 / 1/3 = %s, want 3/2", div)
	}
}

func TestDivByZero(t *testing.T) {
	one := FromInt64(1)
	zero := FromInt64(0)
	if _, err := one.Div(zero); err == nil {
		t.Fatal("expected a division-by-zero error")
	}
}

func TestModRequiresIntegers(t *testing.T) {
	half := mustNew(t, 1, 2)
	five := FromInt64(5)
	if _, err := five.Mod(half); err == nil {
		t.Fatal("expected a domain error for a non-integer operand")
	}
	three := FromInt64(3)
	m, err := five.Mod(three)
	if err != nil {
		t.Fatalf("5 mod 3: %v", err)
	}
	if m.String() != "2" {
		t.Errorf("5 mod 3 = %s, want 2", m)
	}
}

func TestPow(t *testing.T) {
	two := FromInt64(2)
	ten := FromInt64(10)
	p, err := two.Pow(ten, DefaultMaxExponent)
	if err != nil {
		t.Fatalf("2^10: %v", err)
	}
	if p.String() != "1024" {
		t.Errorf("2^10 = %s, want 1024", p)
	}

	negTen := FromInt64(-10)
	inv, err := two.Pow(negTen, DefaultMaxExponent)
	if err != nil {
		t.Fatalf("2^-10: %v", err)
	}
	if inv.String() != "1/1024" {
		t.Errorf("2^-10 = %s, want 1/1024", inv)
	}

	if _, err := FromInt64(0).Pow(negTen, DefaultMaxExponent); err == nil {
		t.Fatal("expected a domain error for 0^-10")
	}

	half := mustNew(t, 1, 2)
	if _, err := two.Pow(half, DefaultMaxExponent); err == nil {
		t.Fatal("expected a domain error for a non-integer exponent")
	}

	huge := FromInt64(20000)
	if _, err := two.Pow(huge, DefaultMaxExponent); err == nil {
		t.Fatal("expected a limit-exceeded error for an oversized exponent")
	}
}

func TestCmpAndEqual(t *testing.T) {
	a := mustNew(t, 1, 2)
	b := mustNew(t, 2, 4)
	if !a.Equal(b) {
		t.Errorf("%s and %s should be equal after normalization", a, b)
	}
	if a.Cmp(b) != 0 {
		t.Errorf("Cmp(%s, %s) = %d, want 0", a, b, a.Cmp(b))
	}
	c := FromInt64(1)
	if a.Cmp(c) >= 0 {
		t.Errorf("Cmp(%s, %s) should be negative", a, c)
	}
}

func TestFromDecimalParts(t *testing.T) {
	tests := []struct {
		negative          bool
		intDigits, frac   string
		exponent          int64
		want              string
	}{
		{false, "1", "5", 0, "3/2"},
		{true, "1", "5", 0, "-3/2"},
		{false, "10", "", 0, "10"},
		{false, "1", "", 61, "10000000000000000000000000000000000000000000000000000000000000"},
	}
	for _, tt := range tests {
		got, err := FromDecimalParts(tt.negative, tt.intDigits, tt.frac, tt.exponent)
		if err != nil {
			t.Fatalf("FromDecimalParts(%v,%q,%q,%d): %v", tt.negative, tt.intDigits, tt.frac, tt.exponent, err)
		}
		if got.String() != tt.want {
			t.Errorf("FromDecimalParts(%v,%q,%q,%d) = %s, want %s", tt.negative, tt.intDigits, tt.frac, tt.exponent, got, tt.want)
		}
	}
}

func Test1e61Times1e61(t *testing.T) {
	a, err := FromDecimalParts(false, "1", "", 61)
	if err != nil {
		t.Fatal(err)
	}
	got := a.Mul(a)
	want := new(big.Int).Exp(big.NewInt(10), big.NewInt(122), nil).String()
	if got.String() != want {
		t.Errorf("1e61 * 1e61 = %s, want %s", got, want)
	}
}
