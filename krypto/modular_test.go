package krypto

import (
	"errors"
	"testing"
)

func TestModularInverse(t *testing.T) {
	tests := []struct {
		name    string
		a, m    int
		want    int
		wantErr error
	}{
		{name: "3 mod 26", a: 3, m: 26, want: 9},
		{name: "7 mod 26", a: 7, m: 26, want: 15},
		{name: "one", a: 1, m: 95, want: 1},
		{name: "negative operand", a: -3, m: 26, want: 17},
		{name: "operand above modulus", a: 29, m: 26, want: 9},
		{name: "even mod 26", a: 2, m: 26, wantErr: ErrNotInvertible},
		{name: "zero", a: 0, m: 26, wantErr: ErrNotInvertible},
		{name: "multiple of 5 mod 95", a: 10, m: 95, wantErr: ErrNotInvertible},
		{name: "modulus too small", a: 1, m: 1, wantErr: ErrInvalidModulus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModularInverse(tt.a, tt.m)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ModularInverse(%d, %d) error = %v, want %v", tt.a, tt.m, err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("ModularInverse(%d, %d) = %d, want %d", tt.a, tt.m, got, tt.want)
			}
		})
	}
}

func TestModularInverseExhaustive(t *testing.T) {
	for _, m := range []int{26, 95} {
		for a := 0; a < m; a++ {
			inv, err := ModularInverse(a, m)
			if Invertible(a, m) != (err == nil) {
				t.Fatalf("a=%d m=%d: Invertible disagrees with error %v", a, m, err)
			}
			if err != nil {
				continue
			}
			if Mod(a*inv, m) != 1 {
				t.Errorf("a=%d m=%d: a*inv mod m = %d", a, m, Mod(a*inv, m))
			}
		}
	}
}

func TestModAndGCD(t *testing.T) {
	if Mod(-1, 26) != 25 || Mod(27, 26) != 1 || Mod(0, 26) != 0 {
		t.Error("Mod does not normalize into [0, m)")
	}
	if GCD(12, 18) != 6 || GCD(-12, 18) != 6 || GCD(0, 5) != 5 {
		t.Error("GCD returned an unexpected value")
	}
}

func TestGenerateRandomPrime(t *testing.T) {
	p, err := GenerateRandomPrime(16)
	if err != nil {
		t.Fatalf("GenerateRandomPrime() error = %v", err)
	}
	if p.BitLen() != 16 || !IsProbablePrime(p.Int64()) {
		t.Errorf("GenerateRandomPrime(16) = %v", p)
	}
	if _, err := GenerateRandomPrime(1); !errors.Is(err, ErrInvalidBitSize) {
		t.Errorf("GenerateRandomPrime(1) error = %v", err)
	}
	for n, want := range map[int64]bool{0: false, 1: false, 2: true, 97: true, 91: false} {
		if IsProbablePrime(n) != want {
			t.Errorf("IsProbablePrime(%d) = %v", n, !want)
		}
	}
}
