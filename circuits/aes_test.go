//
// aes_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuits

import (
	"bytes"
	"crypto/aes"
	"encoding/hex"
	"testing"

	"github.com/markkurossi/garble/circuit"
)

func fromHex(t *testing.T, s string) []byte {
	t.Helper()
	data, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex %q: %s", s, err)
	}
	return data
}

// aesInputs packs the plaintext and the expanded key into the AES
// circuit's input bits.
func aesInputs(t *testing.T, key, plain []byte) []bool {
	t.Helper()
	expanded, err := ExpandAES128Key(key)
	if err != nil {
		t.Fatalf("ExpandAES128Key: %s", err)
	}
	return BytesToBits(append(append([]byte{}, plain...), expanded...))
}

func TestExpandAES128Key(t *testing.T) {
	// FIPS-197 appendix A.1.
	key := fromHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	expanded, err := ExpandAES128Key(key)
	if err != nil {
		t.Fatalf("ExpandAES128Key: %s", err)
	}
	last := fromHex(t, "d014f9a8c9ee2589e13f0cc8b6630ca6")
	if !bytes.Equal(expanded[160:], last) {
		t.Fatalf("last round key %x, expected %x", expanded[160:], last)
	}
}

func TestAES128(t *testing.T) {
	// FIPS-197 appendix B.
	key := fromHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	plain := fromHex(t, "3243f6a8885a308d313198a2e0370734")

	alg, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher: %s", err)
	}
	expect := make([]byte, 16)
	alg.Encrypt(expect, plain)

	inputs := aesInputs(t, key, plain)

	for _, typ := range []circuit.Type{
		circuit.Standard, circuit.HalfGates, circuit.PrivacyFree,
	} {
		c, err := NewAES128(typ)
		if err != nil {
			t.Fatalf("NewAES128: %s", err)
		}
		bits := evalCircuit(t, c, inputs)
		if got := BitsToBytes(bits); !bytes.Equal(got, expect) {
			t.Errorf("%s: AES circuit produced %x, expected %x",
				typ, got, expect)
		}
	}
}

func TestAES128HashDeterminism(t *testing.T) {
	c1, err := NewAES128(circuit.HalfGates)
	if err != nil {
		t.Fatalf("NewAES128: %s", err)
	}
	c2, err := NewAES128(circuit.HalfGates)
	if err != nil {
		t.Fatalf("NewAES128: %s", err)
	}

	if _, err := c1.Garble(testPRG(t, 123, 456), nil); err != nil {
		t.Fatalf("Garble: %s", err)
	}
	if _, err := c2.Garble(testPRG(t, 123, 456), nil); err != nil {
		t.Fatalf("Garble: %s", err)
	}
	if err := c1.Check(c2.Hash()); err != nil {
		t.Fatalf("seeded AES garblings differ: %s", err)
	}
}

func TestAES128SaveLoad(t *testing.T) {
	key := fromHex(t, "000102030405060708090a0b0c0d0e0f")
	plain := fromHex(t, "00112233445566778899aabbccddeeff")
	inputs := aesInputs(t, key, plain)

	c, err := NewAES128(circuit.HalfGates)
	if err != nil {
		t.Fatalf("NewAES128: %s", err)
	}
	outputs, err := c.Garble(testPRG(t, 99, 1), nil)
	if err != nil {
		t.Fatalf("Garble: %s", err)
	}

	var buf bytes.Buffer
	if err := c.Save(&buf, true, false); err != nil {
		t.Fatalf("Save: %s", err)
	}

	loaded, err := NewAES128(circuit.HalfGates)
	if err != nil {
		t.Fatalf("NewAES128: %s", err)
	}
	if err := loaded.Load(&buf, true, false); err != nil {
		t.Fatalf("Load: %s", err)
	}
	if err := loaded.Check(c.Hash()); err != nil {
		t.Fatalf("hash mismatch after load: %s", err)
	}

	extracted, err := circuit.ExtractLabels(c.Wires[:c.N], inputs)
	if err != nil {
		t.Fatalf("ExtractLabels: %s", err)
	}
	observed, err := loaded.Eval(extracted)
	if err != nil {
		t.Fatalf("Eval: %s", err)
	}
	bits, err := circuit.MapOutputs(outputs, observed)
	if err != nil {
		t.Fatalf("MapOutputs: %s", err)
	}

	alg, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher: %s", err)
	}
	expect := make([]byte, 16)
	alg.Encrypt(expect, plain)
	if got := BitsToBytes(bits); !bytes.Equal(got, expect) {
		t.Fatalf("AES output %x after save/load, expected %x", got, expect)
	}
}
