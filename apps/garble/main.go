//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command garble builds the AES-128 circuit, garbles and evaluates
// it under the selected garbling schemes, verifies the result against
// the software cipher, and prints per-scheme statistics.
package main

import (
	"bytes"
	"crypto/aes"
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/markkurossi/garble/block"
	"github.com/markkurossi/garble/circuit"
	"github.com/markkurossi/garble/circuits"
	"github.com/markkurossi/tabulate"
	"github.com/markkurossi/text/superscript"
)

var verbose = false

func main() {
	scheme := flag.String("t", "all",
		"garbling scheme: standard, halfgates, privacyfree, or all")
	iterations := flag.Int("i", 10, "timing iterations")
	flag.BoolVar(&verbose, "v", false, "verbose output")
	flag.Parse()

	var types []circuit.Type
	switch *scheme {
	case "standard":
		types = []circuit.Type{circuit.Standard}
	case "halfgates":
		types = []circuit.Type{circuit.HalfGates}
	case "privacyfree":
		types = []circuit.Type{circuit.PrivacyFree}
	case "all":
		types = []circuit.Type{
			circuit.Standard, circuit.HalfGates, circuit.PrivacyFree,
		}
	default:
		log.Fatalf("unknown garbling scheme %q", *scheme)
	}

	tab := tabulate.New(tabulate.Github)
	tab.Header("Scheme")
	tab.Header("Gates").SetAlign(tabulate.MR)
	tab.Header("XOR").SetAlign(tabulate.MR)
	tab.Header("AND").SetAlign(tabulate.MR)
	tab.Header("Table").SetAlign(tabulate.MR)
	tab.Header("Bytes").SetAlign(tabulate.MR)
	tab.Header("Garble").SetAlign(tabulate.MR)
	tab.Header("Eval").SetAlign(tabulate.MR)

	for _, typ := range types {
		if err := run(tab, typ, *iterations); err != nil {
			log.Fatalf("%s: %s", typ, err)
		}
	}
	tab.Print(os.Stdout)
}

func run(tab *tabulate.Tabulate, typ circuit.Type, iterations int) error {
	c, err := circuits.NewAES128(typ)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Println(c)
	}

	var key [16]byte
	var plain [16]byte
	if _, err := rand.Read(key[:]); err != nil {
		return err
	}
	if _, err := rand.Read(plain[:]); err != nil {
		return err
	}
	expanded, err := circuits.ExpandAES128Key(key[:])
	if err != nil {
		return err
	}
	bits := circuits.BytesToBits(append(plain[:], expanded...))

	prg, err := block.NewPRG(nil)
	if err != nil {
		return err
	}

	var garbleTime, evalTime time.Duration
	var result []bool

	for i := 0; i < iterations; i++ {
		start := time.Now()
		outputs, err := c.Garble(prg, nil)
		if err != nil {
			return err
		}
		garbleTime += time.Since(start)

		inputs, err := extractInputs(c, bits)
		if err != nil {
			return err
		}

		start = time.Now()
		observed, err := c.Eval(inputs)
		if err != nil {
			return err
		}
		evalTime += time.Since(start)

		result, err = circuit.MapOutputs(outputs, observed)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Printf("%s: run%s: garble+eval ok\n", typ,
				superscript.Itoa(i))
		}
	}

	// Verify against the software cipher.
	alg, err := aes.NewCipher(key[:])
	if err != nil {
		return err
	}
	var expect [16]byte
	alg.Encrypt(expect[:], plain[:])
	if !bytes.Equal(circuits.BitsToBytes(result), expect[:]) {
		return fmt.Errorf("evaluation does not match software AES")
	}

	stats := c.Stats()
	row := tab.Row()
	row.Column(typ.String())
	row.Column(fmt.Sprintf("%d", c.Q()))
	row.Column(fmt.Sprintf("%d", stats[circuit.XOR]))
	row.Column(fmt.Sprintf("%d", stats[circuit.AND]))
	row.Column(fmt.Sprintf("%d", c.TableSize()))
	row.Column(fmt.Sprintf("%d", c.TableSize()*16))
	row.Column(fmt.Sprintf("%s", garbleTime/time.Duration(iterations)))
	row.Column(fmt.Sprintf("%s", evalTime/time.Duration(iterations)))

	return nil
}

// extractInputs selects the active input labels of the garbled
// circuit for the plaintext input bits.
func extractInputs(c *circuit.Circuit, bits []bool) ([]block.Block, error) {
	if len(bits) != c.N {
		return nil, fmt.Errorf("invalid amount of input bits %d", len(bits))
	}
	return circuit.ExtractLabels(c.Wires[:c.N], bits)
}
