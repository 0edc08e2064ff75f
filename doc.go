/*
Package crema translates espresso extraction profiles from the stage-based
Meticulous format into the phase-based Gaggimate format.

Both formats describe a timeline of pump and temperature segments bounded by
stop conditions. A Meticulous stage drives one quantity along a multi-point
curve with independent exit triggers; a Gaggimate phase has a single target,
a single transition and a single list of exit targets. Crema bridges the two:
it splits curves into phases, converts units, maps exit triggers (including
relative time triggers) and picks transitions according to a TransitionMode.

# Concept

The translation core is a pure, synchronous function of its input. Everything
around it (file I/O, batch processing, the HTTP and MCP servers, caching) lives
in adapters, so the same Translator can be embedded in a CLI, a web service or
an AI agent tool.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"
		"os"

		"github.com/aretw0/crema"
		"github.com/aretw0/crema/pkg/domain"
	)

	func main() {
		data, err := os.ReadFile("profile.json")
		if err != nil {
			log.Fatal(err)
		}

		t := crema.New(crema.WithMode(domain.ModeSmart))
		res, err := t.TranslateBytes(context.Background(), data)
		if err != nil {
			log.Fatal(err)
		}

		for _, w := range res.Warnings {
			fmt.Println(w)
		}
		fmt.Println(len(res.Profile.Phases), "phases")
	}

Warnings are non-fatal: unsupported triggers are dropped and duplicate or
conflicting triggers collapse to the first one. Errors are fatal for the whole
document and can be matched with errors.Is against domain.ErrInputShape,
domain.ErrRelativeTrigger and domain.ErrValueOutOfRange.
*/
package crema
