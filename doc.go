/*
Package clic is a command-line interpretation engine for building interactive shells.

It turns lines of text into invocations of registered commands. A line is split
into a command id and arguments using shell-style quoting, the command is
resolved in a registry, its options are parsed and it runs against an
execution context that collects what it writes. Commands can be chained into
named flows where the outputs of each step become arguments of the next.

# Concept

The engine owns the command model (registry, dispatch, completion, history).
Your application ("Host") owns the I/O: it reads lines, passes them to the
engine and decides where command output goes through a Sink. This Hexagonal
Architecture lets the same engine back a terminal REPL, a one-shot CLI or a
test harness.

# Key Features

  - Shell-Style Tokenizing: Single and double quotes group words; unbalanced quotes are reported, not guessed.
  - Flows: Named sequences of commands chaining outputs into arguments.
  - Autocomplete: Command and option name completion by longest common prefix.
  - History: A bounded log navigable with previous and next.
  - Declarative Catalogs: Commands and flows from YAML, TOML or JSON manifests, or from a Loam markdown repository, with hot reload.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/clic"
		"github.com/aretw0/clic/pkg/sink"
	)

	func main() {
		ctx := context.Background()

		eng, err := clic.New(ctx,
			clic.WithManifest("commands.yaml"),
			clic.WithFlow("greet", "hello", "echo"),
		)
		if err != nil {
			log.Fatal(err)
		}

		ec := eng.NewContext(sink.NewWriter(os.Stdout))
		if _, err := eng.Process(ctx, "hello --name 'Ada Lovelace'", ec); err != nil {
			log.Fatal(err)
		}
	}
*/
package clic
