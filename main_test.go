package main

import "testing"

func TestMainRunsCLI(t *testing.T) {
	called := false
	orig := execute
	execute = func() { called = true }
	t.Cleanup(func() { execute = orig })

	main()

	if !called {
		t.Fatalf("expected the CLI to be executed")
	}
}
