// statlingua explains fitted statistical models in plain language and helps
// diagnose their assumptions with an LLM.
package main

import (
	"fmt"
	"os"

	_ "github.com/tanpawarit/statlingua/pkg/logger/autoload"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
