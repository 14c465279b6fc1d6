// Command worklog parses work log pastes from files or stdin.
//
//	worklog parse log.txt
//	pbpaste | worklog parse --ranges --json
//	worklog summary kai.txt rin.txt
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
