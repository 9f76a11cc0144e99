// Command regview draws regular expressions as grammar diagrams and
// highlights their matches in sample text.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
