// Command shaclparse loads a SHACL shapes graph, parses its shapes and
// reports well-formedness problems.
package main

import (
	"os"

	"github.com/geoknoesis/shacl-go/cmd/shaclparse/internal/command"
)

func main() {
	os.Exit(command.Execute())
}
