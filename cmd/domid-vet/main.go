// Command domid-vet runs the literalid and ttid analyzers as a standalone
// vet tool:
//
//	go vet -vettool=$(which domid-vet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/mithrel/domid/internal/lint"
)

func main() {
	multichecker.Main(lint.Analyzers()...)
}
