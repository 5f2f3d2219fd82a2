package main

import (
	"log"

	"github.com/mithrel/domid/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.SetFlags(0)
		log.SetPrefix("domid: ")
		log.Fatal(err)
	}
}
