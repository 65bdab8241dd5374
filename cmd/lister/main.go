// Package main is the entry point for the lister CLI client.
package main

import (
	"github.com/donaldgifford/ebay-lister/cmd/lister/cmd"
)

func main() {
	cmd.Execute()
}
