package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spellclash/spellclash-go/internal/catalog"
)

var catalogPath = flag.String("catalog", "data/cards.yaml", "path to card catalog file")

func main() {
	flag.Parse()

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cardlint: %v\n", err)
		os.Exit(1)
	}

	issues := catalog.Lint(cat)
	for _, issue := range issues {
		fmt.Println(issue)
	}
	if len(issues) > 0 {
		fmt.Printf("%d cards, %d issues\n", cat.Size(), len(issues))
		os.Exit(1)
	}
	fmt.Printf("%d cards, no issues\n", cat.Size())
}
