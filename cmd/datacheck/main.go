// datacheck loads the data tables and reports cross-reference problems:
// archetypes naming unknown sheets or techniques, invalid aims, degenerate
// animation cycles, encounter members with unknown archetypes or items.
// Exits non-zero when anything is wrong, so it slots into CI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thornfell/battle/internal/data"
)

func main() {
	dataDir := flag.String("data", "data", "data table directory")
	flag.Parse()

	tables, err := data.LoadAll(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	problems := tables.Verify()
	for _, p := range problems {
		fmt.Fprintln(os.Stderr, p)
	}
	if len(problems) > 0 {
		fmt.Fprintf(os.Stderr, "%d problem(s) in %s\n", len(problems), *dataDir)
		os.Exit(1)
	}

	fmt.Printf("ok: %d archetypes, %d techniques, %d consumables, %d sheets, %d encounters\n",
		tables.Archetypes.Count(),
		tables.Techniques.Count(),
		tables.Consumables.Count(),
		tables.Sheets.Count(),
		tables.Encounters.Count())
}
