package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joshlvmh/phylonj"
)

func main() {
	engine := flag.String("engine", "bionj", "tree-building engine: nj, bionj, or rapid")
	workers := flag.Int("workers", 0, "number of goroutines to use (0 means runtime.NumCPU())")
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: phylonj [-engine nj|bionj|rapid] [-workers n] <distance-file> <newick-file>")
		os.Exit(2)
	}
	distanceFile, newickFile := args[0], args[1]

	cfg := phylonj.DefaultConfig()
	cfg.EngineChoice = phylonj.Engine(*engine)
	cfg.Workers = *workers

	var report *phylonj.BuildReport
	var err error
	if cfg.EngineChoice == phylonj.EngineRapid {
		report, err = phylonj.BuildTreeRapid(distanceFile, newickFile, cfg)
	} else {
		report, err = phylonj.BuildTree(distanceFile, newickFile, cfg)
	}
	if err != nil {
		log.Fatalf("phylonj: %v", err)
	}

	fmt.Printf("wrote %s: %d taxa, %d clusters, %s (%s engine)\n",
		newickFile, report.TaxaCount, report.ClusterCount, report.Elapsed, report.Engine)
	if report.Engine == phylonj.EngineRapid {
		fmt.Printf("  %d S-row entries visited\n", report.OperationCount)
	}
}
