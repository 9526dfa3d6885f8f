package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/parqprof/internal/logger"
	"github.com/vegasq/parqprof/internal/server"
	"github.com/vegasq/parqprof/meta"
	"github.com/vegasq/parqprof/output"
	"github.com/vegasq/parqprof/profile"
	"github.com/vegasq/parqprof/query"
	"github.com/vegasq/parqprof/reader"
)

var (
	queryFlag  = flag.String("q", "", "SQL query over metadata files (e.g., \"select * from metadata where null_count > 0\")")
	formatFlag = flag.String("f", "table", "Output format: json, jsonl, csv, table")
	outFlag    = flag.String("o", "", "Metadata output path (single input file only; default <file>.meta)")
	showFlag   = flag.Bool("show", false, "Print a loaded metadata file as JSON")
	serveFlag  = flag.String("serve", "", "Serve metadata queries over HTTP on this address (e.g., :8080)")
	levelFlag  = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	prettyFlag = flag.Bool("pretty", false, "Pretty-print log output")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.parquet | file.meta> ...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Profiles parquet files into queryable statistical metadata.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s data.parquet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -show data.parquet.meta\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -q \"select name, mean from metadata where max > 100\" *.meta\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -serve :8080 *.meta\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: missing file argument\n\n")
		flag.Usage()
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: *levelFlag, Pretty: *prettyFlag})

	switch {
	case *queryFlag != "":
		runQuery(flag.Args())
	case *serveFlag != "":
		engine := query.NewEngine(loadRecords(flag.Args()))
		srv := server.New(engine, log)
		if err := srv.ListenAndServe(*serveFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *showFlag:
		for _, path := range flag.Args() {
			showMetadata(path)
		}
	default:
		if *outFlag != "" && flag.NArg() > 1 {
			fmt.Fprintf(os.Stderr, "Error: -o requires exactly one input file\n")
			os.Exit(1)
		}
		builder := meta.NewBuilder(profile.DefaultLimits(), log)
		for _, path := range flag.Args() {
			generate(builder, path)
		}
	}
}

// generate profiles one parquet file and writes its metadata alongside it.
func generate(builder *meta.Builder, path string) {
	r, err := reader.NewReader(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error: file '%s' not found\n", path)
			fmt.Fprintf(os.Stderr, "Please check the file path and try again.\n")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	defer func() { _ = r.Close() }()

	tree, err := builder.Build(r, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error profiling %s: %v\n", path, err)
		os.Exit(1)
	}

	data, err := meta.Save(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding metadata for %s: %v\n", path, err)
		os.Exit(1)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = path + ".meta"
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("%s -> %s\n", path, outPath)
}

// showMetadata loads one metadata file and prints it: a per-column
// summary table by default, or the full tree as JSON with -f json.
func showMetadata(path string) {
	tree := loadTree(path)

	switch *formatFlag {
	case "json", "jsonl":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tree); err != nil {
			fmt.Fprintf(os.Stderr, "Error printing %s: %v\n", path, err)
			os.Exit(1)
		}
	default:
		showSummaryTable(tree)
	}
}

func showSummaryTable(tree *meta.FileNode) {
	fmt.Printf("%s (generation %s)\n", tree.Name, tree.GenerationID)

	rows := make([][]string, 0, tree.ColumnCount()*len(tree.RowGroups))
	for _, rg := range tree.RowGroups {
		for _, col := range rg.Columns {
			rows = append(rows, []string{
				strconv.Itoa(rg.Index),
				col.Name,
				col.Profile.Kind().String(),
				strconv.FormatUint(col.Profile.ValueCount(), 10),
				strconv.FormatUint(col.Profile.NullCount(), 10),
			})
		}
	}

	w := tablewriter.NewWriter(os.Stdout)
	w.Header([]string{"row group", "column", "kind", "values", "nulls"})
	if err := w.Bulk(rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering summary: %v\n", err)
		os.Exit(1)
	}
	if err := w.Render(); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering summary: %v\n", err)
		os.Exit(1)
	}
}

// runQuery loads metadata files, executes the query, and renders the
// result set.
func runQuery(paths []string) {
	engine := query.NewEngine(loadRecords(paths))

	rs, err := engine.Execute(*queryFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing query: %v\n\n", err)
		fmt.Fprintf(os.Stderr, "Query format: select * from metadata where <condition>\n")
		fmt.Fprintf(os.Stderr, "Example: select name, mean from metadata where null_count > 0\n")
		os.Exit(1)
	}

	var formatter output.Formatter
	switch *formatFlag {
	case "json", "jsonl":
		formatter = output.NewJSONFormatter(os.Stdout)
	case "csv":
		formatter = output.NewCSVFormatter(os.Stdout)
	case "table":
		formatter = output.NewTableFormatter(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported format '%s'\n", *formatFlag)
		fmt.Fprintf(os.Stderr, "Supported formats: json, jsonl, csv, table\n")
		os.Exit(1)
	}

	if err := formatter.Format(rs); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
}

func loadRecords(paths []string) []meta.QueryableRecord {
	trees := make([]*meta.FileNode, 0, len(paths))
	for _, path := range paths {
		trees = append(trees, loadTree(path))
	}
	return meta.Records(trees)
}

func loadTree(path string) *meta.FileNode {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tree, err := meta.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		os.Exit(1)
	}
	return tree
}
