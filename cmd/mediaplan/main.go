package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"mediaplan/internal"
	"mediaplan/internal/config"
	"mediaplan/internal/ingest"
	"mediaplan/internal/pipeline"
	"mediaplan/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", "", "directory with supplier files (xlsx/xls/csv/html)")
		files := fs.String("files", "", "comma-separated list of supplier files")
		groupsPath := fs.String("groups", "groups.json", "field-spec configuration")
		out := fs.String("out", "", "output xlsx path (default <OUTPUT_DIR>/processed_output.xlsx)")
		commission := fs.Float64("commission", 0, "agency commission fraction; 0 skips cost columns")
		brand := fs.String("brand", "", "campaign brand for the export metadata block")
		campaign := fs.String("campaign", "", "campaign name for the export metadata block")
		version := fs.String("version", "", "plan version for the export metadata block")
		_ = fs.Parse(os.Args[2:])

		specs, err := config.LoadGroups(*groupsPath)
		must(err)

		paths, err := collectInputs(*dir, *files)
		must(err)
		if len(paths) == 0 {
			must(fmt.Errorf("no input files found"))
		}

		inputs := make([]pipeline.InputFile, 0, len(paths))
		for _, p := range paths {
			in, err := ingest.Open(p)
			if err != nil {
				fmt.Printf("skipping %s: %v\n", filepath.Base(p), err)
				continue
			}
			inputs = append(inputs, in)
		}

		startedAt := time.Now().UTC().Format(time.RFC3339)
		proc := pipeline.NewProcessor(specs, cfg.HeaderMinCells)
		table, reports := proc.Process(inputs)
		for _, r := range reports {
			fmt.Printf("%-10s %s rows=%d matched=%d\n", r.Status, r.FileName, r.Rows, r.MatchedFields)
		}

		if *commission > 0 {
			pipeline.ApplyCosts(&table, pipeline.CostOptions{
				AgencyCommission: *commission,
				AdvertisingTax:   cfg.AdvertisingTax,
			})
		}

		outputPath := *out
		if outputPath == "" {
			outputPath = filepath.Join(cfg.OutputDir, "processed_output.xlsx")
		}
		start, end := campaignBounds(table)
		meta := pipeline.ExportMetadata{
			Brand:    *brand,
			Campaign: *campaign,
			Version:  *version,
			Start:    start,
			End:      end,
		}
		must(pipeline.ExportTable(table, meta, outputPath))

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		runID, err := db.InsertRun(startedAt, reports, len(table.Rows), outputPath)
		must(err)
		fmt.Printf("run %d complete: files=%d rows=%d output=%s\n", runID, len(reports), len(table.Rows), outputPath)

	case "inspect":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "supplier file to inspect")
		groupsPath := fs.String("groups", "groups.json", "field-spec configuration")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" {
			must(fmt.Errorf("-file is required"))
		}

		specs, err := config.LoadGroups(*groupsPath)
		must(err)
		in, err := ingest.Open(*file)
		must(err)

		insp, err := pipeline.Inspect(in, specs, cfg.HeaderMinCells)
		must(err)
		if insp.HeaderRow < 0 {
			fmt.Printf("%s: no header row found (need %d populated cells)\n", in.Name, cfg.HeaderMinCells)
			return
		}
		fmt.Printf("%s: header at row %d, %d columns\n", in.Name, insp.HeaderRow+1, len(insp.Columns))
		for _, fi := range insp.Fields {
			if !fi.Match.Matched {
				fmt.Printf("  %-20s -> (no match)\n", fi.Field)
				continue
			}
			fmt.Printf("  %-20s -> %q score=%d\n", fi.Field, fi.Match.Column, fi.Match.Score)
			for i, c := range fi.Match.Candidates {
				if i == 0 || i > 3 {
					continue
				}
				fmt.Printf("  %-20s    also %q score=%d\n", "", c.Column, c.Score)
			}
		}

	case "runs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "number of runs to list")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()

		runs, err := db.ListRuns(*limit)
		must(err)
		for _, r := range runs {
			fmt.Printf("run %d  %s  files=%d skipped=%d rows=%d  %s\n",
				r.ID, r.StartedAt, r.Files, r.Skipped, r.Rows, r.OutputPath)
		}

	default:
		usage()
		os.Exit(1)
	}
}

func collectInputs(dir, files string) ([]string, error) {
	var out []string
	if strings.TrimSpace(files) != "" {
		for _, p := range strings.Split(files, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("either -dir or -files is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".xlsx", ".xls", ".csv", ".htm", ".html":
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// campaignBounds finds the earliest start and latest end across all records
// for the export metadata block. ISO dates compare lexically.
func campaignBounds(t internal.Table) (string, string) {
	start, end := "", ""
	for _, row := range t.Rows {
		if s := row[internal.FieldStart]; len(s) == 10 && (start == "" || s < start) {
			start = s
		}
		if e := row[internal.FieldEnd]; len(e) == 10 && (end == "" || e > end) {
			end = e
		}
	}
	return start, end
}

func usage() {
	fmt.Println(`mediaplan - supplier offer standardization

Usage:
  mediaplan process -dir <folder> [-groups groups.json] [-out out.xlsx] [-commission 0.15] [-brand X -campaign Y -version Z]
  mediaplan process -files a.xlsx,b.csv ...
  mediaplan inspect -file <supplier.xlsx> [-groups groups.json]
  mediaplan runs [-limit 20]`)
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
