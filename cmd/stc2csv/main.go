// Command stc2csv converts .stc tables to CSV and unpacks catchdata.dat
// archives into per-record JSON files.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/bsm/stctable"
	"github.com/bsm/stctable/catchdata"
	"github.com/bsm/stctable/definitions"
)

func main() {
	app := &cli.Command{
		Name:      "stc2csv",
		Usage:     "Convert .stc tables to CSV and unpack catchdata.dat archives",
		ArgsUsage: "files...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "def",
				Usage: "Path to YAML table definitions to pull table and column names from",
			},
			&cli.BoolFlag{
				Name:  "del",
				Usage: "Delete input files after processing",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	level := slog.LevelInfo
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	files := cmd.Args().Slice()
	if len(files) == 0 {
		return cli.ShowAppHelp(cmd)
	}

	defs, err := definitions.Load(cmd.String("def"))
	if err != nil {
		return err
	}

	for _, path := range files {
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".stc":
			err = convertTable(log, path, defs)
		case ".dat":
			err = unpackCatchdata(log, path)
		default:
			log.Debug("skipping", "path", path)
			continue
		}
		if err != nil {
			log.Error("failed", "path", path, "error", err)
			continue
		}

		if cmd.Bool("del") {
			log.Debug("deleting", "path", path)
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}
	return nil
}

func convertTable(log *slog.Logger, path string, defs definitions.Definitions) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tbl, err := stctable.ReadTable(raw)
	if err != nil {
		return err
	}
	log.Info("parsing", "path", path, "table", tbl.ID, "rows", len(tbl.Rows))

	def, named := defs[tbl.ID]
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
	if named {
		out = filepath.Join(filepath.Dir(path), fmt.Sprintf("%d_%s.csv", tbl.ID, def.Name))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if named {
		if err := w.Write(def.Columns); err != nil {
			return err
		}
	}
	if len(tbl.Cols) != 0 {
		types := make([]string, len(tbl.Cols))
		for i, c := range tbl.Cols {
			types[i] = c.String()
		}
		if err := w.Write(types); err != nil {
			return err
		}
	}

	record := make([]string, len(tbl.Cols))
	for _, row := range tbl.Rows {
		for i, cell := range row {
			record[i] = escapeNewlines(cell.String())
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return os.WriteFile(out, buf.Bytes(), 0o644)
}

// escapeNewlines keeps one table row on one CSV line.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r", `\r`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

func unpackCatchdata(log *slog.Logger, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	scan, err := catchdata.Decode(raw, catchdata.DefaultKey)
	if err != nil {
		return err
	}
	log.Info("parsing", "path", path)

	dir := filepath.Dir(path)
	for scan.Next() {
		var entries map[string]json.RawMessage
		if err := scan.Decode(&entries); err != nil {
			log.Warn("skipping record", "path", path, "error", err)
			continue
		}

		for name, doc := range entries {
			pretty, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			out := filepath.Join(dir, name+".json")
			log.Debug("writing", "path", out)
			if err := os.WriteFile(out, pretty, 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}
