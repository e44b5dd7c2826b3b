// Package main provides an interactive CLI for exercising the
// workset engine: insert fragments, change priorities, watch
// compaction reports, and inspect the rendered context.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/calebrin/workset"
)

const banner = `workset interactive demo
commands:
  add <priority> <text>   insert a fragment
  up <id> <priority>      update a fragment's priority
  rm <id>                 remove a resident fragment
  restore <id>            restore an archived fragment
  archive <threshold>     archive resident below threshold
  cap <units>             change capacity
  render                  print the rendered context
  stats                   print working-set statistics
  summary [limit]         summarize the archive
  quit`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	engine := workset.New(workset.Config{
		MaxSize:              500,
		PreserveInstructions: true,
		Instructions:         "Demo session: keep answers short.",
	})

	rl, err := readline.New("workset> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println(banner)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil

		case "add":
			if len(fields) < 3 {
				fmt.Println("usage: add <priority> <text>")
				continue
			}
			priority, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				fmt.Println("bad priority:", err)
				continue
			}
			text := strings.Join(fields[2:], " ")
			frag, report := engine.Insert(text, priority)
			logger.Info().
				Str("id", frag.ID).
				Float64("priority", frag.Priority).
				Bool("resident", frag.Resident).
				Msg("fragment inserted")
			logReport(logger, report)

		case "up":
			if len(fields) != 3 {
				fmt.Println("usage: up <id> <priority>")
				continue
			}
			priority, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				fmt.Println("bad priority:", err)
				continue
			}
			if !engine.UpdatePriority(fields[1], priority) {
				fmt.Println("not resident:", fields[1])
			}

		case "rm":
			if len(fields) != 2 {
				fmt.Println("usage: rm <id>")
				continue
			}
			if !engine.Remove(fields[1]) {
				fmt.Println("not resident:", fields[1])
			}

		case "restore":
			if len(fields) != 2 {
				fmt.Println("usage: restore <id>")
				continue
			}
			report, ok := engine.Restore(fields[1])
			if !ok {
				fmt.Println("not archived:", fields[1])
				continue
			}
			logReport(logger, report)

		case "archive":
			if len(fields) != 2 {
				fmt.Println("usage: archive <threshold>")
				continue
			}
			threshold, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				fmt.Println("bad threshold:", err)
				continue
			}
			moved := engine.ArchiveBelow(threshold)
			logger.Info().Int("moved", moved).
				Msg("archived below threshold")

		case "cap":
			if len(fields) != 2 {
				fmt.Println("usage: cap <units>")
				continue
			}
			capacity, err := strconv.Atoi(fields[1])
			if err != nil || capacity <= 0 {
				fmt.Println("capacity must be a positive integer")
				continue
			}
			logReport(logger, engine.SetCapacity(capacity))

		case "render":
			fmt.Println(engine.Render())

		case "stats":
			stats := engine.Stats()
			fmt.Printf(
				"size %d/%d (%.0f%%), resident %d, archived %d\n",
				stats.TotalSize, stats.Capacity,
				stats.Utilization*100,
				stats.ResidentCount, stats.ArchivedCount,
			)

		case "summary":
			limit := 10
			if len(fields) == 2 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					limit = n
				}
			}
			fmt.Println(engine.SummarizeArchive(limit))

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func logReport(logger zerolog.Logger, report *workset.CompactionReport) {
	logger.Info().
		Int("original_size", report.OriginalSize).
		Int("compacted_size", report.CompactedSize).
		Float64("ratio", report.Ratio).
		Int("resident", len(report.Resident)).
		Int("archived", len(report.Archived)).
		Msg("compaction")
}
