package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arloliu/balancer"
	"github.com/arloliu/balancer/source"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

type (
	itemPartition = balancer.Partition[string, *source.Item]
	itemWatcher   = balancer.Watcher[string, *source.Item]
)

// printPartition renders one row per bucket: weight -> (keys).
func printPartition(out io.Writer, title string, p itemPartition) error {
	_, _ = fmt.Fprintf(out, "\n%s\n", title)

	var total = p.TotalWeight()
	var table = tablewriter.NewWriter(out)
	table.Header("Bucket", "Items", "Weight", "Share", "Keys")
	for i, bucket := range p {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(bucket.Len()),
			humanize.Comma(bucket.Weight),
			share(bucket.Weight, total),
			"(" + strings.Join(bucket.Keys(), " ") + ")",
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("bucket %d row: %w", i, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render partition table: %w", err)
	}

	_, _ = fmt.Fprintf(out, "total %s, spread %s\n", humanize.Comma(total), humanize.Comma(p.Spread()))

	return nil
}

// printWatchers renders the change count each worker has observed.
func printWatchers(out io.Writer, watchers []*itemWatcher) error {
	var table = tablewriter.NewWriter(out)
	table.Header("Worker", "Changes", "Weight", "Keys")
	for _, w := range watchers {
		var bucket = w.Current()
		row := []string{
			strconv.Itoa(w.Index()),
			humanize.Comma(int64(w.Changes())), //nolint:gosec // G115: change counts stay far below MaxInt64
			humanize.Comma(bucket.Weight),
			"(" + strings.Join(bucket.Keys(), " ") + ")",
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("worker %d row: %w", w.Index(), err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render watcher table: %w", err)
	}

	return nil
}

// share formats part as a percentage of total.
func share(part, total int64) string {
	if total == 0 {
		return "-"
	}

	return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(total))
}
