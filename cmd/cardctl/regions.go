package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/heart0018/OriginalProduct/internal/domain/cards"
	"github.com/heart0018/OriginalProduct/internal/region"
)

type regionStore interface {
	ListAddresses(ctx context.Context) ([]cards.AddressRow, error)
	UpdateRegion(ctx context.Context, id int64, region string) error
	CountByRegion(ctx context.Context) ([]cards.RegionCount, error)
}

func regionsCmd(ctx context.Context, logger *zap.SugaredLogger, args []string) error {
	fs := flag.NewFlagSet("regions", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "report changes without writing them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pool, err := openPool()
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := cards.NewRepository(pool)

	changed, unknown, err := recomputeRegions(ctx, logger, repo, *dryRun)
	if err != nil {
		return err
	}
	logger.Infow("regions recomputed", "changed", changed, "unresolved", unknown, "dry_run", *dryRun)

	return printDistribution(ctx, os.Stdout, repo)
}

// recomputeRegions sets each card's region from its address. Cards whose
// address names no known prefecture keep their region.
func recomputeRegions(ctx context.Context, logger *zap.SugaredLogger, store regionStore, dryRun bool) (changed, unknown int, err error) {
	rows, err := store.ListAddresses(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, row := range rows {
		if row.Address == nil {
			unknown++
			continue
		}
		reg, ok := region.FromAddress(*row.Address)
		if !ok {
			unknown++
			continue
		}
		if row.Region != nil && *row.Region == reg {
			continue
		}

		changed++
		logger.Debugw("region change", "id", row.ID, "title", row.Title, "to", reg)
		if dryRun {
			continue
		}
		if err := store.UpdateRegion(ctx, row.ID, reg); err != nil {
			return changed, unknown, fmt.Errorf("update card %d: %w", row.ID, err)
		}
	}
	return changed, unknown, nil
}

func printDistribution(ctx context.Context, w io.Writer, store regionStore) error {
	counts, err := store.CountByRegion(ctx)
	if err != nil {
		return err
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return region.DefaultOrder.Rank(counts[i].Region) < region.DefaultOrder.Rank(counts[j].Region)
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	total := 0
	for _, c := range counts {
		name := "(none)"
		if c.Region != nil {
			name = *c.Region
		}
		fmt.Fprintf(tw, "%s\t%d\n", name, c.Count)
		total += c.Count
	}
	fmt.Fprintf(tw, "total\t%d\n", total)
	return tw.Flush()
}
