package main

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"crpt-client/crpt"
	"crpt-client/crpt/domain"
	"crpt-client/crpt/infra"
	"crpt-client/logging"

	"github.com/spf13/cobra"
)

type loadFlags struct {
	file      string
	signature string
	workers   int
	calls     int
}

type submitter interface {
	Submit(ctx context.Context, doc domain.Document, signature string) domain.Result
}

type loadReport struct {
	Counters infra.Counters
	ByKind   map[domain.ErrorKind]int64
	Elapsed  time.Duration
}

func newLoadCmd(a *app) *cobra.Command {
	f := &loadFlags{}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Submit the same document from several workers to exercise the rate limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.workers <= 0 || f.calls <= 0 {
				return fmt.Errorf("--workers and --calls must be > 0")
			}
			doc, err := loadDocument(f.file)
			if err != nil {
				return err
			}

			// o relatório local sempre existe; o Redis (se habilitado) é adicional
			local := infra.NewMemoryStatsStore()
			c, closeFn, err := a.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			logging.Info("load: %d workers x %d calls, limit %d per %s",
				f.workers, f.calls, a.cfg.RequestLimit, a.cfg.TimeUnit)
			rep := runLoad(cmd.Context(), c, local, doc, f.signature, f.workers, f.calls)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "submitted: %d (succeeded %d, failed %d) in %s\n",
				rep.Counters.Total(), rep.Counters.Succeeded, rep.Counters.Failed, rep.Elapsed.Round(time.Millisecond))
			kinds := make([]string, 0, len(rep.ByKind))
			for k := range rep.ByKind {
				kinds = append(kinds, string(k))
			}
			sort.Strings(kinds)
			for _, k := range kinds {
				fmt.Fprintf(out, "  %-12s %d\n", k, rep.ByKind[domain.ErrorKind(k)])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Document JSON file (demo document when empty)")
	cmd.Flags().StringVar(&f.signature, "signature", "signature", "Document signature")
	cmd.Flags().IntVar(&f.workers, "workers", 3, "Number of concurrent workers")
	cmd.Flags().IntVar(&f.calls, "calls", 5, "Submissions per worker")
	return cmd
}

var _ submitter = (*crpt.Client)(nil)

// runLoad dispara workers*calls envios a partir de um pool fixo de workers e
// conta os desfechos em stats. Com o ctx encerrado para de produzir envios.
func runLoad(ctx context.Context, c submitter, stats *infra.MemoryStatsStore, doc domain.Document, signature string, workers, calls int) loadReport {
	jobs := make(chan int)
	var wg sync.WaitGroup
	start := time.Now()

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for n := range jobs {
				res := c.Submit(ctx, doc, signature)
				logging.Debug("worker %d: call %d -> %s (status %d)", worker, n, res.Kind(), res.StatusCode)
				_ = stats.Record(ctx, domain.StatsEvent{
					Participant: doc.Description.ParticipantInn,
					DocID:       res.DocID,
					Kind:        res.Kind(),
					StatusCode:  res.StatusCode,
					Waited:      res.Waited,
					At:          time.Now(),
				})
			}
		}(w)
	}

	total := workers * calls
produce:
	for n := 0; n < total; n++ {
		if ctx.Err() != nil {
			logging.Warn("load interrupted after %d of %d submissions", n, total)
			break
		}
		select {
		case jobs <- n:
		case <-ctx.Done():
			logging.Warn("load interrupted after %d of %d submissions", n, total)
			break produce
		}
	}
	close(jobs)
	wg.Wait()

	return loadReport{
		Counters: stats.Total(),
		ByKind:   stats.ByKind(),
		Elapsed:  time.Since(start),
	}
}
