package main

import (
	"context"
	"fmt"
	"time"

	"crpt-client/config"
	"crpt-client/crpt"
	"crpt-client/crpt/domain"
	"crpt-client/logging"

	"github.com/spf13/cobra"
)

// globalFlags guarda os valores das flags persistentes; vazios/zero não
// sobrescrevem o ambiente.
type globalFlags struct {
	endpoint  string
	rateUnit  time.Duration
	rateLimit int
	backend   string
	logLevel  string
	insecure  bool
}

type app struct {
	flags globalFlags
	cfg   config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "crptctl",
		Short:         "Submit LP_INTRODUCE_GOODS documents with a shared rate limit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.endpoint, "endpoint", "", "Document create endpoint (env CRPT_ENDPOINT)")
	pf.DurationVar(&a.flags.rateUnit, "rate-unit", 0, "Rate limit time unit (env RATE_TIME_UNIT)")
	pf.IntVar(&a.flags.rateLimit, "rate-limit", 0, "Requests allowed per time unit (env RATE_REQUEST_LIMIT)")
	pf.StringVar(&a.flags.backend, "backend", "", "Limiter backend: bucket or xrate (env LIMITER_BACKEND)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (env LOG_LEVEL)")
	pf.BoolVar(&a.flags.insecure, "insecure", false, "Skip TLS verification (local stub only)")

	root.AddCommand(newSubmitCmd(a), newLoadCmd(a), newSampleCmd())
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = a.flags.endpoint
	}
	if flags.Changed("rate-unit") {
		cfg.TimeUnit = a.flags.rateUnit
	}
	if flags.Changed("rate-limit") {
		cfg.RequestLimit = a.flags.rateLimit
	}
	if flags.Changed("backend") {
		cfg.LimiterBackend = a.flags.backend
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.logLevel
	}
	if a.flags.insecure {
		cfg.TrustPolicy = "insecure"
		cfg.TrustAllowInsecure = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.SetLevel(cfg.LogLevel)
	a.cfg = cfg
	return nil
}

// newClient monta o cliente a partir da configuração carregada. O close
// devolvido libera a conexão de estatísticas.
func (a *app) newClient(ctx context.Context, extra ...crpt.Option) (*crpt.Client, func(), error) {
	stats, closeStats, err := a.cfg.OpenStats(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts := a.cfg.ClientOptions()
	if stats != nil {
		opts = append(opts, crpt.WithStats(stats))
	}
	opts = append(opts, extra...)

	c, err := crpt.New(a.cfg.TimeUnit, a.cfg.RequestLimit, opts...)
	if err != nil {
		closeStats()
		return nil, nil, err
	}
	logging.Debug("client: endpoint=%s limit=%d/%s backend=%s trust=%s",
		a.cfg.Endpoint, a.cfg.RequestLimit, a.cfg.TimeUnit, a.cfg.LimiterBackend, a.cfg.TrustPolicy)
	return c, closeStats, nil
}

func printResult(cmd *cobra.Command, res domain.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id:      %s\n", res.ID)
	fmt.Fprintf(out, "doc_id:  %s\n", res.DocID)
	fmt.Fprintf(out, "status:  %d\n", res.StatusCode)
	fmt.Fprintf(out, "kind:    %s\n", res.Kind())
	fmt.Fprintf(out, "waited:  %s\n", res.Waited)
	fmt.Fprintf(out, "elapsed: %s\n", res.Elapsed)
	if res.Body != "" {
		fmt.Fprintf(out, "body:    %s\n", res.Body)
	}
	if res.Err != nil {
		fmt.Fprintf(out, "error:   %v\n", res.Err)
	}
}
