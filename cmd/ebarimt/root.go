package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zolbooo/ebarimt/internal/config"
	"github.com/zolbooo/ebarimt/internal/runtime"
)

const drainTimeout = 30 * time.Second

type globalFlags struct {
	baseURL  string
	logLevel string
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "ebarimt",
		Short: "Ebarimt PosAPI client",
		Long: `ebarimt talks to a local PosAPI daemon: it initializes the register, registers and
reverses bills, resynchronizes the local ledger and looks merchants up in the public registry.
Configuration comes from the environment (POSAPI_BASE_URL, POSAPI_TIMEOUT, ...); flags override it.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "PosAPI base URL (overrides POSAPI_BASE_URL)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (overrides LOGGING_LEVEL)")

	cmd.AddCommand(
		newInitCmd(flags),
		newCheckCmd(flags),
		newInfoCmd(flags),
		newPutCmd(flags),
		newReturnBillCmd(flags),
		newSendDataCmd(flags),
		newToRegCmd(flags),
		newMerchantCmd(flags),
		newServeCmd(flags),
		newConfigCmd(flags),
	)

	return cmd
}

func (f *globalFlags) loadConfig() (*config.ServiceConfig, error) {
	cfg, err := config.Init()
	if err != nil {
		return nil, err
	}

	if f.baseURL != "" {
		cfg.PosAPI.BaseURL = strings.TrimRight(f.baseURL, "/")
	}

	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// withDependencies runs fn against a wired register and drains background work afterwards.
func (f *globalFlags) withDependencies(
	ctx context.Context,
	fn func(ctx context.Context, deps *runtime.Dependencies) error,
	opts ...runtime.DependencyOption,
) error {
	cfg, err := f.loadConfig()
	if err != nil {
		return err
	}

	deps, err := runtime.NewDependencies(ctx, cfg, opts...)
	if err != nil {
		return err
	}

	runErr := fn(ctx, deps)

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()

	if err := deps.Close(drainCtx); err != nil && runErr == nil {
		return fmt.Errorf("failed to drain background work: %w", err)
	}

	return runErr
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}
