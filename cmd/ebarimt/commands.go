package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zolbooo/ebarimt/internal/adapters"
	"github.com/zolbooo/ebarimt/internal/config"
	"github.com/zolbooo/ebarimt/internal/domain"
	"github.com/zolbooo/ebarimt/internal/runtime"
	"github.com/zolbooo/ebarimt/internal/service"
)

var errServiceFailure = errors.New("PosAPI reported a failure")

type initReport struct {
	Ready    bool                   `json:"ready"`
	Cause    string                 `json:"cause,omitempty"`
	Resynced bool                   `json:"resynced"`
	CheckAPI *domain.CheckAPIResult `json:"check_api,omitempty"`
	SendData *domain.SendDataResult `json:"send_data,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

func newInitReport(outcome domain.InitOutcome) initReport {
	report := initReport{
		Ready:    outcome.Ready(),
		Cause:    string(outcome.Cause),
		Resynced: outcome.Resynced,
		CheckAPI: outcome.CheckAPI,
		SendData: outcome.SendData,
	}

	if err := outcome.Failure(); err != nil {
		report.Error = err.Error()
	}

	return report
}

func newInitCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Check the PosAPI and repair stale local data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.withDependencies(cmd.Context(), func(ctx context.Context, deps *runtime.Dependencies) error {
				outcome := deps.Services.Register.Initialize(ctx)

				if err := printJSON(cmd.OutOrStdout(), newInitReport(outcome)); err != nil {
					return err
				}

				return outcome.Failure()
			})
		},
	}
}

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Print the PosAPI health snapshot without repairing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.withDependencies(cmd.Context(), func(ctx context.Context, deps *runtime.Dependencies) error {
				result, err := deps.Services.Register.CheckAPI(ctx)
				if err != nil {
					return err
				}

				return printResult(cmd, result, result.Success)
			})
		},
	}
}

func newInfoCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print register information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.withDependencies(cmd.Context(), func(ctx context.Context, deps *runtime.Dependencies) error {
				info, err := deps.Services.Register.GetInformation(ctx)
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), info)
			})
		},
	}
}

func newPutCmd(flags *globalFlags) *cobra.Command {
	var billFile string

	cmd := &cobra.Command{
		Use:   "put",
		Short: "Register a bill read from a JSON or YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bill, err := adapters.LoadBillFile(billFile)
			if err != nil {
				return err
			}

			return flags.withDependencies(cmd.Context(), func(ctx context.Context, deps *runtime.Dependencies) error {
				result, err := deps.Services.Register.Put(ctx, bill)
				if err != nil {
					return err
				}

				return printResult(cmd, result, result.Success)
			})
		},
	}
	cmd.Flags().StringVarP(&billFile, "file", "f", "", "Bill payload file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newReturnBillCmd(flags *globalFlags) *cobra.Command {
	var (
		billID string
		date   string
	)

	cmd := &cobra.Command{
		Use:   "return-bill",
		Short: "Reverse a registered bill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			billDate := domain.NewBillDate(time.Now())
			if date != "" {
				parsed, err := domain.ParseBillDate(date)
				if err != nil {
					return err
				}

				billDate = parsed
			}

			return flags.withDependencies(cmd.Context(), func(ctx context.Context, deps *runtime.Dependencies) error {
				result, err := deps.Services.Register.ReturnBill(ctx, domain.ReturnBillRequest{
					ReturnBillID: billID,
					Date:         billDate,
				})
				if err != nil {
					return err
				}

				return printResult(cmd, result, result.Success)
			})
		},
	}
	cmd.Flags().StringVar(&billID, "id", "", "Bill ID to reverse")
	cmd.Flags().StringVar(&date, "date", "", fmt.Sprintf("Registration date of the bill (%s), defaults to now", domain.BillDateLayout))
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newSendDataCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "send-data",
		Short: "Forward the local ledger to the central tax server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.withDependencies(cmd.Context(), func(ctx context.Context, deps *runtime.Dependencies) error {
				result, err := deps.Services.Register.SendData(ctx)
				if err != nil {
					return err
				}

				return printResult(cmd, result, result.Success)
			})
		},
	}
}

func newToRegCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "to-reg <registration-number>",
		Short: "Convert a citizen registration number through the PosAPI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withDependencies(cmd.Context(), func(ctx context.Context, deps *runtime.Dependencies) error {
				converted, err := deps.Services.Register.ToReg(ctx, args[0])
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), converted)

				return err
			})
		},
	}
}

func newMerchantCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "merchant <registration-number>",
		Short: "Look an organization up in the merchant registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withDependencies(cmd.Context(), func(ctx context.Context, deps *runtime.Dependencies) error {
				info, err := service.LookupMerchant(ctx, deps.Adapters.MerchantRegistry, args[0])
				if err != nil {
					return err
				}

				if info == nil {
					return fmt.Errorf("merchant %s not found", args[0])
				}

				return printJSON(cmd.OutOrStdout(), info)
			}, runtime.WithMerchantRegistry())
		},
	}
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Initialize the register and serve health and metrics endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			return runtime.New(cfg).Run(cmd.Context())
		},
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			return config.DumpConfig(cmd.OutOrStdout(), cfg)
		},
	}
}

// printResult prints a PosAPI reply and turns a service-reported failure into a non-zero exit.
func printResult(cmd *cobra.Command, result any, success bool) error {
	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if !success {
		return errServiceFailure
	}

	return nil
}
