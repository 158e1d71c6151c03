package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/amirhossein-jamali/league-wallet/internal/app"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/usecase/match"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/identity"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/store"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/config"

	"github.com/spf13/cobra"
)

// commandTimeout bounds one store-backed command
const commandTimeout = 2 * time.Minute

// cliActor is recorded as the acting admin of balance overrides made here
const cliActor = "leaguectl"

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:          "leaguectl",
		Short:        "Operate the league wallet store",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log store activity to stderr")

	root.AddCommand(
		newFeedCmd(&verbose),
		newStoreCmd(&verbose),
		newAccountCmd(&verbose),
		newBalanceCmd(&verbose),
	)

	if err := root.Execute(); err != nil {
		printError(fmt.Sprintf("error: %v", err))
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if _, err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(verbose bool) coreport.Logger {
	if !verbose {
		return logger.NewNoopLogger()
	}
	return logger.NewZapLogger(false, coreport.LogLevelDebug)
}

// withApp wires the league against the configured store, runs fn and closes it
func withApp(cmd *cobra.Command, verbose bool, tune func(*config.Config), fn func(ctx context.Context, league *app.App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if tune != nil {
		tune(cfg)
	}
	if cfg.Store.Driver == store.DriverMemory {
		printWarn("store.driver is memory: changes are lost when leaguectl exits")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	log := newLogger(verbose)
	defer func() { _ = log.Flush() }()

	league, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := league.Close(); err != nil {
			printError(err.Error())
		}
	}()
	return fn(ctx, league)
}

func newFeedCmd(verbose *bool) *cobra.Command {
	feed := &cobra.Command{
		Use:   "feed",
		Short: "Inspect and regenerate the daily match feed",
	}

	var at string
	preview := &cobra.Command{
		Use:   "preview",
		Short: "Print the feed that would be generated at a given time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			location, err := time.LoadLocation(cfg.Feed.Timezone)
			if err != nil {
				return err
			}

			now := time.Now()
			if at != "" {
				if now, err = time.Parse(time.RFC3339, at); err != nil {
					return fmt.Errorf("--at: want RFC3339, e.g. 2025-03-01T07:15:00+06:00: %w", err)
				}
			}

			matches := match.NewGenerator(identity.NewMathRandom()).Generate(now.In(location))
			printMatches(matches)
			return nil
		},
	}
	preview.Flags().StringVar(&at, "at", "", "generation time in RFC3339 (default now)")

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Drop unjoined matches and append a fresh day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *verbose, nil, func(ctx context.Context, league *app.App) error {
				result, err := league.Matches.Refresh(ctx)
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Feed refreshed: %d kept, %d added, %d dropped", result.Kept, result.Added, result.Dropped))
				return nil
			})
		},
	}

	feed.AddCommand(preview, refresh)
	return feed
}

func newStoreCmd(verbose *bool) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Back up and restore the four collections",
	}

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write every collection as one JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *verbose, nil, func(ctx context.Context, league *app.App) error {
				snapshot, err := store.Export(ctx, league.Store, league.Config.Store.Namespace)
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(snapshot, "", "  ")
				if err != nil {
					return err
				}
				if out == "" || out == "-" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return err
				}
				if err := os.WriteFile(out, data, 0o600); err != nil {
					return err
				}
				printSuccess("Exported to " + out)
				return nil
			})
		},
	}
	export.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the collections present in a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var snapshot store.Snapshot
			if err := json.Unmarshal(data, &snapshot); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return withApp(cmd, *verbose, nil, func(ctx context.Context, league *app.App) error {
				if err := store.Import(ctx, league.Store, league.Config.Store.Namespace, snapshot); err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Imported %d collections from %s", len(snapshot), args[0]))
				return nil
			})
		},
	}

	storeCmd.AddCommand(export, importCmd)
	return storeCmd
}

func newAccountCmd(verbose *bool) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	var (
		password string
		name     string
		admin    bool
	)
	create := &cobra.Command{
		Use:   "create <mobile>",
		Short: "Register an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mobile := args[0]
			tune := func(cfg *config.Config) {
				if admin {
					cfg.Auth.AdminMobiles = append(cfg.Auth.AdminMobiles, mobile)
				}
			}
			return withApp(cmd, *verbose, tune, func(ctx context.Context, league *app.App) error {
				account, err := league.Accounts.Register(ctx, usecase.RegisterInput{
					Mobile:      mobile,
					Password:    password,
					DisplayName: name,
				})
				if err != nil {
					return err
				}
				printSuccess(fmt.Sprintf("Created %s %s (%s)", account.Role, account.Mobile, account.DisplayName))
				return nil
			})
		},
	}
	create.Flags().StringVarP(&password, "password", "p", "", "account password")
	create.Flags().StringVar(&name, "name", "", "display name (default Gamer_<last 4 digits>)")
	create.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	_ = create.MarkFlagRequired("password")

	var query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts matching a mobile or name fragment",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, *verbose, nil, func(ctx context.Context, league *app.App) error {
				accounts, err := league.Accounts.List(ctx, query)
				if err != nil {
					return err
				}
				printAccounts(accounts)
				return nil
			})
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "mobile or display name fragment")

	accountCmd.AddCommand(create, list)
	return accountCmd
}

func newBalanceCmd(verbose *bool) *cobra.Command {
	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Override balances with an audited adjustment entry",
	}

	set := &cobra.Command{
		Use:   "set <mobile> <amount>",
		Short: "Set a balance to an exact amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := entity.ParseAmount(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, *verbose, nil, func(ctx context.Context, league *app.App) error {
				change, err := league.Moderation.SetBalance(ctx, cliActor, args[0], amount)
				if err != nil {
					return err
				}
				printBalanceChange(change)
				return nil
			})
		},
	}

	adjust := &cobra.Command{
		Use:   "adjust <mobile> <delta>",
		Short: "Move a balance by a signed amount, e.g. -- -50",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := entity.ParseSignedAmount(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, *verbose, nil, func(ctx context.Context, league *app.App) error {
				change, err := league.Moderation.AdjustBalance(ctx, cliActor, args[0], delta)
				if err != nil {
					return err
				}
				printBalanceChange(change)
				return nil
			})
		},
	}

	balanceCmd.AddCommand(set, adjust)
	return balanceCmd
}

func trimmed(value string, width int) string {
	value = strings.TrimSpace(value)
	if len(value) <= width {
		return value
	}
	return value[:width-1] + "~"
}
