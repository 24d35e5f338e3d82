package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pushdown",
	Short: "Pushdown is a deterministic pushdown automaton simulator",
	Long: `Pushdown runs command sequences through a deterministic pushdown automaton
and reports the step-by-step trace and an accept/reject verdict.

Without --table the built-in pizza-bot table is used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a process exit code without printing anything extra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.StringP("table", "t", "", "Transition table file (YAML or JSON); defaults to the pizza-bot table")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Also append JSON logs to this file")
	flags.Bool("debug", false, "Log every step at debug level")
	flags.String("store", cli.StoreNone, "Run history store: none, memory, file, redis")
	flags.String("store-dir", "", "Directory for the file store (default .pushdown/runs)")
	flags.String("redis-addr", "localhost:6379", "Redis address (host:port or redis:// URL)")
	flags.Duration("redis-ttl", 0, "Expiration for runs kept in Redis (0 keeps them forever)")
}

// optionsFromFlags reads the persistent flags into cli.Options.
func optionsFromFlags(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	opts := cli.Options{}
	opts.TablePath, _ = flags.GetString("table")
	opts.LogLevel, _ = flags.GetString("log-level")
	opts.LogFile, _ = flags.GetString("log-file")
	opts.Debug, _ = flags.GetBool("debug")
	opts.Store, _ = flags.GetString("store")
	opts.StoreDir, _ = flags.GetString("store-dir")
	opts.RedisAddr, _ = flags.GetString("redis-addr")
	opts.RedisTTL, _ = flags.GetDuration("redis-ttl")
	return opts
}

func newEnv(cmd *cobra.Command) (*cli.Env, error) {
	return cli.NewEnv(cmd.Context(), optionsFromFlags(cmd))
}
