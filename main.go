package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger() (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", viper.GetString("log-level"), err)
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch viper.GetString("log-format") {
	case "json":
		encoder = zapcore.NewJSONEncoder(cfg)
	default:
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	return zap.New(core).Sugar(), nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bptreedb <database-file>",
		Short:         "Single-table B+tree database REPL",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errMissingDBFile
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			repl, err := NewREPL(args[0], log)
			if err != nil {
				log.Errorw("failed to open database", "err", err)
				return errExitNonzero
			}
			os.Exit(repl.Run())
			return nil
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	cmd.PersistentFlags().String("log-format", "console", "log format: console, json")
	viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-format", cmd.PersistentFlags().Lookup("log-format"))
	viper.SetEnvPrefix("bptreedb")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	return cmd
}

// errMissingDBFile is the required-argument message; errExitNonzero is
// a silent sentinel for already-logged failures so cobra doesn't print
// a second error line.
var errMissingDBFile = fmt.Errorf("Must supply a database filename.")
var errExitNonzero = fmt.Errorf("")

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if err == errMissingDBFile {
			fmt.Println(err.Error())
		}
		os.Exit(1)
	}
}
