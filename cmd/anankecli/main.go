// Command anankecli is a thin debug CLI over pkg/ananke: extract and
// compile constraints from a single file and print the resulting IR as
// JSON. It is explicitly not the product command-line surface — that is
// an external collaborator's job — this exists for local inspection of
// what Clew/Braid produce for a given source file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ananke/internal/logging"
	"ananke/pkg/ananke"
)

var (
	verbose  bool
	language string
	watch    bool
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "anankecli",
	Short: "Inspect Clew/Braid output for a source file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Extract constraints from a file and compile them into a ConstraintIR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		lang := language
		if lang == "" {
			lang = languageFromExt(path)
		}

		client := ananke.NewClient(ananke.WithLogger(logging.NopIfNil(logger)))

		run := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			body, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			result, err := client.ExtractAndCompile(ctx, string(body), lang)
			if err != nil {
				return fmt.Errorf("compile: %w", err)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		if err := run(); err != nil {
			return err
		}
		if !watch {
			return nil
		}

		watcher, err := client.Watch(path)
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		defer watcher.Close()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		fmt.Fprintf(os.Stderr, "watching %s, press Ctrl-C to stop\n", path)
		<-sigCh
		return nil
	},
}

func languageFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".rs":
		return "rust"
	case ".js":
		return "javascript"
	case ".ts":
		return "typescript"
	default:
		return "go"
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	compileCmd.Flags().StringVarP(&language, "lang", "l", "", "override detected source language")
	compileCmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running, invalidating the cache on file changes")
	rootCmd.AddCommand(compileCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
