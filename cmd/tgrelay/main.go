// Package main is the entry point for the tgrelay CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/flemzord/tgrelay/internal/buildinfo"
	"github.com/flemzord/tgrelay/internal/config"
	"github.com/flemzord/tgrelay/internal/credential"
	"github.com/flemzord/tgrelay/internal/defaults"
	"github.com/flemzord/tgrelay/internal/prompt"
	"github.com/flemzord/tgrelay/internal/security"
	"github.com/flemzord/tgrelay/pkg/app"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	err := rootCmd(os.Args[1:]).ExecuteContext(context.Background())
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(app.ExitCode(err))
}

// reportedError marks an error that the bot already logged.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func rootCmd(rawArgs []string) *cobra.Command {
	var params app.RunParams

	root := &cobra.Command{
		Use:           "tgrelay",
		Short:         "Telegram bot that relays messages posted to a small web endpoint",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.Args = rawArgs
			params.Console = cmd.OutOrStdout()
			if err := app.Run(cmd.Context(), params); err != nil {
				return &reportedError{err: err}
			}
			return nil
		},
	}

	flags := root.Flags()
	flags.StringVarP(&params.ConfigPath, "config", "c", config.DefaultPath, "Path to configuration file (.toml, .yaml or .yml)")
	flags.StringVar(&params.SecretsPath, "secrets", credential.DefaultSecretsPath, "Path to dotenv secrets file holding "+credential.Key)
	flags.StringVar(&params.LogDir, "log-dir", app.DefaultLogDir, `Directory for daily log files ("-" disables)`)
	flags.BoolVar(&params.NoInput, "no-input", false, "Fail instead of prompting")
	// Parsed from the raw arguments so that only a leading --token counts.
	flags.String("token", "", "Bot token; only honoured as the first argument")

	root.AddCommand(versionCmd(), configCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
			if v, err := buildinfo.NormalizeVersion(buildinfo.Version); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "config-version: %d\n", v)
			}
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(configCheckCmd(), configResetCmd())
	return cmd
}

func configCheckCmd() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Validate a configuration file against this build",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := pathArg(args)
			version, err := buildinfo.NormalizeVersion(buildinfo.Version)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dump {
				if err := printTree(out, path); err != nil {
					return err
				}
			}

			doc, err := config.Load(path, version)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Configuration OK (%s, config-version %d)\n", path, doc.ConfigVersion)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "print", false, "Print the parsed document with secrets redacted")
	return cmd
}

func configResetCmd() *cobra.Command {
	var yes, noInput bool
	cmd := &cobra.Command{
		Use:   "reset [path]",
		Short: "Back up a configuration file and replace it with the default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := pathArg(args)
			out := cmd.OutOrStdout()

			if !yes {
				q := fmt.Sprintf("Replace %s with the default configuration? The current file will be renamed to %s (y/n) ",
					path, filepath.Base(config.BackupPath(path)))
				answer, err := prompt.Default(noInput).Ask(q)
				if err != nil {
					return err
				}
				if !prompt.IsYes(answer) {
					return config.ErrDeclined
				}
			}

			backedUp, err := config.Reset(path, defaults.For(path))
			if err != nil {
				return err
			}
			if backedUp {
				fmt.Fprintf(out, "Previous configuration saved to %s\n", config.BackupPath(path))
			}
			fmt.Fprintf(out, "Wrote default configuration to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Fail instead of prompting")
	return cmd
}

func pathArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return config.DefaultPath
}

// printTree dumps the raw document as YAML. It works on rejected documents
// too, so the operator can see what the loader saw.
func printTree(w io.Writer, path string) error {
	tree, err := config.Tree(path)
	if err != nil {
		return err
	}
	security.NewRedactor().RedactMap(tree)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("printing %s: %w", path, err)
	}
	return enc.Close()
}
