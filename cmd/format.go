// File: cmd/format.go
package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SSRQ-SDS-FDS/xmlcustomformatter/internal/config"
	"github.com/SSRQ-SDS-FDS/xmlcustomformatter/internal/formatter"
	"github.com/SSRQ-SDS-FDS/xmlcustomformatter/internal/observability"
)

// newFormatCmd creates and configures the `format` command.
func newFormatCmd() *cobra.Command {
	formatCmd := &cobra.Command{
		Use:   "format [files...]",
		Short: "Reformats the given XML files in place",
		Long: `Reformats one or more XML files under the configured layout rules.

Files are rewritten in place unless --output is given. Element layout is
controlled by assigning tag names to one of three behaviors with the
--container, --semicontainer and --inline flags (or the matching lists in the
config file); unlisted tags use --default-behavior.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their corresponding Viper keys so command-line
			// flags correctly override values from the config file and
			// environment variables.
			if err := viper.BindPFlag("format.indentation", cmd.Flags().Lookup("indent")); err != nil {
				return err
			}
			if err := viper.BindPFlag("format.max_line_length", cmd.Flags().Lookup("max-line-length")); err != nil {
				return err
			}
			if err := viper.BindPFlag("format.default_behavior", cmd.Flags().Lookup("default-behavior")); err != nil {
				return err
			}
			if err := viper.BindPFlag("format.container_elements", cmd.Flags().Lookup("container")); err != nil {
				return err
			}
			if err := viper.BindPFlag("format.semicontainer_elements", cmd.Flags().Lookup("semicontainer")); err != nil {
				return err
			}
			if err := viper.BindPFlag("format.inline_elements", cmd.Flags().Lookup("inline")); err != nil {
				return err
			}
			if err := viper.BindPFlag("format.sorted_attributes", cmd.Flags().Lookup("sorted-attributes")); err != nil {
				return err
			}
			if err := viper.BindPFlag("format.concurrency", cmd.Flags().Lookup("concurrency")); err != nil {
				return err
			}
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: runFormat,
	}

	formatCmd.Flags().StringP("output", "o", "", "write the result to this file ('-' for stdout); only valid with a single input")
	formatCmd.Flags().Bool("check", false, "report files whose formatting would change without writing anything")
	formatCmd.Flags().Int("indent", 4, "spaces per nesting level")
	formatCmd.Flags().Int("max-line-length", 120, "maximum line length; 0 or negative disables wrapping")
	formatCmd.Flags().String("default-behavior", "container", "behavior for unlisted tags: container, semicontainer or inline")
	formatCmd.Flags().StringSlice("container", nil, "tag names laid out as containers")
	formatCmd.Flags().StringSlice("semicontainer", nil, "tag names laid out as semicontainers")
	formatCmd.Flags().StringSlice("inline", nil, "tag names laid out inline")
	formatCmd.Flags().Bool("sorted-attributes", false, "sort attributes by name")
	formatCmd.Flags().Int("concurrency", 0, "number of files formatted in parallel (0 = number of CPUs)")

	return formatCmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := observability.GetLogger()

	// Flags were bound in PreRunE, so viper now holds the final values.
	if viper.GetInt("format.concurrency") <= 0 {
		viper.Set("format.concurrency", config.NewDefaultConfig().Format.Concurrency)
	}
	cfg, err := config.NewConfigFromViper(viper.GetViper())
	if err != nil {
		return err
	}

	f, err := formatter.New(cfg.Format)
	if err != nil {
		return err
	}

	output := viper.GetString("output")
	check := viper.GetBool("check")
	if output != "" && len(args) > 1 {
		return fmt.Errorf("--output cannot be combined with multiple input files")
	}
	if output != "" && check {
		return fmt.Errorf("--output cannot be combined with --check")
	}

	logger.Info("Formatting files",
		zap.Int("files", len(args)),
		zap.Int("indentation", cfg.Format.Indentation),
		zap.Int("max_line_length", cfg.Format.MaxLineLength),
		zap.String("default_behavior", cfg.Format.DefaultBehavior),
		zap.Bool("check", check),
	)

	var (
		mu      sync.Mutex
		changed []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Format.Concurrency)
	for _, path := range args {
		path := path // per-iteration copy for Go <1.22 loop semantics
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			doc := etree.NewDocument()
			doc.ReadSettings.PreserveCData = true
			if err := doc.ReadFromBytes(data); err != nil {
				// A failed parse is surfaced as its own error; nothing
				// is ever written for this file.
				return fmt.Errorf("parse %s: %w", path, err)
			}

			text, err := f.Format(doc)
			if err != nil {
				return fmt.Errorf("format %s: %w", path, err)
			}
			text += "\n"

			if check {
				if string(data) != text {
					mu.Lock()
					changed = append(changed, path)
					mu.Unlock()
					logger.Info("Would reformat", zap.String("file", path))
				}
				return nil
			}

			if output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}

			dest := path
			if output != "" {
				dest = output
			}
			if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			logger.Debug("Formatted", zap.String("file", path), zap.String("output", dest))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if len(changed) > 0 {
		return fmt.Errorf("%d file(s) would be reformatted", len(changed))
	}
	return nil
}
