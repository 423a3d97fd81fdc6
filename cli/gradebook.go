package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/deanrtaylor1/gobow/gradebook"
	"github.com/deanrtaylor1/gobow/util"
)

func newGradebookCommand(ctx *commandContext) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "gradebook <input> <output>",
		Short: "Convert a scores export into a Canvas gradebook import CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := ctx.log(cmd)
			if err != nil {
				return err
			}
			in, out := args[0], args[1]

			f, err := os.Open(in)
			if err != nil {
				return fmt.Errorf("open %s: %w", in, err)
			}
			table, err := gradebook.Read(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("read %s: %w", in, err)
			}

			columns, _ := gradebook.GuessColumns(table.Header)
			if interactive {
				columns, err = util.SelectColumns("Assignment columns to import:", columns)
				if err != nil {
					return err
				}
			}
			log.Info("converting gradebook",
				slog.String("input", in),
				slog.Int("students", len(table.Rows)),
				slog.Int("assignments", len(columns)),
			)

			w, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := gradebook.Write(w, gradebook.Convert(table, columns)); err != nil {
				w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote Canvas import CSV to: %s\n", out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Choose the assignment columns interactively")
	return cmd
}
