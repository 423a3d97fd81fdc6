package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/deanrtaylor1/gobow/features"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags corpusFlags
	var saveVocab string
	var csvPath string
	var rows, cols int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load the dataset and build its bag-of-words feature matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(ctx, cmd, &flags)
			if err != nil {
				return err
			}
			defer p.Close()

			corpus, err := p.loadCorpus(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %s documents: spam=%s, ham=%s\n",
				humanize.Comma(int64(corpus.Len())),
				humanize.Comma(int64(corpus.Spam())),
				humanize.Comma(int64(corpus.Ham())),
			)

			v, err := p.vocabulary(flags.vocabPath, corpus.Docs)
			if err != nil {
				return err
			}
			if saveVocab != "" {
				if err := v.SaveFile(saveVocab); err != nil {
					return fmt.Errorf("save vocabulary: %w", err)
				}
				p.log.Info("vocabulary saved", slog.String("path", saveVocab))
			}

			bow, err := features.Vectorize(corpus.Docs, v, p.tokenizer, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, bow.Render(rows, cols))

			if csvPath != "" {
				if err := writeMatrixCSV(csvPath, bow); err != nil {
					return err
				}
				p.log.Info("feature matrix written", slog.String("path", csvPath))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&saveVocab, "save-vocab", "", "Save the vocabulary to this file")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the full feature matrix as CSV")
	cmd.Flags().IntVar(&rows, "rows", 10, "Rows to preview (0 for all)")
	cmd.Flags().IntVar(&cols, "cols", 10, "Columns to preview (0 for all)")
	return cmd
}

func writeMatrixCSV(path string, m *features.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := m.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
