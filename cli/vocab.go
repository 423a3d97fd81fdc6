package cli

import (
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/deanrtaylor1/gobow/tfidf"
	"github.com/deanrtaylor1/gobow/vocab"
)

func newVocabCommand(ctx *commandContext) *cobra.Command {
	var flags corpusFlags
	var top int
	var saveVocab string

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Show the most frequent vocabulary tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPipeline(ctx, cmd, &flags)
			if err != nil {
				return err
			}
			defer p.Close()

			var docs []string
			if flags.vocabPath == "" {
				corpus, err := p.loadCorpus(cmd.Context())
				if err != nil {
					return err
				}
				docs = corpus.Docs
			}
			v, err := p.vocabulary(flags.vocabPath, docs)
			if err != nil {
				return err
			}
			if saveVocab != "" {
				if err := v.SaveFile(saveVocab); err != nil {
					return fmt.Errorf("save vocabulary: %w", err)
				}
				p.log.Info("vocabulary saved", slog.String("path", saveVocab))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, vocabTable(v.Stats(), tfidf.Weights(v), top))
			fmt.Fprintf(out, "%d tokens from %d documents\n", v.Len(), v.Documents())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&top, "top", "n", 20, "Number of tokens to show (0 for all)")
	cmd.Flags().StringVar(&saveVocab, "save-vocab", "", "Save the vocabulary to this file")
	return cmd
}

func vocabTable(stats []vocab.Stat, idf []float32, top int) string {
	if top <= 0 || top > len(stats) {
		top = len(stats)
	}
	rows := make([]table.Row, 0, top)
	for i, s := range stats[:top] {
		rows = append(rows, table.Row{i + 1, s.Token, s.DocFreq, fmt.Sprintf("%.3f", idf[i])})
	}
	return report(
		[]column{rightColumn("Rank"), leftColumn("Token"), rightColumn("DF"), rightColumn("IDF")},
		rows,
		fmt.Sprintf("top %d of %d tokens", top, len(stats)),
	)
}
