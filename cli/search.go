package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/deanrtaylor1/gobow/bm25"
	"github.com/deanrtaylor1/gobow/dataset"
)

const snippetWidth = 60

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var flags corpusFlags
	var top int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Rank corpus messages against a query with BM25",
		Args:  cobra.MinimumNArgs(1),
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

			model := bm25.NewModel(corpus.Docs, p.tokenizer)
			query := strings.Join(args, " ")
			results := bm25.FilterResults(model.Score(query), bm25.IsGreaterThanZero)
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No matching messages")
				return nil
			}
			if top > 0 && len(results) > top {
				results = results[:top]
			}
			fmt.Fprintln(out, searchTable(corpus, results, query))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&top, "top", "n", 10, "Number of messages to show (0 for all)")
	return cmd
}

func searchTable(corpus *dataset.Corpus, results []bm25.Result, query string) string {
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		label := "ham"
		if corpus.Labels[r.Doc] == 1 {
			label = "spam"
		}
		rows = append(rows, table.Row{r.Doc, label, fmt.Sprintf("%.3f", r.Score), snippet(corpus.Docs[r.Doc])})
	}
	return report(
		[]column{rightColumn("Doc"), leftColumn("Label"), rightColumn("Score"), leftColumn("Message")},
		rows,
		fmt.Sprintf("%d best matches for %q", len(results), query),
	)
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) <= snippetWidth {
		return s
	}
	return string(r[:snippetWidth-3]) + "..."
}
