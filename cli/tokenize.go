package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deanrtaylor1/gobow/lexer"
)

func newTokenizeCommand(ctx *commandContext) *cobra.Command {
	var stem, stripHTML, stripHeaders bool

	cmd := &cobra.Command{
		Use:   "tokenize [text...]",
		Short: "Print the tokens of text given as arguments or on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			opts := cfg.TokenizerOptions()
			flags := cmd.Flags()
			if flags.Changed("stem") {
				opts.Stem = stem
			}
			if flags.Changed("strip-html") {
				opts.StripHTML = stripHTML
			}
			if flags.Changed("strip-headers") {
				opts.StripHeaders = stripHeaders
			}
			tok, err := lexer.New(opts)
			if err != nil {
				return err
			}
			defer tok.Close()

			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			out := cmd.OutOrStdout()
			for _, token := range tok.Tokenize(text) {
				fmt.Fprintln(out, token)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stem, "stem", false, "Stem word tokens")
	cmd.Flags().BoolVar(&stripHTML, "strip-html", false, "Keep only the text of html input")
	cmd.Flags().BoolVar(&stripHeaders, "strip-headers", false, "Drop mail headers before tokenizing")
	return cmd
}
