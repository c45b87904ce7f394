package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hdrnorm/internal/header"
	"hdrnorm/internal/keyword"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <input> <keyword>...",
		Short: "Look keywords up in a header document",
		Long: `Resolve prints the key, value and unit each keyword resolves to.
A keyword is a key prefix (last match wins) or a "/"-separated sequence of
prefixes that descends into nested sections (first match wins).`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := header.LoadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, kw := range args[1:] {
				r, err := keyword.Resolve(doc.Meta, keyword.Parse(kw), a.cfg.JoinSeparator)
				if err != nil {
					return err
				}

				a.logger.Debug("Resolved keyword", zap.String("keyword", kw), zap.String("name", r.Name))

				if r.HasUnit {
					fmt.Fprintf(out, "%s = %v [%s]\n", r.Name, r.Value, r.Unit)
				} else {
					fmt.Fprintf(out, "%s = %v\n", r.Name, r.Value)
				}
			}

			return nil
		},
	}
}
