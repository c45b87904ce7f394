package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hdrnorm/internal/header"
	"hdrnorm/internal/shorten"
)

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <input> <output>",
		Short: "Undo key shortening using the substitution records",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := header.LoadFile(args[0])
			if err != nil {
				return err
			}

			n, err := shorten.Restore(doc.Meta, a.cfg.Shorten.Prefix)
			if err != nil {
				return err
			}

			err = header.WriteFile(doc, args[1])
			if err != nil {
				return err
			}

			a.logger.Info("Restored keys", zap.Int("restored", n), zap.String("output", args[1]))

			return nil
		},
	}
}
