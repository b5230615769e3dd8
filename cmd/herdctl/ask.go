package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/herdbook/herdbook/internal/advice"
	"github.com/herdbook/herdbook/internal/app"
	"github.com/herdbook/herdbook/internal/config"
)

func (c *cli) askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask the advice provider a question",
		Long: `Send a free-form goat care question to the configured advice provider
(ADVICE_PROVIDER) and print the answer. A failed exchange prints the
fallback answer and exits non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.TrimSpace(strings.Join(args, " "))
			if q == "" {
				return errors.New("ask: question is empty")
			}
			return c.withApp(cmd, func(a *app.App, _ config.Config) error {
				fmt.Fprintln(cmd.OutOrStdout(), a.Advisor.Ask(cmd.Context(), advice.Question(q)))
				if msg := a.Advisor.LastError(); msg != "" {
					return fmt.Errorf("ask: %s", msg)
				}
				return nil
			})
		},
	}
}
