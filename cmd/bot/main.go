package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/interfaces/cli/serve"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bot",
		Short: "Telegram AI assistant bot",
		Long:  `A Telegram assistant backed by Gemini models, with quota-gated access and paid Stars subscriptions.`,
	}

	rootCmd.AddCommand(
		serve.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
