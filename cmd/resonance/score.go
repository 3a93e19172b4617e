package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/formianlabs/resonance/internal/conversation"
	"github.com/formianlabs/resonance/internal/resonance"
)

var (
	scorePrompt   string
	scoreResponse string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one exchange and print the result as JSON",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scorePrompt, "prompt", "", "User prompt text (required)")
	scoreCmd.Flags().StringVar(&scoreResponse, "response", "", "AI response text (optional)")
	_ = scoreCmd.MarkFlagRequired("prompt")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	logger := log.New(os.Stderr, "[resonance] ", log.LstdFlags)
	engine := resonance.NewEngine(conversation.NewMemoryStore(), logger)

	result, err := engine.Analyze(context.Background(), resonance.Request{
		Prompt:   scorePrompt,
		Response: scoreResponse,
	})
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
