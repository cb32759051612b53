package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/personal-health-agent/pha/orchestrator"
	"github.com/ZanzyTHEbar/personal-health-agent/pha/unified"
)

// session is what both pipeline kinds expose to the chat loop.
type session interface {
	Respond(cmd *cobra.Command, query string) (string, error)
	Summary(cmd *cobra.Command)
}

func newChatCmd(configPath *string) *cobra.Command {
	var useUnified bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat with the orchestrated (default) or unified pipeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(*configPath)
			if err != nil {
				return err
			}

			var sess session
			if useUnified {
				sess = &unifiedSession{agent: app.newUnified()}
				fmt.Fprintln(cmd.OutOrStdout(), "Unified pipeline. Type 'summary' for session state, 'exit' to quit.")
			} else {
				sess = &orchestratedSession{orch: app.newOrchestrator()}
				fmt.Fprintln(cmd.OutOrStdout(), "Orchestrated pipeline. Type 'summary' for session state, 'exit' to quit.")
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(cmd.OutOrStdout(), "\nyou> ")
				if !scanner.Scan() {
					return scanner.Err()
				}

				query := strings.TrimSpace(scanner.Text())
				switch {
				case query == "":
					continue
				case query == "exit" || query == "quit":
					return nil
				case query == "summary":
					sess.Summary(cmd)
					continue
				}

				response, err := sess.Respond(cmd, query)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "turn failed:", err)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), "\npha>", response)
			}
		},
	}

	cmd.Flags().BoolVar(&useUnified, "unified", false, "Use the single-call baseline instead of the multi-agent pipeline")

	return cmd
}

type orchestratedSession struct {
	orch *orchestrator.Orchestrator
}

func (s *orchestratedSession) Respond(cmd *cobra.Command, query string) (string, error) {
	result, err := s.orch.ProcessQuery(cmd.Context(), query)
	if err != nil {
		return "", err
	}
	return result.Response, nil
}

func (s *orchestratedSession) Summary(cmd *cobra.Command) {
	summary := s.orch.ConversationSummary()
	fmt.Fprintf(cmd.OutOrStdout(), "Turns: %d\nMemory:\n%s\n", summary.TotalTurns, summary.Memory.JSON())
}

type unifiedSession struct {
	agent *unified.Agent
}

func (s *unifiedSession) Respond(cmd *cobra.Command, query string) (string, error) {
	result, err := s.agent.ProcessQuery(cmd.Context(), query)
	if err != nil {
		return "", err
	}
	return result.Response, nil
}

func (s *unifiedSession) Summary(cmd *cobra.Command) {
	summary := s.agent.ConversationSummary()
	fmt.Fprintf(cmd.OutOrStdout(), "Turns: %d\nMemory:\n%s\n", summary.TotalTurns, summary.Memory.JSON())
}
