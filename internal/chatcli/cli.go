package chatcli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"llamagate/internal/config"
)

// NewRootCmd constructs the llamachat command tree.
func NewRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "llamachat",
		Short:         "Interactive chat client for a llamagate service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "llamachat.yaml", "Path to client config (yaml/json/toml)")

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadOrDefault(cfgPath)
			if err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel)
			return RunChatLoop(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), log)
		},
	}

	configCmd := &cobra.Command{Use: "config", Short: "Client configuration utilities"}
	configCheck := &cobra.Command{
		Use:   "check",
		Short: "Validate the client config file and print the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClient(cfgPath)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
	configCmd.AddCommand(configCheck)

	root.AddCommand(chatCmd, configCmd)
	return root
}

// loadOrDefault tolerates a missing config file by falling back to defaults;
// a malformed file is still an error.
func loadOrDefault(path string) (config.ClientConfig, error) {
	cfg, err := config.LoadClient(path)
	if err != nil {
		if config.IsNotFound(err) {
			cfg = config.ClientConfig{}
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, err
	}
	return cfg, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
}

// RunChatLoop drives the interactive session until /exit or EOF.
//
// Commands:
//
//	/exit            end the session
//	/history         print the conversation history as JSON
//	/clear [prompt]  reset history, optionally with a new system prompt
//	/temp <value>    set temperature for following turns
//	/tokens <value>  set max_tokens for following turns
func RunChatLoop(cfg config.ClientConfig, in io.Reader, out io.Writer, log zerolog.Logger) error {
	client := NewClient(
		cfg.ServiceURL,
		time.Duration(cfg.RequestTimeoutSecs)*time.Second,
		cfg.DefaultSystemPrompt,
		log,
	)

	fmt.Fprintln(out, "Starting chat. Type '/exit' to end, '/history' to show history, '/clear' to reset.")
	fmt.Fprintln(out, "Use '/temp <value>' or '/tokens <value>' to change generation parameters.")

	temperature := cfg.Generation.Temperature
	maxTokens := cfg.Generation.MaxTokens

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\nExiting chat (EOF).")
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch {
		case input == "/exit":
			fmt.Fprintln(out, "Exiting chat.")
			return nil
		case input == "/history":
			printHistory(out, client)
			continue
		case strings.HasPrefix(input, "/clear"):
			client.Clear(strings.TrimSpace(strings.TrimPrefix(input, "/clear")))
			fmt.Fprintln(out, "History cleared.")
			continue
		case strings.HasPrefix(input, "/temp "):
			v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(input, "/temp ")), 64)
			if err != nil || v < 0 || v > 2 {
				fmt.Fprintln(out, "Usage: /temp <value in [0,2]>")
				continue
			}
			temperature = v
			fmt.Fprintf(out, "Temperature set to %v.\n", v)
			continue
		case strings.HasPrefix(input, "/tokens "):
			v, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(input, "/tokens ")))
			if err != nil || v <= 0 {
				fmt.Fprintln(out, "Usage: /tokens <positive integer>")
				continue
			}
			maxTokens = v
			fmt.Fprintf(out, "Max tokens set to %d.\n", v)
			continue
		}

		client.AddUserMessage(input)
		reply, err := client.Respond(temperature, maxTokens)
		if err != nil {
			log.Error().Err(err).Msg("completion failed")
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Assistant: %s\n", reply)
	}
}

func printHistory(out io.Writer, client *Client) {
	fmt.Fprintln(out, "--- Conversation History ---")
	b, err := json.MarshalIndent(client.History(), "", "  ")
	if err != nil {
		fmt.Fprintf(out, "error rendering history: %v\n", err)
	} else {
		fmt.Fprintln(out, string(b))
	}
	fmt.Fprintln(out, "----------------------------")
}
