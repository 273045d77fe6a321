package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	mcsession "github.com/msto63/mChat/session"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive chat prompt",
	Long: `Starts an interactive prompt on the terminal. Every line is parsed
as chat input and dispatched; 'exit' or Ctrl-D ends the session.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		printError("startup failed", err)
		return err
	}
	defer a.close()

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	sess := mcsession.New(os.Getenv("USER"), "repl")
	sess.Locale = a.cfg.I18n.Locale

	if interactive {
		fmt.Println("mChat v" + Version + " - type 'help' for commands, 'exit' to leave")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		fragment, err := a.service.Execute(context.Background(), sess, line)
		if err != nil {
			fmt.Println(a.messages.LocalizeError(err))
			continue
		}
		if fragment != nil && fragment.Text != "" {
			fmt.Println(fragment.Text)
		}
	}
	return scanner.Err()
}
