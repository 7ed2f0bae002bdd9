package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"chanctl/internal/config"
	"chanctl/internal/filter"
	"chanctl/internal/orchestrator"
)

func newMenuCmd() *cobra.Command {
	var connection string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive session against a gateway instance",
		Long: `Opens an interactive prompt for the read-only and test operations:
listing channels, locating keys, running connectivity tests and
inspecting undo snapshots. Mutating flows stay on the explicit
subcommands where --dry-run and confirmation gates apply.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := newOrchestrator(cmd)
			if err != nil {
				return err
			}
			return runMenu(cmd, o, connection)
		},
	}

	cmd.Flags().StringVarP(&connection, "connection", "c", "", "connection profile name")
	return cmd
}

var menuCompleter = readline.NewPrefixCompleter(
	readline.PcItem("list"),
	readline.PcItem("find-key"),
	readline.PcItem("test"),
	readline.PcItem("snapshots"),
	readline.PcItem("connections"),
	readline.PcItem("use"),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)

func runMenu(cmd *cobra.Command, o *orchestrator.Orchestrator, connection string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            menuPrompt(connection),
		HistoryFile:       filepath.Join(os.TempDir(), ".chanctl_history"),
		AutoComplete:      menuCompleter,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Type 'help' for available commands, TAB to complete, Ctrl+D to exit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				continue
			}
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		words := strings.Fields(input)
		command, rest := words[0], words[1:]

		switch command {
		case "exit", "quit":
			return nil
		case "help":
			printMenuHelp(out)
		case "connections":
			names, err := config.ListConnections(o.ConfigDir)
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			if len(names) == 0 {
				fmt.Fprintln(out, "No connection profiles stored.")
				continue
			}
			for _, name := range names {
				fmt.Fprintf(out, "  %s\n", name)
			}
		case "use":
			if len(rest) != 1 {
				fmt.Fprintln(out, "Usage: use <connection>")
				continue
			}
			connection = rest[0]
			rl.SetPrompt(menuPrompt(connection))
		default:
			if connection == "" {
				fmt.Fprintln(out, "No connection selected. Run 'use <connection>' first.")
				continue
			}
			if err := runMenuCommand(cmd, o, connection, command, rest); err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		}
	}
}

func runMenuCommand(cmd *cobra.Command, o *orchestrator.Orchestrator, connection, command string, args []string) error {
	ctx := cmd.Context()
	switch command {
	case "list":
		var spec *filter.Spec
		if len(args) > 0 {
			spec = &filter.Spec{NameFilters: args}
		}
		return o.ListChannels(ctx, connection, spec)
	case "find-key":
		if len(args) != 1 {
			return fmt.Errorf("usage: find-key <key>")
		}
		return o.FindByKey(ctx, connection, args[0])
	case "test":
		var spec *filter.Spec
		if len(args) > 0 {
			spec = &filter.Spec{NameFilters: args}
		}
		return o.RunTestEnable(ctx, connection, spec, false)
	case "snapshots":
		return o.ListSnapshots(connection)
	default:
		return fmt.Errorf("unknown command %q, try 'help'", command)
	}
}

func menuPrompt(connection string) string {
	if connection == "" {
		return "chanctl> "
	}
	return fmt.Sprintf("chanctl(%s)> ", connection)
}

func printMenuHelp(out io.Writer) {
	fmt.Fprint(out, `Commands:
  list [substring...]   list channels, optionally filtered by name
  find-key <key>        locate the channel holding an exact secret key
  test [substring...]   run the connectivity test on matched channels
  snapshots             list stored undo snapshots for the connection
  connections           list stored connection profiles
  use <connection>      switch the active connection
  exit                  leave the session
`)
}
