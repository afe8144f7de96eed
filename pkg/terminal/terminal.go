package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcp-analytics/resort-dmr/pkg/terminal/commands"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dmr",
		Short: "Daily management report generator",
	}

	cmd.AddCommand(commands.NewReportCmd())
	cmd.AddCommand(commands.NewRangesCmd())
	cmd.AddCommand(commands.NewServeCmd())

	return cmd
}
