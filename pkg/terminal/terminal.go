package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hydro-tools/water-atlas/pkg/terminal/commands"
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
	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(output io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "water-atlas",
		Short: "Water spread and storage analysis tool",
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(output))
	cmd.AddCommand(commands.NewReportCmd(output))

	return cmd
}
