package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/loopdice/internal/config"
	"github.com/vovakirdan/loopdice/internal/games/loop"
	"github.com/vovakirdan/loopdice/internal/games/loop/core"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the configured board",
	Long: `Print every cell of the configured board in loop order and check it.

The check reports repeated labels, dice sums (5-30) with no matching
cell and a missing trap. A board that cannot be built at all is
replaced by the stock board, as during play.

Examples:
  loopdice board
  loopdice board --config ./my-board.yaml
  loopdice board --default-yaml > ~/.loopdice/configs/loop.yaml`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

var flagBoardDefaultYAML bool

func init() {
	boardCmd.Flags().BoolVar(&flagBoardDefaultYAML, "default-yaml", false, "Print the built-in loop.yaml and exit")
}

func runBoard(_ *cobra.Command, _ []string) {
	if flagBoardDefaultYAML {
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}

	cfg := loadConfig()
	board := loop.ResolverFor(cfg, core.Variant(cfg.Variant)).Board()

	rows := make([][]string, 0, board.Len())
	for i, c := range board.Cells() {
		mark := ""
		switch {
		case c.Trap:
			mark = "trap"
		case c.Home:
			mark = "home"
		}
		rows = append(rows, []string{strconv.Itoa(i), strconv.Itoa(c.Label), strconv.Itoa(c.Prize), mark})
	}

	fmt.Println(newTable([]string{"Cell", "Label", "Prize", ""}, rows, cellRowStyle(board)))

	if err := board.Validate(); err != nil {
		fmt.Printf("Board problems:\n%v\n", err)
		return
	}
	fmt.Println("Board OK")
}
