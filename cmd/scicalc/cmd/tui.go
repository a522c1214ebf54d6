package cmd

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive calculator",
	Long: `Start the interactive calculator screen.

Keys:
  Enter     - Evaluate the input line
  Ctrl+R    - Cycle the angle mode (DRG)
  Ctrl+P    - M+ (add Ans to memory)
  Ctrl+N    - M− (subtract Ans from memory)
  Ctrl+L    - Clear history
  Esc       - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	calc := scicalc.NewContext(cfg.ContextOptions()...)
	p := tea.NewProgram(
		tui.NewModel(calc, tui.Options{Format: cfg.DisplayFormat(), History: cfg.History}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		log.Printf("tui: %v", err)
		return err
	}

	return nil
}
