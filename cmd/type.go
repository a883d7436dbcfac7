package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/tvnav/internal/keyboard"
	"github.com/marcus/tvnav/internal/output"
)

// typeStep is one key press of `tvnav type`
type typeStep struct {
	Key     string `json:"key"`
	Changed bool   `json:"changed"`
	Value   string `json:"value"`
	State   string `json:"state"`
}

type typeResult struct {
	Steps     []typeStep `json:"steps"`
	Value     string     `json:"value"`
	Committed *string    `json:"committed,omitempty"`
}

// typeKeys presses keys on a freshly shown keyboard
func typeKeys(keys []string, maxLen int, trim bool) typeResult {
	var res typeResult
	im := keyboard.New(
		keyboard.WithMaxLength(maxLen),
		keyboard.WithTrimOnCommit(trim),
		keyboard.WithOnCommit(func(v string) { res.Committed = &v }),
	)
	im.Show()
	for _, k := range keys {
		changed := im.HandleKey(k)
		res.Steps = append(res.Steps, typeStep{
			Key:     k,
			Changed: changed,
			Value:   im.Value(),
			State:   im.State().String(),
		})
	}
	res.Value = im.Value()
	return res
}

var typeCmd = &cobra.Command{
	Use:   "type [keys...]",
	Short: "Press on-screen keyboard keys and print the buffer",
	Long: `Drive the on-screen keyboard with key names.

Glyph keys are the characters themselves. Special keys are space, backspace,
clear, done and mode:letters, mode:numbers, mode:symbols. The keyboard starts
visible in letters mode; keys pressed after done are ignored.`,
	Example: `  tvnav type h i space mode:numbers 4 2 done`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxLen, _ := cmd.Flags().GetInt("max")
		if maxLen < 0 {
			err := fmt.Errorf("--max must not be negative")
			output.Error("%v", err)
			return err
		}
		noTrim, _ := cmd.Flags().GetBool("no-trim")

		res := typeKeys(args, maxLen, !noTrim)

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(res)
		}

		for _, s := range res.Steps {
			mark := " "
			if !s.Changed {
				mark = "-"
			}
			fmt.Fprintf(output.Stdout, "%s %-14s %-18q %s\n", mark, s.Key, s.Value, s.State)
		}
		if res.Committed != nil {
			fmt.Fprintf(output.Stdout, "COMMITTED %q\n", *res.Committed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typeCmd)

	typeCmd.Flags().Int("max", 0, "Maximum length in characters (0 = unlimited)")
	typeCmd.Flags().Bool("no-trim", false, "Keep surrounding whitespace on done")
	typeCmd.Flags().Bool("json", false, "Output JSON")
}
