package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

func PrintL1Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf(" %s   ", text)

	style.Println(paddedText)
}

func PrintL2Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf("# %s   ", text)

	style.Println(paddedText)
}

// Separator prints a green separator line between command outputs.
func Separator() {
	pterm.Println(pterm.Green("----------------------------------------"))
}

// Deposit and Withdrawal color text by the direction of a transaction.
func Deposit(s string) string {
	return pterm.Green(s)
}

func Withdrawal(s string) string {
	return pterm.Red(s)
}
