package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hance08/kinko/internal/utils"
)

// Validators for interactive prompts. They take the raw text typed by the user.

func ValidateAmountInput(s string) error {
	amount, err := utils.ParseYen(s)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

func ValidateDateInput(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := utils.ParseDate(s); err != nil {
		return err
	}
	return nil
}

func ValidateCountInput(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("count must be a whole number")
	}
	if n < 0 {
		return fmt.Errorf("count must not be negative")
	}
	return nil
}
