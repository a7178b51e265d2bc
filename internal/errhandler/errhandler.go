package errhandler

import (
	"errors"
	"net/http"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/kinko/internal/ledgercsv"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/store"
	"github.com/hance08/kinko/internal/utils"
	"github.com/hance08/kinko/internal/validation"
	"github.com/pterm/pterm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindPersistence
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	case KindCancelled:
		return "cancelled"
	default:
		return "internal"
	}
}

// Classify sorts an error into the kind the caller reports it as.
func Classify(err error) Kind {
	var (
		verr     *validation.ValidationError
		mismatch *validation.MismatchError
		ferr     *ledgercsv.ImportFormatError
		perr     *service.PersistenceError
	)
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, terminal.InterruptErr), errors.Is(err, huh.ErrUserAborted):
		return KindCancelled
	case errors.As(err, &verr), errors.As(err, &mismatch), errors.As(err, &ferr),
		errors.Is(err, utils.ErrFractionalAmount):
		return KindValidation
	case errors.Is(err, store.ErrRecordNotFound):
		return KindNotFound
	case errors.As(err, &perr):
		return KindPersistence
	default:
		return KindInternal
	}
}

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	switch Classify(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message is the text shown to a client. Storage and internal failures are
// not echoed.
func Message(err error) string {
	switch Classify(err) {
	case KindValidation, KindNotFound:
		return err.Error()
	case KindPersistence:
		var perr *service.PersistenceError
		errors.As(err, &perr)
		return "failed to " + perr.Op
	default:
		return "internal server error"
	}
}

// HandleError reports a command error on the terminal and returns the
// process exit code.
func HandleError(err error) int {
	if Classify(err) == KindCancelled {
		pterm.Warning.Println("Operation Cancelled")
		return 0
	}

	var mismatch *validation.MismatchError
	if errors.As(err, &mismatch) {
		pterm.Error.Println("Denominations do not add up")
		pterm.Printf("  expected: %s\n  counted:  %s\n",
			utils.FormatYen(mismatch.Expected), utils.FormatYen(mismatch.Actual))
		return 1
	}

	pterm.Error.Println(capitalize(err.Error()))
	return 1
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
