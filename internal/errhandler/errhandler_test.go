package errhandler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/kinko/internal/ledgercsv"
	"github.com/hance08/kinko/internal/service"
	"github.com/hance08/kinko/internal/store"
	"github.com/hance08/kinko/internal/utils"
	"github.com/hance08/kinko/internal/validation"
)

func TestClassifyAndStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{"validation", &validation.ValidationError{Field: "Amount", Message: "bad"}, KindValidation, http.StatusBadRequest},
		{"mismatch", fmt.Errorf("create: %w", &validation.MismatchError{Expected: 2, Actual: 1}), KindValidation, http.StatusBadRequest},
		{"import format", &ledgercsv.ImportFormatError{Line: 3, Err: errors.New("x")}, KindValidation, http.StatusBadRequest},
		{"fractional", fmt.Errorf("%w: 1.5", utils.ErrFractionalAmount), KindValidation, http.StatusBadRequest},
		{"replace not confirmed", service.ErrReplaceNotConfirmed, KindValidation, http.StatusBadRequest},
		{"not found", fmt.Errorf("transaction 3: %w", store.ErrRecordNotFound), KindNotFound, http.StatusNotFound},
		{"persistence", &service.PersistenceError{Op: "create transaction", Err: errors.New("disk full")}, KindPersistence, http.StatusInternalServerError},
		{"interrupt", terminal.InterruptErr, KindCancelled, http.StatusInternalServerError},
		{"form aborted", huh.ErrUserAborted, KindCancelled, http.StatusInternalServerError},
		{"other", errors.New("boom"), KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.kind {
				t.Errorf("Classify = %v, want %v", got, tc.kind)
			}
			if got := HTTPStatus(tc.err); got != tc.status {
				t.Errorf("HTTPStatus = %d, want %d", got, tc.status)
			}
		})
	}
}

func TestMessageHidesInternals(t *testing.T) {
	perr := &service.PersistenceError{Op: "create transaction", Err: errors.New("/var/db: disk I/O error")}
	if got := Message(perr); got != "failed to create transaction" {
		t.Errorf("Message = %q", got)
	}
	if got := Message(errors.New("secret")); got != "internal server error" {
		t.Errorf("Message = %q", got)
	}
	verr := &validation.ValidationError{Field: "Amount", Message: "bad"}
	if got := Message(verr); got != "Amount: bad" {
		t.Errorf("Message = %q", got)
	}
}

func TestHandleErrorExitCode(t *testing.T) {
	if got := HandleError(terminal.InterruptErr); got != 0 {
		t.Errorf("cancelled exit code = %d, want 0", got)
	}
	if got := HandleError(&validation.MismatchError{Expected: 100, Actual: 50}); got != 1 {
		t.Errorf("mismatch exit code = %d, want 1", got)
	}
	if got := HandleError(errors.New("boom")); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
}

func TestCapitalize(t *testing.T) {
	for in, want := range map[string]string{"": "", "boom": "Boom", "入金": "入金"} {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
