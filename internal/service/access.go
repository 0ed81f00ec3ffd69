package service

import (
	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/model"
)

// checkFormAccess gates private forms behind their password. Owners always
// pass. The password never appears in any response; it is only compared
// here.
func checkFormAccess(form *model.Form, userID uint, password string) error {
	if !form.IsPrivate || form.UserID == userID {
		return nil
	}
	if password == "" {
		return apperr.New(apperr.KindPermissionDenied, "This form is private. Please provide a password.")
	}
	if password != form.Password {
		return apperr.New(apperr.KindPermissionDenied, "Incorrect password. Access denied.")
	}
	return nil
}

// checkProcessAccess mirrors checkFormAccess for standalone process
// retrieval.
func checkProcessAccess(process *model.Process, userID uint, password string) error {
	if !process.IsPrivate || process.UserID == userID {
		return nil
	}
	if password == "" {
		return apperr.New(apperr.KindPermissionDenied, "This process is private. Please provide a password.")
	}
	if password != process.Password {
		return apperr.New(apperr.KindPermissionDenied, "Incorrect password. Access denied.")
	}
	return nil
}
