package advisor

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
)

// ValidateLanguage checks that code is one of the supported interface
// languages. Region subtags (e.g. "en-US") are rejected; the stored
// preference is the bare code.
func ValidateLanguage(code string) error {
	tag, err := language.Parse(code)
	if err != nil {
		return eris.Wrapf(err, "advisor: parse language %q", code)
	}
	switch tag {
	case language.English, language.Tamil:
		return nil
	}
	return eris.Errorf("advisor: unsupported language %q, supported: en, ta", code)
}

// SetLanguage validates and persists the user's preferred language.
func (a *Advisor) SetLanguage(ctx context.Context, userID, code string) error {
	if err := ValidateLanguage(code); err != nil {
		return err
	}
	return a.store.UpdateUserLanguage(ctx, userID, code)
}
