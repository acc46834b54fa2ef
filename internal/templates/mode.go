package templates

import (
	"fmt"

	flagutils "github.com/temirov/templatesync/internal/utils/flags"
)

const modeErrorTemplateConstant = "dedupe mode: %w"

// Mode selects how community files that share a name with a reference file are resolved.
type Mode string

// Supported modes.
const (
	// ModeRemove deletes every common-named community file regardless of content.
	ModeRemove Mode = "remove"
	// ModeRename deletes equal-size duplicates and renames differing files with the _dup__ prefix.
	ModeRename Mode = "rename"
	// ModeCategorize deletes equal-size duplicates and copies every other file into keyword categories.
	ModeCategorize Mode = "categorize"
)

var modeChoices = flagutils.ChoiceSet{
	Default: string(ModeRename),
	Values:  []string{string(ModeRemove), string(ModeRename), string(ModeCategorize)},
}

// ParseMode normalizes a configured mode name; blank selects rename.
func ParseMode(raw string) (Mode, error) {
	mode, parseError := modeChoices.Parse(raw)
	if parseError != nil {
		return "", fmt.Errorf(modeErrorTemplateConstant, parseError)
	}
	return Mode(mode), nil
}
