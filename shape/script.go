package shape

import (
	"strings"

	"github.com/go-text/typesetting/language"
)

// ScriptForFont picks the script tag used to shape a run drawn with the
// named font. Emoji fonts get Common, everything else Latin.
//
// This looks at the font name only, not at the characters. Runs handed
// over by the layout service are assumed left-to-right.
func ScriptForFont(name string) language.Script {
	if strings.Contains(strings.ToLower(name), "emoji") {
		return language.Common
	}
	return language.Latin
}
