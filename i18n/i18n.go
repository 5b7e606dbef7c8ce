// Package i18n localizes the user-facing labels of an analysis. The
// classification labels ship in English and Korean; unknown languages fall
// back to the default.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is used when the caller does not pick one.
const DefaultLanguage = "en"

var bundle = newBundle()

func newBundle() *goi18n.Bundle {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, lang := range []string{"en", "ko"} {
		if _, err := b.LoadMessageFileFS(localeFS, fmt.Sprintf("locales/%s.json", lang)); err != nil {
			// The files are embedded; a failure here is a packaging bug
			// and every lookup would return raw message IDs anyway.
			panic(fmt.Sprintf("i18n: cannot load embedded locale %q: %v", lang, err))
		}
	}
	return b
}

// T translates a message ID into the given language, falling back to the
// default language and finally to the ID itself.
func T(lang, messageID string) string {
	if lang == "" {
		lang = DefaultLanguage
	}
	localizer := goi18n.NewLocalizer(bundle, lang, DefaultLanguage)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// TradeTypeLabel localizes a trade classification ("DAY_TRADE", "SWING").
func TradeTypeLabel(lang, tradeType string) string {
	return T(lang, "TradeType"+tradeType)
}
