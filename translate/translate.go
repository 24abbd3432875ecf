// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate formats user-facing messages for the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback is the language used when the host reports no locale.
var Fallback = language.AmericanEnglish

var printer *message.Printer

func init() {
	printer = NewPrinter()
}

// NewPrinter returns a printer for the best match of the host locales.
func NewPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("bitvm: locale: %v", err)
	}

	if len(locales) == 0 {
		return message.NewPrinter(Fallback)
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
