// Package i18n translates user-facing messages into the caller's language.
package i18n

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale answers when the caller asks for nothing we support.
	DefaultLocale = "en"
	// AcceptLanguageHeader is the request header read by GetLocale.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator looks messages up by key, then locale.
type Translator struct {
	catalog map[string]map[string]string
	locales map[string]bool
}

// NewTranslator builds a translator over the built-in catalog.
func NewTranslator() *Translator {
	t := &Translator{catalog: builtinCatalog(), locales: map[string]bool{}}
	for _, byLocale := range t.catalog {
		for locale := range byLocale {
			t.locales[locale] = true
		}
	}
	return t
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, then in DefaultLocale, then key itself.
func (t *Translator) Translate(key, locale string) string {
	byLocale, ok := t.catalog[key]
	if !ok {
		return key
	}
	if msg, ok := byLocale[locale]; ok {
		return msg
	}
	return byLocale[DefaultLocale]
}

// Supports reports whether any message exists in locale.
func (t *Translator) Supports(locale string) bool {
	return t.locales[locale]
}

// Locales lists the supported locales in sorted order.
func (t *Translator) Locales() []string {
	out := make([]string, 0, len(t.locales))
	for l := range t.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// GetLocale picks the supported language the caller prefers most, honouring
// Accept-Language q-values. Region subtags are ignored, so pt-BR selects pt.
func GetLocale(c *gin.Context) string {
	return negotiate(c.GetHeader(AcceptLanguageHeader), GetTranslator())
}

type languageRange struct {
	tag string
	q   float64
}

func negotiate(header string, t *Translator) string {
	if header == "" {
		return DefaultLocale
	}

	var ranges []languageRange
	for _, part := range strings.Split(header, ",") {
		fields := strings.Split(strings.TrimSpace(part), ";")
		tag := strings.ToLower(strings.TrimSpace(fields[0]))
		if i := strings.IndexByte(tag, '-'); i > 0 {
			tag = tag[:i]
		}
		if tag == "" {
			continue
		}
		q := 1.0
		for _, param := range fields[1:] {
			param = strings.TrimSpace(param)
			if v, ok := strings.CutPrefix(param, "q="); ok {
				if parsed, err := strconv.ParseFloat(v, 64); err == nil {
					q = parsed
				}
			}
		}
		if q > 0 {
			ranges = append(ranges, languageRange{tag: tag, q: q})
		}
	}

	// Stable keeps header order among equal weights.
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].q > ranges[j].q })
	for _, r := range ranges {
		if t.Supports(r.tag) {
			return r.tag
		}
	}
	return DefaultLocale
}

func builtinCatalog() map[string]map[string]string {
	return map[string]map[string]string{
		ErrKeyInvalidRequestBody: {
			"en": "Invalid request body",
			"pt": "Corpo da requisição inválido",
			"nl": "Ongeldige aanvraag body",
		},
		ErrKeyInternalError: {
			"en": "An unexpected error occurred",
			"pt": "Ocorreu um erro inesperado",
			"nl": "Er is een onverwachte fout opgetreden",
		},
		ErrKeyRateLimitExceeded: {
			"en": "Too many requests, please try again later",
			"pt": "Muitas requisições, tente novamente mais tarde",
			"nl": "Te veel verzoeken, probeer het later opnieuw",
		},
		ErrKeyTimeout: {
			"en": "Request timed out",
			"pt": "Tempo da requisição esgotado",
			"nl": "Verzoek verlopen",
		},
		ErrKeyIdempotencyKeyReused: {
			"en": "Idempotency key was already used with a different request",
			"pt": "A chave de idempotência já foi usada com outra requisição",
			"nl": "Idempotentiesleutel is al gebruikt voor een ander verzoek",
		},
		ErrKeyIdempotencyKeyInUse: {
			"en": "A request with this idempotency key is still in progress",
			"pt": "Uma requisição com esta chave de idempotência ainda está em andamento",
			"nl": "Een verzoek met deze idempotentiesleutel wordt nog verwerkt",
		},
		ErrKeyAPIKeyRequired: {
			"en": "API key is required",
			"pt": "Chave de API é obrigatória",
			"nl": "API-sleutel is vereist",
		},
		ErrKeyInvalidAPIKey: {
			"en": "Invalid API key",
			"pt": "Chave de API inválida",
			"nl": "Ongeldige API-sleutel",
		},
		ErrKeyTokenRequired: {
			"en": "Sign in to access your reports",
			"pt": "Entre para acessar seus relatórios",
			"nl": "Log in om je rapporten te bekijken",
		},
		ErrKeyInvalidToken: {
			"en": "Invalid or expired token",
			"pt": "Token inválido ou expirado",
			"nl": "Ongeldig of verlopen token",
		},
		ErrKeyValidationProduct: {
			"en": "product: is required",
			"pt": "product: é obrigatório",
			"nl": "product: is verplicht",
		},
		ErrKeyValidationBox: {
			"en": "box: is required",
			"pt": "box: é obrigatório",
			"nl": "box: is verplicht",
		},
		ErrKeyReportNotFound: {
			"en": "Report not found",
			"pt": "Relatório não encontrado",
			"nl": "Rapport niet gevonden",
		},
		ErrKeyInvalidReportID: {
			"en": "Invalid report id",
			"pt": "ID de relatório inválido",
			"nl": "Ongeldig rapport-id",
		},
		ErrKeyReportsUnavailable: {
			"en": "Reports are temporarily unavailable",
			"pt": "Relatórios temporariamente indisponíveis",
			"nl": "Rapporten zijn tijdelijk niet beschikbaar",
		},
		SuccessKeyReportDeleted: {
			"en": "Report deleted",
			"pt": "Relatório excluído",
			"nl": "Rapport verwijderd",
		},
	}
}
