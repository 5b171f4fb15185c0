// Package i18n translates user-facing error messages of the packaging service.
package i18n

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has a message table.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the message for key in locale.
// Missing locales and keys fall back to DefaultLocale, then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// TranslateRequest translates key for the locale requested by c.
func TranslateRequest(c *gin.Context, key string) string {
	return GetTranslator().Translate(key, GetLocale(c))
}

type languageRange struct {
	tag     string
	quality float64
}

// GetLocale picks the supported locale the client prefers most, honouring Accept-Language
// quality values. Region subtags are ignored ("pt-BR" selects "pt").
func GetLocale(c *gin.Context) string {
	header := c.GetHeader(AcceptLanguageHeader)
	if header == "" {
		return DefaultLocale
	}

	ranges := parseAcceptLanguage(header)
	translator := GetTranslator()
	for _, r := range ranges {
		if translator.Supports(r.tag) {
			return r.tag
		}
	}
	return DefaultLocale
}

// parseAcceptLanguage returns the base languages of header ordered by descending quality.
// Ranges with q=0 are dropped.
func parseAcceptLanguage(header string) []languageRange {
	parts := strings.Split(header, ",")
	ranges := make([]languageRange, 0, len(parts))
	for _, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), ";")
		tag := strings.ToLower(strings.TrimSpace(fields[0]))
		if tag == "" {
			continue
		}
		if idx := strings.Index(tag, "-"); idx > 0 {
			tag = tag[:idx]
		}

		quality := 1.0
		for _, param := range fields[1:] {
			name, value, ok := strings.Cut(strings.TrimSpace(param), "=")
			if !ok || strings.TrimSpace(name) != "q" {
				continue
			}
			if q, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				quality = q
			}
		}
		if quality <= 0 {
			continue
		}
		ranges = append(ranges, languageRange{tag: tag, quality: quality})
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].quality > ranges[j].quality
	})
	return ranges
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":         "Invalid request",
			"error.invalid_request_body":    "Invalid request body",
			"error.internal_error":          "An unexpected error occurred",
			"error.unauthorized":            "Unauthorized",
			"error.api_key_required":        "API key is required",
			"error.invalid_api_key":         "Invalid API key",
			"error.forbidden":               "Forbidden",
			"error.not_found":               "Not found",
			"error.rate_limit_exceeded":     "Too many requests, please try again later",
			"error.conflict":                "Conflict",
			"error.timeout":                 "Request timed out",
			"error.catalog_unavailable":     "Package catalog is unavailable",
			"error.catalog_admin_disabled":  "Catalog administration is not enabled",
			"error.package_type_not_found":  "Package type not found",
			"error.package_type_exists":     "A package type with this name already exists at the location",
			"error.invalid_package_type_id": "Invalid package type id",
			"error.idempotency_key_reused":  "Idempotency key was already used with a different request body",
			"error.idempotency_in_progress": "A request with this idempotency key is still being processed",
		},
		"pt": {
			"error.invalid_request":         "Requisição inválida",
			"error.invalid_request_body":    "Corpo da requisição inválido",
			"error.internal_error":          "Ocorreu um erro inesperado",
			"error.unauthorized":            "Não autorizado",
			"error.api_key_required":        "Chave de API é obrigatória",
			"error.invalid_api_key":         "Chave de API inválida",
			"error.forbidden":               "Proibido",
			"error.not_found":               "Não encontrado",
			"error.rate_limit_exceeded":     "Muitas requisições, tente novamente mais tarde",
			"error.conflict":                "Conflito",
			"error.timeout":                 "Tempo limite da requisição esgotado",
			"error.catalog_unavailable":     "Catálogo de embalagens indisponível",
			"error.catalog_admin_disabled":  "A administração do catálogo não está habilitada",
			"error.package_type_not_found":  "Tipo de embalagem não encontrado",
			"error.package_type_exists":     "Já existe um tipo de embalagem com este nome no local",
			"error.invalid_package_type_id": "Identificador de tipo de embalagem inválido",
			"error.idempotency_key_reused":  "A chave de idempotência já foi usada com outro corpo de requisição",
			"error.idempotency_in_progress": "Uma requisição com esta chave de idempotência ainda está em processamento",
		},
		"nl": {
			"error.invalid_request":         "Ongeldig verzoek",
			"error.invalid_request_body":    "Ongeldige aanvraag body",
			"error.internal_error":          "Er is een onverwachte fout opgetreden",
			"error.unauthorized":            "Niet geautoriseerd",
			"error.api_key_required":        "API-sleutel is vereist",
			"error.invalid_api_key":         "Ongeldige API-sleutel",
			"error.forbidden":               "Verboden",
			"error.not_found":               "Niet gevonden",
			"error.rate_limit_exceeded":     "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":                "Conflict",
			"error.timeout":                 "Time-out van het verzoek",
			"error.catalog_unavailable":     "Verpakkingscatalogus is niet beschikbaar",
			"error.catalog_admin_disabled":  "Catalogusbeheer is niet ingeschakeld",
			"error.package_type_not_found":  "Verpakkingstype niet gevonden",
			"error.package_type_exists":     "Er bestaat al een verpakkingstype met deze naam op de locatie",
			"error.invalid_package_type_id": "Ongeldige verpakkingstype-id",
			"error.idempotency_key_reused":  "De idempotentiesleutel is al gebruikt met een andere aanvraag body",
			"error.idempotency_in_progress": "Een verzoek met deze idempotentiesleutel wordt nog verwerkt",
		},
	}
}
