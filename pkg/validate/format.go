package validate

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/internal/ports"
)

// Проверка, что FormatChecker удовлетворяет интерфейсу FormatChecker.
var _ ports.FormatChecker = (*FormatChecker)(nil)

// coarsePattern — грубый фильтр: известный префикс + 6..20 букв/цифр.
var coarsePattern = regexp.MustCompile(
	`^(AT|BE|BG|CHE|CY|CZ|DE|DK|EE|EL|ES|EU|FI|FR|GB|GR|HR|HU|IE|IT|LT|LU|LV|MT|NL|NO|PL|PT|RO|RS|SE|SI|SK)[A-Z0-9]{6,20}$`,
)

// rule — альтернативы формата локальной части для страны (достаточно совпадения любой).
func rule(cc domain.CountryCode, bodies ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(bodies))
	for _, body := range bodies {
		res = append(res, regexp.MustCompile(`^`+string(cc)+`(?:`+body+`)$`))
	}
	return res
}

// countryRules — таблица форматов по странам. Собирается один раз при инициализации пакета.
var countryRules = map[domain.CountryCode][]*regexp.Regexp{
	"AT":  rule("AT", `U\d{8}`),
	"BE":  rule("BE", `0?\d{9}`),
	"BG":  rule("BG", `\d{9,10}`),
	"CHE": rule("CHE", `\d{9}(?:MWST)?`),
	"CY":  rule("CY", `[0-59]\d{7}[A-Z]`),
	"CZ":  rule("CZ", `\d{8,10}(?:\d{3})?`),
	"DE":  rule("DE", `[1-9]\d{8}`),
	"DK":  rule("DK", `\d{8}`),
	"EE":  rule("EE", `10\d{7}`),
	"EL":  rule("EL", `\d{9}`),
	"ES": rule("ES",
		`[A-Z]\d{8}`,
		`[A-HN-SW]\d{7}[A-J]`,
		`[0-9YZ]\d{7}[A-Z]`,
		`[KLMX]\d{7}[A-Z]`,
	),
	"EU": rule("EU", `\d{9}`),
	"FI": rule("FI", `\d{8}`),
	"FR": rule("FR",
		`\d{11}`,
		`[A-HJ-NP-Z]\d{10}`,
		`\d[A-HJ-NP-Z]\d{9}`,
		`[A-HJ-NP-Z]{2}\d{9}`,
	),
	// GD/HA (госорганы и здравоохранение) короче грубого фильтра и на практике не проходят.
	"GB": rule("GB",
		`\d{9}`,
		`\d{12}`,
		`GD\d{3}`,
		`HA\d{3}`,
	),
	"GR": rule("GR", `\d{8,9}`),
	"HR": rule("HR", `\d{11}`),
	"HU": rule("HU", `\d{8}`),
	"IE": rule("IE",
		`\d{7}[A-W]`,
		`[7-9][A-Z]\d{5}[A-W]`,
		`\d{7}[A-W][AH]`,
	),
	"IT": rule("IT", `\d{11}`),
	"LT": rule("LT", `\d{9}|\d{12}`),
	"LU": rule("LU", `\d{8}`),
	"LV": rule("LV", `\d{11}`),
	"MT": rule("MT", `[1-9]\d{7}`),
	"NL": rule("NL", `\d{9}B\d{2}`),
	"NO": rule("NO", `\d{9}`),
	"PL": rule("PL", `\d{10}`),
	"PT": rule("PT", `\d{9}`),
	"RO": rule("RO", `[1-9]\d{1,9}`),
	"RS": rule("RS", `\d{9}`),
	"SE": rule("SE", `\d{10}01`),
	"SI": rule("SI", `[1-9]\d{7}`),
	"SK": rule("SK", `[1-9]\d[2-46-9]\d{7}`),
}

// FormatChecker — синтаксическая проверка номера НДС. Без состояния, безопасен для конкурентного использования.
type FormatChecker struct{}

// NewFormatChecker — конструктор FormatChecker.
func NewFormatChecker() *FormatChecker { return &FormatChecker{} }

// Check — см. IsFormatValid.
func (*FormatChecker) Check(vatNumber string) bool { return IsFormatValid(vatNumber) }

// Normalize — верхний регистр и удаление пробельных символов.
func Normalize(vatNumber string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, vatNumber)
}

// CountryOf — префикс страны нормализованного номера. Трёхбуквенный префикс проверяется первым.
func CountryOf(vatNumber string) (domain.CountryCode, bool) {
	if len(vatNumber) >= 3 {
		if _, ok := countryRules[domain.CountryCode(vatNumber[:3])]; ok {
			return domain.CountryCode(vatNumber[:3]), true
		}
	}
	if len(vatNumber) >= 2 {
		if _, ok := countryRules[domain.CountryCode(vatNumber[:2])]; ok {
			return domain.CountryCode(vatNumber[:2]), true
		}
	}
	return "", false
}

// IsFormatValid — проверяет номер по грубому фильтру и правилу страны.
// Любая неподходящая строка (в т.ч. неизвестная страна) даёт false.
func IsFormatValid(vatNumber string) bool {
	vat := Normalize(vatNumber)
	if !coarsePattern.MatchString(vat) {
		return false
	}

	cc, ok := CountryOf(vat)
	if !ok {
		return false
	}
	for _, re := range countryRules[cc] {
		if re.MatchString(vat) {
			return true
		}
	}
	return false
}

// SupportedCountries — отсортированный список поддерживаемых префиксов.
func SupportedCountries() []domain.CountryCode {
	res := make([]domain.CountryCode, 0, len(countryRules))
	for cc := range countryRules {
		res = append(res, cc)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Rules — шаблоны страны (для диагностики и тестов); nil для неизвестной страны.
func Rules(cc domain.CountryCode) []string {
	rules := countryRules[cc]
	if rules == nil {
		return nil
	}
	res := make([]string, 0, len(rules))
	for _, re := range rules {
		res = append(res, re.String())
	}
	return res
}
