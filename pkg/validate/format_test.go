package validate_test

import (
	"testing"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/pkg/validate"
)

// Минимальные номера правильной формы и их «испорченные» варианты (одна позиция нарушает правило).
var formatSamples = map[domain.CountryCode]struct {
	valid   []string
	invalid []string
}{
	"AT":  {[]string{"ATU12345678"}, []string{"ATX12345678", "ATU1234567"}},
	"BE":  {[]string{"BE0123456789", "BE123456789"}, []string{"BE12345678A", "BE01234567890"}},
	"BG":  {[]string{"BG123456789", "BG1234567890"}, []string{"BG12345678A"}},
	"CHE": {[]string{"CHE123456789", "CHE123456789MWST"}, []string{"CHE12345678X", "CHE123456789TVA"}},
	"CY":  {[]string{"CY12345678L", "CY92345678L"}, []string{"CY62345678L", "CY123456789"}},
	"CZ":  {[]string{"CZ12345678", "CZ1234567890", "CZ1234567890123"}, []string{"CZ1234567", "CZ12345678A"}},
	"DE":  {[]string{"DE123456789"}, []string{"DE023456789", "DE1234567890"}},
	"DK":  {[]string{"DK12345678"}, []string{"DK1234567A"}},
	"EE":  {[]string{"EE101234567"}, []string{"EE201234567"}},
	"EL":  {[]string{"EL123456789"}, []string{"EL12345678A"}},
	"ES": {
		[]string{"ESA12345678", "ESA1234567J", "ES12345678Z", "ESX1234567Z"},
		[]string{"ES123456789", "ESX12345678A"},
	},
	"EU": {[]string{"EU123456789"}, []string{"EU12345678A"}},
	"FI": {[]string{"FI12345678"}, []string{"FI1234567A"}},
	"FR": {
		[]string{"FR12345678901", "FRA1234567890", "FR1A123456789", "FRAB123456789"},
		[]string{"FRI1234567890", "FR1O123456789", "FR1234567890"},
	},
	"GB": {[]string{"GB123456789", "GB123456789012"}, []string{"GB1234567890", "GB12345678A"}},
	"GR": {[]string{"GR12345678", "GR123456789"}, []string{"GR1234567A"}},
	"HR": {[]string{"HR12345678901"}, []string{"HR1234567890A"}},
	"HU": {[]string{"HU12345678"}, []string{"HU1234567A"}},
	"IE": {
		[]string{"IE1234567T", "IE8Z49289F", "IE1234567WA"},
		[]string{"IE1234567X", "IE6Z49289F", "IE1234567WB"},
	},
	"IT": {[]string{"IT12345678901"}, []string{"IT1234567890A"}},
	"LT": {[]string{"LT123456789", "LT123456789012"}, []string{"LT1234567890"}},
	"LU": {[]string{"LU12345678"}, []string{"LU1234567A"}},
	"LV": {[]string{"LV12345678901"}, []string{"LV1234567890A"}},
	"MT": {[]string{"MT12345678"}, []string{"MT02345678"}},
	"NL": {[]string{"NL123456789B01"}, []string{"NL123456789A01", "NL123456789B0A", "NL123456789"}},
	"NO": {[]string{"NO123456789"}, []string{"NO12345678A"}},
	"PL": {[]string{"PL1234567890"}, []string{"PL123456789A"}},
	"PT": {[]string{"PT123456789"}, []string{"PT12345678A"}},
	"RO": {[]string{"RO123456", "RO1234567890"}, []string{"RO012345", "RO12345678901"}},
	"RS": {[]string{"RS123456789"}, []string{"RS12345678A"}},
	"SE": {[]string{"SE123456789001"}, []string{"SE123456789002", "SE12345678901"}},
	"SI": {[]string{"SI12345678"}, []string{"SI02345678"}},
	"SK": {[]string{"SK1234567890"}, []string{"SK1252345678", "SK0234567890"}},
}

func TestIsFormatValid_PerCountry(t *testing.T) {
	t.Parallel()

	for cc, s := range formatSamples {
		cc, s := cc, s
		t.Run(string(cc), func(t *testing.T) {
			t.Parallel()
			for _, vat := range s.valid {
				if !validate.IsFormatValid(vat) {
					t.Errorf("IsFormatValid(%q) = false, want true (rules=%v)", vat, validate.Rules(cc))
				}
			}
			for _, vat := range s.invalid {
				if validate.IsFormatValid(vat) {
					t.Errorf("IsFormatValid(%q) = true, want false (rules=%v)", vat, validate.Rules(cc))
				}
			}
		})
	}
}

func TestIsFormatValid_EveryCountryHasSamples(t *testing.T) {
	t.Parallel()

	for _, cc := range validate.SupportedCountries() {
		if _, ok := formatSamples[cc]; !ok {
			t.Errorf("no format samples for %s", cc)
		}
	}
}

func TestIsFormatValid_CaseInsensitive(t *testing.T) {
	t.Parallel()

	lower := validate.IsFormatValid("nl123456789b01")
	upper := validate.IsFormatValid("NL123456789B01")
	if lower != upper || !upper {
		t.Fatalf("lower=%v upper=%v, want both true", lower, upper)
	}
	if validate.IsFormatValid("atu1234567") != validate.IsFormatValid("ATU1234567") {
		t.Fatalf("case must not change the verdict for invalid numbers")
	}
}

func TestIsFormatValid_StripsWhitespace(t *testing.T) {
	t.Parallel()

	if !validate.IsFormatValid(" NL 123 456 789 B01\t") {
		t.Fatalf("whitespace must be removed before the check")
	}
}

func TestIsFormatValid_RejectsGarbage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"unsupported country", "XX123456789"},
		{"iso switzerland", "CH123456789"},
		{"empty", ""},
		{"prefix only", "NL"},
		{"too short body", "DK12345"},
		{"too long body", "NL123456789012345678901"},
		{"punctuation", "NL123456789.B01"},
		{"non latin", "NL12345678ЖB01"},
		{"gb short shapes never pass the coarse filter", "GBGD123"},
		{"gb health", "GBHA123"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if validate.IsFormatValid(tt.in) {
				t.Fatalf("IsFormatValid(%q) = true, want false", tt.in)
			}
		})
	}
}

func TestFormatChecker_Check(t *testing.T) {
	t.Parallel()

	c := validate.NewFormatChecker()
	if !c.Check("DE123456789") || c.Check("DE012345678") {
		t.Fatalf("FormatChecker.Check must delegate to IsFormatValid")
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	if got := validate.Normalize(" fr 12 345\n678901 "); got != "FR12345678901" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestCountryOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   domain.CountryCode
		wantOK bool
	}{
		{"CHE123456789", "CHE", true},
		{"NL123456789B01", "NL", true},
		{"EL123456789", "EL", true},
		{"XX123", "", false},
		{"N", "", false},
	}
	for _, tt := range tests {
		got, ok := validate.CountryOf(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CountryOf(%q) = %q,%v; want %q,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSupportedCountries(t *testing.T) {
	t.Parallel()

	got := validate.SupportedCountries()
	if len(got) != 33 {
		t.Fatalf("want 33 supported countries, got %d: %v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("countries must be sorted: %v", got)
		}
	}
	if validate.Rules("XX") != nil {
		t.Fatalf("Rules for unknown country must be nil")
	}
}
