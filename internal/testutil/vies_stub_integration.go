//go:build integration

package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// VIESStub — фейковый SOAP-сервис checkVat.
// Номера из Known подтверждаются (значение — имя компании), Faults отвечают SOAP fault,
// остальные — valid=false.
type VIESStub struct {
	*httptest.Server
	Known  map[string]string
	Faults map[string]string
	calls  atomic.Int64
}

// Calls — число обращений к заглушке.
func (s *VIESStub) Calls() int64 { return s.calls.Load() }

// StartVIESStub — поднимает заглушку и закрывает её по окончании теста.
func StartVIESStub(t *testing.T, known, faults map[string]string) *VIESStub {
	t.Helper()
	stub := &VIESStub{Known: known, Faults: faults}
	stub.Server = httptest.NewServer(http.HandlerFunc(stub.serve))
	t.Cleanup(stub.Close)
	return stub
}

func (s *VIESStub) serve(w http.ResponseWriter, r *http.Request) {
	s.calls.Add(1)

	raw, _ := io.ReadAll(r.Body)
	req := string(raw)

	cc := between(req, "<urn:countryCode>", "</urn:countryCode>")
	num := between(req, "<urn:vatNumber>", "</urn:vatNumber>")
	vat := cc + num

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	if code, ok := s.Faults[vat]; ok {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/"><env:Body>`+
			`<env:Fault><faultcode>env:Server</faultcode><faultstring>%s</faultstring></env:Fault>`+
			`</env:Body></env:Envelope>`, code)
		return
	}

	name, valid := s.Known[vat]
	fmt.Fprintf(w, `<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/"><env:Body>`+
		`<ns2:checkVatResponse xmlns:ns2="urn:ec.europa.eu:taxud:vies:services:checkVat:types">`+
		`<ns2:countryCode>%s</ns2:countryCode><ns2:vatNumber>%s</ns2:vatNumber>`+
		`<ns2:valid>%t</ns2:valid><ns2:name>%s</ns2:name><ns2:address>Main St 1</ns2:address>`+
		`</ns2:checkVatResponse></env:Body></env:Envelope>`, cc, num, valid, name)
}

func between(s, open, closeTag string) string {
	i := strings.Index(s, open)
	if i < 0 {
		return ""
	}
	s = s[i+len(open):]
	j := strings.Index(s, closeTag)
	if j < 0 {
		return ""
	}
	return s[:j]
}
