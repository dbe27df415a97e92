package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// viesServer — минимальный SOAP-ответчик: DE123456789 подтверждён, AT* — SOAP fault.
func viesServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")

		if strings.Contains(body, "<urn:countryCode>AT</urn:countryCode>") {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/"><env:Body>`+
				`<env:Fault><faultcode>env:Server</faultcode><faultstring>MS_UNAVAILABLE</faultstring></env:Fault>`+
				`</env:Body></env:Envelope>`)
			return
		}
		valid := strings.Contains(body, "<urn:vatNumber>123456789</urn:vatNumber>")
		fmt.Fprintf(w, `<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/"><env:Body>`+
			`<ns2:checkVatResponse xmlns:ns2="urn:ec.europa.eu:taxud:vies:services:checkVat:types">`+
			`<ns2:countryCode>DE</ns2:countryCode><ns2:vatNumber>123456789</ns2:vatNumber>`+
			`<ns2:valid>%t</ns2:valid><ns2:name>ACME GmbH</ns2:name><ns2:address>Main St 1</ns2:address>`+
			`</ns2:checkVatResponse></env:Body></env:Envelope>`, valid)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}

func decodeLines(t *testing.T, s string) []checkLine {
	t.Helper()
	var out []checkLine
	dec := json.NewDecoder(strings.NewReader(s))
	for dec.More() {
		var l checkLine
		require.NoError(t, dec.Decode(&l))
		out = append(out, l)
	}
	return out
}

func TestFormat_Verdicts(t *testing.T) {
	out, _, err := run(t, "", "format", "nl123456789b01", "CHE-123.456.789 MWST")
	require.Error(t, err) // "-" и "." не допускаются форматом
	require.Equal(t, ExitInvalid, exitCode(err))
	require.Contains(t, out, "NL123456789B01\tvalid\n")

	out, _, err = run(t, "", "format", "DE123456789", "ATU12345678")
	require.NoError(t, err)
	require.Equal(t, "DE123456789\tvalid\nATU12345678\tvalid\n", out)
}

func TestFormat_NoArgs(t *testing.T) {
	_, _, err := run(t, "", "format")
	require.Error(t, err)
	require.Equal(t, -1, exitCode(err))
}

func TestCheck_ConfirmedAndRejected(t *testing.T) {
	srv := viesServer(t)

	out, _, err := run(t, "", "check", "--url", srv.URL, "de 123456789", "DE999999999")
	require.Equal(t, ExitInvalid, exitCode(err))

	lines := decodeLines(t, out)
	require.Len(t, lines, 2)
	require.Equal(t, checkLine{VatNumber: "DE123456789", Valid: true, Strict: true, Name: "ACME GmbH", Address: "Main St 1"}, lines[0])
	require.Equal(t, "DE999999999", lines[1].VatNumber)
	require.False(t, lines[1].Valid)
}

func TestCheck_FormatInvalid_NoRegistry(t *testing.T) {
	// URL недоступен: при обращении к реестру strict-проверка упала бы с кодом 2
	out, _, err := run(t, "", "check", "--url", "http://127.0.0.1:1/vies", "DE12345")
	require.Equal(t, ExitInvalid, exitCode(err))
	lines := decodeLines(t, out)
	require.Len(t, lines, 1)
	require.False(t, lines[0].Valid)
}

func TestCheck_StrictFault_Exit2(t *testing.T) {
	srv := viesServer(t)

	out, _, err := run(t, "", "check", "--url", srv.URL, "ATU12345678", "DE123456789")
	require.Equal(t, ExitFault, exitCode(err))

	lines := decodeLines(t, out)
	require.Len(t, lines, 1, "first fatal fault stops the run")
	require.Equal(t, "MS_UNAVAILABLE", lines[0].Code)
	require.Equal(t, "MS_UNAVAILABLE", lines[0].Error)
	require.False(t, lines[0].Valid)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("stdout closed") }

func TestCheck_StrictFault_WriteErrorReturned(t *testing.T) {
	srv := viesServer(t)

	root := NewRootCmd()
	root.SetOut(failingWriter{})
	root.SetErr(io.Discard)
	root.SetArgs([]string{"check", "--url", srv.URL, "ATU12345678"})

	err := root.ExecuteContext(context.Background())
	require.EqualError(t, err, "stdout closed")
	require.Equal(t, -1, exitCode(err))
}

// Прерывание во время запроса к реестру: номер не объявляется валидным даже в lenient-режиме.
func TestCheck_Lenient_CanceledIsNotValid(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		cancel()
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"check", "--strict=false", "--url", srv.URL, "DE123456789"})

	err := root.ExecuteContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, out.String())
}

func TestCheck_LenientFault_Valid(t *testing.T) {
	srv := viesServer(t)

	out, _, err := run(t, "", "check", "--strict=false", "--url", srv.URL, "ATU12345678")
	require.NoError(t, err)

	lines := decodeLines(t, out)
	require.Len(t, lines, 1)
	require.True(t, lines[0].Valid)
	require.False(t, lines[0].Strict)
	require.Empty(t, lines[0].Name)
}

func TestFile_Stdin_Text(t *testing.T) {
	out, errOut, err := run(t, "nl123456789b01\n\nDE12345\n", "file")
	require.Equal(t, ExitInvalid, exitCode(err))
	require.Equal(t, "NL123456789B01\n", out)
	require.Contains(t, errOut, "1 valid / 1 invalid")
}

func TestFile_JSONL_FromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbers.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"vat_number":"DE123456789"}`+"\n"+`{"vat_number":"ATU12345678","strict":false}`+"\n"), 0o600))

	out, errOut, err := run(t, "", "file", "--in", path)
	require.NoError(t, err)
	require.Equal(t, "DE123456789\nATU12345678\n", out)
	require.Contains(t, errOut, "2 valid / 0 invalid")
}

func TestFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbers.txt")
	require.NoError(t, os.WriteFile(path, []byte("DE123456789\n"), 0o600))

	_, errOut, err := run(t, "", "file", "--in", path, "--format", "xml")
	require.Error(t, err)
	require.Equal(t, -1, exitCode(err))
	require.Contains(t, errOut, "unsupported format")
}
