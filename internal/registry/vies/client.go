// Пакет vies — адаптер реестра плательщиков НДС ЕС (VIES, SOAP checkVat).
package vies

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/vatcheck/internal/domain"
	"github.com/Gunvolt24/vatcheck/internal/ports"
)

const (
	DefaultURL            = "https://ec.europa.eu/taxation_customs/vies/services/checkVatService"
	DefaultConnectTimeout = 3 * time.Second
	DefaultTimeout        = 30 * time.Second

	// Коды ошибок адаптера (коды VIES приходят в faultstring как есть).
	CodeHTTP      = "HTTP"
	CodeDecode    = "DECODE"
	CodeTransport = "TRANSPORT"

	maxBodySize = 1 << 20
)

// Проверка, что Client удовлетворяет интерфейсу RegistryClient.
var _ ports.RegistryClient = (*Client)(nil)

// Config — параметры подключения к VIES.
type Config struct {
	URL            string
	ConnectTimeout time.Duration // установка соединения
	Timeout        time.Duration // весь запрос целиком
}

// Client — SOAP-клиент VIES. Каждый вызов открывает и закрывает своё соединение.
type Client struct {
	url  string
	http *http.Client
}

// NewClient — конструктор; пустые поля конфигурации заменяются значениями по умолчанию.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = DefaultURL
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		DisableKeepAlives:   true,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
	}

	return &Client{
		url:  cfg.URL,
		http: &http.Client{Transport: transport, Timeout: cfg.Timeout},
	}
}

type checkVatRequest struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	SoapNS  string   `xml:"xmlns:soapenv,attr"`
	TypesNS string   `xml:"xmlns:urn,attr"`
	Body    struct {
		CheckVat struct {
			CountryCode string `xml:"urn:countryCode"`
			VatNumber   string `xml:"urn:vatNumber"`
		} `xml:"urn:checkVat"`
	} `xml:"soapenv:Body"`
}

type envelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Response *checkVatResponse `xml:"checkVatResponse"`
		Fault    *soapFault        `xml:"Fault"`
	} `xml:"Body"`
}

type checkVatResponse struct {
	CountryCode string `xml:"countryCode"`
	VatNumber   string `xml:"vatNumber"`
	Valid       bool   `xml:"valid"`
	Name        string `xml:"name"`
	Address     string `xml:"address"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

// CheckRegistration — один запрос checkVat. Таймауты → domain.ErrRegistryTimeout, прочее → *domain.RegistryFault.
func (c *Client) CheckRegistration(ctx context.Context, countryCode, localNumber string) (domain.RegistryResponse, error) {
	payload, err := buildRequest(countryCode, localNumber)
	if err != nil {
		return domain.RegistryResponse{}, &domain.RegistryFault{Code: CodeTransport, Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return domain.RegistryResponse{}, &domain.RegistryFault{Code: CodeTransport, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.RegistryResponse{}, classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return domain.RegistryResponse{}, classify(err)
	}

	var env envelope
	decodeErr := xml.Unmarshal(body, &env)

	// SOAP fault приходит с HTTP 500 — проверяем его до статуса.
	if decodeErr == nil && env.Body.Fault != nil {
		// VIES кладёт свой код ошибки (MS_UNAVAILABLE, INVALID_INPUT...) в faultstring;
		// faultcode SOAP (env:Server) остаётся в обёрнутой ошибке.
		f := env.Body.Fault
		text := strings.TrimSpace(f.String)
		return domain.RegistryResponse{}, &domain.RegistryFault{
			Code:    text,
			Message: text,
			Err:     fmt.Errorf("soap fault %s", strings.TrimSpace(f.Code)),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.RegistryResponse{}, &domain.RegistryFault{
			Code:    CodeHTTP,
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}
	if decodeErr != nil {
		return domain.RegistryResponse{}, &domain.RegistryFault{Code: CodeDecode, Message: "decode response", Err: decodeErr}
	}
	if env.Body.Response == nil {
		return domain.RegistryResponse{}, &domain.RegistryFault{Code: CodeDecode, Message: "checkVatResponse is missing"}
	}

	r := env.Body.Response
	return domain.RegistryResponse{
		Valid:   r.Valid,
		Name:    strings.TrimSpace(r.Name),
		Address: strings.TrimSpace(r.Address),
	}, nil
}

func buildRequest(countryCode, localNumber string) ([]byte, error) {
	var r checkVatRequest
	r.SoapNS = "http://schemas.xmlsoap.org/soap/envelope/"
	r.TypesNS = "urn:ec.europa.eu:taxud:vies:services:checkVat:types"
	r.Body.CheckVat.CountryCode = countryCode
	r.Body.CheckVat.VatNumber = localNumber

	out, err := xml.Marshal(r)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// classify — отмена вызывающим пробрасывается как есть (это не ответ реестра),
// сетевой таймаут или истёкший дедлайн → ErrRegistryTimeout, иначе TRANSPORT.
func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrRegistryTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrRegistryTimeout, err)
	}
	return &domain.RegistryFault{Code: CodeTransport, Message: err.Error(), Err: err}
}
