package eimzo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"qavat/internal/pkg/apperr"
)

// OID поля ИНН в subjectNameFieldMap сертификата.
const subjectTINField = "1.2.860.3.16.1.1"

// Client говорит с E-IMZO backend'ом: туда уходит base64-подписанный
// challenge, обратно — статус проверки и сертификат подписанта.
// Все сбои транспорта заворачиваются в ExternalError("e_imzo").
type Client struct {
	authURL string
	realIP  string
	host    string
	http    *http.Client
}

func NewClient(authURL, realIP, host string) *Client {
	return &Client{
		authURL: authURL,
		realIP:  realIP,
		host:    host,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type CertInfo struct {
	SerialNumber string            `json:"serialNumber"`
	Subject      map[string]string `json:"subjectNameFieldMap"`
}

func (c *CertInfo) TIN() string      { return c.Subject[subjectTINField] }
func (c *CertInfo) FullName() string { return c.Subject["CN"] }
func (c *CertInfo) Email() string    { return c.Subject["E"] }

// VerifyResult — ответ backend'а: 1 — подпись прошла, отрицательные
// коды расшифровываются в rejectReasons.
type VerifyResult struct {
	Status int      `json:"status"`
	Cert   CertInfo `json:"cert"`
}

func (c *Client) Verify(ctx context.Context, signedData string) (*VerifyResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(signedData))
	if err != nil {
		return nil, apperr.External("e_imzo", err)
	}
	req.Header.Set("Content-Type", "text/plain")
	if c.realIP != "" {
		req.Header.Set("X-Real-IP", c.realIP)
	}
	if c.host != "" {
		req.Host = c.host
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.External("e_imzo", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.External("e_imzo", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var out VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperr.External("e_imzo", err)
	}
	return &out, nil
}
