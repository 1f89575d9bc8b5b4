package oneid

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"qavat/internal/pkg/apperr"
)

// Client — OAuth-клиент OneID (sso.egov.uz). Все сбои заворачиваются
// в ExternalError("one_id"), детали наружу не уходят.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	redirectURI  string
	scope        string
	http         *http.Client
}

func NewClient(baseURL, clientID, clientSecret, redirectURI, scope string) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		scope:        scope,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL — адрес, на который фронт отправляет пользователя за кодом.
func (c *Client) AuthURL(state string) string {
	q := url.Values{}
	q.Set("response_type", "one_code")
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("scope", c.scope)
	q.Set("state", state)
	return c.baseURL + "?" + q.Encode()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// UserInfo — профиль, который OneID отдаёт по access-токену.
type UserInfo struct {
	PIN        string `json:"pin"`
	UserID     string `json:"user_id"`
	FirstName  string `json:"first_name"`
	SurName    string `json:"sur_name"`
	MidName    string `json:"mid_name"`
	BirthDate  string `json:"birth_date"`
	PassportNo string `json:"pport_no"`
	LegalInfo  []struct {
		TIN string `json:"tin"`
	} `json:"legal_info"`
}

func (u *UserInfo) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.SurName, u.FirstName, u.MidName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func (c *Client) post(ctx context.Context, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return apperr.External("one_id", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.External("one_id", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperr.External("one_id", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.External("one_id", err)
	}
	return nil
}

// ExchangeCode меняет одноразовый код на access-токен.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "one_authorization_code")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", c.redirectURI)
	form.Set("code", code)

	var tok tokenResponse
	if err := c.post(ctx, form, &tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", apperr.External("one_id", fmt.Errorf("empty access_token in response"))
	}
	return tok.AccessToken, nil
}

func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	form := url.Values{}
	form.Set("grant_type", "one_access_token_identify")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("access_token", accessToken)
	form.Set("scope", c.scope)

	var info UserInfo
	if err := c.post(ctx, form, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) Logout(ctx context.Context, accessToken string) error {
	form := url.Values{}
	form.Set("grant_type", "one_log_out")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("access_token", accessToken)
	form.Set("scope", c.scope)

	return c.post(ctx, form, nil)
}
