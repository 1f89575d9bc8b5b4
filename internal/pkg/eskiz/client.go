package eskiz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"qavat/internal/pkg/apperr"
)

const defaultBaseURL = "https://notify.eskiz.uz/api"

// Client — шлюз к SMS-провайдеру Eskiz. Bearer-токен получается при первом
// вызове и переиспользуется; на 401 делается один повторный логин.
type Client struct {
	baseURL  string
	email    string
	password string
	http     *http.Client

	mu    sync.Mutex
	token string
}

func NewClient(email, password string) *Client {
	return &Client{
		baseURL:  defaultBaseURL,
		email:    email,
		password: password,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) login(ctx context.Context) error {
	form := url.Values{}
	form.Set("email", c.email)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return apperr.External("eskiz", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.External("eskiz", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperr.External("eskiz", fmt.Errorf("login failed with status %d", resp.StatusCode))
	}

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return apperr.External("eskiz", err)
	}
	if body.Data.Token == "" {
		return apperr.External("eskiz", fmt.Errorf("login response without token"))
	}

	c.token = body.Data.Token
	return nil
}

// SendSMS отправляет сообщение на номер в формате 998XXXXXXXXX.
func (c *Client) SendSMS(ctx context.Context, phone, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		if err := c.login(ctx); err != nil {
			return err
		}
	}

	status, err := c.send(ctx, phone, message)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		// токен протух
		if err := c.login(ctx); err != nil {
			return err
		}
		status, err = c.send(ctx, phone, message)
		if err != nil {
			return err
		}
	}
	if status != http.StatusOK {
		return apperr.External("eskiz", fmt.Errorf("send failed with status %d", status))
	}
	return nil
}

func (c *Client) send(ctx context.Context, phone, message string) (int, error) {
	payload, err := json.Marshal(map[string]string{
		"mobile_phone": strings.TrimPrefix(phone, "+"),
		"message":      message,
		"from":         "4546",
	})
	if err != nil {
		return 0, apperr.External("eskiz", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/message/sms/send", bytes.NewReader(payload))
	if err != nil {
		return 0, apperr.External("eskiz", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, apperr.External("eskiz", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
