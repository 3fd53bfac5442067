// Package mailer delivers rendered reports through an HTTP mailer API that
// accepts a JSON form post and answers {"success": bool, "message": string}.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrDisabled is returned by a client with no API URL or access key.
var ErrDisabled = errors.New("mailer disabled")

type Message struct {
	Subject string
	HTML    string
	ReplyTo string
}

type Client struct {
	URL         string
	AccessKey   string
	FromName    string
	GeneratePDF bool
	HTTP        *http.Client
}

func New(url, accessKey, fromName string, generatePDF bool, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		URL:         url,
		AccessKey:   accessKey,
		FromName:    fromName,
		GeneratePDF: generatePDF,
		HTTP:        &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool { return c != nil && c.URL != "" && c.AccessKey != "" }

type payload struct {
	AccessKey   string `json:"access_key"`
	Subject     string `json:"subject"`
	FromName    string `json:"from_name,omitempty"`
	HTML        string `json:"html"`
	ReplyTo     string `json:"replyto,omitempty"`
	GeneratePDF string `json:"generate_pdf,omitempty"`
}

func (c *Client) Send(ctx context.Context, m Message) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	p := payload{
		AccessKey: c.AccessKey,
		Subject:   m.Subject,
		FromName:  c.FromName,
		HTML:      m.HTML,
		ReplyTo:   m.ReplyTo,
	}
	if c.GeneratePDF {
		p.GeneratePDF = "true"
	}
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &out)
	if resp.StatusCode/100 != 2 || !out.Success {
		msg := out.Message
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("mailer: send failed: %s", msg)
	}
	return nil
}
