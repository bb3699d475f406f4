package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"routemaster/internal/models"
	apperrors "routemaster/internal/pkg/errors"
	"routemaster/internal/session"
)

// Client talks to the remote route server: it obtains a session on
// login and pushes completed route records under that session. It never
// retries; retry policy belongs to the caller.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
}

// loginResponse is the admin-login response body. Anything other than
// login_status "valid" is an authentication failure.
type loginResponse struct {
	LoginStatus string `json:"login_status"`
	SessionID   string `json:"session_id"`
	Message     string `json:"message"`
}

func New(baseURL string, timeout time.Duration, sess *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: sess,
	}
}

// Login exchanges email/password for a session token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return apperrors.Validation("email and password are required")
	}

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin-login", strings.NewReader(form.Encode()))
	if err != nil {
		return apperrors.Network(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Network(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Network(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithField("status", resp.StatusCode).Warn("Login rejected by server")
		return apperrors.Authentication("login failed")
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return apperrors.Authentication("malformed login response")
	}
	if lr.LoginStatus != "valid" || lr.SessionID == "" {
		msg := lr.Message
		if msg == "" {
			msg = "login failed"
		}
		return apperrors.Authentication(msg)
	}

	if err := c.session.Set(lr.SessionID); err != nil {
		return err
	}
	logrus.WithField("email", email).Info("Session established with route server")
	return nil
}

// Send pushes one route record to the save-new-route endpoint with the
// session token in the Authorization header. A 401 clears the local
// session (the session is dead either way) before reporting the
// authentication failure.
func (c *Client) Send(ctx context.Context, record models.RouteRecord) error {
	payload, err := json.Marshal(record.Payload())
	if err != nil {
		return fmt.Errorf("encode route payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/save-new-route", bytes.NewReader(payload))
	if err != nil {
		return apperrors.Network(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("Route sync request failed")
		return apperrors.Network(err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		logrus.WithField("route_id", record.ID).Info("Route synced to server")
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		if err := c.session.Clear(); err != nil {
			logrus.WithError(err).Error("Could not clear rejected session")
		}
		return apperrors.Authentication("session rejected by server, please log in again")
	default:
		logrus.WithFields(logrus.Fields{
			"route_id": record.ID,
			"status":   resp.StatusCode,
		}).Warn("Server rejected route sync")
		return apperrors.Server(resp.StatusCode)
	}
}
