package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

//go:generate mockgen -package mocks -destination mocks/alerter.go . Alerter

const (
	maxErrorBodySize = 64 << 10
	maxContentLen    = 300
	alertTimeout     = 10 * time.Second
)

// Alerter delivers best-effort failure notices. It never fails.
type Alerter interface {
	Notify(ctx context.Context, text string)
}

type PracticumProvider struct {
	endpoint *url.URL
	token    string
	client   *http.Client
	alerter  Alerter

	log *slog.Logger
}

func NewPracticumProvider(endpoint, token string, client *http.Client, alerter Alerter, log *slog.Logger) (*PracticumProvider, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint=%s: %w", endpoint, err)
	}

	return &PracticumProvider{
		endpoint: u,
		token:    token,
		client:   client,
		alerter:  alerter,
		log:      log.With("component", "provider").With("provider", "practicum"),
	}, nil
}

// HomeworkStatuses requests homework statuses changed since fromDate (unix seconds)
// and returns the decoded JSON body as is.
func (p *PracticumProvider) HomeworkStatuses(ctx context.Context, fromDate int64) (any, error) {
	params := url.Values{"from_date": {strconv.FormatInt(fromDate, 10)}}

	u := *p.endpoint
	q := u.Query()
	q.Set("from_date", params.Get("from_date"))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("get homework statuses: %w", err)
		}
		// url.Error embeds the cursor; repeated failures must render the same message.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		p.log.ErrorContext(ctx, "Homework statuses endpoint is unavailable", "endpoint", p.endpoint.String(), "error", err)
		p.alert(ctx, fmt.Sprintf("Сбой в работе программы: Эндпоинт %s недоступен: %v", p.endpoint, err))
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		statusErr := &StatusError{
			Code:    resp.StatusCode,
			Reason:  http.StatusText(resp.StatusCode),
			Params:  params,
			Content: summarizeBody(resp.Header.Get("Content-Type"), body),
		}
		p.log.ErrorContext(ctx, "Unexpected homework statuses response",
			"code", statusErr.Code,
			"reason", statusErr.Reason,
			"params", params.Encode())
		p.alert(ctx, fmt.Sprintf(
			"Ответ сервера не является успешным: request params = %s; http_code = %d; reason = %s; content = %s",
			params.Encode(), statusErr.Code, statusErr.Reason, statusErr.Content))
		return nil, statusErr
	}

	var res any
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return res, nil
}

// alert outlives the request context, which may already be past its deadline.
func (p *PracticumProvider) alert(ctx context.Context, text string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
	defer cancel()

	p.alerter.Notify(ctx, text)
}

// summarizeBody shortens an error body for logs and alerts.
// HTML pages are reduced to their title.
func summarizeBody(contentType string, body []byte) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType != "text/html" {
		return truncate(strings.TrimSpace(string(body)))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return truncate(strings.TrimSpace(string(body)))
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return truncate(title)
	}
	return truncate(strings.Join(strings.Fields(doc.Find("body").Text()), " "))
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxContentLen {
		return s
	}
	return string(r[:maxContentLen]) + "..."
}
