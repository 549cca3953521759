package notifications

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/imroc/req/v3"
)

// WhatsApp talks to a WhatsApp HTTP gateway. The gateway owns the session and
// the wire protocol; this client only posts outbound payloads.
type WhatsApp struct {
	client   *req.Client
	baseURL  string
	apiToken string
}

func NewWhatsApp(
	baseURL string,
	apiToken string,
	cl *req.Client,
) *WhatsApp {
	return &WhatsApp{
		client:   cl,
		baseURL:  baseURL,
		apiToken: apiToken,
	}
}

func (w *WhatsApp) SendMessage(
	ctx context.Context,
	to string,
	text string,
) error {
	resp, err := w.client.R().
		SetBearerAuthToken(w.apiToken).
		SetBody(map[string]interface{}{
			"to":   to,
			"body": text,
		}).
		SetContext(ctx).
		Post(fmt.Sprintf("%v/message/send-text", w.baseURL))

	if err != nil {
		return err
	}

	if resp.IsErrorState() {
		return fmt.Errorf("unexpected status code: %v and message %v", resp.StatusCode, resp.String())
	}

	return nil
}

func (w *WhatsApp) SendDocument(
	ctx context.Context,
	to string,
	filename string,
	data []byte,
) error {
	resp, err := w.client.R().
		SetBearerAuthToken(w.apiToken).
		SetBody(map[string]interface{}{
			"to":       to,
			"filename": filename,
			"base64":   base64.StdEncoding.EncodeToString(data),
		}).
		SetContext(ctx).
		Post(fmt.Sprintf("%v/message/send-document", w.baseURL))

	if err != nil {
		return err
	}

	if resp.IsErrorState() {
		return fmt.Errorf("unexpected status code: %v and message %v", resp.StatusCode, resp.String())
	}

	return nil
}
