package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// Client talks to the external automation endpoints. Both calls are
// best-effort: the caller reverts local state and surfaces the error on
// failure, nothing is retried here.
type Client struct {
	campaignURL string
	uploadURL   string
	http        *http.Client
}

func NewClient(campaignURL, uploadURL string) *Client {
	return &Client{
		campaignURL: campaignURL,
		uploadURL:   uploadURL,
		http:        &http.Client{Timeout: defaultTimeout},
	}
}

// The automation endpoints predate this service and keep their original
// field names, company_id travels as "empresa_id".
type campaignSignal struct {
	CompanyID  int64  `json:"empresa_id"`
	CampaignID int64  `json:"campaign_id"`
	Timestamp  string `json:"timestamp"`
}

// SignalCampaign posts a start/resume signal for a campaign. A 2xx with a
// JSON body counts as acknowledged.
func (c *Client) SignalCampaign(ctx context.Context, companyID, campaignID int64) error {
	body, err := json.Marshal(campaignSignal{
		CompanyID:  companyID,
		CampaignID: campaignID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.campaignURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("campaign webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("campaign webhook: status %d", resp.StatusCode)
	}

	var ack map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("campaign webhook: invalid acknowledgement: %w", err)
	}
	return nil
}

type UploadResult struct {
	URL string `json:"url"`
}

// UploadMedia proxies a file to the upload endpoint and returns the public
// URL it responds with.
func (c *Client) UploadMedia(ctx context.Context, userID, companyID int64, filename, contentType string, size int64, file io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"filename":     filename,
		"content_type": contentType,
		"size":         strconv.FormatInt(size, 10),
		"user_id":      strconv.FormatInt(userID, 10),
		"empresa_id":   strconv.FormatInt(companyID, 10),
		"random_key":   uuid.NewString(),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upload webhook: status %d", resp.StatusCode)
	}

	var out UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("upload webhook: invalid response: %w", err)
	}
	if out.URL == "" {
		return nil, fmt.Errorf("upload webhook: empty url in response")
	}
	return &out, nil
}
