package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// requestTimeout is a hang guard, not a cancellation contract: a started
// transcription runs to completion unless the engine itself stalls.
const requestTimeout = 120 * time.Second

type whisperClient struct {
	cfg    Config
	client *http.Client
}

func newWhisper(cfg Config) *whisperClient {
	return &whisperClient{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (w *whisperClient) Name() string { return "whisper" }

type whisperResponse struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

func (w *whisperClient) Transcribe(ctx context.Context, audio []byte, format string) (Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio."+format)
	if err != nil {
		return Result{}, err
	}
	if _, err := part.Write(audio); err != nil {
		return Result{}, err
	}

	writer.WriteField("model", w.cfg.Model)
	writer.WriteField("response_format", "json")
	if w.cfg.Language != "" {
		writer.WriteField("language", w.cfg.Language)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.URL, &body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if w.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.cfg.APIKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("engine request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("reading engine response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("engine error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var wr whisperResponse
	if err := json.Unmarshal(respBody, &wr); err != nil {
		return Result{}, fmt.Errorf("engine response parse error: %w", err)
	}

	text := strings.TrimSpace(wr.Text)
	return Result{
		Text:     text,
		NoSpeech: text == "",
		Duration: wr.Duration,
	}, nil
}
