// Package yolo calls an HTTP inference server hosting a YOLO object-detection
// model. The server receives the image as multipart form data and replies with
// the detected boxes and the model's class-name table.
package yolo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/vbonduro/smartbite/internal/detect"
)

type YOLODetector struct {
	host   string
	model  string
	client *http.Client
}

func NewYOLODetector(host, model string) *YOLODetector {
	return &YOLODetector{
		host:   host,
		model:  model,
		client: &http.Client{},
	}
}

type predictResponse struct {
	Boxes []struct {
		Cls  int     `json:"cls"`
		Conf float64 `json:"conf"`
	} `json:"boxes"`
	Names map[int]string `json:"names"`
}

func (d *YOLODetector) Detect(ctx context.Context, r io.Reader, mimeType string) (*detect.Result, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("model", d.model); err != nil {
		return nil, fmt.Errorf("failed to write model field: %w", err)
	}
	fw, err := mw.CreateFormFile("image", "upload"+extFor(mimeType))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.host+"/predict", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call detector: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close detector response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("detector returned status %d: %s", resp.StatusCode, errBody)
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	res := &detect.Result{
		Boxes: make([]detect.Box, 0, len(pr.Boxes)),
		Names: pr.Names,
	}
	if res.Names == nil {
		res.Names = map[int]string{}
	}
	for _, b := range pr.Boxes {
		res.Boxes = append(res.Boxes, detect.Box{Class: b.Cls, Confidence: b.Conf})
	}
	return res, nil
}

func extFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
