package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"creatorstudio/internal/infra"
)

type selectResponse struct {
	HasKey bool `json:"has_key"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func main() {
	_ = godotenv.Load()

	var (
		keyFlag  string
		addrFlag string
	)
	flag.StringVar(&keyFlag, "key", "", "Gemini API key (fallbacks to GEMINI_API_KEY)")
	flag.StringVar(&addrFlag, "addr", "http://localhost:8080", "Base URL of a running studio server")
	flag.Parse()

	key := strings.TrimSpace(keyFlag)
	if key == "" {
		key = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "GEMINI API key is required via -key or environment")
		os.Exit(1)
	}

	logger := infra.NewLogger("cli").With().Str("cmd", "geminikey").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := selectKey(ctx, strings.TrimRight(addrFlag, "/"), key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to select gemini api key: %v\n", err)
		os.Exit(1)
	}
	if resp.Error != nil {
		fmt.Fprintf(os.Stderr, "server rejected key: %s\n", resp.Error.Message)
		os.Exit(1)
	}

	logger.Info().Bool("has_key", resp.HasKey).Msg("gemini api key selected")
	fmt.Println("gemini api key selected")
}

func selectKey(ctx context.Context, addr, key string) (*selectResponse, error) {
	body, err := json.Marshal(map[string]string{"api_key": key})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr+"/v1/credentials/select", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var out selectResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", res.StatusCode, err)
	}
	if out.Error == nil && res.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return &out, nil
}
