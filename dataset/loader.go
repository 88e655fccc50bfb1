package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Load reads a dataset dump from a local file path or an HTTP(S) URL and
// builds the index.
func Load(pathOrURL string) (*Index, error) {
	raw, err := readSource(pathOrURL)
	if err != nil {
		return nil, err
	}
	return NewIndexFromBytes(raw)
}

// NewIndexFromBytes builds the index from a raw dataset dump. Only
// structural JSON problems are errors; per-trip scalar dirt is preserved
// for the validator.
func NewIndexFromBytes(raw []byte) (*Index, error) {
	var records map[string]RouteRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return newIndex(records), nil
}

func readSource(pathOrURL string) ([]byte, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return fetchHTTP(pathOrURL)
	}
	raw, err := os.ReadFile(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	return raw, nil
}

func fetchHTTP(url string) ([]byte, error) {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: unexpected status %d from %s", resp.StatusCode, url)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read dataset response: %w", err)
	}
	return raw, nil
}
