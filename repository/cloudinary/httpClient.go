package cloudinaryrepo

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Kashh99/closet-backend/util/httpx"
)

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type httpRepo struct {
	cfg    Config
	client *http.Client
}

func NewHTTP(cfg Config) Repo { return &httpRepo{cfg: cfg, client: httpx.Client()} }

func (r *httpRepo) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if r.cfg.CloudName == "" || r.cfg.APIKey == "" || r.cfg.APISecret == "" {
		return "", errors.New("cloudinary credentials not configured")
	}

	ts := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{"timestamp": ts}
	if r.cfg.Folder != "" {
		params["folder"] = r.cfg.Folder
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range params {
		if err := w.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := w.WriteField("api_key", r.cfg.APIKey); err != nil {
		return "", err
	}
	if err := w.WriteField("signature", signParams(params, r.cfg.APISecret)); err != nil {
		return "", err
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + r.cfg.CloudName + "/image/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Status)
	}

	var out struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.SecureURL != "" {
		return out.SecureURL, nil
	}
	if out.URL != "" {
		return out.URL, nil
	}
	return "", errors.New("cloudinary: empty upload url")
}

// signParams builds the signed-upload signature: sha1 over the sorted
// key=value pairs joined with '&', followed by the API secret.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
