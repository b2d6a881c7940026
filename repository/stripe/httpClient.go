package striperepo

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Kashh99/closet-backend/util/httpx"
)

const apiBase = "https://api.stripe.com/v1"

// signatureTolerance bounds how stale a webhook timestamp may be before the
// event is rejected as a possible replay.
const signatureTolerance = 5 * time.Minute

type httpRepo struct {
	apiKey        string
	webhookSecret string
	client        *http.Client
	now           func() time.Time
}

func NewHTTP(apiKey, webhookSecret string) Repo {
	return &httpRepo{
		apiKey:        apiKey,
		webhookSecret: webhookSecret,
		client:        httpx.Client(),
		now:           time.Now,
	}
}

func (r *httpRepo) CreatePaymentIntent(ctx context.Context, req CreateIntentReq) (*CreateIntentResp, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountMinor, 10))
	form.Set("currency", req.Currency)
	form.Set("metadata[bookingId]", strconv.FormatInt(req.BookingID, 10))
	form.Set("metadata[userId]", strconv.FormatInt(req.UserID, 10))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		apiBase+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe create payment intent failed: %s", resp.Status)
	}

	var out struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
		Status       string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("stripe: empty payment intent id")
	}

	return &CreateIntentResp{IntentID: out.ID, ClientSecret: out.ClientSecret, Status: out.Status}, nil
}

// VerifyWebhookSignature implements Stripe's v1 scheme: the header carries
// "t=<unix>,v1=<hex hmac>" pairs and the hmac is SHA-256 over "<t>.<body>".
func (r *httpRepo) VerifyWebhookSignature(sigHeader string, rawBody []byte) error {
	if r.webhookSecret == "" {
		return errors.New("webhook secret not configured")
	}
	ts, sigs, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return err
	}

	at := time.Unix(ts, 0)
	if d := r.now().Sub(at); d > signatureTolerance || d < -signatureTolerance {
		return errors.New("webhook timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(r.webhookSecret))
	mac.Write([]byte(strconv.FormatInt(ts, 10)))
	mac.Write([]byte("."))
	mac.Write(rawBody)
	expected := mac.Sum(nil)

	for _, s := range sigs {
		got, err := hex.DecodeString(s)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, got) {
			return nil
		}
	}
	return errors.New("no matching webhook signature")
}

func parseSignatureHeader(h string) (int64, []string, error) {
	if strings.TrimSpace(h) == "" {
		return 0, nil, errors.New("missing signature header")
	}
	var ts int64 = -1
	var sigs []string
	for _, part := range strings.Split(h, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			n, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, errors.New("malformed signature timestamp")
			}
			ts = n
		case "v1":
			sigs = append(sigs, kv[1])
		}
	}
	if ts < 0 || len(sigs) == 0 {
		return 0, nil, errors.New("malformed signature header")
	}
	return ts, sigs, nil
}
