package academia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"academia-backend/lib/telemetry"
	"academia-backend/lib/timezone"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/academia")

var ErrLoginFailed = errors.New("login failed")
var ErrCaptchaRequired = errors.New("captcha required")

// the signin endpoints live under a Zoho accounts prefix specific to
// the university's tenant
const signinPrefix = "/accounts/p/40-10002227248/signin/v2"
const signinServiceUrl = "https://academia.srmist.edu.in/portal/academia-academic-services/redirectFromLogin"

// the lookup and password endpoints reject requests without a csrf
// token matching the iamcsr cookie; these values are not session-bound
const lookupCsrf = "3dea6395-0540-44ea-8de7-544256dd7549"
const passwordCsrf = "fae2d8fa-e5a1-4cb0-a5ee-cc40af87e89f"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

func NewClient(baseUrl string) (*Client, error) {
	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsed.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/academia/http")

	return &Client{
		BaseUrl: parsed,
		Http:    client,
	}, nil
}

// Lookup is the identity resolved for a username by the signin lookup
// endpoint; its fields feed the password step.
type Lookup struct {
	Identifier string `json:"identifier"`
	Digest     string `json:"digest"`
}

type lookupResponse struct {
	StatusCode int     `json:"status_code"`
	Message    string  `json:"message"`
	Lookup     *Lookup `json:"lookup"`
}

// LookupUser resolves a portal username (email) to the identifier and
// digest required by the password step.
func (c *Client) LookupUser(ctx context.Context, username string) (Lookup, error) {
	ctx, span := tracer.Start(ctx, "LookupUser")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/x-www-form-urlencoded;charset=UTF-8").
		SetHeader("x-zcsrf-token", "iamcsrcoo="+lookupCsrf).
		SetCookie(&http.Cookie{Name: "iamcsr", Value: lookupCsrf}).
		SetFormData(map[string]string{
			"mode":             "primary",
			"cli_time":         fmt.Sprint(timezone.Now().UnixMilli()),
			"servicename":      "ZohoCreator",
			"service_language": "en",
			"serviceurl":       signinServiceUrl,
		}).
		Post(fmt.Sprintf("%s/lookup/%s", signinPrefix, url.PathEscape(username)))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Lookup{}, err
	}

	var body lookupResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Lookup{}, err
	}
	if body.Lookup == nil {
		span.SetStatus(codes.Error, body.Message)
		return Lookup{}, fmt.Errorf("%w: %s", ErrLoginFailed, body.Message)
	}
	return *body.Lookup, nil
}

type passwordResponse struct {
	StatusCode       int    `json:"status_code"`
	LocalizedMessage string `json:"localized_message"`
	Cdigest          string `json:"cdigest"`
}

// ValidatePassword completes the signin flow and returns the session
// cookie header to attach to every scraping request.
func (c *Client) ValidatePassword(ctx context.Context, lookup Lookup, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "ValidatePassword")
	defer span.End()

	payload, err := json.Marshal(map[string]any{
		"passwordauth": map[string]string{"password": password},
	})
	if err != nil {
		return "", err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/json").
		SetHeader("x-zcsrf-token", "iamcsrcoo="+passwordCsrf).
		SetCookie(&http.Cookie{Name: "iamcsr", Value: passwordCsrf}).
		SetQueryParams(map[string]string{
			"digest":           lookup.Digest,
			"cli_time":         fmt.Sprint(timezone.Now().UnixMilli()),
			"servicename":      "ZohoCreator",
			"service_language": "en",
			"serviceurl":       signinServiceUrl,
		}).
		SetBody(payload).
		Post(fmt.Sprintf("%s/primary/%s/password", signinPrefix, url.PathEscape(lookup.Identifier)))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	var body passwordResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if body.StatusCode != 201 {
		if strings.Contains(strings.ToLower(body.LocalizedMessage), "captcha") {
			span.SetStatus(codes.Error, "captcha required")
			return "", ErrCaptchaRequired
		}
		span.SetStatus(codes.Error, body.LocalizedMessage)
		return "", fmt.Errorf("%w: %s", ErrLoginFailed, body.LocalizedMessage)
	}

	cookies := extractSessionCookies(res.Header().Values("Set-Cookie"))
	if cookies == "" {
		span.SetStatus(codes.Error, "no session cookies in response")
		return "", fmt.Errorf("%w: no session cookies in response", ErrLoginFailed)
	}
	return cookies, nil
}

// extractSessionCookies joins the name=value pairs of every Set-Cookie
// header into a single cookie header, skipping cookies being cleared.
func extractSessionCookies(headers []string) string {
	var pairs []string
	for _, header := range headers {
		pair := strings.TrimSpace(strings.Split(header, ";")[0])
		if pair == "" || strings.HasSuffix(pair, "=") {
			continue
		}
		pairs = append(pairs, pair)
	}
	return strings.Join(pairs, "; ")
}

// FetchPage retrieves a portal page body using a previously obtained
// session cookie header.
func (c *Client) FetchPage(ctx context.Context, path string, sessionCookies string) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchPage")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("accept", "*/*").
		SetHeader("x-requested-with", "XMLHttpRequest").
		SetHeader("cookie", sessionCookies).
		Get(path)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	if res.StatusCode() >= 400 {
		err := fmt.Errorf("portal returned status %d", res.StatusCode())
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return res.String(), nil
}
