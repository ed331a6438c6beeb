package sundhed

import (
	"context"
	"findbehandler/internal/components/telemetry"
	"findbehandler/lib/restyutil"
	libtelemetry "findbehandler/lib/telemetry"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/publicsuffix"
)

var tracer = otel.Tracer("platforms/sundhed")

const (
	DefaultBaseUrl   = "https://www.sundhed.dk"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	guidePath             = "/borger/guides/find-behandler/"
	additionalFiltersPath = "/api/search/searchadditionalfilters"
	searchPath            = "/app/findbehandlerv2/api/v1/findbehandlerv2/search"

	acceptJson = "application/json, text/plain, */*"
)

const (
	report_session_establish       = "session.establish-session"
	report_session_prime_filters   = "session.prime-additional-filters"
	report_session_search          = "session.search"
	report_client_get_providers    = "client.get-providers"
	report_session_bootstrap_title = "session.bootstrap-title"
	report_client_metrics          = "client.create-metrics"
)

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// per request, defaults to DefaultTimeout
	Timeout time.Duration
	// defaults to DefaultUserAgent
	UserAgent string
	// receives a dump of every HTTP exchange while debug logging is enabled, can be nil
	InstrumentOutput restyutil.InstrumentOutput
}

// Client holds the immutable settings used to reach sundhed.dk. It carries no
// cookies itself, every flow runs on its own Session.
type Client struct {
	BaseUrl *url.URL
	origin  string
	opts    ClientOptions
	tel     telemetry.API
	metrics requestMetrics
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}

	baseUrl, err := url.Parse(strings.TrimRight(opts.BaseUrl, "/"))
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", opts.BaseUrl)
	}

	scoped := telemetry.NewScopedAPI("sundhed", tel)
	return &Client{
		BaseUrl: baseUrl,
		origin:  fmt.Sprintf("%s://%s", baseUrl.Scheme, baseUrl.Host),
		opts:    opts,
		tel:     scoped,
		metrics: newRequestMetrics(otel.Meter("platforms/sundhed"), scoped),
	}, nil
}

// Session is the cookie carrying state of a single flow invocation.
// It must not be shared between concurrent flows.
type Session struct {
	Http   *resty.Client
	client *Client
}

func (c *Client) NewSession() (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(c.BaseUrl.String())
	httpClient.SetTimeout(c.opts.Timeout)
	httpClient.SetCookieJar(jar)
	httpClient.SetHeader("user-agent", c.opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	libtelemetry.InstrumentResty(httpClient, "platforms/sundhed/http")
	telemetry.InstrumentResty(httpClient, c.tel)
	restyutil.InstrumentClient(httpClient, c.opts.InstrumentOutput)

	return &Session{Http: httpClient, client: c}, nil
}

// GetProviders runs bootstrap, filter priming and search on a fresh session
// and returns the search response body.
func (c *Client) GetProviders(ctx context.Context, municipalityId, category string) (Result, error) {
	ctx, span := tracer.Start(ctx, "client:GetProviders")
	defer span.End()
	span.SetAttributes(
		attribute.String("sundhed.municipality_id", municipalityId),
		attribute.String("sundhed.category", category),
	)

	err := validateInput(municipalityId, category)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	session, err := c.NewSession()
	if err != nil {
		span.SetStatus(codes.Error, "failed to create session")
		c.tel.ReportBroken(report_client_get_providers, err)
		return nil, err
	}

	bootstrap, err := session.EstablishSession(ctx, municipalityId, category)
	if err != nil {
		span.SetStatus(codes.Error, "failed to establish session")
		return nil, err
	}
	err = session.PrimeAdditionalFilters(ctx, bootstrap.Referer)
	if err != nil {
		span.SetStatus(codes.Error, "failed to prime additional filters")
		return nil, err
	}
	result, err := session.Search(ctx, municipalityId, category)
	if err != nil {
		span.SetStatus(codes.Error, "failed to search")
		return nil, err
	}
	return result, nil
}
