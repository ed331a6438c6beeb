package sundhed

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Bootstrap is what the guide page visit leaves behind besides cookies.
type Bootstrap struct {
	// Referer is the final url of the guide page after redirects.
	Referer string
	// Title is the <title> of the guide page, empty if it could not be read.
	Title string
}

// Result is the search response body exactly as sundhed.dk sent it.
type Result = json.RawMessage

// EstablishSession visits the find-behandler guide page so that the server
// assigns session cookies to this session's jar.
func (s *Session) EstablishSession(ctx context.Context, municipalityId, category string) (Bootstrap, error) {
	ctx, span := tracer.Start(ctx, "session:EstablishSession")
	defer span.End()

	err := validateInput(municipalityId, category)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Bootstrap{}, err
	}

	start := time.Now()
	res, err := s.Http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"MunicipalityId":       municipalityId,
			"Informationskategori": category,
		}).
		Get(guidePath)
	if err != nil {
		err = wrapRequestError(StepBootstrap, err)
		s.client.metrics.record(ctx, StepBootstrap, start, err)
		span.SetStatus(codes.Error, "failed to fetch guide page")
		s.client.tel.ReportBroken(report_session_establish, err)
		return Bootstrap{}, err
	}
	if !res.IsSuccess() {
		err = &HttpError{Step: StepBootstrap, StatusCode: res.StatusCode(), Status: res.Status()}
		s.client.metrics.record(ctx, StepBootstrap, start, err)
		span.SetStatus(codes.Error, err.Error())
		s.client.tel.ReportBroken(report_session_establish, err)
		return Bootstrap{}, err
	}
	s.client.metrics.record(ctx, StepBootstrap, start, nil)

	bootstrap := Bootstrap{
		Referer: res.RawResponse.Request.URL.String(),
		Title:   s.pageTitle(res.Body()),
	}
	span.SetAttributes(attribute.String("sundhed.referer", bootstrap.Referer))
	s.client.tel.ReportDebug("session established", bootstrap.Referer, bootstrap.Title)

	return bootstrap, nil
}

func (s *Session) pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.client.tel.ReportWarning(report_session_bootstrap_title, err)
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// PrimeAdditionalFilters calls the additional filters endpoint the way the
// guide page's scripts do. The response body is discarded.
func (s *Session) PrimeAdditionalFilters(ctx context.Context, referer string) error {
	ctx, span := tracer.Start(ctx, "session:PrimeAdditionalFilters")
	defer span.End()

	start := time.Now()
	res, err := s.Http.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Accept":           acceptJson,
			"X-Requested-With": "XMLHttpRequest",
			"Referer":          referer,
			"Origin":           s.client.origin,
		}).
		Get(additionalFiltersPath)
	if err != nil {
		err = wrapRequestError(StepAdditionalFilters, err)
		s.client.metrics.record(ctx, StepAdditionalFilters, start, err)
		span.SetStatus(codes.Error, "failed to fetch additional filters")
		s.client.tel.ReportBroken(report_session_prime_filters, err)
		return err
	}
	if !res.IsSuccess() {
		err = &HttpError{Step: StepAdditionalFilters, StatusCode: res.StatusCode(), Status: res.Status()}
		s.client.metrics.record(ctx, StepAdditionalFilters, start, err)
		span.SetStatus(codes.Error, err.Error())
		s.client.tel.ReportBroken(report_session_prime_filters, err)
		return err
	}
	s.client.metrics.record(ctx, StepAdditionalFilters, start, nil)

	return nil
}

// Search queries the provider search endpoint with the default filters for
// the given municipality and category.
func (s *Session) Search(ctx context.Context, municipalityId, category string) (Result, error) {
	err := validateInput(municipalityId, category)
	if err != nil {
		return nil, err
	}
	return s.SearchWith(ctx, DefaultSearchParams(municipalityId, category))
}

// SearchWith queries the provider search endpoint with an explicit set of filters.
func (s *Session) SearchWith(ctx context.Context, params SearchParams) (Result, error) {
	ctx, span := tracer.Start(ctx, "session:Search")
	defer span.End()

	start := time.Now()
	res, err := s.Http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params.Values()).
		SetHeaders(map[string]string{
			"Accept":           acceptJson,
			"X-Requested-With": "XMLHttpRequest",
		}).
		Get(searchPath)
	if err != nil {
		err = wrapRequestError(StepSearch, err)
		s.client.metrics.record(ctx, StepSearch, start, err)
		span.SetStatus(codes.Error, "failed to fetch search results")
		s.client.tel.ReportBroken(report_session_search, err)
		return nil, err
	}
	if !res.IsSuccess() {
		err = &HttpError{Step: StepSearch, StatusCode: res.StatusCode(), Status: res.Status()}
		s.client.metrics.record(ctx, StepSearch, start, err)
		span.SetStatus(codes.Error, err.Error())
		s.client.tel.ReportBroken(report_session_search, err)
		return nil, err
	}

	var result Result
	err = json.Unmarshal(res.Body(), &result)
	if err != nil {
		err = &DecodeError{Step: StepSearch, Err: err}
		s.client.metrics.record(ctx, StepSearch, start, err)
		span.SetStatus(codes.Error, "failed to decode search results")
		s.client.tel.ReportBroken(report_session_search, err)
		return nil, err
	}
	s.client.metrics.record(ctx, StepSearch, start, nil)
	span.SetAttributes(attribute.Int("sundhed.response_bytes", len(result)))

	return result, nil
}
