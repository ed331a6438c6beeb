package restyutil

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// renders headers in "Key: Value" lines sorted by key
func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range headers[k] {
			lines = append(lines, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return strings.Join(lines, "\n")
}

func formatRequestBody(req *http.Request) string {
	if req == nil || req.GetBody == nil {
		return "<NO BODY>"
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	if body == nil {
		return "<NO BODY>"
	}
	readBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return string(readBody)
}

// 1: request method
// 2: request url
// 3: request headers in ("Key: Value" format)
// 4: request body
const requestInfoTemplate = `---- REQUEST ----

%s %s

%s

%s`

// 1: response status
// 2: final response url (after redirects)
// 3: response headers in ("Key: Value" format)
// 4: response body
const responseInfoTemplate = `

---- RESPONSE ----

%s %s

%s

%s`

func formatHttpRequest(req *resty.Request) string {
	headers := req.Header
	url := req.URL
	if req.RawRequest != nil {
		headers = req.RawRequest.Header
		url = req.RawRequest.URL.String()
	}
	return fmt.Sprintf(
		requestInfoTemplate,
		req.Method, url,
		formatHeaders(headers),
		formatRequestBody(req.RawRequest),
	)
}

func formatHttpMessage(res *resty.Response) string {
	responseUrl := res.Request.URL
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		responseUrl = res.RawResponse.Request.URL.String()
	}

	return formatHttpRequest(res.Request) + fmt.Sprintf(
		responseInfoTemplate,
		strconv.Itoa(res.StatusCode()), responseUrl,
		formatHeaders(res.Header()),
		res.String(),
	)
}
