// Package sundhed replays the find-behandler guide of sundhed.dk.
//
// The site has no public api, a search only works on a session that has
// first loaded the guide page and then asked for the additional filters,
// so each flow is:
//
//  1. GET the guide page, which assigns the session cookies and redirects.
//  2. GET the additional filters with the redirected guide url as referer.
//  3. GET the search endpoint with the filters and decode the json.
//
// Each step turns its input into a request, makes it, asserts on the status
// and turns the response into its output. Nothing is retried.
package sundhed
