package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger/backend/internal/router"
)

// Request executes an HTTP request against a fresh router instance and
// returns the response recorder.
//
// The body can be a string, which is sent as-is, or any other type, which
// is marshaled to JSON before sending.
func Request(t *testing.T, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteStr []byte
	var err error

	if body != nil {
		if reflect.TypeOf(body).Kind() == reflect.String {
			byteStr = []byte(body.(string))
		} else {
			byteStr, err = json.Marshal(body)
			if err != nil {
				require.FailNow(t, "Request body could not be marshaled", err)
			}
		}
	}

	base, err := url.Parse("http://example.com")
	require.Nil(t, err)

	engine, teardown, err := router.Config(base)
	defer teardown()
	require.Nil(t, err, "Error on router initialization")

	router.AttachRoutes(engine.Group("/"))

	recorder := httptest.NewRecorder()
	request, err := http.NewRequest(method, reqURL, bytes.NewReader(byteStr))
	require.Nil(t, err)

	for _, headerMap := range headers {
		for header, value := range headerMap {
			request.Header.Set(header, value)
		}
	}

	engine.ServeHTTP(recorder, request)

	return *recorder
}

// DecodeResponse decodes a recorded response body into the target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		require.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}

// AssertHTTPStatus verifies that the response has one of the expected status codes.
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	assert.Contains(t, expectedStatus, r.Code, "Status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}
