// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gatewayhttp

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/vaultstore/fault"
)

const defaultTimeout = 30 * time.Second

// Client is the single HTTP entry point every gateway endpoint binding
// goes through (spec section 6.1), grounded on util.FetchJSON and
// payment/bitcoin/rpc.go's bitcoinRPC.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.L
}

// New builds a Client against scheme://host:port, matching the
// gateway host/port/scheme triple carried by a mount context (spec
// section 3).
func New(scheme, host string, port int, log *logger.L) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    fmt.Sprintf("%s://%s:%d", scheme, host, port),
		log:        log,
	}
}

// Do issues one HTTP request against path (relative to the client's
// base URL) with the given query parameters, headers, and body, and
// returns the raw response body, status code, and a fault-taxonomy
// error derived from the status code (nil on 2xx). Transport failures
// (connection refused, context cancellation, malformed body) are
// themselves reported as fault.RemoteIOError, matching spec section 7:
// "gateway failures and schema violations raise exceptions."
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, headers map[string]string, body []byte) ([]byte, int, error) {
	fullURL := c.baseURL + path
	if nil != query && len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var bodyReader *bytes.Reader
	if nil != body {
		bodyReader = bytes.NewReader(body)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if nil != err {
		return nil, 0, fault.RemoteIOError(err.Error())
	}
	for name, value := range headers {
		request.Header.Set(name, value)
	}
	if nil != body {
		request.Header.Set("Content-Type", "application/json")
	}

	if nil != c.log {
		c.log.Debugf("gatewayhttp: %s %s", method, fullURL)
	}

	response, err := c.httpClient.Do(request)
	if nil != err {
		return nil, 0, fault.ErrRemoteServiceFailed
	}
	defer response.Body.Close()

	respBody, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return nil, response.StatusCode, fault.ErrMalformedResponse
	}

	if nil != c.log {
		c.log.Tracef("gatewayhttp: status %d, body %s", response.StatusCode, respBody)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return respBody, response.StatusCode, nil
	}

	return respBody, response.StatusCode, statusToError(response.StatusCode, fullURL)
}

// statusToError implements spec section 6's inbound status mapping:
// 400→PERM, 401→INVAL, 403→ACCES, 404→NOENT, >=500→transport exception.
// Any other status not named by the table is treated the same as a
// transport exception, since the protocol defines no other meaning
// for it.
func statusToError(status int, url string) error {
	switch status {
	case http.StatusBadRequest:
		return fault.PermissionError(fmt.Sprintf("gateway returned 400 on %s", url))
	case http.StatusUnauthorized:
		return fault.InvalidError(fmt.Sprintf("gateway returned 401 on %s", url))
	case http.StatusForbidden:
		return fault.AccessError(fmt.Sprintf("gateway returned 403 on %s", url))
	case http.StatusNotFound:
		return fault.NotFoundError(fmt.Sprintf("gateway returned 404 on %s", url))
	default:
		return fault.RemoteIOError(fmt.Sprintf("gateway returned %d on %s", status, url))
	}
}
