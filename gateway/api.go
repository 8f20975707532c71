// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bitmark-inc/vaultstore/fault"
	"github.com/bitmark-inc/vaultstore/gatewayhttp"
	"github.com/bitmark-inc/vaultstore/inode"
	"github.com/bitmark-inc/vaultstore/schema"
)

func bearerHeader(sessionToken string) map[string]string {
	if "" == sessionToken {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + sessionToken}
}

// decodeAndValidate unmarshals body once into a generic value for
// schema validation and a second time into out, matching spec section
// 7's "schema violations raise exceptions" clause.
func decodeAndValidate(body []byte, shapeName string, out interface{}) error {
	var generic interface{}
	if err := json.Unmarshal(body, &generic); nil != err {
		return fault.ErrMalformedResponse
	}
	if err := schema.Validate(shapeName, generic); nil != err {
		return fault.ErrSchemaViolation
	}
	return json.Unmarshal(body, out)
}

// Ping checks gateway liveness (spec section 6).
func Ping(ctx context.Context, client *gatewayhttp.Client) error {
	_, _, err := client.Do(ctx, http.MethodGet, "/v1/node/ping", nil, nil, nil)
	return err
}

// Auth exchanges a signed JWT for a bearer session token (spec
// section 6, GET /v1/auth).
func Auth(ctx context.Context, client *gatewayhttp.Client, authRequestJWT string) (string, error) {
	query := url.Values{"authRequest": []string{authRequestJWT}}
	body, _, err := client.Do(ctx, http.MethodGet, "/v1/auth", query, nil, nil)
	if nil != err {
		return "", err
	}
	var reply struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.Unmarshal(body, &reply); nil != err {
		return "", fault.ErrMalformedResponse
	}
	return reply.SessionToken, nil
}

// MountSingleReader resolves a mount context by datastore id (spec
// section 4.5, mode 1). HTTP 404 resolves to (nil, nil), matching
// "HTTP 404 ⇒ resolve to null (absent)".
func MountSingleReader(ctx context.Context, client *gatewayhttp.Client, sessionToken, datastoreID string, deviceIDs, devicePubkeys []string) (*MountResponse, error) {
	query := url.Values{
		"device_ids":     []string{strings.Join(deviceIDs, ",")},
		"device_pubkeys": []string{strings.Join(devicePubkeys, ",")},
	}
	body, status, err := client.Do(ctx, http.MethodGet, "/v1/stores/"+datastoreID, query, bearerHeader(sessionToken), nil)
	if http.StatusNotFound == status {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	var reply MountResponse
	if err := json.Unmarshal(body, &reply); nil != err {
		return nil, fault.ErrMalformedResponse
	}
	return &reply, nil
}

// MountMultiReader resolves a mount context by (blockchain id, app
// name) (spec section 4.5, mode 2).
func MountMultiReader(ctx context.Context, client *gatewayhttp.Client, sessionToken, appName, blockchainID string) (*MountResponse, error) {
	query := url.Values{"blockchain_id": []string{blockchainID}}
	body, status, err := client.Do(ctx, http.MethodGet, "/v1/stores/"+appName, query, bearerHeader(sessionToken), nil)
	if http.StatusNotFound == status {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	var reply MountResponse
	if err := json.Unmarshal(body, &reply); nil != err {
		return nil, fault.ErrMalformedResponse
	}
	return &reply, nil
}

// Create POSTs a new datastore and its root page (spec section 4.5).
// When apiPassword is non-empty, authentication uses the
// administrative API-password path with an explicit
// datastore_pubkey query parameter rather than a bearer token.
func Create(ctx context.Context, client *gatewayhttp.Client, sessionToken string, req CreateRequest, dsPubkey, apiPassword string) (*CreateResponse, error) {
	headers := bearerHeader(sessionToken)
	var query url.Values
	if "" != apiPassword {
		headers = map[string]string{"Authorization": "Basic " + apiPassword}
		query = url.Values{"datastore_pubkey": []string{dsPubkey}}
	}

	payload, err := json.Marshal(req)
	if nil != err {
		return nil, fault.ErrMakeCreateRequestFail
	}

	body, _, err := client.Do(ctx, http.MethodPost, "/v1/stores", query, headers, payload)
	if nil != err {
		return nil, err
	}
	var reply CreateResponse
	if err := json.Unmarshal(body, &reply); nil != err {
		return nil, fault.ErrMalformedResponse
	}
	return &reply, nil
}

// Delete DELETEs a datastore using its signed tombstones (spec
// section 4.5).
func Delete(ctx context.Context, client *gatewayhttp.Client, sessionToken string, req DeleteRequest) error {
	payload, err := json.Marshal(req)
	if nil != err {
		return fault.ErrMakeDeleteRequestFail
	}
	_, _, err = client.Do(ctx, http.MethodDelete, "/v1/stores", nil, bearerHeader(sessionToken), payload)
	return err
}

// GetDeviceRoot reads the current device-root envelope for one device
// (spec section 4.7). HTTP 404 surfaces as fault.ErrNotFoundDeviceRoot.
func GetDeviceRoot(ctx context.Context, client *gatewayhttp.Client, sessionToken, datastoreID, thisDeviceID string) (*DeviceRootEnvelope, error) {
	query := url.Values{"this_device_id": []string{thisDeviceID}}
	body, status, err := client.Do(ctx, http.MethodGet, "/v1/stores/"+datastoreID+"/device_roots", query, bearerHeader(sessionToken), nil)
	if http.StatusNotFound == status {
		return nil, fault.ErrNotFoundDeviceRoot
	}
	if nil != err {
		return nil, err
	}
	var reply DeviceRootEnvelope
	if err := json.Unmarshal(body, &reply); nil != err {
		return nil, fault.ErrMalformedResponse
	}
	return &reply, nil
}

// PutDeviceRoot writes a new device-root envelope (spec section 4.7).
// sync, when true, asks the gateway to wait for replication to settle
// before responding.
func PutDeviceRoot(ctx context.Context, client *gatewayhttp.Client, sessionToken, datastoreID string, sync bool, req MutationRequest) error {
	var query url.Values
	if sync {
		query = url.Values{"sync": []string{"true"}}
	}
	payload, err := json.Marshal(req)
	if nil != err {
		return fault.ErrMakeCreateRequestFail
	}
	_, _, err = client.Do(ctx, http.MethodPost, "/v1/stores/"+datastoreID+"/device_roots", query, bearerHeader(sessionToken), payload)
	return err
}

// GetFileHeader fetches and validates one file's entry (spec section
// 4.6).
func GetFileHeader(ctx context.Context, client *gatewayhttp.Client, sessionToken, datastoreID, path, thisDeviceID string) (*inode.FileEntry, error) {
	query := url.Values{"path": []string{path}, "this_device_id": []string{thisDeviceID}}
	body, status, err := client.Do(ctx, http.MethodGet, "/v1/stores/"+datastoreID+"/headers", query, bearerHeader(sessionToken), nil)
	if http.StatusNotFound == status {
		return nil, fault.ErrNotFoundFile
	}
	if nil != err {
		return nil, err
	}
	var entry inode.FileEntry
	if err := decodeAndValidate(body, schema.FileEntry, &entry); nil != err {
		return nil, err
	}
	return &entry, nil
}

// GetFileBytes fetches the raw bytes of one file (spec section 4.6).
func GetFileBytes(ctx context.Context, client *gatewayhttp.Client, sessionToken, datastoreID, path string) ([]byte, error) {
	query := url.Values{"path": []string{path}}
	body, status, err := client.Do(ctx, http.MethodGet, "/v1/stores/"+datastoreID+"/files", query, bearerHeader(sessionToken), nil)
	if http.StatusNotFound == status {
		return nil, fault.ErrNotFoundFile
	}
	if nil != err {
		return nil, err
	}
	return body, nil
}

// ListFiles fetches the full root page (spec section 4.6).
func ListFiles(ctx context.Context, client *gatewayhttp.Client, sessionToken, datastoreID string) (*ListingResponse, error) {
	body, _, err := client.Do(ctx, http.MethodGet, "/v1/stores/"+datastoreID+"/listing", nil, bearerHeader(sessionToken), nil)
	if nil != err {
		return nil, err
	}
	var root ListingResponse
	if err := decodeAndValidate(body, schema.ListingResponse, &root); nil != err {
		return nil, err
	}
	return &root, nil
}

// PutFile creates or updates one file (spec section 4.6).
func PutFile(ctx context.Context, client *gatewayhttp.Client, sessionToken, datastoreID, path string, req MutationRequest) (*PutFileResponse, error) {
	query := url.Values{"path": []string{path}}
	payload, err := json.Marshal(req)
	if nil != err {
		return nil, fault.ErrMakeCreateRequestFail
	}
	body, _, err := client.Do(ctx, http.MethodPost, "/v1/stores/"+datastoreID+"/files", query, bearerHeader(sessionToken), payload)
	if nil != err {
		return nil, err
	}
	var reply PutFileResponse
	if err := decodeAndValidate(body, schema.PutFileResponse, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// DeleteFile retracts one file with its signed tombstones (spec
// section 4.6).
func DeleteFile(ctx context.Context, client *gatewayhttp.Client, sessionToken, datastoreID, path string, req MutationRequest) error {
	query := url.Values{"path": []string{path}}
	payload, err := json.Marshal(req)
	if nil != err {
		return fault.ErrMakeDeleteRequestFail
	}
	_, _, err = client.Do(ctx, http.MethodDelete, "/v1/stores/"+datastoreID+"/files", query, bearerHeader(sessionToken), payload)
	return err
}

// ResolveProfile fetches a user's profile and decodes the embedded
// keyfile to extract peer app public keys (spec section 4.7,
// "getAppKeys").
func ResolveProfile(ctx context.Context, client *gatewayhttp.Client, sessionToken, blockchainID string) (*ProfileResponse, error) {
	body, _, err := client.Do(ctx, http.MethodGet, fmt.Sprintf("/v1/names/%s/profile", blockchainID), nil, bearerHeader(sessionToken), nil)
	if nil != err {
		return nil, err
	}
	var reply ProfileResponse
	if err := decodeAndValidate(body, schema.ProfileKeyfile, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
