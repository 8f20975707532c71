// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
//
// these map onto the wire-independent error kinds of the datastore
// protocol: NotFound/Exists/NotDir map directly, Perm/Access/Invalid
// collapse gateway auth and well-formedness failures, RemoteIO covers
// 5xx and schema violations, Process covers everything else including
// UnsatisfiableReplicationStrategy and PartialCreate
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type NotDirError GenericError
type PermissionError GenericError
type AccessError GenericError
type RemoteIOError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order within each class
var (
	ErrAlreadyInitialised       = InvalidError("already initialised")
	ErrCannotDecodePrivateKey   = InvalidError("cannot decode private key")
	ErrCannotDecodePublicKey    = InvalidError("cannot decode public key")
	ErrChecksumMismatch         = InvalidError("checksum mismatch")
	ErrCyclicStructure          = InvalidError("cyclic structure cannot be serialised")
	ErrInvalidDataId            = InvalidError("data id is invalid")
	ErrInvalidKeyLength         = InvalidError("key length is invalid")
	ErrInvalidSignatureLength   = InvalidError("signature length is invalid")
	ErrInvalidTombstone         = InvalidError("tombstone format is invalid")
	ErrRequiredAppName          = InvalidError("app name is required")
	ErrRequiredBlockchainId     = InvalidError("blockchain id is required")
	ErrRequiredDatastoreId      = InvalidError("datastore id or blockchain id/app name is required")
	ErrRequiredDeviceId         = InvalidError("device id is required")
	ErrRequiredHostPort         = InvalidError("host/port is required")
	ErrRequiredPrivateKey       = InvalidError("private key is required to create a datastore")
	ErrSchemaValidationFail     = InvalidError("schema validation failed")
	ErrUnmarshalTextFail        = InvalidError("unmarshal text failed")

	ErrNotFoundDatastore = NotFoundError("datastore not found")
	ErrNotFoundDeviceRoot = NotFoundError("device root not found")
	ErrNotFoundFile       = NotFoundError("file not found")
	ErrNotFoundMount      = NotFoundError("mount context not found")

	ErrParentNotDirectory = NotDirError("parent path is not a directory")

	ErrDatastoreExists = ExistsError("datastore already exists")
	ErrFileExists      = ExistsError("file already exists")

	ErrAuthenticationRequired = PermissionError("authentication required")
	ErrInvalidSignature       = PermissionError("invalid signature")
	ErrSessionExpired         = PermissionError("session token expired")

	ErrAccessDenied = AccessError("access denied")

	ErrMalformedResponse   = RemoteIOError("malformed gateway response")
	ErrRemoteServiceFailed = RemoteIOError("remote service failed")
	ErrSchemaViolation     = RemoteIOError("gateway response violates schema")

	ErrInvalidLoggerChannel        = ProcessError("cannot create logger channel")
	ErrMakeCreateRequestFail       = ProcessError("make create request failed")
	ErrMakeDeleteRequestFail       = ProcessError("make delete request failed")
	ErrMountFail                   = ProcessError("mount failed")
	ErrPartialCreate               = ProcessError("create outcome is ambiguous")
	ErrUnsatisfiableReplication    = ProcessError("replication strategy is unsatisfiable")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e NotDirError) Error() string     { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e AccessError) Error() string     { return string(e) }
func (e RemoteIOError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrNotDir(e error) bool     { _, ok := e.(NotDirError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrAccess(e error) bool     { _, ok := e.(AccessError); return ok }
func IsErrRemoteIO(e error) bool   { _, ok := e.(RemoteIOError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
