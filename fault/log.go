// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/logger"
)

// log is the channel of last resort: vault-cli's app.Before wires it up
// right after parsing the configuration and before logger.Initialise,
// so a fatal error hit while the logger is being set up — before the
// ordinary "main" channel even exists — still lands somewhere durable
// instead of only on stderr.
var log *logger.L

// Initialise opens the panic-log channel. Call once per process,
// before logger.Initialise.
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise flushes the panic-log channel.
func Finalise() {
	if nil != log {
		log.Flush()
	}
}

// PanicWithError logs message and err to the panic channel, then
// panics with the same text.
func PanicWithError(message string, err error) {
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	logCriticalf("%s", s)
	time.Sleep(100 * time.Millisecond) // allow the flush above to land on disk
	panic(s)
}

// PanicIfError calls PanicWithError when err is non-nil, otherwise
// does nothing. vault-cli uses this for one setup step, logger
// initialisation, turning its failure into a single well-logged abort
// rather than a silent os.Exit.
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	PanicWithError(message, err)
}

func logCriticalf(format string, arguments ...interface{}) {
	if nil == log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	log.Criticalf(format, arguments...)
	log.Flush()
}
