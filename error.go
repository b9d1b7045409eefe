/*
 * Copyright 2021 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package gosword

import (
	"errors"
	"fmt"
)

// ErrNoPayload is returned when a deposit carries neither a file nor metadata.
var ErrNoPayload = errors.New("gosword: deposit carries neither file nor metadata")

// ErrMultipartUnsupported is returned when a replace request carries both a
// file and a metadata map. Replacing supports one part at a time.
var ErrMultipartUnsupported = errors.New("gosword: replace cannot carry both file and metadata")

// RequestError is used for protocol-level failures: a SWORD request that
// could not be sent or that the repository answered with a non-success
// status code.
type RequestError struct {
	Op         string // protocol operation, e.g. "deposit" or "content"
	URL        string
	StatusCode int // zero when the request never reached the repository
	wrapped    error
}

func newRequestError(op, url string, statusCode int) *RequestError {
	return &RequestError{Op: op, URL: url, StatusCode: statusCode}
}

func newWrappedRequestError(op, url string, wrapped error) *RequestError {
	return &RequestError{Op: op, URL: url, wrapped: wrapped}
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("gosword: %s %s returned status %d", e.Op, e.URL, e.StatusCode)
	}
	if e.wrapped != nil {
		return fmt.Sprintf("gosword: %s %s failed: %v", e.Op, e.URL, e.wrapped)
	}
	return fmt.Sprintf("gosword: %s %s failed", e.Op, e.URL)
}

func (e *RequestError) Unwrap() error {
	return e.wrapped
}
