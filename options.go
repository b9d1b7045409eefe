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
	"io/ioutil"
	"net/http"

	"github.com/sirupsen/logrus"
)

type options struct {
	logger        logrus.FieldLogger
	httpClient    *http.Client
	userAgent     string
	generateSlugs bool
}

// Option configures clients, exporters and hierarchy resolvers.
type Option interface {
	apply(*options)
}

// EmptyOption does not alter the configuration. It can be embedded in
// another structure to build custom options.
type EmptyOption struct{}

func (EmptyOption) apply(*options) {}

// funcOption wraps a function that modifies options into an
// implementation of the Option interface.
type funcOption struct {
	f func(*options)
}

func (fo *funcOption) apply(o *options) {
	fo.f(o)
}

func newFuncOption(f func(*options)) *funcOption {
	return &funcOption{
		f: f,
	}
}

func defaultOptions() options {
	discard := logrus.New()
	discard.SetOutput(ioutil.Discard)
	return options{
		logger:     discard,
		httpClient: http.DefaultClient,
		userAgent:  "gosword",
	}
}

func newOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o
}

// WithLogger sets the logger used for protocol and parsing diagnostics.
// The default logger discards everything.
func WithLogger(logger logrus.FieldLogger) Option {
	return newFuncOption(func(o *options) {
		o.logger = logger
	})
}

// WithHTTPClient sets the http.Client used for requests.
// Defaults to http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return newFuncOption(func(o *options) {
		o.httpClient = client
	})
}

// WithUserAgent sets the User-Agent header sent with every request.
// Defaults to "gosword".
func WithUserAgent(userAgent string) Option {
	return newFuncOption(func(o *options) {
		o.userAgent = userAgent
	})
}

// WithGeneratedSlugs decides if a Slug header with a generated unique name
// is sent when creating new entries. Defaults to false.
func WithGeneratedSlugs(generate bool) Option {
	return newFuncOption(func(o *options) {
		o.generateSlugs = generate
	})
}
