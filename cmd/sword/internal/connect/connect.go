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

// Package connect builds exporters from the CLI configuration.
package connect

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/nlnwa/gosword"
)

// Credentials builds gosword credentials from the current configuration.
// A token takes precedence over user/password.
func Credentials() (gosword.Credentials, error) {
	token := viper.GetString("token")
	user := viper.GetString("user")
	password := viper.GetString("password")
	onBehalfOf := viper.GetString("on-behalf-of")

	switch {
	case token != "":
		return gosword.NewTokenCredentials(token), nil
	case user != "" && onBehalfOf != "":
		return gosword.NewOnBehalfOfCredentials(user, password, onBehalfOf), nil
	case user != "":
		return gosword.NewCredentials(user, password), nil
	default:
		return gosword.Credentials{}, errors.New("missing credentials: set --user or --token")
	}
}

// Exporter builds an exporter from the current configuration.
func Exporter() (*gosword.Exporter, error) {
	credentials, err := Credentials()
	if err != nil {
		return nil, err
	}
	opts := []gosword.Option{
		gosword.WithLogger(log.StandardLogger()),
		gosword.WithUserAgent("sword-cli"),
	}
	client := gosword.NewHTTPClient(credentials, opts...)
	return gosword.NewExporter(client, opts...), nil
}

// Metadata parses repeated key=value flags into a metadata map. Repeating
// a key appends another value.
func Metadata(pairs []string) (map[string][]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string][]string)
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			return nil, errors.New("invalid metadata pair: " + pair)
		}
		m[kv[0]] = append(m[kv[0]], kv[1])
	}
	return m, nil
}
