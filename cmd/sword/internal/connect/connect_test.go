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

package connect

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestMetadata(t *testing.T) {
	assert := assert.New(t)

	m, err := Metadata([]string{"title=My Dataset", "creator=Doe, J.", "creator=Roe, R."})
	assert.NoError(err)
	assert.Equal(map[string][]string{
		"title":   {"My Dataset"},
		"creator": {"Doe, J.", "Roe, R."},
	}, m)

	m, err = Metadata(nil)
	assert.NoError(err)
	assert.Nil(m)

	_, err = Metadata([]string{"no-separator"})
	assert.Error(err)

	_, err = Metadata([]string{"=value"})
	assert.Error(err)
}

func TestCredentials(t *testing.T) {
	assert := assert.New(t)
	defer viper.Reset()

	viper.Reset()
	_, err := Credentials()
	assert.Error(err, "credentials are required")

	viper.Set("token", "abc-123")
	c, err := Credentials()
	assert.NoError(err)
	assert.Equal("abc-123", c.User)
	assert.Empty(c.Password)

	viper.Reset()
	viper.Set("user", "admin@example.org")
	viper.Set("password", "secret")
	viper.Set("on-behalf-of", "user@example.org")
	c, err = Credentials()
	assert.NoError(err)
	assert.Equal("admin@example.org", c.User)
	assert.Equal("user@example.org", c.OnBehalfOf)
}
