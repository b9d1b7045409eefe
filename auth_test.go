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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCredentials(t *testing.T) {
	assert := assert.New(t)

	c := NewCredentials("user@example.org", "secret")
	assert.Equal("user@example.org", c.User)
	assert.Equal("secret", c.Password)
	assert.False(c.Mediated())
}

func TestNewOnBehalfOfCredentials(t *testing.T) {
	assert := assert.New(t)

	c := NewOnBehalfOfCredentials("admin@example.org", "secret", "user@example.org")
	assert.Equal("admin@example.org", c.User)
	assert.Equal("user@example.org", c.OnBehalfOf)
	assert.True(c.Mediated())
}

func TestNewOnBehalfOfCredentials_CollapsesForSameUser(t *testing.T) {
	assert := assert.New(t)

	c := NewOnBehalfOfCredentials("user@example.org", "secret", "user@example.org")
	assert.Equal("user@example.org", c.User)
	assert.Equal("secret", c.Password)
	assert.False(c.Mediated(), "mediation is dropped when admin and user are identical")
}

func TestNewTokenCredentials(t *testing.T) {
	assert := assert.New(t)

	c := NewTokenCredentials("abc-123")
	assert.Equal("abc-123", c.User)
	assert.Empty(c.Password)
	assert.False(c.Mediated())
}
