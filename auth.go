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

// Credentials holds the authentication data sent with every SWORD request.
// A zero value means anonymous access. Credentials are immutable once
// created; to change them, create a new client.
type Credentials struct {
	User       string
	Password   string
	OnBehalfOf string
}

// NewCredentials returns credentials for a plain user login. The user name
// is typically an e-mail address.
func NewCredentials(user, password string) Credentials {
	return Credentials{User: user, Password: password}
}

// NewOnBehalfOfCredentials returns credentials where a privileged user
// (e.g. an administrator allowed to deposit) acts on behalf of another user
// identified only by login name. When adminUser and onBehalfOf are identical
// the on-behalf-of mediation is dropped and plain credentials are returned.
func NewOnBehalfOfCredentials(adminUser, adminPassword, onBehalfOf string) Credentials {
	if adminUser == onBehalfOf {
		return NewCredentials(onBehalfOf, adminPassword)
	}
	return Credentials{User: adminUser, Password: adminPassword, OnBehalfOf: onBehalfOf}
}

// NewTokenCredentials returns credentials based on an API token, as used by
// Dataverse. The token takes the place of the user name and the password is
// left empty.
func NewTokenCredentials(apiToken string) Credentials {
	return Credentials{User: apiToken}
}

// Mediated reports whether the credentials carry an On-Behalf-Of user.
func (c Credentials) Mediated() bool {
	return c.OnBehalfOf != ""
}
