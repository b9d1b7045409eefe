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
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRepository(ts *httptest.Server, inProgress bool) *SWORDRepository {
	client := NewHTTPClient(NewCredentials("user@example.org", "secret"))
	return NewSWORDRepository(client, ts.URL+"/swordv2/servicedocument", inProgress)
}

func TestSWORDRepository_Accessibility(t *testing.T) {
	assert := assert.New(t)

	ts := newFakeRepository(t)
	repo := newTestRepository(ts, false)
	ctx := context.Background()

	assert.True(repo.IsAccessible(ctx))
	assert.True(repo.HasRegisteredCredentials(ctx))
	assert.True(repo.HasAssignedCredentials(ctx))
}

func TestSWORDRepository_NotAccessible(t *testing.T) {
	assert := assert.New(t)

	denied := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer denied.Close()

	client := NewHTTPClient(NewCredentials("user@example.org", "wrong"))
	repo := NewSWORDRepository(client, denied.URL, false)
	ctx := context.Background()

	assert.False(repo.IsAccessible(ctx))
	assert.False(repo.HasRegisteredCredentials(ctx))
	assert.False(repo.HasAssignedCredentials(ctx))

	_, err := repo.AvailableCollections(ctx)
	assert.Error(err)
}

func TestSWORDRepository_NoAssignedCollections(t *testing.T) {
	assert := assert.New(t)

	const emptyDocument = `<?xml version="1.0" encoding="UTF-8"?>
<service xmlns="http://www.w3.org/2007/app"
         xmlns:atom="http://www.w3.org/2005/Atom"
         xmlns:sword="http://purl.org/net/sword/terms/">
  <sword:version>2.0</sword:version>
  <workspace>
    <atom:title>Main Site</atom:title>
  </workspace>
</service>`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(emptyDocument))
	}))
	defer ts.Close()

	client := NewHTTPClient(NewCredentials("user@example.org", "secret"))
	repo := NewSWORDRepository(client, ts.URL, false)
	ctx := context.Background()

	assert.True(repo.IsAccessible(ctx))
	assert.False(repo.HasAssignedCredentials(ctx))
}

func TestSWORDRepository_AvailableCollections(t *testing.T) {
	assert := assert.New(t)

	ts := newFakeRepository(t)
	repo := newTestRepository(ts, false)

	collections, err := repo.AvailableCollections(context.Background())
	assert.NoError(err)
	assert.Equal(map[string]string{
		ts.URL + "/swordv2/collection/top":    "Top Collection",
		ts.URL + "/swordv2/collection/nested": "Nested Collection",
	}, collections)
}

func TestSWORDRepository_ExportNewEntryWithMetadata(t *testing.T) {
	assert := assert.New(t)

	ts := newFakeRepository(t)
	repo := newTestRepository(ts, true)

	entryURL, err := repo.ExportNewEntryWithMetadata(context.Background(),
		ts.URL+"/swordv2/collection/top",
		map[string][]string{"title": {"My Dataset"}})
	assert.NoError(err)
	assert.Equal(ts.URL+"/swordv2/edit/1", entryURL)
}

func TestSWORDRepository_ExportNewEntryWithMetadataAndFile(t *testing.T) {
	assert := assert.New(t)

	var gotInProgress string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotInProgress = r.Header.Get(HeaderInProgress)
		w.Header().Set(HeaderLocation, "http://x/swordv2/edit/7")
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	client := NewHTTPClient(NewCredentials("user@example.org", "secret"))
	repo := NewSWORDRepository(client, ts.URL, true)

	entryURL, err := repo.ExportNewEntryWithMetadataAndFile(context.Background(),
		ts.URL, "data.zip", strings.NewReader("zip bytes"), true,
		map[string][]string{"title": {"My Dataset"}})
	assert.NoError(err)
	assert.Equal("http://x/swordv2/edit/7", entryURL)
	assert.Equal("true", gotInProgress, "adapter deposits honor its in-progress setting")
}
