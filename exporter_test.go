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
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// newFakeRepository serves a small two-level repository: a service document
// with one plain collection and one community holding a single collection.
func newFakeRepository(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var ts *httptest.Server

	mux.HandleFunc("/swordv2/servicedocument", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<service xmlns="http://www.w3.org/2007/app"
         xmlns:atom="http://www.w3.org/2005/Atom"
         xmlns:sword="http://purl.org/net/sword/terms/">
  <sword:version>2.0</sword:version>
  <workspace>
    <atom:title>Main Site</atom:title>
    <collection href="%[1]s/swordv2/collection/top">
      <atom:title>Top Collection</atom:title>
      <accept>*/*</accept>
    </collection>
    <collection href="%[1]s/swordv2/community/a-entry">
      <atom:title>Community A</atom:title>
      <sword:service>%[1]s/swordv2/community/a</sword:service>
    </collection>
  </workspace>
</service>`, ts.URL)
	})

	mux.HandleFunc("/swordv2/community/a", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<service xmlns="http://www.w3.org/2007/app"
         xmlns:atom="http://www.w3.org/2005/Atom">
  <workspace>
    <collection href="%s/swordv2/collection/nested">
      <atom:title>Nested Collection</atom:title>
      <accept>*/*</accept>
    </collection>
  </workspace>
</service>`, ts.URL)
	})

	mux.HandleFunc("/swordv2/collection/top", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderLocation, ts.URL+"/swordv2/edit/1")
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("/swordv2/edit/1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	ts = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestExporter(ts *httptest.Server, opts ...Option) *Exporter {
	client := NewHTTPClient(NewCredentials("user@example.org", "secret"), opts...)
	return NewExporter(client, opts...)
}

func TestExporter_Collections(t *testing.T) {
	assert := assert.New(t)

	ts := newFakeRepository(t)
	e := newTestExporter(ts)
	ctx := context.Background()

	doc, err := e.ServiceDocument(ctx, ts.URL+"/swordv2/servicedocument")
	assert.NoError(err)

	collections, err := e.Collections(ctx, doc)
	assert.NoError(err)
	assert.Equal(map[string]string{
		ts.URL + "/swordv2/collection/top":    "Top Collection",
		ts.URL + "/swordv2/collection/nested": "Nested Collection",
	}, collections)
}

func TestExporter_CollectionsWithPath(t *testing.T) {
	assert := assert.New(t)

	ts := newFakeRepository(t)
	e := newTestExporter(ts)
	ctx := context.Background()

	doc, err := e.ServiceDocument(ctx, ts.URL+"/swordv2/servicedocument")
	assert.NoError(err)

	paths, err := e.CollectionsWithPath(ctx, doc, " / ")
	assert.NoError(err)
	assert.Equal("Top Collection", paths[ts.URL+"/swordv2/collection/top"])
	assert.Equal("Community A / Nested Collection", paths[ts.URL+"/swordv2/collection/nested"])
}

func TestExporter_Hierarchy_NilDocument(t *testing.T) {
	assert := assert.New(t)

	ts := newFakeRepository(t)
	e := newTestExporter(ts)

	_, err := e.Hierarchy(context.Background(), nil)
	assert.Error(err)
}

func TestExporter_IsAccessible(t *testing.T) {
	assert := assert.New(t)

	ts := newFakeRepository(t)
	e := newTestExporter(ts)
	ctx := context.Background()

	assert.True(e.IsAccessible(ctx, ts.URL+"/swordv2/servicedocument"))

	denied := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer denied.Close()
	assert.False(e.IsAccessible(ctx, denied.URL))
}

func TestExporter_CreateEntryWithMetadata(t *testing.T) {
	assert := assert.New(t)

	ts := newFakeRepository(t)
	e := newTestExporter(ts)

	entryURL, err := e.CreateEntryWithMetadata(context.Background(),
		ts.URL+"/swordv2/collection/top",
		map[string][]string{"title": {"My Dataset"}},
		true)
	assert.NoError(err)
	assert.Equal(ts.URL+"/swordv2/edit/1", entryURL)
}

func TestExporter_CreateEntryWithMetadataAndFile(t *testing.T) {
	assert := assert.New(t)

	var gotContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get(HeaderContentType)
		w.Header().Set(HeaderLocation, "http://x/swordv2/edit/9")
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	e := newTestExporter(ts)
	entryURL, err := e.CreateEntryWithMetadataAndFile(context.Background(),
		ts.URL, "data.zip", strings.NewReader("zip bytes"), true,
		map[string][]string{"title": {"My Dataset"}}, false)
	assert.NoError(err)
	assert.Equal("http://x/swordv2/edit/9", entryURL)
	assert.Contains(gotContentType, "multipart/related")
}

func TestExporter_ReplaceMetadataEntry(t *testing.T) {
	assert := assert.New(t)

	ts := newFakeRepository(t)
	e := newTestExporter(ts)

	err := e.ReplaceMetadataEntry(context.Background(),
		ts.URL+"/swordv2/edit/1",
		map[string][]string{"title": {"Updated"}},
		false)
	assert.NoError(err)
}

func TestExporter_DepositFile_PackagingFollowsUnpackFlag(t *testing.T) {
	assert := assert.New(t)

	var gotPackaging string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPackaging = r.Header.Get(HeaderPackaging)
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	e := newTestExporter(ts)
	ctx := context.Background()

	_, err := e.DepositFile(ctx, ts.URL, "data.zip", strings.NewReader("zip"), true, false)
	assert.NoError(err)
	assert.Equal(PackageSimpleZip, gotPackaging)

	_, err = e.DepositFile(ctx, ts.URL, "data.zip", strings.NewReader("zip"), false, false)
	assert.NoError(err)
	assert.Equal(PackageBinary, gotPackaging)
}

func TestExporter_GeneratedSlugs(t *testing.T) {
	assert := assert.New(t)

	var gotSlug string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSlug = r.Header.Get(HeaderSlug)
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	e := newTestExporter(ts, WithGeneratedSlugs(true))
	_, err := e.CreateEntryWithMetadata(context.Background(), ts.URL,
		map[string][]string{"title": {"T"}}, false)
	assert.NoError(err)

	_, err = uuid.Parse(gotSlug)
	assert.NoError(err, "generated slug must be a valid UUID, got %q", gotSlug)
}

func TestExporter_Submit_UnsupportedRequestType(t *testing.T) {
	assert := assert.New(t)

	ts := newFakeRepository(t)
	e := newTestExporter(ts)

	_, err := e.submit(context.Background(), ts.URL, RequestDelete, &Deposit{
		Metadata: map[string][]string{"title": {"T"}},
	})
	assert.Error(err)
}
