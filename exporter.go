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
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Exporter provides the convenience operations for SWORD-based
// repositories: collection discovery, deposits and metadata replacement.
// All parameter marshaling is dispatched to the protocol client.
type Exporter struct {
	client   Client
	resolver *HierarchyResolver
	log      logrus.FieldLogger
	slugs    bool
}

// NewExporter creates an exporter on top of a protocol client. Credentials
// belong to the client; to change them, create a new client.
func NewExporter(client Client, opts ...Option) *Exporter {
	o := newOptions(opts...)
	return &Exporter{
		client:   client,
		resolver: NewHierarchyResolver(client, opts...),
		log:      o.logger,
		slugs:    o.generateSlugs,
	}
}

// ServiceDocument requests the service document at url.
func (e *Exporter) ServiceDocument(ctx context.Context, url string) (*ServiceDocument, error) {
	return e.client.ServiceDocument(ctx, url)
}

// IsAccessible reports whether the SWORD v2 API answers the service
// document request with the client's credentials.
func (e *Exporter) IsAccessible(ctx context.Context, serviceDocumentURL string) bool {
	doc, err := e.client.ServiceDocument(ctx, serviceDocumentURL)
	if err != nil {
		e.log.Warnf("service document not accessible: %v", err)
		return false
	}
	return doc != nil
}

// Hierarchy resolves the full nested tree of services and collections
// reachable from doc. Branches whose sub-service fetch fails are absent
// from the tree; only a nil document is an error.
func (e *Exporter) Hierarchy(ctx context.Context, doc *ServiceDocument) (*HierarchyNode, error) {
	if doc == nil {
		return nil, errors.New("gosword: nil service document")
	}
	return e.resolver.Resolve(ctx, doc), nil
}

// Collections returns all leaf deposit targets reachable from doc, keyed
// by href. Collections inside nested services are discovered recursively;
// branches that fail to resolve are skipped.
func (e *Exporter) Collections(ctx context.Context, doc *ServiceDocument) (map[string]string, error) {
	root, err := e.Hierarchy(ctx, doc)
	if err != nil {
		return nil, err
	}
	return root.Flatten(), nil
}

// CollectionsWithPath is like Collections but the value is the full
// ancestor-title path of each collection joined with separator. A missing
// entry for a known href means hierarchy metadata is unavailable for it,
// not that the collection does not exist.
func (e *Exporter) CollectionsWithPath(ctx context.Context, doc *ServiceDocument, separator string) (map[string]string, error) {
	root, err := e.Hierarchy(ctx, doc)
	if err != nil {
		return nil, err
	}
	return root.FlattenWithPath(separator), nil
}

// CreateEntryWithMetadata creates a new entry holding only metadata in the
// collection at collectionURL. It returns the edit URL of the new entry,
// usable directly with ReplaceMetadataEntry.
func (e *Exporter) CreateEntryWithMetadata(ctx context.Context, collectionURL string, metadata map[string][]string, inProgress bool) (string, error) {
	d := &Deposit{
		MimeType:   MimeAtomXML,
		InProgress: inProgress,
		Metadata:   metadata,
		Slug:       e.newSlug(),
	}
	receipt, err := e.client.Deposit(ctx, collectionURL, d)
	if err != nil {
		return "", err
	}
	return receipt.Location, nil
}

// CreateEntryWithMetadataAndFile creates a new entry holding metadata and a
// file. The packaging format follows the file name: zip archives are
// expanded on the repository side when unpackZip is true, everything else
// is deposited as a binary. Returns the edit URL of the new entry.
func (e *Exporter) CreateEntryWithMetadataAndFile(ctx context.Context, collectionURL, fileName string, file io.Reader, unpackZip bool, metadata map[string][]string, inProgress bool) (string, error) {
	packaging := PackageFormatUnpack(fileName, unpackZip)
	d := &Deposit{
		Filename:   fileName,
		File:       file,
		MimeType:   mimeForFile(fileName),
		Packaging:  packaging,
		InProgress: inProgress,
		Metadata:   metadata,
		Slug:       e.newSlug(),
	}
	receipt, err := e.client.Deposit(ctx, collectionURL, d)
	if err != nil {
		return "", err
	}
	return receipt.Location, nil
}

// DepositFile deposits a single file without metadata to url, which may be
// a collection URL or an entry's edit-media URL. Returns the edit URL of
// the created entry when the repository reports one.
func (e *Exporter) DepositFile(ctx context.Context, url, fileName string, file io.Reader, unpackZip, inProgress bool) (string, error) {
	packaging := PackageFormatUnpack(fileName, unpackZip)
	d := &Deposit{
		Filename:   fileName,
		File:       file,
		MimeType:   mimeForFile(fileName),
		Packaging:  packaging,
		InProgress: inProgress,
		Slug:       e.newSlug(),
	}
	receipt, err := e.client.Deposit(ctx, url, d)
	if err != nil {
		return "", err
	}
	return receipt.Location, nil
}

// ReplaceMetadataEntry replaces the metadata of an existing entry. entryURL
// is the entry's edit URL as returned by the create operations.
func (e *Exporter) ReplaceMetadataEntry(ctx context.Context, entryURL string, metadata map[string][]string, inProgress bool) error {
	d := &Deposit{
		MimeType:   MimeAtomXML,
		InProgress: inProgress,
		Metadata:   metadata,
	}
	_, err := e.submit(ctx, entryURL, RequestReplace, d)
	return err
}

// ReplaceMediaEntry replaces the media part of an existing entry. entryURL
// is the entry's edit-media URL.
func (e *Exporter) ReplaceMediaEntry(ctx context.Context, entryURL, fileName string, file io.Reader, inProgress bool) error {
	d := &Deposit{
		Filename:   fileName,
		File:       file,
		MimeType:   mimeForFile(fileName),
		Packaging:  PackageFormat(fileName),
		InProgress: inProgress,
	}
	_, err := e.submit(ctx, entryURL, RequestReplace, d)
	return err
}

// submit dispatches a deposit to the protocol operation selected by
// requestType.
func (e *Exporter) submit(ctx context.Context, url string, requestType RequestType, d *Deposit) (*Response, error) {
	switch requestType {
	case RequestDeposit:
		receipt, err := e.client.Deposit(ctx, url, d)
		if err != nil {
			return nil, err
		}
		return &Response{StatusCode: receipt.StatusCode, Location: receipt.Location}, nil
	case RequestReplace:
		if d.hasMetadata() {
			return e.client.Replace(ctx, url, d)
		}
		return e.client.ReplaceMedia(ctx, url, d)
	default:
		return nil, errors.New("gosword: unsupported request type " + requestType.String())
	}
}

func (e *Exporter) newSlug() string {
	if !e.slugs {
		return ""
	}
	return uuid.New().String()
}

func mimeForFile(fileName string) string {
	if PackageFormat(fileName) == PackageSimpleZip {
		return MimeZip
	}
	return MimeOctetStream
}
