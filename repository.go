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
	"io"
)

// Repository is the contract a concrete repository adapter (DSpace,
// Dataverse, ...) fulfils on top of Exporter. Credentials are implicit;
// they are fixed when the adapter is constructed.
type Repository interface {
	// IsAccessible checks if the repository answers its SWORD API at all.
	IsAccessible(ctx context.Context) bool

	// HasRegisteredCredentials checks if the adapter's credentials are
	// known to the repository.
	HasRegisteredCredentials(ctx context.Context) bool

	// HasAssignedCredentials checks if the credentials can deposit
	// anywhere, i.e. at least one collection is visible to them.
	HasAssignedCredentials(ctx context.Context) bool

	// AvailableCollections returns the deposit targets visible to the
	// credentials, keyed by collection URL with the title as value.
	// Different credentials may see different collections.
	AvailableCollections(ctx context.Context) (map[string]string, error)

	// ExportNewEntryWithMetadata creates a metadata-only entry in the
	// collection and returns the new entry's URL.
	ExportNewEntryWithMetadata(ctx context.Context, collectionURL string, metadata map[string][]string) (string, error)

	// ExportNewEntryWithMetadataAndFile creates an entry holding metadata
	// and a file. unpackFileIfArchive decides whether an archive is
	// expanded on the repository side or stored as a single binary; use
	// false when the repository does not support unpacking.
	ExportNewEntryWithMetadataAndFile(ctx context.Context, collectionURL, fileName string, file io.Reader, unpackFileIfArchive bool, metadata map[string][]string) (string, error)
}

// SWORDRepository is the generic Repository adapter for repositories that
// speak plain SWORD v2, bound to one service document URL. DSpace and
// Dataverse installations are both served by it; only the credential style
// differs (see NewTokenCredentials).
type SWORDRepository struct {
	exporter           *Exporter
	serviceDocumentURL string
	// inProgress decides where new entries land: true keeps them in the
	// depositing user's workspace for further editing, false submits them
	// to the workflow directly.
	inProgress bool
}

// NewSWORDRepository creates a repository adapter on top of a protocol
// client. Deposits are made with the In-Progress header set to inProgress.
func NewSWORDRepository(client Client, serviceDocumentURL string, inProgress bool, opts ...Option) *SWORDRepository {
	return &SWORDRepository{
		exporter:           NewExporter(client, opts...),
		serviceDocumentURL: serviceDocumentURL,
		inProgress:         inProgress,
	}
}

var _ Repository = (*SWORDRepository)(nil)

// IsAccessible checks if the repository answers its SWORD API at all.
func (r *SWORDRepository) IsAccessible(ctx context.Context) bool {
	return r.exporter.IsAccessible(ctx, r.serviceDocumentURL)
}

// HasRegisteredCredentials checks if the adapter's credentials are known
// to the repository. With SWORD the service document request itself is
// authenticated, so this is the same probe as IsAccessible.
func (r *SWORDRepository) HasRegisteredCredentials(ctx context.Context) bool {
	return r.exporter.IsAccessible(ctx, r.serviceDocumentURL)
}

// HasAssignedCredentials checks if at least one collection is visible to
// the credentials.
func (r *SWORDRepository) HasAssignedCredentials(ctx context.Context) bool {
	collections, err := r.AvailableCollections(ctx)
	if err != nil {
		return false
	}
	return len(collections) > 0
}

// AvailableCollections returns all deposit targets visible to the
// credentials, including collections nested inside sub-services.
func (r *SWORDRepository) AvailableCollections(ctx context.Context) (map[string]string, error) {
	doc, err := r.exporter.ServiceDocument(ctx, r.serviceDocumentURL)
	if err != nil {
		return nil, err
	}
	return r.exporter.Collections(ctx, doc)
}

// ExportNewEntryWithMetadata creates a metadata-only entry in the
// collection and returns the new entry's edit URL.
func (r *SWORDRepository) ExportNewEntryWithMetadata(ctx context.Context, collectionURL string, metadata map[string][]string) (string, error) {
	return r.exporter.CreateEntryWithMetadata(ctx, collectionURL, metadata, r.inProgress)
}

// ExportNewEntryWithMetadataAndFile creates an entry holding metadata and
// a file and returns the new entry's edit URL.
func (r *SWORDRepository) ExportNewEntryWithMetadataAndFile(ctx context.Context, collectionURL, fileName string, file io.Reader, unpackFileIfArchive bool, metadata map[string][]string) (string, error) {
	return r.exporter.CreateEntryWithMetadataAndFile(ctx, collectionURL, fileName, file, unpackFileIfArchive, metadata, r.inProgress)
}
