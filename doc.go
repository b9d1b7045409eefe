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

/*
Package gosword is a convenience library for depositing into SWORD v2 based
academic repository systems such as DSpace and Dataverse.

# SWORD

SWORD is a lightweight deposit protocol layered on AtomPub. A repository
publishes a service document listing the collections a credential may
deposit into; entries are created by POSTing files or Atom entries with
Dublin Core metadata to a collection URL and updated by PUTting to the
entry's edit URL.

To learn more about the protocol, read the profile at
http://swordapp.org/sword-v2/sword-v2-specifications/

# Discover collections

The [Exporter] is the main entry point. It is initialized with
[NewExporter] on top of a [Client], typically an [HTTPClient] created with
[NewHTTPClient] and [Credentials].

[Exporter.Collections] lists every deposit target reachable from a service
document. Repositories like DSpace nest collections inside communities
(sub-services) that are only discoverable through extra fetches;
[Exporter.Hierarchy] resolves the full nested tree and
[Exporter.CollectionsWithPath] renders each collection's ancestor path.
Hierarchy discovery is best effort: branches that fail to resolve are
absent from the result rather than failing the whole operation.

# Deposit and replace

[Exporter.CreateEntryWithMetadata] and
[Exporter.CreateEntryWithMetadataAndFile] create new entries and return the
entry's edit URL. [Exporter.ReplaceMetadataEntry] updates an existing entry
in place.
*/
package gosword
