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
	"encoding/xml"
	"io"
)

// ServiceDocument is the protocol-level listing of workspaces and
// collections visible to a credential.
type ServiceDocument struct {
	Version    string
	Workspaces []Workspace
}

// Workspace groups the collections of one site.
type Workspace struct {
	Title       string
	Collections []Collection
}

// Collection is one entry of a workspace. A plain collection is a leaf
// deposit target identified by Href. An entry with SubServices is a
// reference to a nested service (e.g. a DSpace community) whose own
// collections are only discoverable through an extra fetch.
type Collection struct {
	Title       string
	Href        string
	Accepts     []string
	SubServices []string
}

// IsService reports whether the entry references a nested service instead
// of being a leaf deposit target.
func (c Collection) IsService() bool {
	return len(c.SubServices) > 0
}

// XML carrier types. Field tags match on local names only, so documents
// with atom:, app: or sword: prefixes all decode the same way.
type serviceDocXML struct {
	XMLName    xml.Name       `xml:"service"`
	Version    string         `xml:"version"`
	Workspaces []workspaceXML `xml:"workspace"`
}

type workspaceXML struct {
	Title       string          `xml:"title"`
	Collections []collectionXML `xml:"collection"`
}

type collectionXML struct {
	Href        string   `xml:"href,attr"`
	Titles      []string `xml:"title"`
	Accepts     []string `xml:"accept"`
	SubServices []string `xml:"service"`
}

func (c collectionXML) title() string {
	if len(c.Titles) > 0 {
		return c.Titles[0]
	}
	return ""
}

func (c collectionXML) toCollection() Collection {
	return Collection{
		Title:       c.title(),
		Href:        c.Href,
		Accepts:     c.Accepts,
		SubServices: nonEmpty(c.SubServices),
	}
}

func nonEmpty(values []string) []string {
	var result []string
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

// ParseServiceDocument decodes a SWORD v2 service document.
func ParseServiceDocument(r io.Reader) (*ServiceDocument, error) {
	var doc serviceDocXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	sd := &ServiceDocument{Version: doc.Version}
	for _, ws := range doc.Workspaces {
		workspace := Workspace{Title: ws.Title}
		for _, c := range ws.Collections {
			workspace.Collections = append(workspace.Collections, c.toCollection())
		}
		sd.Workspaces = append(sd.Workspaces, workspace)
	}
	return sd, nil
}
