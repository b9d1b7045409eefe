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
	"sort"
)

const (
	nsAtom    = "http://www.w3.org/2005/Atom"
	nsDCTerms = "http://purl.org/dc/terms/"
)

// Deposit is the payload of a create or replace request. A deposit carries
// a file, a metadata map, or both (both only for create, where the request
// is sent as a SWORD multipart deposit).
type Deposit struct {
	// Filename must be set when File is set. Repositories only accept
	// media deposits with a Content-Disposition filename.
	Filename string
	File     io.Reader
	MimeType string
	// Packaging is a SWORD packaging URI, e.g. PackageSimpleZip.
	Packaging string
	// InProgress maps to the In-Progress header. For DSpace true means the
	// entry lands in the user's workspace for further editing, false means
	// it enters the workflow directly.
	InProgress bool
	Slug       string
	// Metadata holds Dublin Core terms, e.g. "title" -> ["My dataset"].
	Metadata map[string][]string
}

func (d *Deposit) hasFile() bool {
	return d.File != nil
}

func (d *Deposit) hasMetadata() bool {
	return len(d.Metadata) > 0
}

// entryXML converts the metadata map to an Atom entry document with Dublin
// Core term elements. Terms are emitted in sorted order.
func (d *Deposit) entryXML() ([]byte, error) {
	type dcElement struct {
		XMLName xml.Name
		Value   string `xml:",chardata"`
	}
	type entry struct {
		XMLName xml.Name `xml:"http://www.w3.org/2005/Atom entry"`
		Terms   []dcElement
	}

	terms := make([]string, 0, len(d.Metadata))
	for term := range d.Metadata {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	e := entry{}
	for _, term := range terms {
		for _, value := range d.Metadata[term] {
			e.Terms = append(e.Terms, dcElement{
				XMLName: xml.Name{Space: nsDCTerms, Local: term},
				Value:   value,
			})
		}
	}

	body, err := xml.Marshal(e)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// Receipt is the answer to a successful deposit request.
type Receipt struct {
	StatusCode int
	// Location is the edit URL of the new entry (the Location header of the
	// response, falling back to the receipt's edit link).
	Location string
}

// Response is the answer to a successful replace request. Repositories
// usually answer replace with a bare status code, so Location is often
// empty.
type Response struct {
	StatusCode int
	Location   string
}

// receiptXML is the subset of the deposit receipt entry needed to recover
// the edit link when the Location header is missing.
type receiptXML struct {
	XMLName xml.Name   `xml:"entry"`
	Links   []atomLink `xml:"link"`
}

type atomLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
}

func (r receiptXML) editHref() string {
	for _, l := range r.Links {
		if l.Rel == "edit" {
			return l.Href
		}
	}
	return ""
}
