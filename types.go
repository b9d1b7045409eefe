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
	"strings"
)

// MIME type constants used for SWORD content negotiation.
const (
	MimeAtomXML     = "application/atom+xml"
	MimeAtomEntry   = "application/atom+xml;type=entry"
	MimeAtomSvcXML  = "application/atomsvc+xml"
	MimeZip         = "application/zip"
	MimeOctetStream = "application/octet-stream"
)

// SWORD v2 packaging format URIs.
const (
	PackageSimpleZip = "http://purl.org/net/sword/package/SimpleZip"
	PackageBinary    = "http://purl.org/net/sword/package/Binary"
)

// HTTP header field name constants used by the SWORD v2 protocol.
const (
	HeaderAccept             = "Accept"
	HeaderAcceptPackaging    = "Accept-Packaging"
	HeaderContentDisposition = "Content-Disposition"
	HeaderContentType        = "Content-Type"
	HeaderInProgress         = "In-Progress"
	HeaderLocation           = "Location"
	HeaderOnBehalfOf         = "On-Behalf-Of"
	HeaderPackaging          = "Packaging"
	HeaderSlug               = "Slug"
	HeaderUserAgent          = "User-Agent"
)

// RequestType selects the protocol operation used when submitting a deposit.
type RequestType int8

const (
	RequestUnknown RequestType = iota
	RequestDeposit             // POST of a new entry
	RequestReplace             // PUT replacing an existing entry
	RequestDelete              // reserved
)

const (
	sRequestUnknown = "UNKNOWN"
	sRequestDeposit = "DEPOSIT"
	sRequestReplace = "REPLACE"
	sRequestDelete  = "DELETE"
)

var requestTypeToString = map[RequestType]string{
	RequestUnknown: sRequestUnknown,
	RequestDeposit: sRequestDeposit,
	RequestReplace: sRequestReplace,
	RequestDelete:  sRequestDelete,
}

func (rt RequestType) String() string {
	if s, ok := requestTypeToString[rt]; ok {
		return s
	}
	return sRequestUnknown
}

// FileExtension returns the extension of fileName without the leading dot,
// or the empty string if fileName has none. A leading dot alone (e.g.
// ".profile") does not count as an extension separator.
func FileExtension(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i > 0 {
		return fileName[i+1:]
	}
	return ""
}

// PackageFormat infers the SWORD packaging format URI from a file name.
// Zip archives map to SimpleZip, everything else to Binary.
func PackageFormat(fileName string) string {
	if strings.EqualFold(FileExtension(fileName), "zip") {
		return PackageSimpleZip
	}
	return PackageBinary
}

// PackageFormatUnpack is like PackageFormat but lets the caller keep a zip
// archive packed on the repository side. With unpackZip set to false a zip
// file is deposited as a single binary instead of being expanded.
func PackageFormatUnpack(fileName string, unpackZip bool) string {
	format := PackageFormat(fileName)
	if format == PackageSimpleZip && !unpackZip {
		return PackageBinary
	}
	return format
}
