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
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/sirupsen/logrus"
)

// ContentFetcher is the capability needed by the hierarchy resolver: an
// authenticated GET against a sub-service URL with fixed content
// negotiation, returning the raw response body. The caller owns the body
// and must close it.
type ContentFetcher interface {
	Content(ctx context.Context, url, accept, packaging string) (io.ReadCloser, error)
}

// Client is the SWORD v2 protocol collaborator consumed by Exporter and
// HierarchyResolver. HTTPClient is the bundled implementation; tests and
// integrations may substitute their own.
type Client interface {
	ContentFetcher

	// ServiceDocument fetches and parses the service document at url.
	ServiceDocument(ctx context.Context, url string) (*ServiceDocument, error)

	// Deposit POSTs a new entry to a collection URL.
	Deposit(ctx context.Context, url string, d *Deposit) (*Receipt, error)

	// Replace PUTs new metadata to an entry's edit URL.
	Replace(ctx context.Context, url string, d *Deposit) (*Response, error)

	// ReplaceMedia PUTs a new media file to an entry's edit-media URL.
	ReplaceMedia(ctx context.Context, url string, d *Deposit) (*Response, error)
}

// HTTPClient implements Client over net/http. It adds basic authentication
// and, when the credentials are mediated, the On-Behalf-Of header to every
// request.
type HTTPClient struct {
	credentials Credentials
	httpClient  *http.Client
	userAgent   string
	log         logrus.FieldLogger
}

// NewHTTPClient creates a protocol client with the supplied credentials.
func NewHTTPClient(credentials Credentials, opts ...Option) *HTTPClient {
	o := newOptions(opts...)
	return &HTTPClient{
		credentials: credentials,
		httpClient:  o.httpClient,
		userAgent:   o.userAgent,
		log:         o.logger,
	}
}

// Credentials returns the credentials the client was created with.
func (c *HTTPClient) Credentials() Credentials {
	return c.credentials
}

func (c *HTTPClient) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	req.SetBasicAuth(c.credentials.User, c.credentials.Password)
	if c.credentials.Mediated() {
		req.Header.Set(HeaderOnBehalfOf, c.credentials.OnBehalfOf)
	}
	req.Header.Set(HeaderUserAgent, c.userAgent)
	return req, nil
}

// do sends the request and checks the status code. On a non-2xx answer the
// body is drained, closed and a RequestError returned. On success the
// caller owns the response.
func (c *HTTPClient) do(op string, req *http.Request) (*http.Response, error) {
	c.log.Debugf("%s %s %s", op, req.Method, req.URL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newWrappedRequestError(op, req.URL.String(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drainAndClose(resp.Body)
		return nil, newRequestError(op, req.URL.String(), resp.StatusCode)
	}
	return resp, nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(ioutil.Discard, body)
	_ = body.Close()
}

// ServiceDocument fetches and parses the service document at url.
func (c *HTTPClient) ServiceDocument(ctx context.Context, url string) (*ServiceDocument, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newWrappedRequestError("servicedocument", url, err)
	}
	req.Header.Set(HeaderAccept, MimeAtomSvcXML)

	resp, err := c.do("servicedocument", req)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	doc, err := ParseServiceDocument(resp.Body)
	if err != nil {
		return nil, newWrappedRequestError("servicedocument", url, err)
	}
	return doc, nil
}

// Content performs an authenticated GET against url with the given Accept
// MIME type and Accept-Packaging hint. The returned body must be closed by
// the caller.
func (c *HTTPClient) Content(ctx context.Context, url, accept, packaging string) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newWrappedRequestError("content", url, err)
	}
	req.Header.Set(HeaderAccept, accept)
	if packaging != "" {
		req.Header.Set(HeaderAcceptPackaging, packaging)
	}

	resp, err := c.do("content", req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Deposit POSTs a new entry to a collection URL. A deposit with only
// metadata is sent as an Atom entry, only a file as a media deposit, and
// both as a SWORD multipart (multipart/related) deposit.
func (c *HTTPClient) Deposit(ctx context.Context, url string, d *Deposit) (*Receipt, error) {
	req, err := c.depositRequest(ctx, url, d)
	if err != nil {
		return nil, err
	}

	resp, err := c.do("deposit", req)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	receipt := &Receipt{
		StatusCode: resp.StatusCode,
		Location:   resp.Header.Get(HeaderLocation),
	}
	if receipt.Location == "" {
		// Some repositories omit the Location header; fall back to the
		// edit link of the receipt entry.
		var entry receiptXML
		if err := xml.NewDecoder(resp.Body).Decode(&entry); err == nil {
			receipt.Location = entry.editHref()
		}
	}
	return receipt, nil
}

func (c *HTTPClient) depositRequest(ctx context.Context, url string, d *Deposit) (*http.Request, error) {
	switch {
	case d.hasFile() && d.hasMetadata():
		return c.multipartRequest(ctx, url, d)
	case d.hasMetadata():
		return c.entryRequest(ctx, http.MethodPost, url, d)
	case d.hasFile():
		return c.mediaRequest(ctx, http.MethodPost, url, d)
	default:
		return nil, ErrNoPayload
	}
}

func (c *HTTPClient) entryRequest(ctx context.Context, method, url string, d *Deposit) (*http.Request, error) {
	body, err := d.entryXML()
	if err != nil {
		return nil, newWrappedRequestError("entry", url, err)
	}
	req, err := c.newRequest(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, newWrappedRequestError("entry", url, err)
	}
	req.Header.Set(HeaderContentType, MimeAtomEntry)
	req.Header.Set(HeaderInProgress, strconv.FormatBool(d.InProgress))
	if d.Slug != "" {
		req.Header.Set(HeaderSlug, d.Slug)
	}
	return req, nil
}

func (c *HTTPClient) mediaRequest(ctx context.Context, method, url string, d *Deposit) (*http.Request, error) {
	req, err := c.newRequest(ctx, method, url, d.File)
	if err != nil {
		return nil, newWrappedRequestError("media", url, err)
	}
	mimeType := d.MimeType
	if mimeType == "" {
		mimeType = MimeOctetStream
	}
	req.Header.Set(HeaderContentType, mimeType)
	// A deposit is only accepted with a filename in Content-Disposition.
	req.Header.Set(HeaderContentDisposition, fmt.Sprintf("filename=%s", d.Filename))
	req.Header.Set(HeaderInProgress, strconv.FormatBool(d.InProgress))
	if d.Packaging != "" {
		req.Header.Set(HeaderPackaging, d.Packaging)
	}
	if d.Slug != "" {
		req.Header.Set(HeaderSlug, d.Slug)
	}
	return req, nil
}

func (c *HTTPClient) multipartRequest(ctx context.Context, url string, d *Deposit) (*http.Request, error) {
	entry, err := d.entryXML()
	if err != nil {
		return nil, newWrappedRequestError("multipart", url, err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	entryHeader := textproto.MIMEHeader{}
	entryHeader.Set(HeaderContentType, MimeAtomEntry)
	entryHeader.Set(HeaderContentDisposition, `attachment; name="atom"`)
	part, err := w.CreatePart(entryHeader)
	if err != nil {
		return nil, newWrappedRequestError("multipart", url, err)
	}
	if _, err := part.Write(entry); err != nil {
		return nil, newWrappedRequestError("multipart", url, err)
	}

	mimeType := d.MimeType
	if mimeType == "" {
		mimeType = MimeOctetStream
	}
	mediaHeader := textproto.MIMEHeader{}
	mediaHeader.Set(HeaderContentType, mimeType)
	mediaHeader.Set(HeaderContentDisposition,
		fmt.Sprintf(`attachment; name="payload"; filename="%s"`, d.Filename))
	if d.Packaging != "" {
		mediaHeader.Set(HeaderPackaging, d.Packaging)
	}
	part, err = w.CreatePart(mediaHeader)
	if err != nil {
		return nil, newWrappedRequestError("multipart", url, err)
	}
	if d.File != nil {
		if _, err := io.Copy(part, d.File); err != nil {
			return nil, newWrappedRequestError("multipart", url, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, newWrappedRequestError("multipart", url, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, newWrappedRequestError("multipart", url, err)
	}
	req.Header.Set(HeaderContentType,
		fmt.Sprintf(`multipart/related; boundary="%s"; type="%s"`, w.Boundary(), MimeAtomEntry))
	req.Header.Set(HeaderInProgress, strconv.FormatBool(d.InProgress))
	if d.Slug != "" {
		req.Header.Set(HeaderSlug, d.Slug)
	}
	return req, nil
}

// Replace PUTs new metadata to an entry's edit URL. The deposit must carry
// metadata only.
func (c *HTTPClient) Replace(ctx context.Context, url string, d *Deposit) (*Response, error) {
	if d.hasFile() {
		return nil, ErrMultipartUnsupported
	}
	if !d.hasMetadata() {
		return nil, ErrNoPayload
	}
	req, err := c.entryRequest(ctx, http.MethodPut, url, d)
	if err != nil {
		return nil, err
	}
	return c.put("replace", req)
}

// ReplaceMedia PUTs a new media file to an entry's edit-media URL. The
// deposit must carry a file only. The In-Progress header is sent on media
// replacement too.
func (c *HTTPClient) ReplaceMedia(ctx context.Context, url string, d *Deposit) (*Response, error) {
	if d.hasMetadata() {
		return nil, ErrMultipartUnsupported
	}
	if !d.hasFile() {
		return nil, ErrNoPayload
	}
	req, err := c.mediaRequest(ctx, http.MethodPut, url, d)
	if err != nil {
		return nil, err
	}
	return c.put("replacemedia", req)
}

func (c *HTTPClient) put(op string, req *http.Request) (*Response, error) {
	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	drainAndClose(resp.Body)
	return &Response{
		StatusCode: resp.StatusCode,
		Location:   resp.Header.Get(HeaderLocation),
	}, nil
}
