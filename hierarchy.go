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
	"encoding/xml"
	"io"
	"strings"

	"github.com/nlnwa/whatwg-url/url"
	"github.com/sirupsen/logrus"
)

// CollectionRef is a leaf deposit target. Href is the canonical URL of the
// collection and serves as the key in flattened views. Immutable after
// creation.
type CollectionRef struct {
	Title string
	Href  string
}

// HierarchyNode represents one service level: the root service document or
// a nested sub-service (e.g. a DSpace community). Children holds nested
// services, Leaves the collections directly under this node. An entry of
// the source document is always exactly one of the two. The tree is built
// in a single resolution pass and owned by the caller afterwards.
type HierarchyNode struct {
	// Title is the display name of the service level. Empty for the root.
	Title string
	// Locator is the URL this node's children were fetched from. Empty for
	// the root, whose entries come from the service document itself.
	Locator  string
	Children []*HierarchyNode
	Leaves   []CollectionRef
}

// HierarchyResolver discovers the nested tree of services and collections
// reachable from a service document. Sub-services are not part of the
// service document's object model; each one requires an extra content
// fetch whose body is scanned for nested collection elements.
type HierarchyResolver struct {
	fetcher ContentFetcher
	log     logrus.FieldLogger
}

// NewHierarchyResolver creates a resolver fetching sub-services through
// fetcher.
func NewHierarchyResolver(fetcher ContentFetcher, opts ...Option) *HierarchyResolver {
	o := newOptions(opts...)
	return &HierarchyResolver{
		fetcher: fetcher,
		log:     o.logger,
	}
}

// Resolve walks the service document and builds the full hierarchy. Plain
// collections become leaves of the synthetic root node; service references
// are resolved recursively, each costing one fetch per nesting level.
//
// Discovery is best effort: a failed or malformed sub-service fetch drops
// that branch (absence, not emptiness) and leaves siblings intact. The
// returned root is never nil.
func (r *HierarchyResolver) Resolve(ctx context.Context, doc *ServiceDocument) *HierarchyNode {
	root := &HierarchyNode{}
	if doc == nil {
		return root
	}
	for _, ws := range doc.Workspaces {
		for _, c := range ws.Collections {
			if !c.IsService() {
				root.Leaves = append(root.Leaves, CollectionRef{Title: c.Title, Href: c.Href})
				continue
			}
			child := r.resolveSubService(ctx, c.SubServices[0])
			if child == nil {
				continue
			}
			// A sub-service fetch returns the service's children, never its
			// own display name. The title from the referencing entry is
			// authoritative.
			child.Title = c.Title
			root.Children = append(root.Children, child)
		}
	}
	return root
}

// resolveSubService fetches locator and scans the response for nested
// collection elements. Returns nil when the branch could not be resolved.
func (r *HierarchyResolver) resolveSubService(ctx context.Context, locator string) *HierarchyNode {
	if _, err := url.Parse(locator); err != nil {
		r.log.Warnf("skipping sub-service with invalid locator %q: %v", locator, err)
		return nil
	}

	body, err := r.fetcher.Content(ctx, locator, MimeAtomXML, PackageSimpleZip)
	if err != nil {
		r.log.Warnf("failed to fetch sub-service %s: %v", locator, err)
		return nil
	}
	defer func() { _ = body.Close() }()

	node := &HierarchyNode{Locator: locator}
	for _, block := range scanCollectionBlocks(body) {
		if len(block.SubServices) > 0 && block.SubServices[0] != "" {
			child := r.resolveSubService(ctx, block.SubServices[0])
			if child == nil {
				continue
			}
			child.Title = block.title()
			node.Children = append(node.Children, child)
			continue
		}
		// A leaf needs both an href and a title. Blocks missing either are
		// dropped; upstream service documents vary too much to treat this
		// as an error.
		title := block.title()
		if block.Href == "" || title == "" {
			r.log.Debugf("dropping incomplete collection element under %s", locator)
			continue
		}
		node.Leaves = append(node.Leaves, CollectionRef{Title: title, Href: block.Href})
	}
	return node
}

// scanCollectionBlocks reads every top-level collection element from an
// Atom/XML body. Reading is best effort: a malformed element ends the scan
// and whatever decoded cleanly so far is kept.
func scanCollectionBlocks(body io.Reader) []collectionXML {
	var blocks []collectionXML
	dec := xml.NewDecoder(body)
	for {
		tok, err := dec.Token()
		if err != nil {
			return blocks
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "collection" {
			continue
		}
		var block collectionXML
		if err := dec.DecodeElement(&block, &se); err != nil {
			return blocks
		}
		blocks = append(blocks, block)
	}
}

// Flatten returns a map from collection href to title for every leaf in
// the subtree. If the same href occurs in several branches the last one
// visited wins; the tree itself keeps both occurrences. Safe to call on a
// nil node.
func (n *HierarchyNode) Flatten() map[string]string {
	m := make(map[string]string)
	n.flattenInto(m)
	return m
}

func (n *HierarchyNode) flattenInto(m map[string]string) {
	if n == nil {
		return
	}
	for _, leaf := range n.Leaves {
		m[leaf.Href] = leaf.Title
	}
	for _, child := range n.Children {
		child.flattenInto(m)
	}
}

// FlattenWithPath returns a map from collection href to the full
// root-to-leaf title path joined with separator. The synthetic root's
// empty title contributes no segment, so paths never start with a
// separator. Duplicate hrefs follow the same last-write-wins rule as
// Flatten.
func (n *HierarchyNode) FlattenWithPath(separator string) map[string]string {
	m := make(map[string]string)
	n.flattenPathInto(nil, separator, m)
	return m
}

func (n *HierarchyNode) flattenPathInto(ancestors []string, separator string, m map[string]string) {
	if n == nil {
		return
	}
	titles := ancestors
	if n.Title != "" {
		titles = make([]string, len(ancestors), len(ancestors)+1)
		copy(titles, ancestors)
		titles = append(titles, n.Title)
	}
	for _, leaf := range n.Leaves {
		segments := make([]string, len(titles), len(titles)+1)
		copy(segments, titles)
		segments = append(segments, leaf.Title)
		m[leaf.Href] = strings.Join(segments, separator)
	}
	for _, child := range n.Children {
		child.flattenPathInto(titles, separator, m)
	}
}

// PathTo returns the chain of ancestor service titles (root to immediate
// parent) for the collection identified by href, and whether it was found
// at all. Empty titles, including the root's, are excluded. The second
// return value distinguishes "found directly under the root" (nil, true)
// from "not found" (nil, false).
func (n *HierarchyNode) PathTo(href string) ([]string, bool) {
	if n == nil {
		return nil, false
	}
	for _, leaf := range n.Leaves {
		if leaf.Href == href {
			if n.Title == "" {
				return nil, true
			}
			return []string{n.Title}, true
		}
	}
	for _, child := range n.Children {
		if path, ok := child.PathTo(href); ok {
			if n.Title == "" {
				return path, true
			}
			return append([]string{n.Title}, path...), true
		}
	}
	return nil, false
}
