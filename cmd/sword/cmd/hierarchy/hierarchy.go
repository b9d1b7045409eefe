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

package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nlnwa/gosword"
	"github.com/nlnwa/gosword/cmd/sword/internal/connect"
)

type conf struct {
	serviceDocumentURL string
	separator          string
	flat               bool
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "hierarchy <service-document-url>",
		Short: "Show the nested tree of communities and collections",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing service document url")
			}
			c.serviceDocumentURL = args[0]
			return runE(c)
		},
	}

	cmd.Flags().StringVarP(&c.separator, "separator", "s", " / ", "separator between path segments")
	cmd.Flags().BoolVarP(&c.flat, "flat", "f", false, "print href and path per line instead of a tree")

	return cmd
}

func runE(c *conf) error {
	exporter, err := connect.Exporter()
	if err != nil {
		return err
	}
	ctx := context.Background()

	doc, err := exporter.ServiceDocument(ctx, c.serviceDocumentURL)
	if err != nil {
		return err
	}
	root, err := exporter.Hierarchy(ctx, doc)
	if err != nil {
		return err
	}

	if c.flat {
		printFlat(root, c.separator)
		return nil
	}
	printTree(root, 0)
	return nil
}

func printFlat(root *gosword.HierarchyNode, separator string) {
	paths := root.FlattenWithPath(separator)
	hrefs := make([]string, 0, len(paths))
	for href := range paths {
		hrefs = append(hrefs, href)
	}
	sort.Strings(hrefs)
	for _, href := range hrefs {
		fmt.Printf("%s\t%s\n", href, paths[href])
	}
}

var (
	serviceColor    = color.New(color.FgCyan, color.Bold).SprintFunc()
	collectionColor = color.New(color.FgGreen).SprintFunc()
)

func printTree(node *gosword.HierarchyNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if node.Title != "" {
		fmt.Printf("%s%s\n", indent, serviceColor(node.Title))
		depth++
		indent = strings.Repeat("  ", depth)
	}
	for _, leaf := range node.Leaves {
		fmt.Printf("%s%s\t%s\n", indent, collectionColor(leaf.Title), leaf.Href)
	}
	for _, child := range node.Children {
		printTree(child, depth)
	}
}
