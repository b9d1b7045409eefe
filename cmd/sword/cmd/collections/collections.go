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

package collections

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nlnwa/gosword/cmd/sword/internal/connect"
)

type conf struct {
	serviceDocumentURL string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "collections <service-document-url>",
		Short: "List the collections available for the current credentials",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing service document url")
			}
			c.serviceDocumentURL = args[0]
			return runE(c)
		},
	}

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
	collections, err := exporter.Collections(ctx, doc)
	if err != nil {
		return err
	}

	hrefs := make([]string, 0, len(collections))
	for href := range collections {
		hrefs = append(hrefs, href)
	}
	sort.Strings(hrefs)

	title := color.New(color.FgGreen).SprintFunc()
	for _, href := range hrefs {
		fmt.Printf("%s\t%s\n", href, title(collections[href]))
	}
	return nil
}
