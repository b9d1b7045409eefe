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

package deposit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nlnwa/gosword/cmd/sword/internal/connect"
)

type conf struct {
	collectionURL string
	fileName      string
	metadata      []string
	inProgress    bool
	unpackZip     bool
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "deposit <collection-url> <file>",
		Short: "Deposit a file, optionally with metadata, into a collection",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("missing collection url or file name")
			}
			c.collectionURL = args[0]
			c.fileName = args[1]
			return runE(c)
		},
	}

	cmd.Flags().StringArrayVarP(&c.metadata, "metadata", "m", nil, "metadata as key=value, repeatable")
	cmd.Flags().BoolVarP(&c.inProgress, "in-progress", "i", false, "deposit to the workspace for further editing instead of the workflow")
	cmd.Flags().BoolVarP(&c.unpackZip, "unpack-zip", "u", false, "let the repository expand a zip archive into individual files")

	return cmd
}

func runE(c *conf) error {
	exporter, err := connect.Exporter()
	if err != nil {
		return err
	}
	metadata, err := connect.Metadata(c.metadata)
	if err != nil {
		return err
	}

	file, err := os.Open(c.fileName)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	ctx := context.Background()
	name := filepath.Base(c.fileName)

	var entryURL string
	if len(metadata) > 0 {
		entryURL, err = exporter.CreateEntryWithMetadataAndFile(ctx, c.collectionURL, name, file, c.unpackZip, metadata, c.inProgress)
	} else {
		entryURL, err = exporter.DepositFile(ctx, c.collectionURL, name, file, c.unpackZip, c.inProgress)
	}
	if err != nil {
		return err
	}

	fmt.Println(entryURL)
	return nil
}
