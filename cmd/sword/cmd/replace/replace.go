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

package replace

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nlnwa/gosword/cmd/sword/internal/connect"
)

type conf struct {
	entryURL   string
	metadata   []string
	inProgress bool
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "replace <entry-url>",
		Short: "Replace the metadata of an existing entry",
		Long: `Replace the metadata of an existing entry. The entry url is the edit
url returned when the entry was created.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing entry url")
			}
			c.entryURL = args[0]
			if len(c.metadata) == 0 {
				return errors.New("missing metadata, use --metadata key=value")
			}
			return runE(c)
		},
	}

	cmd.Flags().StringArrayVarP(&c.metadata, "metadata", "m", nil, "metadata as key=value, repeatable")
	cmd.Flags().BoolVarP(&c.inProgress, "in-progress", "i", false, "keep the entry editable in the workspace")

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
	return exporter.ReplaceMetadataEntry(context.Background(), c.entryURL, metadata, c.inProgress)
}
