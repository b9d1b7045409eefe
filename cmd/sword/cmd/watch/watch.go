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

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nlnwa/gosword"
	"github.com/nlnwa/gosword/cmd/sword/internal/connect"
)

type conf struct {
	collectionURL string
	dir           string
	inProgress    bool
	unpackZip     bool
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "watch <collection-url> <dir>",
		Short: "Watch a directory and deposit every new file into a collection",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("missing collection url or directory")
			}
			c.collectionURL = args[0]
			c.dir = args[1]
			return runE(c)
		},
	}

	cmd.Flags().BoolVarP(&c.inProgress, "in-progress", "i", false, "deposit to the workspace for further editing instead of the workflow")
	cmd.Flags().BoolVarP(&c.unpackZip, "unpack-zip", "u", false, "let the repository expand zip archives into individual files")

	return cmd
}

func runE(c *conf) error {
	exporter, err := connect.Exporter()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(c.dir); err != nil {
		return err
	}
	log.Infof("watching %v, depositing into %v", c.dir, c.collectionURL)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if strings.HasSuffix(event.Name, "~") {
				continue
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				fStat, statErr := os.Stat(event.Name)
				if statErr != nil {
					log.Error(statErr)
					continue
				}
				if !fStat.Mode().IsRegular() {
					continue
				}
				depositFile(exporter, c, event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch error: %v", err)
		}
	}
}

func depositFile(exporter *gosword.Exporter, c *conf, fileName string) {
	file, err := os.Open(fileName)
	if err != nil {
		log.Errorf("failed to open %v: %v", fileName, err)
		return
	}
	defer func() { _ = file.Close() }()

	entryURL, err := exporter.DepositFile(context.Background(),
		c.collectionURL, filepath.Base(fileName), file, c.unpackZip, c.inProgress)
	if err != nil {
		log.Errorf("failed to deposit %v: %v", fileName, err)
		return
	}
	log.Infof("deposited %v as %v", fileName, entryURL)
}
