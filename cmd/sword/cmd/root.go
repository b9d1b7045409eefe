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

package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nlnwa/gosword/cmd/sword/cmd/collections"
	"github.com/nlnwa/gosword/cmd/sword/cmd/deposit"
	"github.com/nlnwa/gosword/cmd/sword/cmd/hierarchy"
	"github.com/nlnwa/gosword/cmd/sword/cmd/replace"
	"github.com/nlnwa/gosword/cmd/sword/cmd/watch"
)

type conf struct {
	cfgFile string
}

// NewCommand returns a new cobra.Command implementing the root command for sword
func NewCommand() *cobra.Command {
	c := &conf{}
	cmd := &cobra.Command{
		Use:   "sword",
		Short: "Deposit into SWORD v2 repositories (DSpace, Dataverse)",
		Long: `sword lists collections, resolves collection hierarchies and deposits
files and metadata into SWORD v2 based repositories such as DSpace and
Dataverse.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, err := log.ParseLevel(viper.GetString("log-level"))
			if err != nil {
				level = log.WarnLevel
			}
			log.SetLevel(level)
		},
	}

	cobra.OnInitialize(func() { c.initConfig() })

	// Flags
	cmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.sword.yaml)")
	cmd.PersistentFlags().String("user", "", "user login, usually an e-mail address")
	cmd.PersistentFlags().String("password", "", "password for the user login")
	cmd.PersistentFlags().String("token", "", "API token used instead of user/password (Dataverse)")
	cmd.PersistentFlags().String("on-behalf-of", "", "deposit on behalf of this user (requires privileged credentials)")
	cmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("user", cmd.PersistentFlags().Lookup("user"))
	_ = viper.BindPFlag("password", cmd.PersistentFlags().Lookup("password"))
	_ = viper.BindPFlag("token", cmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("on-behalf-of", cmd.PersistentFlags().Lookup("on-behalf-of"))
	_ = viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))

	// Subcommands
	cmd.AddCommand(collections.NewCommand())
	cmd.AddCommand(hierarchy.NewCommand())
	cmd.AddCommand(deposit.NewCommand())
	cmd.AddCommand(replace.NewCommand())
	cmd.AddCommand(watch.NewCommand())

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func (c *conf) initConfig() {
	if c.cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(c.cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".sword" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".sword")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Debugf("using config file: %v", viper.ConfigFileUsed())
	}
}
