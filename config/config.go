/* Copyright (c) 2016 Jason Ish
 * All rights reserved.
 *
 * Redistribution and use in source and binary forms, with or without
 * modification, are permitted provided that the following conditions
 * are met:
 *
 * 1. Redistributions of source code must retain the above copyright
 *    notice, this list of conditions and the following disclaimer.
 * 2. Redistributions in binary form must reproduce the above copyright
 *    notice, this list of conditions and the following disclaimer in the
 *    documentation and/or other materials provided with the distribution.
 *
 * THIS SOFTWARE IS PROVIDED ``AS IS'' AND ANY EXPRESS OR IMPLIED
 * WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
 * DISCLAIMED. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY DIRECT,
 * INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES
 * (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
 * SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION)
 * HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT,
 * STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING
 * IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
 * POSSIBILITY OF SUCH DAMAGE.
 */

package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// The configuration file looked for in the current directory when none
// is given.
const DefaultFilename = "idsrule.yaml"

const EnvPrefix = "IDSRULE"

type HttpConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Config struct {
	// Rule files, directories or globs.
	Rules []string `mapstructure:"rules"`

	DatabaseFilename string     `mapstructure:"database-filename"`
	Http             HttpConfig `mapstructure:"http"`
	LogLevel         string     `mapstructure:"log-level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rules", []string{})
	v.SetDefault("database-filename", "idsrule.sqlite")
	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", "5637")
	v.SetDefault("log-level", "info")
}

// LoadConfig loads the configuration from filename, or from
// DefaultFilename if it exists and filename is empty. Values from the
// environment, prefixed with IDSRULE_, override the file. Flags in
// flagset that were set on the command line override both.
func LoadConfig(filename string, flagset *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if filename == "" {
		if _, err := os.Stat(DefaultFilename); err == nil {
			filename = DefaultFilename
		}
	}
	if filename != "" {
		v.SetConfigFile(filename)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", filename)
		}
	}

	if flagset != nil {
		for key, name := range map[string]string{
			"database-filename": "database-filename",
			"http.host":         "host",
			"http.port":         "port",
			"log-level":         "log-level",
		} {
			if flag := flagset.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}
		if len(flagset.Args()) > 0 {
			v.Set("rules", flagset.Args())
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}

	return &config, nil
}
