// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"os"

	"github.com/dalzilio/jdd"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// engineConfig is the YAML description of the options of a BDD. Zero values
// keep the defaults of the jdd package. For instance:
//
//	nodesize: 100000
//	mingrowth: 10000
//	cache:
//	  binary: {divider: 8, bins: 4}
//	  satisfaction: {divider: 16}
type engineConfig struct {
	Nodesize     int                     `yaml:"nodesize"`
	Maxnodesize  int                     `yaml:"maxnodesize"`
	Mingrowth    int                     `yaml:"mingrowth"`
	Maxgrowth    int                     `yaml:"maxgrowth"`
	Smalltable   int                     `yaml:"smalltable"`
	Bigtable     int                     `yaml:"bigtable"`
	Minfreenodes int                     `yaml:"minfreenodes"`
	Minfreecount int                     `yaml:"minfreecount"`
	Cacheminimum int                     `yaml:"cacheminimum"`
	Cache        map[string]regionConfig `yaml:"cache"`
}

type regionConfig struct {
	Divider int `yaml:"divider"`
	Bins    int `yaml:"bins"`
}

var regions = []jdd.Region{
	jdd.UnaryRegion,
	jdd.BinaryRegion,
	jdd.TernaryRegion,
	jdd.SatisfactionRegion,
	jdd.SubstitutionRegion,
}

// loadConfig reads an engine configuration from a YAML file.
func loadConfig(path string) (*engineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to read configuration: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*engineConfig, error) {
	cfg := &engineConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, xerrors.Errorf("failed to parse configuration: %w", err)
	}
	for name := range cfg.Cache {
		known := false
		for _, r := range regions {
			known = known || r.String() == name
		}
		if !known {
			return nil, xerrors.Errorf("unknown cache region %q", name)
		}
	}
	return cfg, nil
}

// options returns the list of options for the non-zero values of cfg.
func (cfg *engineConfig) options() []jdd.Option {
	var res []jdd.Option
	add := func(value int, option func(int) jdd.Option) {
		if value > 0 {
			res = append(res, option(value))
		}
	}
	add(cfg.Nodesize, jdd.Nodesize)
	add(cfg.Maxnodesize, jdd.Maxnodesize)
	add(cfg.Mingrowth, jdd.Mingrowth)
	add(cfg.Maxgrowth, jdd.Maxgrowth)
	add(cfg.Smalltable, jdd.Smalltable)
	add(cfg.Bigtable, jdd.Bigtable)
	add(cfg.Minfreenodes, jdd.Minfreenodes)
	add(cfg.Minfreecount, jdd.Minfreecount)
	add(cfg.Cacheminimum, jdd.Cacheminimum)
	for _, r := range regions {
		rc, ok := cfg.Cache[r.String()]
		if !ok {
			continue
		}
		if rc.Divider > 0 {
			res = append(res, jdd.Cachedivider(r, rc.Divider))
		}
		if rc.Bins > 0 {
			res = append(res, jdd.Cachebins(r, rc.Bins))
		}
	}
	return res
}
