package main

import (
	"os"
	"path/filepath"

	"github.com/reusee/bft/bfvm"
	"github.com/reusee/bft/configs"
	"github.com/reusee/bft/debugs"
	"github.com/reusee/bft/nets"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	BFVM   bfvm.Module
	Nets   nets.Module
	Debugs debugs.Module
}

const configSchema = `
tape?: {
	cells?: int & >0
	growable?: bool
}
proxy_addr?: string
proxy_address?: string
http_proxy?: string
socks_proxy?: string
`

func (Module) ConfigLoader() configs.Loader {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(dir, "bft", "config.cue")
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}
	if _, err := os.Stat("bft.cue"); err == nil {
		paths = append(paths, "bft.cue")
	}
	return configs.NewLoader(paths, configSchema)
}
