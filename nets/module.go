package nets

import (
	"github.com/reusee/bft/configs"
	"github.com/reusee/bft/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
