package server

import (
	"github.com/jasonish/idsrule/rules"
)

type AppContext struct {
	RuleMap *rules.RuleMap
}
