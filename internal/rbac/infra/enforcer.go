package infra

import (
	_ "embed"
	"os"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var defaultModel string

// NewEnforcer loads the casbin model from modelPath, or the embedded
// domain-scoped model when the file is absent.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	if modelPath != "" {
		if _, err := os.Stat(modelPath); err == nil {
			return casbin.NewEnforcer(modelPath)
		}
	}

	m, err := model.NewModelFromString(defaultModel)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
