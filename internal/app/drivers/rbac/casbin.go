package rbac

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed rbac_model.conf
var modelText string

//go:embed rbac_policy.csv
var policyText string

// NewEnforcer builds the route enforcer from the embedded model and policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create rbac enforcer: %w", err)
	}

	if err := loadPolicy(enforcer, policyText); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func loadPolicy(enforcer *casbin.Enforcer, text string) error {
	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		var err error
		switch fields[0] {
		case "p":
			_, err = enforcer.AddPolicy(fields[1:])
		case "g":
			_, err = enforcer.AddGroupingPolicy(fields[1:])
		default:
			err = fmt.Errorf("unknown policy type %q", fields[0])
		}
		if err != nil {
			return fmt.Errorf("rbac policy line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}
