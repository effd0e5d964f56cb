// Command issue-token mints a signed access token for local use and operations.
//
//	issue-token -sub alice -roles coordinator,finance -ttl 8h
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"eventcoord/config"
	"eventcoord/internal/adapters/auth"
	"eventcoord/internal/domain"
)

func main() {
	sub := flag.String("sub", "", "token subject (required)")
	email := flag.String("email", "", "email claim")
	roles := flag.String("roles", domain.RoleCoordinator, "comma separated roles: coordinator, finance")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	logger := config.NewLogger("", "info")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *sub == "" {
		logger.Error("-sub is required")
		flag.Usage()
		os.Exit(2)
	}
	parsed, err := parseRoles(*roles)
	if err != nil {
		logger.Error("invalid roles", "err", err)
		os.Exit(2)
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*sub, *email, parsed, *ttl)
	if err != nil {
		logger.Error("failed to issue token", "err", err)
		os.Exit(1)
	}
	logger.Debug("token issued", "sub", *sub, "roles", parsed, "ttl", ttl.String())
	fmt.Println(token)
}

func parseRoles(s string) ([]string, error) {
	var roles []string
	for _, r := range strings.Split(s, ",") {
		r = strings.TrimSpace(r)
		switch r {
		case "":
			continue
		case domain.RoleCoordinator, domain.RoleFinance:
			roles = append(roles, r)
		default:
			return nil, fmt.Errorf("unknown role %q", r)
		}
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("at least one role is required")
	}
	return roles, nil
}
