package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/behavioral-assessment/internal/config"
	"github.com/SAP-F-2025/behavioral-assessment/internal/models"
	"github.com/SAP-F-2025/behavioral-assessment/internal/services"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenParser turns a bearer token into the caller's identity.
type TokenParser interface {
	Parse(token string) (*services.Identity, error)
}

// CasdoorParser verifies tokens issued by the configured Casdoor application.
type CasdoorParser struct{}

func NewCasdoorParser(cfg config.AuthConfig) *CasdoorParser {
	casdoorsdk.InitConfig(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.OrganizationName,
		cfg.ApplicationName,
	)
	return &CasdoorParser{}
}

func (p *CasdoorParser) Parse(token string) (*services.Identity, error) {
	claims, err := casdoorsdk.ParseJwtToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return identityFromClaims(claims), nil
}

// identityFromClaims maps a Casdoor user to a local role. Admins come from
// the IsAdmin flag; leaders are tagged "leader" or hold a role of that name.
func identityFromClaims(claims *casdoorsdk.Claims) *services.Identity {
	user := claims.User

	role := models.RoleClient
	switch {
	case user.IsAdmin:
		role = models.RoleAdmin
	case strings.EqualFold(user.Tag, string(models.RoleLeader)) || strings.EqualFold(user.Type, string(models.RoleLeader)):
		role = models.RoleLeader
	default:
		for _, r := range user.Roles {
			if r != nil && strings.EqualFold(r.Name, string(models.RoleLeader)) {
				role = models.RoleLeader
				break
			}
		}
	}

	name := user.DisplayName
	if name == "" {
		name = user.Name
	}

	return &services.Identity{
		ID:        user.Id,
		Email:     user.Email,
		Name:      name,
		Role:      role,
		AvatarURL: user.Avatar,
	}
}
