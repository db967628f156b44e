package auth

import (
	"net/netip"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/AgencyAdmin/AgencyAdmin/internal/db/controller/platform"
	"github.com/AgencyAdmin/AgencyAdmin/internal/db/models"
	"github.com/AgencyAdmin/AgencyAdmin/internal/panel"
)

// Service provides authentication and authorization functionality.
type Service struct {
	db       *gorm.DB
	verifier TokenVerifier
}

// NewService creates a new auth service. A nil verifier disables authentication.
func NewService(db *gorm.DB, verifier TokenVerifier) *Service {
	return &Service{db: db, verifier: verifier}
}

// Enabled reports whether bearer tokens are verified.
func (s *Service) Enabled() bool {
	return s.verifier != nil
}

// HasPermission checks whether role may perform action on resource.
// The admin role is always allowed, any other role needs an allowing RBAC row.
func (s *Service) HasPermission(role, resource, action string) (bool, error) {
	if role == RoleAdmin {
		return true, nil
	}

	var count int64

	err := s.db.Model(&models.Permission{}).
		Where("role = ? AND resource = ? AND action = ? AND allowed = ?", role, resource, action, true).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check role permission")
	}

	return count > 0, nil
}

// Permissions lists the resource.action pairs the role is allowed.
func (s *Service) Permissions(role string) ([]string, error) {
	if role == RoleAdmin {
		out := make([]string, 0, 2*len(Resources()))
		for _, r := range Resources() {
			out = append(out, r+"."+ActionRead, r+"."+ActionWrite)
		}

		return out, nil
	}

	var rows []models.Permission
	if err := s.db.Where("role = ? AND allowed = ?", role, true).Order("resource, action").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to get role permissions")
	}

	out := make([]string, len(rows))
	for i, p := range rows {
		out[i] = p.Resource + "." + p.Action
	}

	return out, nil
}

// IPAllowed reports whether ip may reach the admin API. Enforcement is active only when
// the master config switch is on, then the address must match a whitelist entry.
func (s *Service) IPAllowed(ip string) (bool, error) {
	settings, err := platform.Load(s.db)
	if err != nil {
		return false, err
	}

	if on, _ := settings.MasterConfig[panel.IPWhitelistEnabledKey].(bool); !on {
		return true, nil
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false, errors.Wrap(ErrInvalidIP, ip)
	}

	var entries []models.IPWhitelist
	if err := s.db.Find(&entries).Error; err != nil {
		return false, err
	}

	for _, e := range entries {
		if Matches(e.IP, addr) {
			return true, nil
		}
	}

	return false, nil
}

// Matches reports whether addr equals entry, or lies within it when entry is a CIDR range.
func Matches(entry string, addr netip.Addr) bool {
	entry = strings.TrimSpace(entry)
	addr = addr.Unmap()

	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return false
		}

		return prefix.Contains(addr)
	}

	a, err := netip.ParseAddr(entry)
	if err != nil {
		return false
	}

	return a.Unmap() == addr
}
